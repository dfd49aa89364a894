package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"groundedwarriors/internal/models/db_models"
	"groundedwarriors/internal/repositories"
	"groundedwarriors/internal/services"
)

// memoryStore backs every repository interface for router tests.
type memoryStore struct {
	mu            sync.Mutex
	users         map[string]db_models.User
	sessions      map[string]db_models.Session
	contacts      []db_models.ContactSubmission
	subscriptions []db_models.NewsletterSubscription
	registrations []db_models.RetreatRegistration
	discussions   []db_models.Discussion
	replies       []db_models.DiscussionReply
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[string]db_models.User{},
		sessions: map[string]db_models.Session{},
	}
}

type memUsers struct{ *memoryStore }

func (m memUsers) Insert(_ context.Context, user *db_models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	m.users[user.ID] = *user
	return nil
}

func (m memUsers) first(match func(db_models.User) bool) (*db_models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, nil
}

func (m memUsers) FindById(_ context.Context, id string) (*db_models.User, error) {
	return m.first(func(u db_models.User) bool { return u.ID == id })
}

func (m memUsers) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	return m.first(func(u db_models.User) bool { return u.Email == email })
}

func (m memUsers) FindByResetToken(_ context.Context, token string) (*db_models.User, error) {
	return m.first(func(u db_models.User) bool { return u.ResetToken != nil && *u.ResetToken == token })
}

func (m memUsers) SetResetToken(_ context.Context, userID, token string, expiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[userID]
	u.ResetToken, u.ResetTokenExpiry = &token, &expiry
	m.users[userID] = u
	return nil
}

func (m memUsers) ClearResetToken(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[userID]
	u.ResetToken, u.ResetTokenExpiry = nil, nil
	m.users[userID] = u
	return nil
}

func (m memUsers) ConsumeResetToken(_ context.Context, userID, token, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.ResetToken == nil || *u.ResetToken != token {
		return false, nil
	}
	u.Password, u.ResetToken, u.ResetTokenExpiry = hash, nil, nil
	m.users[userID] = u
	return true, nil
}

type memSessions struct{ *memoryStore }

func (m memSessions) Create(_ context.Context, s *db_models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SID] = *s
	return nil
}

func (m memSessions) Get(_ context.Context, sid string, now time.Time) (*db_models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sid]
	if !ok || !s.Expire.After(now) {
		return nil, nil
	}
	return &s, nil
}

func (m memSessions) Touch(_ context.Context, sid string, expire time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sid]; ok {
		s.Expire = expire
		m.sessions[sid] = s
	}
	return nil
}

func (m memSessions) Destroy(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	return nil
}

func (m memSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type memSite struct{ *memoryStore }

func (m memSite) CreateSubmission(_ context.Context, s *db_models.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = int64(len(m.contacts) + 1)
	s.CreatedAt = time.Now()
	m.contacts = append(m.contacts, *s)
	return nil
}

func (m memSite) ListSubmissions(_ context.Context) ([]db_models.ContactSubmission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]db_models.ContactSubmission(nil), m.contacts...), nil
}

func (m memSite) CreateSubscription(_ context.Context, s *db_models.NewsletterSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.subscriptions {
		if row.Email == s.Email {
			return repositories.ErrDuplicate
		}
	}
	s.ID = int64(len(m.subscriptions) + 1)
	m.subscriptions = append(m.subscriptions, *s)
	return nil
}

func (m memSite) ListSubscriptions(_ context.Context) ([]db_models.NewsletterSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]db_models.NewsletterSubscription(nil), m.subscriptions...), nil
}

type memMember struct{ *memoryStore }

func (m memMember) CreateRegistration(_ context.Context, r *db_models.RetreatRegistration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = int64(len(m.registrations) + 1)
	m.registrations = append(m.registrations, *r)
	return nil
}

func (m memMember) ListByUser(_ context.Context, userID string) ([]db_models.RetreatRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db_models.RetreatRegistration
	for i := len(m.registrations) - 1; i >= 0; i-- {
		if m.registrations[i].UserID == userID {
			out = append(out, m.registrations[i])
		}
	}
	return out, nil
}

func (m memMember) UpdateStatusBySession(_ context.Context, sid string, status db_models.PaymentStatus) (int64, error) {
	return 0, nil
}

func (m memMember) CreateDiscussion(_ context.Context, d *db_models.Discussion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = int64(len(m.discussions) + 1)
	m.discussions = append(m.discussions, *d)
	return nil
}

func (m memMember) ListDiscussions(_ context.Context) ([]db_models.Discussion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]db_models.Discussion, 0, len(m.discussions))
	for i := len(m.discussions) - 1; i >= 0; i-- {
		out = append(out, m.discussions[i])
	}
	return out, nil
}

func (m memMember) FindDiscussion(_ context.Context, id int64) (*db_models.Discussion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.discussions {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, nil
}

func (m memMember) CreateReply(_ context.Context, r *db_models.DiscussionReply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = int64(len(m.replies) + 1)
	m.replies = append(m.replies, *r)
	return nil
}

func (m memMember) ListReplies(_ context.Context, id int64) ([]db_models.DiscussionReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db_models.DiscussionReply
	for _, r := range m.replies {
		if r.DiscussionID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

type nopMail struct {
	mu     sync.Mutex
	resets int
}

func (n *nopMail) SendMailToResetPassword(context.Context, string, string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resets++
	return nil
}

func (n *nopMail) resetCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.resets
}

func (n *nopMail) SendContactNotification(context.Context, string, *db_models.ContactSubmission) error {
	return nil
}

type stubGateway struct {
	mu     sync.Mutex
	inputs []services.CheckoutSessionInput
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, in services.CheckoutSessionInput) (*services.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inputs = append(g.inputs, in)
	return &services.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
}

func (g *stubGateway) GetCheckoutSession(_ context.Context, id string) (*services.CheckoutSession, error) {
	if id != "cs_test_1" {
		return nil, services.ErrCheckoutSessionNotFound
	}
	return &services.CheckoutSession{ID: id, AmountTotal: 25000, Currency: "cad", PaymentStatus: "paid", Status: "complete"}, nil
}

func (g *stubGateway) ParseWebhookEvent([]byte, string) (*services.WebhookEvent, error) {
	return nil, services.ErrInvalidWebhook
}
