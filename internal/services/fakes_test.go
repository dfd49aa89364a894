package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"groundedwarriors/internal/models/db_models"
	"groundedwarriors/internal/repositories"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*db_models.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*db_models.User{}}
}

func (r *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) find(match func(*db_models.User) bool) (*db_models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindById(_ context.Context, id string) (*db_models.User, error) {
	return r.find(func(u *db_models.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	return r.find(func(u *db_models.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) FindByResetToken(_ context.Context, token string) (*db_models.User, error) {
	return r.find(func(u *db_models.User) bool { return u.ResetToken != nil && *u.ResetToken == token })
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, userID, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (r *fakeUserRepo) ClearResetToken(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.ResetToken = nil
		u.ResetTokenExpiry = nil
	}
	return nil
}

func (r *fakeUserRepo) ConsumeResetToken(_ context.Context, userID, token, passwordHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.ResetToken == nil || *u.ResetToken != token {
		return false, nil
	}
	u.Password = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return true, nil
}

func (r *fakeUserRepo) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]db_models.Session
	touchErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]db_models.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *db_models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.SID] = *session
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, sid string, now time.Time) (*db_models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sid]
	if !ok || !s.Expire.After(now) {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSessionRepo) Touch(_ context.Context, sid string, expire time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.touchErr != nil {
		return r.touchErr
	}
	if s, ok := r.sessions[sid]; ok {
		s.Expire = expire
		r.sessions[sid] = s
	}
	return nil
}

func (r *fakeSessionRepo) Destroy(_ context.Context, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for sid, s := range r.sessions {
		if !s.Expire.After(now) {
			delete(r.sessions, sid)
			n++
		}
	}
	return n, nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type sentReset struct {
	to   string
	link string
}

type fakeMail struct {
	mu       sync.Mutex
	resets   []sentReset
	contacts []*db_models.ContactSubmission
	err      error

	// gate, when set, holds reset sends until it is closed or the send
	// context ends.
	gate    chan struct{}
	results []error
}

func (m *fakeMail) SendMailToResetPassword(ctx context.Context, to, resetLink string) error {
	m.mu.Lock()
	m.resets = append(m.resets, sentReset{to: to, link: resetLink})
	err, gate := m.err, m.gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	m.mu.Lock()
	m.results = append(m.results, err)
	m.mu.Unlock()
	return err
}

func (m *fakeMail) sendResults() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.results...)
}

func (m *fakeMail) sentResets() []sentReset {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentReset(nil), m.resets...)
}

func (m *fakeMail) SendContactNotification(_ context.Context, _ string, submission *db_models.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = append(m.contacts, submission)
	return m.err
}

type fakeGateway struct {
	inputs    []CheckoutSessionInput
	sessions  map[string]*CheckoutSession
	event     *WebhookEvent
	createErr error
	parseErr  error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: map[string]*CheckoutSession{}}
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, input CheckoutSessionInput) (*CheckoutSession, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.inputs = append(g.inputs, input)
	s := &CheckoutSession{
		ID:          "cs_test_" + string(rune('a'+len(g.inputs)-1)),
		URL:         "https://checkout.stripe.test/pay",
		AmountTotal: input.LineItem.UnitAmount * input.LineItem.Quantity,
		Currency:    input.LineItem.Currency,
		Status:      "open",
		Metadata:    input.Metadata,
	}
	g.sessions[s.ID] = s
	return s, nil
}

func (g *fakeGateway) GetCheckoutSession(_ context.Context, id string) (*CheckoutSession, error) {
	s, ok := g.sessions[id]
	if !ok {
		return nil, ErrCheckoutSessionNotFound
	}
	return s, nil
}

func (g *fakeGateway) ParseWebhookEvent(_ []byte, _ string) (*WebhookEvent, error) {
	if g.parseErr != nil {
		return nil, g.parseErr
	}
	return g.event, nil
}

type fakeRegistrationRepo struct {
	rows []db_models.RetreatRegistration
	err  error
}

func (r *fakeRegistrationRepo) CreateRegistration(_ context.Context, registration *db_models.RetreatRegistration) error {
	if r.err != nil {
		return r.err
	}
	registration.ID = int64(len(r.rows) + 1)
	registration.CreatedAt = time.Now().Add(time.Duration(len(r.rows)) * time.Second)
	r.rows = append(r.rows, *registration)
	return nil
}

func (r *fakeRegistrationRepo) ListByUser(_ context.Context, userID string) ([]db_models.RetreatRegistration, error) {
	var out []db_models.RetreatRegistration
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRegistrationRepo) UpdateStatusBySession(_ context.Context, stripeSessionID string, status db_models.PaymentStatus) (int64, error) {
	var n int64
	for i := range r.rows {
		row := &r.rows[i]
		if row.StripeSessionID != nil && *row.StripeSessionID == stripeSessionID &&
			row.PaymentStatus != db_models.PaymentStatusCompleted {
			row.PaymentStatus = status
			n++
		}
	}
	return n, nil
}

type fakeDiscussionRepo struct {
	discussions []db_models.Discussion
	replies     []db_models.DiscussionReply
}

func (r *fakeDiscussionRepo) CreateDiscussion(_ context.Context, discussion *db_models.Discussion) error {
	discussion.ID = int64(len(r.discussions) + 1)
	discussion.CreatedAt = time.Now()
	r.discussions = append(r.discussions, *discussion)
	return nil
}

func (r *fakeDiscussionRepo) ListDiscussions(_ context.Context) ([]db_models.Discussion, error) {
	out := make([]db_models.Discussion, 0, len(r.discussions))
	for i := len(r.discussions) - 1; i >= 0; i-- {
		out = append(out, r.discussions[i])
	}
	return out, nil
}

func (r *fakeDiscussionRepo) FindDiscussion(_ context.Context, id int64) (*db_models.Discussion, error) {
	for _, d := range r.discussions {
		if d.ID == id {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDiscussionRepo) CreateReply(_ context.Context, reply *db_models.DiscussionReply) error {
	reply.ID = int64(len(r.replies) + 1)
	reply.CreatedAt = time.Now()
	r.replies = append(r.replies, *reply)
	return nil
}

func (r *fakeDiscussionRepo) ListReplies(_ context.Context, discussionID int64) ([]db_models.DiscussionReply, error) {
	var out []db_models.DiscussionReply
	for _, reply := range r.replies {
		if reply.DiscussionID == discussionID {
			out = append(out, reply)
		}
	}
	return out, nil
}

type fakeNewsletterRepo struct {
	rows []db_models.NewsletterSubscription
}

func (r *fakeNewsletterRepo) CreateSubscription(_ context.Context, subscription *db_models.NewsletterSubscription) error {
	for _, row := range r.rows {
		if row.Email == subscription.Email {
			return repositories.ErrDuplicate
		}
	}
	subscription.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, *subscription)
	return nil
}

func (r *fakeNewsletterRepo) ListSubscriptions(_ context.Context) ([]db_models.NewsletterSubscription, error) {
	return r.rows, nil
}

type fakeContactRepo struct {
	rows []db_models.ContactSubmission
	err  error
}

func (r *fakeContactRepo) CreateSubmission(_ context.Context, submission *db_models.ContactSubmission) error {
	if r.err != nil {
		return r.err
	}
	submission.ID = int64(len(r.rows) + 1)
	submission.CreatedAt = time.Now()
	r.rows = append(r.rows, *submission)
	return nil
}

func (r *fakeContactRepo) ListSubmissions(_ context.Context) ([]db_models.ContactSubmission, error) {
	return r.rows, nil
}

var errStorage = errors.New("storage unavailable")

// testClock is a settable clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Now().UTC()}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
