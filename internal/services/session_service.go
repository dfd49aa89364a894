package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"groundedwarriors/internal/models/db_models"
	"groundedwarriors/internal/repositories"
	"groundedwarriors/pkg/utils"
)

// ActiveSession is a loaded or freshly issued login session.
type ActiveSession struct {
	ID        string
	UserID    string
	Cookie    string
	ExpiresAt time.Time

	// Renewed is set when Load pushed the expiry forward and signed a new
	// cookie that the client must receive.
	Renewed bool
}

type SessionServiceInterface interface {
	// Start always issues a new session id.
	Start(ctx context.Context, userID string) (*ActiveSession, error)
	// Load returns nil when the cookie is invalid or names no live session.
	Load(ctx context.Context, cookie string) (*ActiveSession, error)
	Destroy(ctx context.Context, sessionID string) error
	Prune(ctx context.Context) (int64, error)
	TTL() time.Duration
}

type SessionService struct {
	repo   repositories.SessionRepository
	signer *utils.CookieSigner
	ttl    time.Duration
	now    utils.Clock
	logger *zap.Logger
}

func NewSessionService(
	repo repositories.SessionRepository,
	signer *utils.CookieSigner,
	ttl time.Duration,
	clock utils.Clock,
	logger *zap.Logger,
) SessionServiceInterface {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &SessionService{
		repo:   repo,
		signer: signer,
		ttl:    ttl,
		now:    clock,
		logger: logger,
	}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) Start(ctx context.Context, userID string) (*ActiveSession, error) {
	sid, err := utils.GenerateSecureToken(24)
	if err != nil {
		return nil, utils.InternalError("Failed to create session", err)
	}

	now := s.now()
	expire := now.Add(s.ttl)

	row := &db_models.Session{SID: sid, Expire: expire}
	if err := row.SetData(db_models.SessionData{UserID: userID, CreatedAt: now}); err != nil {
		return nil, utils.InternalError("Failed to create session", err)
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, utils.InternalError("Failed to create session", err)
	}

	cookie, err := s.signer.Sign(sid, expire)
	if err != nil {
		return nil, utils.InternalError("Failed to create session", err)
	}

	return &ActiveSession{ID: sid, UserID: userID, Cookie: cookie, ExpiresAt: expire}, nil
}

func (s *SessionService) Load(ctx context.Context, cookie string) (*ActiveSession, error) {
	if cookie == "" {
		return nil, nil
	}
	sid, err := s.signer.Verify(cookie)
	if err != nil {
		return nil, nil
	}

	now := s.now()
	row, err := s.repo.Get(ctx, sid, now)
	if err != nil {
		return nil, utils.InternalError("Failed to load session", err)
	}
	if row == nil {
		return nil, nil
	}

	data, err := row.Data()
	if err != nil || data.UserID == "" {
		s.logger.Warn("discarding unreadable session", zap.String("sid_prefix", sid[:min(8, len(sid))]), zap.Error(err))
		_ = s.repo.Destroy(ctx, sid)
		return nil, nil
	}

	current := &ActiveSession{ID: sid, UserID: data.UserID, Cookie: cookie, ExpiresAt: row.Expire}

	expire := now.Add(s.ttl)
	renewed, err := s.signer.Sign(sid, expire)
	if err != nil {
		s.logger.Warn("failed to sign renewed session cookie", zap.Error(err))
		return current, nil
	}
	if err := s.repo.Touch(ctx, sid, expire); err != nil {
		// The session is still valid until its old expiry.
		s.logger.Warn("failed to extend session", zap.Error(err))
		return current, nil
	}

	return &ActiveSession{ID: sid, UserID: data.UserID, Cookie: renewed, ExpiresAt: expire, Renewed: true}, nil
}

func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.repo.Destroy(ctx, sessionID); err != nil {
		return utils.InternalError("Failed to destroy session", err)
	}
	return nil
}

func (s *SessionService) Prune(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}
