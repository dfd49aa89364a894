package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"groundedwarriors/internal/models/db_models"
	"groundedwarriors/internal/models/request_models"
	"groundedwarriors/internal/repositories"
	"groundedwarriors/pkg/utils"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt input limit, in bytes
	resetTokenBytes   = 32
	defaultMailWait   = 15 * time.Second

	msgInvalidCredentials = "Invalid email or password"
	msgInvalidResetToken  = "Invalid or expired reset token"
	msgNotAuthenticated   = "Not authenticated"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*db_models.User, *ActiveSession, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*db_models.User, *ActiveSession, error)
	CurrentUser(ctx context.Context, session *ActiveSession) (*db_models.User, error)
	Logout(ctx context.Context, session *ActiveSession) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
	// Drain waits for reset emails that are still being sent.
	Drain(ctx context.Context) error
}

type AccountConfig struct {
	BcryptCost    int
	ResetTokenTTL time.Duration
	BaseURL       string

	// MailTimeout bounds a single reset email send.
	MailTimeout time.Duration
}

type AccountService struct {
	userRepo  repositories.UserRepository
	sessions  SessionServiceInterface
	mail      IMailService
	logger    *zap.Logger
	cfg       AccountConfig
	now       utils.Clock
	dummyHash string
	mailWG    sync.WaitGroup
}

func NewAccountService(
	userRepo repositories.UserRepository,
	sessions SessionServiceInterface,
	mail IMailService,
	logger *zap.Logger,
	cfg AccountConfig,
	clock utils.Clock,
) (AccountServiceInterface, error) {
	if clock == nil {
		clock = utils.SystemClock
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = utils.DefaultBcryptCost
	}
	if cfg.ResetTokenTTL == 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	if cfg.MailTimeout == 0 {
		cfg.MailTimeout = defaultMailWait
	}

	// Compared against on unknown emails so both login failures cost one bcrypt run.
	dummyHash, err := utils.HashPassword("grounded-warriors-placeholder", cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &AccountService{
		userRepo:  userRepo,
		sessions:  sessions,
		mail:      mail,
		logger:    logger,
		cfg:       cfg,
		now:       clock,
		dummyHash: dummyHash,
	}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*db_models.User, *ActiveSession, error) {
	email := NormalizeEmail(request.Email)
	if email == "" || request.Password == "" {
		return nil, nil, utils.ValidationError("Email and password are required")
	}
	if err := checkPasswordLength(request.Password); err != nil {
		return nil, nil, err
	}

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, utils.InternalError("Registration failed", err)
	}
	if existing != nil {
		return nil, nil, utils.ConflictError("An account with this email already exists")
	}

	hashed, err := utils.HashPassword(request.Password, a.cfg.BcryptCost)
	if err != nil {
		return nil, nil, utils.InternalError("Registration failed", err)
	}

	user := &db_models.User{
		Email:     email,
		Password:  hashed,
		FirstName: trimmedOrNil(request.FirstName),
		LastName:  trimmedOrNil(request.LastName),
	}
	if err := a.userRepo.Insert(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, nil, utils.ConflictError("An account with this email already exists")
		}
		return nil, nil, utils.InternalError("Registration failed", err)
	}

	session, err := a.sessions.Start(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, session, nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*db_models.User, *ActiveSession, error) {
	email := NormalizeEmail(request.Email)
	if email == "" || request.Password == "" {
		return nil, nil, utils.ValidationError("Email and password are required")
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, utils.InternalError("Login failed", err)
	}

	if user == nil {
		_ = utils.ComparePasswords(a.dummyHash, request.Password)
		return nil, nil, utils.AuthError(msgInvalidCredentials)
	}
	if err := utils.ComparePasswords(user.Password, request.Password); err != nil {
		return nil, nil, utils.AuthError(msgInvalidCredentials)
	}

	session, err := a.sessions.Start(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

func (a *AccountService) CurrentUser(ctx context.Context, session *ActiveSession) (*db_models.User, error) {
	if session == nil || session.UserID == "" {
		return nil, utils.AuthError(msgNotAuthenticated)
	}

	user, err := a.userRepo.FindById(ctx, session.UserID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch user", err)
	}
	if user == nil {
		if err := a.sessions.Destroy(ctx, session.ID); err != nil {
			a.logger.Warn("failed to destroy orphaned session", zap.Error(err))
		}
		return nil, utils.AuthError(msgNotAuthenticated)
	}

	return user, nil
}

func (a *AccountService) Logout(ctx context.Context, session *ActiveSession) error {
	if session == nil {
		return nil
	}
	return a.sessions.Destroy(ctx, session.ID)
}

// ForgotPassword reports success whether or not the account exists. The
// reset email is sent in the background so the response does not wait on
// the mail provider; delivery failures are logged only.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return utils.ValidationError("Email is required")
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.InternalError("Failed to process request", err)
	}
	if user == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return utils.InternalError("Failed to process request", err)
	}

	expiry := a.now().Add(a.cfg.ResetTokenTTL)
	if err := a.userRepo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return utils.InternalError("Failed to process request", err)
	}

	a.mailWG.Add(1)
	go a.sendResetMail(context.WithoutCancel(ctx), user.ID, user.Email, a.ResetLink(token))

	return nil
}

func (a *AccountService) sendResetMail(ctx context.Context, userID, to, link string) {
	defer a.mailWG.Done()

	ctx, cancel := context.WithTimeout(ctx, a.cfg.MailTimeout)
	defer cancel()

	if err := a.mail.SendMailToResetPassword(ctx, to, link); err != nil {
		a.logger.Error("failed to send password reset email",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

func (a *AccountService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.mailWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *AccountService) ResetLink(token string) string {
	return fmt.Sprintf("%s/login?reset=%s", strings.TrimRight(a.cfg.BaseURL, "/"), url.QueryEscape(token))
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	if request.Token == "" || request.Password == "" {
		return utils.ValidationError("Token and password are required")
	}
	if err := checkPasswordLength(request.Password); err != nil {
		return err
	}

	user, err := a.userRepo.FindByResetToken(ctx, request.Token)
	if err != nil {
		return utils.InternalError("Failed to reset password", err)
	}
	if user == nil {
		return utils.AuthError(msgInvalidResetToken)
	}

	if user.ResetTokenExpiry == nil || !a.now().Before(*user.ResetTokenExpiry) {
		if err := a.userRepo.ClearResetToken(ctx, user.ID); err != nil {
			a.logger.Warn("failed to clear expired reset token", zap.Error(err))
		}
		return utils.AuthError(msgInvalidResetToken)
	}

	hashed, err := utils.HashPassword(request.Password, a.cfg.BcryptCost)
	if err != nil {
		return utils.InternalError("Failed to reset password", err)
	}

	consumed, err := a.userRepo.ConsumeResetToken(ctx, user.ID, request.Token, hashed)
	if err != nil {
		return utils.InternalError("Failed to reset password", err)
	}
	if !consumed {
		return utils.AuthError(msgInvalidResetToken)
	}

	a.logger.Info("password reset", zap.String("user_id", user.ID))
	return nil
}

func checkPasswordLength(password string) error {
	if len(password) < minPasswordLength {
		return utils.ValidationError("Password must be at least 6 characters")
	}
	if len(password) > maxPasswordLength {
		return utils.ValidationError("Password must be at most 72 characters")
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
