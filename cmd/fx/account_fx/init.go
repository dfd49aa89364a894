package account_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"groundedwarriors/internal/config"
	"groundedwarriors/internal/repositories"
	"groundedwarriors/internal/services"
	"groundedwarriors/pkg/middleware"
	"groundedwarriors/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(
		repositories.NewUserRepository,
		repositories.NewSessionRepository,
		provideCookieConfig,
		provideSessionService,
		provideAccountService,
	),
	fx.Invoke(registerSessionPruner, registerMailDrain),
)

func provideCookieConfig(cfg config.Config) middleware.CookieConfig {
	return middleware.CookieConfig{
		Name:   cfg.SessionCookieName,
		Secure: cfg.Production(),
		MaxAge: cfg.SessionTTL,
	}
}

func provideSessionService(repo repositories.SessionRepository, cfg config.Config, logger *zap.Logger) services.SessionServiceInterface {
	return services.NewSessionService(repo, utils.NewCookieSigner(cfg.SessionSecret), cfg.SessionTTL, utils.SystemClock, logger)
}

func provideAccountService(
	userRepo repositories.UserRepository,
	sessions services.SessionServiceInterface,
	mail services.IMailService,
	cfg config.Config,
	logger *zap.Logger,
) (services.AccountServiceInterface, error) {
	return services.NewAccountService(userRepo, sessions, mail, logger, services.AccountConfig{
		BcryptCost:    cfg.BcryptCost,
		ResetTokenTTL: cfg.ResetTokenTTL,
		BaseURL:       cfg.BaseURL,
	}, utils.SystemClock)
}

// registerSessionPruner deletes expired sessions in the background.
func registerSessionPruner(lc fx.Lifecycle, sessions services.SessionServiceInterface, cfg config.Config, logger *zap.Logger) {
	if cfg.SessionPruneInterval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.SessionPruneInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						n, err := sessions.Prune(ctx)
						if err != nil {
							logger.Warn("session prune failed", zap.Error(err))
							continue
						}
						if n > 0 {
							logger.Debug("pruned expired sessions", zap.Int64("count", n))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

// registerMailDrain lets reset emails still in flight finish on shutdown.
func registerMailDrain(lc fx.Lifecycle, accounts services.AccountServiceInterface, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := accounts.Drain(ctx); err != nil {
				logger.Warn("shutdown before all reset emails were sent", zap.Error(err))
			}
			return nil
		},
	})
}
