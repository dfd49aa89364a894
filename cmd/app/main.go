package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"groundedwarriors/cmd/fx/account_fx"
	"groundedwarriors/cmd/fx/config_fx"
	"groundedwarriors/cmd/fx/contact_fx"
	"groundedwarriors/cmd/fx/controllers_fx"
	"groundedwarriors/cmd/fx/db_fx"
	"groundedwarriors/cmd/fx/logger_fx"
	"groundedwarriors/cmd/fx/mail_fx"
	"groundedwarriors/cmd/fx/member_fx"
	"groundedwarriors/cmd/fx/payment_service_fx"
	"groundedwarriors/cmd/fx/redis_fx"
	"groundedwarriors/internal/api"
	"groundedwarriors/internal/api/controllers"
	"groundedwarriors/internal/config"
	"groundedwarriors/internal/services"
	"groundedwarriors/pkg/middleware"
)

var appModules = fx.Options(
	config_fx.Module,
	logger_fx.Module,
	db_fx.Module,
	redis_fx.Module,
	mail_fx.Module,
	account_fx.Module,
	member_fx.Module,
	payment_service_fx.Module,
	contact_fx.Module,
	controllers_fx.Module,

	fx.Provide(ProvideRouter),
	fx.Invoke(StartServer),
)

func main() {
	fx.New(appModules).Run()
}

type RouterParams struct {
	fx.In

	Config   config.Config
	Logger   *zap.Logger
	Sessions services.SessionServiceInterface
	Cookie   middleware.CookieConfig
	Counter  middleware.WindowCounter `optional:"true"`

	Account *controllers.AccountController
	Payment *controllers.PaymentController
	Contact *controllers.ContactController
	Member  *controllers.MemberController
	Health  *controllers.HealthController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if p.Config.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter gin.HandlerFunc
	if p.Counter != nil {
		limiter = middleware.RateLimiter(p.Counter, middleware.RateLimitConfig{
			Limit:     p.Config.AuthRateLimit,
			Window:    p.Config.AuthRateWindow,
			KeyPrefix: "rl:auth",
		}, p.Logger)
	}

	return api.NewRouter(api.RouterOptions{
		Sessions:       p.Sessions,
		Cookie:         p.Cookie,
		AuthLimiter:    limiter,
		CORSOrigins:    p.Config.CORSAllowedOrigins,
		TrustedProxies: p.Config.TrustedProxies,
		StaticDir:      p.Config.StaticDir,
		Logger:         p.Logger,
	}, api.Controllers{
		Account: p.Account,
		Payment: p.Payment,
		Contact: p.Contact,
		Member:  p.Member,
		Health:  p.Health,
	})
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
