package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"groundedwarriors/internal/api/controllers"
	"groundedwarriors/internal/services"
	"groundedwarriors/pkg/middleware"
	"groundedwarriors/pkg/utils"
)

type Controllers struct {
	Account *controllers.AccountController
	Payment *controllers.PaymentController
	Contact *controllers.ContactController
	Member  *controllers.MemberController
	Health  *controllers.HealthController
}

type RouterOptions struct {
	Sessions    services.SessionServiceInterface
	Cookie      middleware.CookieConfig
	AuthLimiter gin.HandlerFunc
	CORSOrigins []string
	StaticDir   string
	Logger      *zap.Logger

	// TrustedProxies lists the proxies whose X-Forwarded-For is believed.
	// Empty means the socket peer is the client.
	TrustedProxies []string
}

// NewRouter wires routes and middleware.
func NewRouter(opts RouterOptions, ctl Controllers) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		opts.Logger.Error("invalid TRUSTED_PROXIES, forwarded headers ignored", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(opts.Logger))
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSOrigins))
	}

	limit := opts.AuthLimiter
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	apiGroup := r.Group("/api")
	apiGroup.GET("/health", ctl.Health.Health)

	// Signed by Stripe, no session needed.
	apiGroup.POST("/stripe/webhook", ctl.Payment.HandleWebhook)

	withSession := apiGroup.Group("", middleware.LoadSession(opts.Sessions, opts.Cookie, opts.Logger))
	{
		auth := withSession.Group("/auth")
		auth.POST("/register", limit, ctl.Account.Register)
		auth.POST("/login", limit, ctl.Account.Login)
		auth.GET("/user", ctl.Account.CurrentUser)
		auth.POST("/logout", ctl.Account.Logout)
		auth.POST("/forgot-password", limit, ctl.Account.ForgotPassword)
		auth.POST("/reset-password", limit, ctl.Account.ResetPassword)

		withSession.POST("/checkout", ctl.Payment.CreateCheckout)
		withSession.GET("/checkout/session/:id", ctl.Payment.GetCheckoutSession)

		withSession.POST("/contact", ctl.Contact.SubmitContact)
		withSession.GET("/contact", ctl.Contact.ListContact)
		withSession.POST("/newsletter", ctl.Contact.Subscribe)

		member := withSession.Group("", middleware.RequireAuth())
		member.GET("/member/registrations", ctl.Member.ListRegistrations)
		member.GET("/discussions", ctl.Member.ListDiscussions)
		member.POST("/discussions", ctl.Member.CreateDiscussion)
		member.GET("/discussions/:id", ctl.Member.GetDiscussion)
		member.POST("/discussions/:id/replies", ctl.Member.CreateReply)
	}

	r.NoRoute(spaFallback(opts.StaticDir))

	return r
}

// spaFallback serves files from dir and answers every other non-API path
// with index.html so client-side routes survive a reload.
func spaFallback(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if dir == "" || strings.HasPrefix(p, "/api/") || p == "/api" ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			utils.RespondError(c, http.StatusNotFound, "Not found")
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	}
}
