package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"groundedwarriors/internal/services"
	"groundedwarriors/pkg/utils"
)

const sessionKey = "session"

type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// LoadSession attaches the caller's session, if any, to the context and
// sends the renewed cookie when the session was extended. Lookup failures
// are treated as anonymous requests.
func LoadSession(sessions services.SessionServiceInterface, cookie CookieConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(cookie.Name)
		if err != nil || value == "" {
			c.Next()
			return
		}

		session, err := sessions.Load(c.Request.Context(), value)
		if err != nil {
			logger.Error("failed to load session",
				zap.String("trace_id", c.GetString(TraceIDKey)),
				zap.Error(err))
		}
		if session != nil {
			c.Set(sessionKey, session)
			if session.Renewed {
				SetSessionCookie(c, cookie, session)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests without an authenticated session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			utils.RespondError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) *services.ActiveSession {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*services.ActiveSession)
	return session
}

func CurrentUserID(c *gin.Context) string {
	if session := CurrentSession(c); session != nil {
		return session.UserID
	}
	return ""
}

func SetSessionCookie(c *gin.Context, cookie CookieConfig, session *services.ActiveSession) {
	c.Set(sessionKey, session)
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cookie.Name,
		Value:    session.Cookie,
		Path:     "/",
		MaxAge:   int(cookie.MaxAge.Seconds()),
		Expires:  time.Now().Add(cookie.MaxAge),
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c *gin.Context, cookie CookieConfig) {
	c.Set(sessionKey, nil)
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
