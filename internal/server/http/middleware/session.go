package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	pkgAuth "github.com/polkiloo/invoices-dashboard/internal/pkg/auth"
)

const (
	// SessionContextKey is a gin context key for the resolved session.
	SessionContextKey = "session"
	// SessionCookieName holds the signed session token.
	SessionCookieName = "invoices_session"
	// CallbackParam carries the page to return to after login.
	CallbackParam = "callbackUrl"
)

// SessionResolver turns a session token into a session. Invalid tokens resolve to an anonymous session.
type SessionResolver interface {
	Session(token string) model.Session
}

// Gate resolves the session of every request and applies the access decision
// before any handler runs.
func Gate(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if Excluded(path) {
			c.Next()
			return
		}

		session := resolver.Session(extractToken(c))
		c.Set(SessionContextKey, session)

		switch pkgAuth.Decide(session, path) {
		case pkgAuth.DecisionRedirectLogin:
			target := pkgAuth.LoginPath + "?" + url.Values{CallbackParam: {c.Request.URL.RequestURI()}}.Encode()
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
		case pkgAuth.DecisionRedirectDashboard:
			c.Redirect(http.StatusSeeOther, pkgAuth.DashboardPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}

// Excluded reports whether the gate skips path: static assets, images,
// API routes and operational endpoints.
func Excluded(path string) bool {
	switch {
	case path == "/metrics", path == "/healthz":
		return true
	case strings.HasPrefix(path, "/static/"), strings.HasPrefix(path, "/api/"), path == "/api":
		return true
	case strings.HasSuffix(path, ".png"):
		return true
	default:
		return false
	}
}

// CurrentSession returns the session resolved by Gate.
func CurrentSession(c *gin.Context) model.Session {
	val, ok := c.Get(SessionContextKey)
	if !ok {
		return model.Session{}
	}
	session, _ := val.(model.Session)
	return session
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetSessionCookie writes the session token cookie to the response.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", c.Request.TLS != nil, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", c.Request.TLS != nil, true)
}
