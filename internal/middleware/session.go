package middleware

import (
	"context"
	"net/http"

	"github.com/01moynul/pedidos-portal/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// sessionKey is where the session is stored on the gin context.
const sessionKey = "session"

// SessionStore reads and creates stored sessions. *session.Store in production.
type SessionStore interface {
	Load(ctx context.Context, id string) (*session.Session, error)
	Save(ctx context.Context, sess *session.Session) error
}

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge int // seconds
}

// SetSessionCookie writes the cookie that identifies sess.
func SetSessionCookie(c *gin.Context, opts CookieOptions, sess *session.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.Name, sess.ID, opts.MaxAge, "/", "", opts.Secure, true)
}

// ClearSessionCookie removes the cookie.
func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	c.SetCookie(opts.Name, "", -1, "/", "", opts.Secure, true)
}

// SessionMiddleware puts the browser's session on the context.
// A browser without a stored session gets a fresh one with no credential, saved
// so that its cookie is recognised on the next request; the pages then show the
// missing-token banner.
func SessionMiddleware(store SessionStore, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Read the cookie ---
		id, err := c.Cookie(opts.Name)
		if err == nil && id != "" {
			// 2. --- Load the stored credential ---
			sess, err := store.Load(c.Request.Context(), id)
			switch {
			case err == nil:
				c.Set(sessionKey, sess)
				c.Next()
				return
			case errors.Is(err, session.ErrNotFound):
				// stale cookie, start over below
			default:
				log.WithError(err).Error("session lookup failed")
			}
		}

		// 3. --- Anonymous session ---
		sess := session.New("")
		if err := store.Save(c.Request.Context(), sess); err != nil {
			// no cookie: the next request would not find this id anyway
			log.WithError(err).Error("save anonymous session")
		} else {
			SetSessionCookie(c, opts, sess)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session set by SessionMiddleware.
func SessionFrom(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return session.New("")
}
