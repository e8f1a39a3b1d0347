package auth

import (
	"context"
	"time"

	"github.com/01moynul/pedidos-portal/internal/session"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Refresher exchanges an expiring credential for a new one at the auth service.
type Refresher interface {
	RefreshToken(ctx context.Context, token string) (string, error)
}

// Saver persists a session after its token changed.
type Saver interface {
	Save(ctx context.Context, sess *session.Session) error
}

// Guard keeps a session's credential fresh before API calls.
type Guard struct {
	refresher Refresher
	saver     Saver
	skew      time.Duration
	now       func() time.Time
	group     singleflight.Group
}

func NewGuard(refresher Refresher, saver Saver, skew time.Duration) *Guard {
	return &Guard{refresher: refresher, saver: saver, skew: skew, now: time.Now}
}

// Ensure refreshes the session token when it is about to expire.
// The returned error is informational: callers log it and go on with
// whatever credential the session holds, letting the API reject it.
func (g *Guard) Ensure(ctx context.Context, sess *session.Session) error {
	// 1. --- Inspect the current token ---
	token := sess.Token()
	claims, err := DecodeClaims(token)
	if err != nil {
		return err
	}
	if !claims.Expiring(g.now(), g.skew) {
		return nil
	}

	// 2. --- Refresh once per session, even with concurrent requests ---
	v, err, _ := g.group.Do(sess.ID, func() (interface{}, error) {
		return g.refresher.RefreshToken(ctx, token)
	})
	if err != nil {
		log.WithError(err).WithField("session", sess.ID).Warn("token refresh failed, continuing with stale credential")
		return errors.Wrap(err, "refresh token")
	}

	// 3. --- Store the new credential ---
	sess.SetToken(v.(string))
	if err := g.saver.Save(ctx, sess); err != nil {
		log.WithError(err).WithField("session", sess.ID).Warn("refreshed token not persisted")
	}

	log.WithField("session", sess.ID).Debug("token refreshed")
	return nil
}
