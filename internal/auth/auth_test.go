package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/01moynul/pedidos-portal/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestDecodeClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("numeric user id", func(t *testing.T) {
		c, err := DecodeClaims(signToken(t, jwt.MapClaims{"idUsuario": 42, "exp": exp.Unix()}))
		require.NoError(t, err)
		assert.Equal(t, int64(42), c.UserID)
		assert.True(t, exp.Equal(c.ExpiresAt))
	})

	t.Run("string user id", func(t *testing.T) {
		c, err := DecodeClaims(signToken(t, jwt.MapClaims{"idUsuario": "17"}))
		require.NoError(t, err)
		assert.Equal(t, int64(17), c.UserID)
		assert.True(t, c.ExpiresAt.IsZero())
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := DecodeClaims(signToken(t, jwt.MapClaims{"sub": "x"}))
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := DecodeClaims("  ")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("two segments", func(t *testing.T) {
		_, err := DecodeClaims("abc.def")
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("payload is not json", func(t *testing.T) {
		payload := base64.RawURLEncoding.EncodeToString([]byte("not json"))
		_, err := DecodeClaims("eyJhbGciOiJIUzI1NiJ9." + payload + ".sig")
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("url-safe alphabet in payload", func(t *testing.T) {
		// "~~~" encodes to "fn5-" in the URL-safe alphabet.
		c, err := DecodeClaims(signToken(t, jwt.MapClaims{"idUsuario": 5, "nombre": "~~~???>>>"}))
		require.NoError(t, err)
		assert.Equal(t, int64(5), c.UserID)
	})
}

func TestClaimsExpiring(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, Claims{}.Expiring(now, time.Minute))
	assert.False(t, Claims{ExpiresAt: now.Add(2 * time.Minute)}.Expiring(now, time.Minute))
	assert.True(t, Claims{ExpiresAt: now.Add(30 * time.Second)}.Expiring(now, time.Minute))
	assert.True(t, Claims{ExpiresAt: now.Add(-time.Hour)}.Expiring(now, 0))
}

type stubRefresher struct {
	mu    sync.Mutex
	calls int
	token string
	err   error
}

func (r *stubRefresher) RefreshToken(ctx context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.token, r.err
}

type stubSaver struct {
	saved []string
}

func (s *stubSaver) Save(ctx context.Context, sess *session.Session) error {
	s.saved = append(s.saved, sess.Token())
	return nil
}

func TestGuardEnsure(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fresh token is left alone", func(t *testing.T) {
		ref, saver := &stubRefresher{}, &stubSaver{}
		g := NewGuard(ref, saver, 30*time.Second)
		g.now = func() time.Time { return now }

		tok := signToken(t, jwt.MapClaims{"idUsuario": 1, "exp": now.Add(time.Hour).Unix()})
		sess := session.New(tok)

		require.NoError(t, g.Ensure(context.Background(), sess))
		assert.Equal(t, 0, ref.calls)
		assert.Equal(t, tok, sess.Token())
	})

	t.Run("expiring token is refreshed and saved", func(t *testing.T) {
		ref, saver := &stubRefresher{token: "fresh"}, &stubSaver{}
		g := NewGuard(ref, saver, 30*time.Second)
		g.now = func() time.Time { return now }

		sess := session.New(signToken(t, jwt.MapClaims{"idUsuario": 1, "exp": now.Add(10 * time.Second).Unix()}))

		require.NoError(t, g.Ensure(context.Background(), sess))
		assert.Equal(t, 1, ref.calls)
		assert.Equal(t, "fresh", sess.Token())
		assert.Equal(t, []string{"fresh"}, saver.saved)
	})

	t.Run("refresh failure keeps stale token", func(t *testing.T) {
		ref, saver := &stubRefresher{err: errors.New("auth down")}, &stubSaver{}
		g := NewGuard(ref, saver, 30*time.Second)
		g.now = func() time.Time { return now }

		stale := signToken(t, jwt.MapClaims{"idUsuario": 1, "exp": now.Add(-time.Minute).Unix()})
		sess := session.New(stale)

		err := g.Ensure(context.Background(), sess)
		assert.Error(t, err)
		assert.Equal(t, stale, sess.Token())
		assert.Empty(t, saver.saved)
	})

	t.Run("malformed token is reported, not refreshed", func(t *testing.T) {
		ref := &stubRefresher{}
		g := NewGuard(ref, &stubSaver{}, 0)

		err := g.Ensure(context.Background(), session.New("garbage"))
		assert.ErrorIs(t, err, ErrMalformedToken)
		assert.Equal(t, 0, ref.calls)
	})
}
