package session

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("session not found")

// Session is one browser's view of the credential. It is passed explicitly
// to every service call instead of being read from ambient storage.
type Session struct {
	ID string

	mu    sync.RWMutex
	token string
}

// New returns a session with a fresh random ID.
func New(token string) *Session {
	return &Session{ID: uuid.NewString(), token: token}
}

// Restore rebuilds a session from stored values.
func Restore(id, token string) *Session {
	return &Session{ID: id, token: token}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Store persists session credentials in the sessions table.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

type row struct {
	ID    string `db:"id"`
	Token string `db:"token"`
}

// Load returns ErrNotFound when the id is unknown.
func (s *Store) Load(ctx context.Context, id string) (*Session, error) {
	var r row
	err := s.db.GetContext(ctx, &r, `SELECT id, token FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	return Restore(r.ID, r.Token), nil
}

// Save inserts or replaces the session's current token.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	_, err := s.db.ExecContext(ctx,
		`REPLACE INTO sessions (id, token, updated_at) VALUES (?, ?, ?)`,
		sess.ID, sess.Token(), s.now().UTC())
	return errors.Wrap(err, "save session")
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return errors.Wrap(err, "delete session")
}

// Prune deletes sessions not saved within maxAge and returns how many went.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, s.now().UTC().Add(-maxAge))
	if err != nil {
		return 0, errors.Wrap(err, "prune sessions")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "prune sessions")
}
