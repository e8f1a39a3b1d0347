// Package notify holds the per-session feedback state (banner, busy flag, audio cue, badge)
// and streams it to the browser.
package notify

import (
	"sync"
	"time"

	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/pkg/errors"
)

// ErrNoListener is returned by Play when no browser tab is subscribed to the session.
var ErrNoListener = errors.New("no hay oyentes para la sesión")

// Stopper is the part of *time.Timer the hub needs.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc in production.
type AfterFunc func(d time.Duration, f func()) Stopper

// Signals is the state pushed to the page. Field names are the Datastar signal names.
type Signals struct {
	Banner models.Notification `json:"banner"`
	Busy   bool                `json:"busy"`
	Cue    models.Cue          `json:"cue"`
	CueSeq uint64              `json:"cueSeq"`
	Badge  int                 `json:"badge"`
}

type sessionState struct {
	signals Signals
	gen     uint64
	timer   Stopper
	subs    map[chan Signals]struct{}
}

type Option func(*Hub)

// WithAfterFunc replaces the timer used for the banner auto-hide.
func WithAfterFunc(fn AfterFunc) Option {
	return func(h *Hub) { h.afterFunc = fn }
}

// Hub is safe for concurrent use.
type Hub struct {
	mu        sync.Mutex
	ttl       time.Duration
	afterFunc AfterFunc
	sessions  map[string]*sessionState
}

func NewHub(ttl time.Duration, opts ...Option) *Hub {
	h := &Hub{
		ttl: ttl,
		afterFunc: func(d time.Duration, f func()) Stopper {
			return time.AfterFunc(d, f)
		},
		sessions: make(map[string]*sessionState),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// state must be called with h.mu held.
func (h *Hub) state(sessionID string) *sessionState {
	st, ok := h.sessions[sessionID]
	if !ok {
		st = &sessionState{subs: make(map[chan Signals]struct{})}
		h.sessions[sessionID] = st
	}
	return st
}

// Show replaces the session's banner and re-arms the auto-hide.
// A timer armed for an earlier message never hides a later one.
func (h *Hub) Show(sessionID, message string, severity models.Severity) {
	h.mu.Lock()
	defer h.mu.Unlock()

	st := h.state(sessionID)
	if st.timer != nil {
		st.timer.Stop()
	}
	st.gen++
	gen := st.gen
	st.signals.Banner = models.Notification{Message: message, Severity: severity, Visible: true}
	st.timer = h.afterFunc(h.ttl, func() { h.expire(sessionID, gen) })
	h.publish(st)
}

func (h *Hub) expire(sessionID string, gen uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.sessions[sessionID]
	if !ok || st.gen != gen {
		return
	}
	st.signals.Banner.Visible = false
	st.timer = nil
	h.publish(st)
	h.dropIfIdle(sessionID, st)
}

// idle sessions have no open page, no visible banner and no action in flight.
func (st *sessionState) idle() bool {
	return len(st.subs) == 0 && st.timer == nil && !st.signals.Banner.Visible && !st.signals.Busy
}

// dropIfIdle must be called with h.mu held.
func (h *Hub) dropIfIdle(sessionID string, st *sessionState) {
	if st.idle() {
		delete(h.sessions, sessionID)
	}
}

// Sweep drops every idle session and returns how many went. Badges of dropped
// sessions are recomputed the next time their dashboard loads.
func (h *Hub) Sweep() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for id, st := range h.sessions {
		if st.idle() {
			delete(h.sessions, id)
			n++
		}
	}
	return n
}

// Len is the number of sessions the hub holds state for.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Banner returns the session's current banner.
func (h *Hub) Banner(sessionID string) models.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	if st, ok := h.sessions[sessionID]; ok {
		return st.signals.Banner
	}
	return models.Notification{}
}

func (h *Hub) SetBusy(sessionID string, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	st := h.state(sessionID)
	st.signals.Busy = on
	h.publish(st)
}

func (h *Hub) SetBadge(sessionID string, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	st := h.state(sessionID)
	st.signals.Badge = n
	h.publish(st)
}

// Play asks the session's open pages to play cue.
func (h *Hub) Play(sessionID string, cue models.Cue) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, ok := h.sessions[sessionID]
	if !ok || len(st.subs) == 0 {
		return ErrNoListener
	}
	st.signals.Cue = cue
	st.signals.CueSeq++
	h.publish(st)
	return nil
}

// Snapshot returns a copy of the session's signals.
func (h *Hub) Snapshot(sessionID string) Signals {
	h.mu.Lock()
	defer h.mu.Unlock()
	if st, ok := h.sessions[sessionID]; ok {
		return st.signals
	}
	return Signals{}
}

// Subscribe returns a channel that receives the latest signals after every change.
// Slow readers only ever see the most recent state. cancel must be called.
func (h *Hub) Subscribe(sessionID string) (<-chan Signals, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Signals, 1)
	st := h.state(sessionID)
	st.subs[ch] = struct{}{}
	ch <- st.signals

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if st, ok := h.sessions[sessionID]; ok {
				delete(st.subs, ch)
				h.dropIfIdle(sessionID, st)
			}
		})
	}
	return ch, cancel
}

// Forget drops everything the hub holds for the session.
func (h *Hub) Forget(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if st, ok := h.sessions[sessionID]; ok {
		if st.timer != nil {
			st.timer.Stop()
		}
		delete(h.sessions, sessionID)
	}
}

// publish must be called with h.mu held.
func (h *Hub) publish(st *sessionState) {
	for ch := range st.subs {
		select {
		case ch <- st.signals:
		default:
			// replace the stale value
			select {
			case <-ch:
			default:
			}
			ch <- st.signals
		}
	}
}
