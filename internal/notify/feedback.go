package notify

import (
	"github.com/01moynul/pedidos-portal/internal/models"
	log "github.com/sirupsen/logrus"
)

// CuePlayer plays an audio cue for a session.
type CuePlayer interface {
	Play(sessionID string, cue models.Cue) error
}

// Feedback is the hub bound to one session.
type Feedback struct {
	hub       *Hub
	player    CuePlayer
	sessionID string
}

// For binds the hub to a session. The hub itself is the cue player.
func (h *Hub) For(sessionID string) *Feedback {
	return &Feedback{hub: h, player: h, sessionID: sessionID}
}

func (f *Feedback) Success(message string) {
	f.hub.Show(f.sessionID, message, models.SeveritySuccess)
}

func (f *Feedback) Error(message string) {
	f.hub.Show(f.sessionID, message, models.SeverityError)
}

func (f *Feedback) Busy(on bool) {
	f.hub.SetBusy(f.sessionID, on)
}

func (f *Feedback) Badge(n int) {
	f.hub.SetBadge(f.sessionID, n)
}

// Play is best effort: a cue that cannot be played is only logged.
func (f *Feedback) Play(cue models.Cue) {
	if err := f.player.Play(f.sessionID, cue); err != nil {
		log.WithFields(log.Fields{
			"session": f.sessionID,
			"cue":     cue,
		}).WithError(err).Warn("audio cue not played")
	}
}

func (f *Feedback) Banner() models.Notification {
	return f.hub.Banner(f.sessionID)
}
