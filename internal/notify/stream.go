package notify

import (
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

// keepAlive re-sends the current signals so idle proxies keep the stream open.
const keepAlive = 25 * time.Second

// Stream pushes the session's signals to the page until the request ends.
func (h *Hub) Stream(w http.ResponseWriter, r *http.Request, sessionID string) error {
	updates, cancel := h.Subscribe(sessionID)
	defer cancel()

	sse := datastar.NewSSE(w, r)

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	last := h.Snapshot(sessionID)
	for {
		select {
		case <-r.Context().Done():
			return nil
		case s := <-updates:
			last = s
			if err := sse.MarshalAndPatchSignals(s); err != nil {
				return err
			}
		case <-ticker.C:
			if err := sse.MarshalAndPatchSignals(last); err != nil {
				return err
			}
		}
	}
}
