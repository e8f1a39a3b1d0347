package handlers

import (
	"github.com/01moynul/pedidos-portal/internal/middleware"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

//
// --- Notification Handlers ---
//

// StreamNotifications is the handler for GET /notificaciones/stream
// It keeps the page's banner, busy indicator, audio cue and badge in sync.
func (h *Handlers) StreamNotifications(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if err := h.Hub.Stream(c.Writer, c.Request, sess.ID); err != nil {
		log.WithError(err).WithField("session", sess.ID).Debug("notification stream closed")
	}
}
