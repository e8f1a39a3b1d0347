package handlers

import (
	"net/http"
	"strings"

	"github.com/01moynul/pedidos-portal/internal/auth"
	"github.com/01moynul/pedidos-portal/internal/middleware"
	"github.com/01moynul/pedidos-portal/internal/orders"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

//
// --- Session Handlers ---
//

// StartSession is the handler for POST /sesion
// The login page of the store hands the credential over as form or JSON {token}.
func (h *Handlers) StartSession(c *gin.Context) {
	// 1. --- Bind input ---
	var input struct {
		Token string `json:"token" form:"token" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": orders.MsgTokenMissing})
		return
	}

	// 2. --- The token must carry idUsuario ---
	if _, err := auth.DecodeClaims(input.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": orders.MsgTokenInvalid})
		return
	}

	// 3. --- Store it on this browser's session ---
	sess := middleware.SessionFrom(c)
	sess.SetToken(strings.TrimSpace(input.Token))
	if err := h.Sessions.Save(c.Request.Context(), sess); err != nil {
		log.WithError(err).Error("save session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar la sesión"})
		return
	}
	middleware.SetSessionCookie(c, h.Cookie, sess)

	// 4. --- Respond ---
	if c.ContentType() == gin.MIMEJSON {
		c.JSON(http.StatusOK, gin.H{"message": "Sesión iniciada"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/pedidos")
}

// EndSession is the handler for POST /sesion/salir
func (h *Handlers) EndSession(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if err := h.Sessions.Delete(c.Request.Context(), sess.ID); err != nil {
		log.WithError(err).Warn("delete session")
	}
	h.Hub.Forget(sess.ID)
	middleware.ClearSessionCookie(c, h.Cookie)
	c.Redirect(http.StatusSeeOther, "/productos")
}
