package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/01moynul/pedidos-portal/internal/auth"
	"github.com/01moynul/pedidos-portal/internal/catalog"
	"github.com/01moynul/pedidos-portal/internal/middleware"
	"github.com/01moynul/pedidos-portal/internal/notify"
	"github.com/01moynul/pedidos-portal/internal/orders"
	"github.com/01moynul/pedidos-portal/internal/payment"
	"github.com/01moynul/pedidos-portal/internal/session"
	"github.com/01moynul/pedidos-portal/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// SessionStore persists credentials. *session.Store in production.
type SessionStore interface {
	Save(ctx context.Context, sess *session.Session) error
	Delete(ctx context.Context, id string) error
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Sessions SessionStore
	Customer *orders.CustomerService
	Admin    *orders.AdminService
	Catalog  *catalog.Service
	Hub      *notify.Hub
	Cookie   middleware.CookieOptions
	// Storage maps a path on the API's storage to a public URL.
	Storage func(path string) string
}

// page fills the parts every template needs.
func (h *Handlers) page(c *gin.Context, title string, admin bool, data interface{}) web.Page {
	sess := middleware.SessionFrom(c)
	return web.Page{
		Title:   title,
		Admin:   admin,
		Signals: h.Hub.Snapshot(sess.ID),
		Data:    data,
	}
}

func (h *Handlers) feedback(c *gin.Context) *notify.Feedback {
	return h.Hub.For(middleware.SessionFrom(c).ID)
}

// orderID parses the :id (or other) path parameter.
func orderID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ErrReceiptTooLarge rejects a comprobante over maxReceiptSize.
var ErrReceiptTooLarge = errors.New("comprobante demasiado grande")

// MsgReceiptUnreadable is shown when the uploaded comprobante cannot be read.
const MsgReceiptUnreadable = "No se pudo leer el comprobante. Intenta nuevamente."

type dialog struct {
	err    error
	text   string
	status int
}

// dialogs are the validation errors shown to the user as a blocking dialog.
var dialogs = []dialog{
	{orders.ErrNotConfirmed, "La acción no fue confirmada.", http.StatusBadRequest},
	{orders.ErrNotCancelable, "Solo se pueden cancelar pedidos pendientes.", http.StatusConflict},
	{orders.ErrPaymentNotSettled, "El pago del pedido aún no está completado.", http.StatusConflict},
	{orders.ErrPaymentSettled, "El pago ya fue completado.", http.StatusConflict},
	{orders.ErrInvalidStatus, "Estado no permitido.", http.StatusUnprocessableEntity},
	{orders.ErrOrderNotFound, "Pedido no encontrado.", http.StatusNotFound},
	{orders.ErrPaymentNotFound, "No hay información de pago para este pedido.", http.StatusNotFound},
	{payment.ErrReceiptRequired, "Por favor, adjunte un archivo de comprobante para proceder.", http.StatusUnprocessableEntity},
	{payment.ErrMethodRequired, "Seleccione un método de pago.", http.StatusUnprocessableEntity},
	{payment.ErrUnknownMethod, "Método de pago no soportado.", http.StatusUnprocessableEntity},
	{payment.ErrClosed, "El flujo de pago ya terminó.", http.StatusConflict},
	{ErrReceiptTooLarge, "El comprobante supera el tamaño máximo de 8 MB.", http.StatusRequestEntityTooLarge},
}

// dialogFor returns the dialog text and HTTP status for err. ok is false for
// errors that already produced a banner (API and transport failures).
func dialogFor(err error) (string, int, bool) {
	for _, d := range dialogs {
		if errors.Is(err, d.err) {
			return d.text, d.status, true
		}
	}
	return "", http.StatusBadGateway, false
}

// isAuthError reports failures caused by a missing or unusable credential.
func isAuthError(err error) bool {
	return errors.Is(err, auth.ErrMissingToken) ||
		errors.Is(err, auth.ErrMalformedToken) ||
		errors.Is(err, auth.ErrMissingUserID)
}

// fail renders the error page. Validation errors become a dialog; anything
// else already left a banner, which the page shows.
func (h *Handlers) fail(c *gin.Context, admin bool, err error) {
	p := h.page(c, "No se pudo completar la acción", admin, nil)
	status := http.StatusBadGateway
	if text, code, ok := dialogFor(err); ok {
		p.Dialog = text
		status = code
	} else if isAuthError(err) {
		status = http.StatusUnauthorized
	}
	c.HTML(status, "error", p)
}

func (h *Handlers) badID(c *gin.Context, admin bool) {
	p := h.page(c, "Pedido no válido", admin, "El identificador del pedido no es válido.")
	c.HTML(http.StatusBadRequest, "error", p)
}
