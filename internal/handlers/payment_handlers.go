package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/01moynul/pedidos-portal/internal/apiclient"
	"github.com/01moynul/pedidos-portal/internal/middleware"
	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/payment"
	"github.com/01moynul/pedidos-portal/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// maxReceiptSize caps an uploaded comprobante.
const maxReceiptSize = 8 << 20

//
// --- Customer Payment Handlers ---
//

// GetPaymentForm is the handler for GET /pedidos/:id/pago
// ?metodo= selects the method and shows the matching QR and upload field.
func (h *Handlers) GetPaymentForm(c *gin.Context) {
	// 1. --- Get IDs ---
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, false)
		return
	}

	// 2. --- Open the workflow on a fresh copy of the order ---
	order, err := h.Customer.GetOrder(c.Request.Context(), middleware.SessionFrom(c), h.feedback(c), id)
	if err != nil {
		h.fail(c, false, err)
		return
	}
	w := payment.New(order)

	// 3. --- Method ---
	status := http.StatusOK
	p := h.page(c, fmt.Sprintf("Pago del pedido #%d", id), false, nil)
	if m := c.Query("metodo"); m != "" {
		if err := w.Select(m); err != nil {
			p.Dialog, status, _ = dialogFor(err)
		}
	}

	p.Data = views.NewPaymentForm(w)
	c.HTML(status, "pedido_pago", p)
}

// SubmitPayment is the handler for POST /pedidos/:id/pago
// Form fields: metodo_pago, and comprobante for yape/plin.
func (h *Handlers) SubmitPayment(c *gin.Context) {
	// 1. --- Get IDs ---
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, false)
		return
	}
	sess := middleware.SessionFrom(c)
	fb := h.feedback(c)

	// 2. --- Workflow ---
	order, err := h.Customer.GetOrder(c.Request.Context(), sess, fb, id)
	if err != nil {
		h.fail(c, false, err)
		return
	}
	w := payment.New(order)
	if err := w.Select(c.PostForm("metodo_pago")); err != nil {
		h.paymentDialog(c, w, err)
		return
	}

	// 3. --- Receipt (optional here, the workflow decides) ---
	if w.ReceiptRequired() {
		receipt, err := readReceipt(c)
		if err != nil {
			h.paymentDialog(c, w, err)
			return
		}
		if receipt != nil {
			if err := w.Attach(*receipt); err != nil {
				h.paymentDialog(c, w, err)
				return
			}
		}
	}

	// 4. --- Submit ---
	res, err := h.Customer.SubmitPayment(c.Request.Context(), sess, fb, w)
	if err != nil {
		h.paymentDialog(c, w, err)
		return
	}

	// 5. --- Back to the list, or to the form on failure ---
	if !res.OK {
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/pedidos/%d/pago?metodo=%s", id, w.Method()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/pedidos")
}

// ClosePaymentForm is the handler for GET /pedidos/:id/pago/cerrar
// The Cerrar button and the Escape key land here. The flow is dismissed, which
// drops the chosen method and any comprobante, and the order detail is shown again.
func (h *Handlers) ClosePaymentForm(c *gin.Context) {
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, false)
		return
	}

	w := payment.New(models.Order{ID: id})
	if m := c.Query("metodo"); m != "" {
		_ = w.Select(m)
	}
	w.Dismiss()
	log.WithFields(log.Fields{"order": id, "state": w.State().String()}).Debug("payment form closed")

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/pedidos/%d", id))
}

// paymentDialog re-renders the payment form with the validation message.
func (h *Handlers) paymentDialog(c *gin.Context, w *payment.Workflow, err error) {
	text, status, ok := dialogFor(err)
	if !ok {
		log.WithError(err).WithField("order", w.Order().ID).Warn("payment form rejected")
		text, status = MsgReceiptUnreadable, http.StatusBadRequest
	}
	p := h.page(c, fmt.Sprintf("Pago del pedido #%d", w.Order().ID), false, views.NewPaymentForm(w))
	p.Dialog = text
	c.HTML(status, "pedido_pago", p)
}

// readReceipt returns nil when no file was sent.
func readReceipt(c *gin.Context) (*apiclient.Receipt, error) {
	fh, err := c.FormFile("comprobante")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read comprobante")
	}
	if fh.Size > maxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open comprobante")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxReceiptSize))
	if err != nil {
		return nil, errors.Wrap(err, "read comprobante")
	}
	return &apiclient.Receipt{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
