package handlers

import (
	"fmt"
	"net/http"

	"github.com/01moynul/pedidos-portal/internal/middleware"
	"github.com/01moynul/pedidos-portal/internal/orders"
	"github.com/01moynul/pedidos-portal/internal/views"
	"github.com/gin-gonic/gin"
)

//
// --- Admin: Order Dashboard Handlers ---
//

// AdminListOrders is the handler for GET /admin/pedidos
// It renders one card per order, each with its delivery address.
func (h *Handlers) AdminListOrders(c *gin.Context) {
	// 1. --- Fetch orders ---
	ctx := c.Request.Context()
	sess := middleware.SessionFrom(c)
	list, _ := h.Admin.ListAllOrders(ctx, sess, h.feedback(c))

	// 2. --- Address per order (N/A when unavailable) ---
	cards := make([]views.AdminCard, 0, len(list))
	for _, o := range list {
		cards = append(cards, views.NewAdminCard(o, h.Admin.GetAddress(ctx, sess, o.ID)))
	}

	// 3. --- Render ---
	c.HTML(http.StatusOK, "admin_pedidos", h.page(c, "Pedidos", true, cards))
}

// AdminGetOrder is the handler for GET /admin/pedidos/:id
func (h *Handlers) AdminGetOrder(c *gin.Context) {
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, true)
		return
	}
	ctx := c.Request.Context()
	sess := middleware.SessionFrom(c)

	order, err := h.Admin.GetOrder(ctx, sess, h.feedback(c), id)
	if err != nil {
		h.fail(c, true, err)
		return
	}

	detail := views.NewAdminDetail(order, h.Admin.GetAddress(ctx, sess, id))
	c.HTML(http.StatusOK, "admin_detalle", h.page(c, fmt.Sprintf("Pedido #%d", id), true, detail))
}

//
// --- Admin: Payment Handlers ---
//

// AdminGetPayment is the handler for GET /admin/pedidos/:id/pago
func (h *Handlers) AdminGetPayment(c *gin.Context) {
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, true)
		return
	}

	order, err := h.Admin.GetOrder(c.Request.Context(), middleware.SessionFrom(c), h.feedback(c), id)
	if err != nil {
		h.fail(c, true, err)
		return
	}

	info := views.NewPaymentInfo(order, h.Storage)
	c.HTML(http.StatusOK, "admin_pago", h.page(c, "Información de pago", true, info))
}

// AdminGetReceipt is the handler for GET /admin/pedidos/:id/comprobante
// It shows the comprobante image at full size.
func (h *Handlers) AdminGetReceipt(c *gin.Context) {
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, true)
		return
	}

	order, err := h.Admin.GetOrder(c.Request.Context(), middleware.SessionFrom(c), h.feedback(c), id)
	if err != nil {
		h.fail(c, true, err)
		return
	}

	info := views.NewPaymentInfo(order, h.Storage)
	if info.ReceiptURL == "" {
		c.HTML(http.StatusNotFound, "error", h.page(c, "Sin comprobante", true, "Este pedido no tiene comprobante adjunto."))
		return
	}
	c.HTML(http.StatusOK, "admin_comprobante", h.page(c, "Comprobante", true, info))
}

// AdminUpdatePayment is the handler for POST /admin/pagos/:idPago
// Form fields: idPedido, estado_pago.
func (h *Handlers) AdminUpdatePayment(c *gin.Context) {
	// 1. --- Get IDs ---
	paymentID, ok := orderID(c, "idPago")
	if !ok {
		h.badID(c, true)
		return
	}
	var input struct {
		OrderID int64  `form:"idPedido" binding:"required"`
		Status  string `form:"estado_pago" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		h.badID(c, true)
		return
	}

	// 2. --- Update ---
	_, err := h.Admin.SetPaymentStatus(c.Request.Context(), middleware.SessionFrom(c), h.feedback(c), paymentID, input.OrderID, input.Status)
	if err != nil {
		h.fail(c, true, err)
		return
	}

	// 3. --- Re-fetch ---
	c.Redirect(http.StatusSeeOther, "/admin/pedidos")
}

//
// --- Admin: Order Status Handlers ---
//

// AdminStatusForm is the handler for GET /admin/pedidos/:id/estado
// The form does not open while the order's payment is not completado.
func (h *Handlers) AdminStatusForm(c *gin.Context) {
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, true)
		return
	}

	order, err := h.Admin.GetOrder(c.Request.Context(), middleware.SessionFrom(c), h.feedback(c), id)
	if err != nil {
		h.fail(c, true, err)
		return
	}
	if !order.PaymentSettled() {
		h.fail(c, true, orders.ErrPaymentNotSettled)
		return
	}

	form := views.NewStatusForm(order, orders.AdminStatusOptions)
	c.HTML(http.StatusOK, "admin_estado", h.page(c, "Cambiar estado", true, form))
}

// AdminUpdateStatus is the handler for POST /admin/pedidos/:id/estado
func (h *Handlers) AdminUpdateStatus(c *gin.Context) {
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, true)
		return
	}

	_, err := h.Admin.SetOrderStatus(c.Request.Context(), middleware.SessionFrom(c), h.feedback(c), id, c.PostForm("estado"))
	if err != nil {
		h.fail(c, true, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/pedidos")
}

//
// --- Admin: Delete & Badge Handlers ---
//

// AdminConfirmDelete is the handler for GET /admin/pedidos/:id/eliminar
func (h *Handlers) AdminConfirmDelete(c *gin.Context) {
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, true)
		return
	}
	c.HTML(http.StatusOK, "confirmar", h.page(c, "Eliminar pedido", true, views.DeleteConfirm(id)))
}

// AdminDeleteOrder is the handler for POST /admin/pedidos/:id/eliminar
func (h *Handlers) AdminDeleteOrder(c *gin.Context) {
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, true)
		return
	}

	_, err := h.Admin.DeleteOrder(c.Request.Context(), middleware.SessionFrom(c), h.feedback(c), id, c.PostForm("confirmar") == "si")
	if err != nil {
		h.fail(c, true, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/pedidos")
}

// AdminPendingCount is the handler for GET /admin/pedidos/contador
// It returns the number of orders still in progress and pushes it to the badge.
func (h *Handlers) AdminPendingCount(c *gin.Context) {
	n, err := h.Admin.CountPending(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo obtener el contador de pedidos"})
		return
	}
	h.feedback(c).Badge(n)
	c.JSON(http.StatusOK, gin.H{"pendientes": n})
}
