package handlers

import (
	"fmt"
	"net/http"

	"github.com/01moynul/pedidos-portal/internal/middleware"
	"github.com/01moynul/pedidos-portal/internal/views"
	"github.com/gin-gonic/gin"
)

//
// --- Customer Order Handlers ---
//

// ListMyOrders is the handler for GET /pedidos
// The list is always fetched from the API; a failure leaves an empty table and a banner.
func (h *Handlers) ListMyOrders(c *gin.Context) {
	// 1. --- Fetch ---
	sess := middleware.SessionFrom(c)
	list, _ := h.Customer.ListOrders(c.Request.Context(), sess, h.feedback(c))

	// 2. --- Render ---
	c.HTML(http.StatusOK, "pedidos", h.page(c, "Mis pedidos", false, views.CustomerRows(list)))
}

// GetMyOrder is the handler for GET /pedidos/:id
func (h *Handlers) GetMyOrder(c *gin.Context) {
	// 1. --- Get IDs ---
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, false)
		return
	}
	sess := middleware.SessionFrom(c)
	fb := h.feedback(c)

	// 2. --- Order & address ---
	order, err := h.Customer.GetOrder(c.Request.Context(), sess, fb, id)
	if err != nil {
		h.fail(c, false, err)
		return
	}
	addr := h.Customer.GetAddress(c.Request.Context(), sess, fb, id)

	// 3. --- Render ---
	detail := views.NewCustomerDetail(order, addr)
	c.HTML(http.StatusOK, "pedido_detalle", h.page(c, fmt.Sprintf("Pedido #%d", id), false, detail))
}

// GetOrderTimeline is the handler for GET /pedidos/:id/estado
func (h *Handlers) GetOrderTimeline(c *gin.Context) {
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, false)
		return
	}

	order, err := h.Customer.GetOrder(c.Request.Context(), middleware.SessionFrom(c), h.feedback(c), id)
	if err != nil {
		h.fail(c, false, err)
		return
	}

	c.HTML(http.StatusOK, "pedido_estado", h.page(c, "Estado del pedido", false, views.NewTimelineView(order)))
}

// ConfirmCancelOrder is the handler for GET /pedidos/:id/cancelar
func (h *Handlers) ConfirmCancelOrder(c *gin.Context) {
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, false)
		return
	}
	c.HTML(http.StatusOK, "confirmar", h.page(c, "Cancelar pedido", false, views.CancelConfirm(id)))
}

// CancelOrder is the handler for POST /pedidos/:id/cancelar
// It needs confirmar=si from the confirmation page. Success and API failure
// both go back to the list, which is fetched again.
func (h *Handlers) CancelOrder(c *gin.Context) {
	// 1. --- Get IDs ---
	id, ok := orderID(c, "id")
	if !ok {
		h.badID(c, false)
		return
	}
	confirmed := c.PostForm("confirmar") == "si"

	// 2. --- Cancel ---
	_, err := h.Customer.CancelOrder(c.Request.Context(), middleware.SessionFrom(c), h.feedback(c), id, confirmed)
	if err != nil {
		h.fail(c, false, err)
		return
	}

	// 3. --- Re-fetch ---
	c.Redirect(http.StatusSeeOther, "/pedidos")
}
