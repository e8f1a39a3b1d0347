package handlers

import (
	"net/http"

	"github.com/01moynul/pedidos-portal/internal/middleware"
	"github.com/01moynul/pedidos-portal/internal/views"
	"github.com/gin-gonic/gin"
)

//
// --- Product Catalogue Handlers ---
//

type productPage struct {
	Query string
	Rows  []views.ProductRow
}

// ListProducts is the handler for GET /productos
// ?q= filters by product name, ignoring case.
func (h *Handlers) ListProducts(c *gin.Context) {
	// 1. --- Search ---
	q := c.Query("q")
	list, _ := h.Catalog.Search(c.Request.Context(), middleware.SessionFrom(c), h.feedback(c), q)

	// 2. --- Render ---
	data := productPage{Query: q, Rows: views.ProductRows(list, h.Storage)}
	c.HTML(http.StatusOK, "productos", h.page(c, "Productos", false, data))
}
