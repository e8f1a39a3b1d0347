package models

import (
	"github.com/shopspring/decimal"
)

// Product is the model for an entry of GET /api/productos.
// Imagen is a path relative to the API storage root, empty when the product has no picture.
type Product struct {
	ID           int64           `json:"idProducto"`
	Name         string          `json:"nombreProducto"`
	Description  string          `json:"descripcion"`
	CategoryName string          `json:"nombreCategoria"`
	Price        decimal.Decimal `json:"precio"`
	Stock        int             `json:"stock"`
	Image        string          `json:"imagen,omitempty"`
}
