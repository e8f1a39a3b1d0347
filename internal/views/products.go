package views

import (
	"github.com/01moynul/pedidos-portal/internal/models"
)

// DefaultProductImage is shown for products without a picture.
const DefaultProductImage = "/static/img/default.png"

type ProductRow struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Price       string
	Stock       int
	Image       string
}

func ProductRows(list []models.Product, storage func(string) string) []ProductRow {
	rows := make([]ProductRow, 0, len(list))
	for _, p := range list {
		img := DefaultProductImage
		if p.Image != "" {
			img = storage(p.Image)
		}
		rows = append(rows, ProductRow{
			ID:          p.ID,
			Name:        p.Name,
			Description: orNA(p.Description),
			Category:    orNA(p.CategoryName),
			Price:       Money(p.Price),
			Stock:       p.Stock,
			Image:       img,
		})
	}
	return rows
}
