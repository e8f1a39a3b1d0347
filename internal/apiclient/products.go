package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/pkg/errors"
)

// ListProducts is GET /api/productos. This endpoint has no success flag,
// so the HTTP status decides.
func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	r, err := c.do(ctx, token, http.MethodGet, "/api/productos", nil, "")
	if err != nil {
		return nil, err
	}
	if !r.ok() {
		return nil, &APIError{Status: r.status, Message: messageFromBody(r.body)}
	}

	var body struct {
		Data []models.Product `json:"data"`
	}
	if err := json.Unmarshal(r.body, &body); err != nil {
		return nil, errors.Wrap(ErrUnexpectedResponse, err.Error())
	}
	if body.Data == nil {
		body.Data = []models.Product{}
	}
	return body.Data, nil
}
