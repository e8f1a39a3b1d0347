package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/pkg/errors"
)

// ListUserOrders is GET /api/pedidos/{userId}.
func (c *Client) ListUserOrders(ctx context.Context, token string, userID int64) ([]models.Order, error) {
	r, err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/api/pedidos/%d", userID), nil, "")
	if err != nil {
		return nil, err
	}
	var body struct {
		Pedidos []models.Order `json:"pedidos"`
	}
	if _, err := decodeEnvelope(r, &body); err != nil {
		return nil, errors.WithMessage(err, "list user orders")
	}
	if body.Pedidos == nil {
		body.Pedidos = []models.Order{}
	}
	return body.Pedidos, nil
}

// CancelOrder is DELETE /api/cancelarPedido with body {"idPedido": id}.
// Only the HTTP status decides success.
func (c *Client) CancelOrder(ctx context.Context, token string, orderID int64) error {
	payload := struct {
		OrderID int64 `json:"idPedido"`
	}{orderID}

	r, err := c.doJSON(ctx, token, http.MethodDelete, "/api/cancelarPedido", payload)
	if err != nil {
		return err
	}
	if !r.ok() {
		return &APIError{Status: r.status, Message: messageFromBody(r.body)}
	}
	return nil
}

// UserOrderAddress is GET /api/obtenerDireccionPedidoUser/{orderId}.
func (c *Client) UserOrderAddress(ctx context.Context, token string, orderID int64) (*models.Address, error) {
	return c.address(ctx, token, fmt.Sprintf("/api/obtenerDireccionPedidoUser/%d", orderID))
}

// OrderAddress is the admin variant, GET /api/obtenerDireccionPedido/{orderId}.
func (c *Client) OrderAddress(ctx context.Context, token string, orderID int64) (*models.Address, error) {
	return c.address(ctx, token, fmt.Sprintf("/api/obtenerDireccionPedido/%d", orderID))
}

func (c *Client) address(ctx context.Context, token, path string) (*models.Address, error) {
	r, err := c.do(ctx, token, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	var body struct {
		Direccion *models.Address `json:"direccion"`
	}
	if _, err := decodeEnvelope(r, &body); err != nil {
		return nil, errors.WithMessage(err, "get address")
	}
	if body.Direccion == nil {
		return nil, errors.Wrap(ErrUnexpectedResponse, "direccion missing")
	}
	return body.Direccion, nil
}
