package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/pkg/errors"
)

// ListAllOrders is GET /api/admin/pedidos.
func (c *Client) ListAllOrders(ctx context.Context, token string) ([]models.Order, error) {
	r, err := c.do(ctx, token, http.MethodGet, "/api/admin/pedidos", nil, "")
	if err != nil {
		return nil, err
	}
	var body struct {
		Orders []models.Order `json:"orders"`
	}
	if _, err := decodeEnvelope(r, &body); err != nil {
		return nil, errors.WithMessage(err, "list all orders")
	}
	if body.Orders == nil {
		body.Orders = []models.Order{}
	}
	return body.Orders, nil
}

// UpdateOrderStatus is PUT /api/admin/pedidos/{orderId} with {estado}.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int64, status models.OrderStatus) (string, error) {
	payload := struct {
		Estado models.OrderStatus `json:"estado"`
	}{status}

	r, err := c.doJSON(ctx, token, http.MethodPut, fmt.Sprintf("/api/admin/pedidos/%d", orderID), payload)
	if err != nil {
		return "", err
	}
	return decodeEnvelope(r, nil)
}

// UpdatePaymentStatus is PUT /api/admin/pagos/{idPago} with {estado_pago, idPedido}.
func (c *Client) UpdatePaymentStatus(ctx context.Context, token string, paymentID, orderID int64, status models.PaymentStatus) (string, error) {
	payload := struct {
		EstadoPago models.PaymentStatus `json:"estado_pago"`
		OrderID    int64                `json:"idPedido"`
	}{status, orderID}

	r, err := c.doJSON(ctx, token, http.MethodPut, fmt.Sprintf("/api/admin/pagos/%d", paymentID), payload)
	if err != nil {
		return "", err
	}
	return decodeEnvelope(r, nil)
}

// DeleteOrder is DELETE /api/admin/pedidos/{orderId}.
func (c *Client) DeleteOrder(ctx context.Context, token string, orderID int64) (string, error) {
	r, err := c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/api/admin/pedidos/%d", orderID), nil, "")
	if err != nil {
		return "", err
	}
	return decodeEnvelope(r, nil)
}
