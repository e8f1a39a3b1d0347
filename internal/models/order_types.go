package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle stage of a pedido as reported by the API.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pendiente"
	StatusApproving OrderStatus = "aprobando"
	StatusPreparing OrderStatus = "en preparacion"
	StatusShipped   OrderStatus = "enviado"
	StatusCompleted OrderStatus = "completado"
	StatusCancelled OrderStatus = "cancelado"
)

// Normalize lower-cases and trims the status; the API is not consistent about case.
func (s OrderStatus) Normalize() OrderStatus {
	return OrderStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pendiente"
	PaymentCompleted PaymentStatus = "completado"
)

func (s PaymentStatus) Normalize() PaymentStatus {
	return PaymentStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	MethodYape     PaymentMethod = "yape"
	MethodPlin     PaymentMethod = "plin"
	MethodEfectivo PaymentMethod = "efectivo"
)

// ParsePaymentMethod accepts only the three known methods.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(raw))); m {
	case MethodYape, MethodPlin, MethodEfectivo:
		return m, true
	}
	return "", false
}

// RequiresReceipt reports whether a comprobante must be attached.
func (m PaymentMethod) RequiresReceipt() bool {
	return m == MethodYape || m == MethodPlin
}

// Order is the model for a pedido returned by /api/pedidos and /api/admin/pedidos.
type Order struct {
	ID      int64           `json:"idPedido"`
	Total   decimal.Decimal `json:"total"`
	Status  OrderStatus     `json:"estado"`
	Lines   []OrderLine     `json:"detalles"`
	Pagos   []Payment       `json:"pagos"`
	Usuario *Customer       `json:"usuario,omitempty"` // only on the admin listing
}

// CurrentStatus returns the normalized status.
func (o Order) CurrentStatus() OrderStatus {
	return o.Status.Normalize()
}

// Payment returns the first payment, the only one the portal looks at.
func (o Order) Payment() *Payment {
	if len(o.Pagos) == 0 {
		return nil
	}
	p := o.Pagos[0]
	return &p
}

// PaymentStatus defaults to pendiente when the order has no payment yet.
func (o Order) PaymentStatus() PaymentStatus {
	if p := o.Payment(); p != nil {
		return p.Status.Normalize()
	}
	return PaymentPending
}

// PaymentSettled is the gate between the payment phase and the fulfilment phase.
func (o Order) PaymentSettled() bool {
	return o.PaymentStatus() == PaymentCompleted
}

// ProductRef is the nested product object on admin order lines.
type ProductRef struct {
	ID   int64  `json:"idProducto"`
	Name string `json:"nombreProducto"`
}

// OrderLine is one detalle of a pedido. Subtotal is computed by the API.
type OrderLine struct {
	ID        int64           `json:"idDetallePedido"`
	ProductID int64           `json:"idProducto"`
	Name      string          `json:"nombreProducto"`
	Producto  *ProductRef     `json:"producto,omitempty"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ProductName prefers the flat name and falls back to the nested product.
func (l OrderLine) ProductName() string {
	if l.Name != "" {
		return l.Name
	}
	if l.Producto != nil {
		return l.Producto.Name
	}
	return ""
}

// Payment is the model for a pago attached to an order.
type Payment struct {
	ID          int64           `json:"idPago"`
	OrderID     int64           `json:"idPedido"`
	Amount      decimal.Decimal `json:"monto"`
	Method      PaymentMethod   `json:"metodo_pago"`
	ReceiptPath string          `json:"ruta_comprobante,omitempty"`
	Status      PaymentStatus   `json:"estado_pago"`
}

// Address is the delivery direccion of an order.
type Address struct {
	Region    string              `json:"region"`
	Province  string              `json:"provincia"`
	Line      string              `json:"direccion"`
	Latitude  decimal.NullDecimal `json:"latitud"`
	Longitude decimal.NullDecimal `json:"longitud"`
}

// HasCoordinates is false when either coordinate is missing.
func (a *Address) HasCoordinates() bool {
	return a != nil && a.Latitude.Valid && a.Longitude.Valid
}
