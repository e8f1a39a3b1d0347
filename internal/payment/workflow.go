// Package payment is the customer's payment flow for one order: pick a method,
// attach a comprobante when the method needs one, confirm.
package payment

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/01moynul/pedidos-portal/internal/apiclient"
	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
)

var (
	ErrReceiptRequired = errors.New("comprobante requerido")
	ErrMethodRequired  = errors.New("método de pago no seleccionado")
	ErrUnknownMethod   = errors.New("método de pago no soportado")
	ErrClosed          = errors.New("el flujo de pago ya terminó")
)

// QR reference images shown next to the upload field.
const (
	YapeQR = "/static/img/yapeqr.jpg"
	PlinQR = "/static/img/plinqr.png"
)

type State int

const (
	MethodUnselected State = iota
	MethodSelected
	Submitted
	Dismissed
)

func (s State) String() string {
	switch s {
	case MethodUnselected:
		return "sin-metodo"
	case MethodSelected:
		return "metodo-seleccionado"
	case Submitted:
		return "enviado"
	case Dismissed:
		return "cerrado"
	}
	return "desconocido"
}

// Submitter sends the payment to the API.
type Submitter interface {
	SubmitPayment(ctx context.Context, token string, orderID int64, method models.PaymentMethod, receipt *apiclient.Receipt) (string, error)
}

// Workflow is opened for one order and keeps its own copy of it.
type Workflow struct {
	mu      sync.Mutex
	order   models.Order
	state   State
	method  models.PaymentMethod
	receipt *apiclient.Receipt
}

func New(order models.Order) *Workflow {
	return &Workflow{order: order, state: MethodUnselected}
}

// Order returns the snapshot the workflow was opened with.
func (w *Workflow) Order() models.Order {
	return w.order
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) Method() models.PaymentMethod {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.method
}

// Select chooses the method. Changing it drops a receipt attached for the previous one.
func (w *Workflow) Select(raw string) error {
	method, ok := models.ParsePaymentMethod(raw)
	if !ok {
		return errors.Wrapf(ErrUnknownMethod, "%q", raw)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Submitted || w.state == Dismissed {
		return ErrClosed
	}
	if method != w.method {
		w.receipt = nil
	}
	w.method = method
	w.state = MethodSelected
	return nil
}

// ReceiptRequired is true for yape and plin.
func (w *Workflow) ReceiptRequired() bool {
	return w.Method().RequiresReceipt()
}

// QRImage is the reference image for the selected method, "" when none applies.
func (w *Workflow) QRImage() string {
	switch w.Method() {
	case models.MethodYape:
		return YapeQR
	case models.MethodPlin:
		return PlinQR
	}
	return ""
}

// Attach stores the comprobante. The filename is sanitised before upload.
func (w *Workflow) Attach(r apiclient.Receipt) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Submitted || w.state == Dismissed {
		return ErrClosed
	}
	r.Filename = SanitizeFilename(r.Filename)
	w.receipt = &r
	return nil
}

// Confirm validates and submits. Validation failures never reach the network.
// On success it returns the message to show the customer.
func (w *Workflow) Confirm(ctx context.Context, token string, api Submitter) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// 1. --- Validate ---
	if err := w.validate(); err != nil {
		return "", err
	}
	var receipt *apiclient.Receipt
	if w.method.RequiresReceipt() {
		receipt = w.receipt
	}

	// 2. --- Submit ---
	if _, err := api.SubmitPayment(ctx, token, w.order.ID, w.method, receipt); err != nil {
		return "", err
	}

	w.state = Submitted
	return SuccessMessage(w.method), nil
}

// Validate reports what Confirm would refuse, without submitting.
func (w *Workflow) Validate() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validate()
}

func (w *Workflow) validate() error {
	switch w.state {
	case Submitted, Dismissed:
		return ErrClosed
	case MethodUnselected:
		return ErrMethodRequired
	}
	if w.method.RequiresReceipt() && (w.receipt == nil || len(w.receipt.Data) == 0) {
		return ErrReceiptRequired
	}
	return nil
}

// Dismiss closes the flow and forgets the selection.
func (w *Workflow) Dismiss() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.method = ""
	w.receipt = nil
	w.state = Dismissed
}

func SuccessMessage(m models.PaymentMethod) string {
	if m == models.MethodEfectivo {
		return "Pago en efectivo confirmado"
	}
	return "Pago procesado exitosamente."
}

// FailureMessage is used when the API gives no message of its own.
func FailureMessage(m models.PaymentMethod) string {
	if m == models.MethodEfectivo {
		return "Error al confirmar el pago en efectivo."
	}
	return "Error al procesar el pago."
}

// SanitizeFilename slugs the base name and keeps a lower-cased extension.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(base))
	stem := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		stem = "comprobante"
	}
	return stem + ext
}
