package views

import (
	"github.com/01moynul/pedidos-portal/internal/models"
)

// AdminCard is one order on the admin dashboard. The Disabled flags are what
// the template uses to grey out buttons; the routes check the same conditions.
type AdminCard struct {
	ID                   int64
	Client               string
	Address              AddressView
	Total                string
	Status               string
	PaymentDisabled      bool
	ChangeStatusDisabled bool
	MapDisabled          bool
}

func NewAdminCard(o models.Order, addr *models.Address) AdminCard {
	settled := o.PaymentSettled()
	av := NewAddressView(addr)
	return AdminCard{
		ID:                   o.ID,
		Client:               orNA(o.Usuario.FullName()),
		Address:              av,
		Total:                Money(o.Total),
		Status:               Capitalize(string(o.CurrentStatus())),
		PaymentDisabled:      settled,
		ChangeStatusDisabled: !settled,
		MapDisabled:          av.MapURL == "",
	}
}

// AdminDetail is the admin variant of the detail dialog.
type AdminDetail struct {
	Card  AdminCard
	Lines []LineView
}

func NewAdminDetail(o models.Order, addr *models.Address) AdminDetail {
	return AdminDetail{Card: NewAdminCard(o, addr), Lines: lineViews(o.Lines)}
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// PaymentInfo is the admin payment dialog. Present is false when the order has
// no payment yet.
type PaymentInfo struct {
	OrderID        int64
	Present        bool
	ID             int64
	Amount         string
	Method         string
	Status         string
	ReceiptURL     string
	ChangeDisabled bool
	Options        []Option
}

// NoPaymentMessage is shown instead of the payment details.
const NoPaymentMessage = "No hay información de pago para este pedido."

// NewPaymentInfo builds the dialog; storage maps a stored path to its public URL.
func NewPaymentInfo(o models.Order, storage func(string) string) PaymentInfo {
	p := o.Payment()
	if p == nil {
		return PaymentInfo{OrderID: o.ID}
	}
	st := p.Status.Normalize()
	info := PaymentInfo{
		OrderID:        o.ID,
		Present:        true,
		ID:             p.ID,
		Amount:         Money(p.Amount),
		Method:         Capitalize(string(p.Method)),
		Status:         Capitalize(string(st)),
		ChangeDisabled: st == models.PaymentCompleted,
	}
	if p.ReceiptPath != "" {
		info.ReceiptURL = storage(p.ReceiptPath)
	}
	for _, opt := range []models.PaymentStatus{models.PaymentPending, models.PaymentCompleted} {
		info.Options = append(info.Options, Option{
			Value:    string(opt),
			Label:    Capitalize(string(opt)),
			Selected: opt == st,
		})
	}
	return info
}

// StatusOptions lists the fulfilment stages an admin may pick, with the
// current one preselected.
func StatusOptions(current models.OrderStatus, allowed []models.OrderStatus) []Option {
	current = current.Normalize()
	out := make([]Option, 0, len(allowed))
	for _, st := range allowed {
		out = append(out, Option{
			Value:    string(st),
			Label:    Capitalize(string(st)),
			Selected: st == current,
		})
	}
	return out
}

type StatusForm struct {
	OrderID int64
	Options []Option
}

func NewStatusForm(o models.Order, allowed []models.OrderStatus) StatusForm {
	return StatusForm{OrderID: o.ID, Options: StatusOptions(o.Status, allowed)}
}
