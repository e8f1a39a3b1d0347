package views

import (
	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/payment"
)

var paymentMethods = []models.PaymentMethod{models.MethodYape, models.MethodPlin, models.MethodEfectivo}

// PaymentForm is the customer payment dialog.
type PaymentForm struct {
	OrderID         int64
	Total           string
	Methods         []Option
	Method          string
	MethodLabel     string
	QRImage         string
	ReceiptRequired bool
}

func NewPaymentForm(w *payment.Workflow) PaymentForm {
	o := w.Order()
	m := w.Method()
	form := PaymentForm{
		OrderID:         o.ID,
		Total:           Money(o.Total),
		Method:          string(m),
		MethodLabel:     Capitalize(string(m)),
		QRImage:         w.QRImage(),
		ReceiptRequired: w.ReceiptRequired(),
	}
	for _, pm := range paymentMethods {
		form.Methods = append(form.Methods, Option{
			Value:    string(pm),
			Label:    Capitalize(string(pm)),
			Selected: pm == m,
		})
	}
	return form
}
