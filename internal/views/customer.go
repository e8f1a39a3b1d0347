package views

import (
	"fmt"

	"github.com/01moynul/pedidos-portal/internal/models"
)

// trackedStatuses are the statuses that have a position on the timeline.
var trackedStatuses = []models.OrderStatus{
	models.StatusApproving,
	models.StatusPreparing,
	models.StatusShipped,
	models.StatusCompleted,
}

func tracked(st models.OrderStatus) bool {
	for _, t := range trackedStatuses {
		if st == t {
			return true
		}
	}
	return false
}

// CustomerRow is one line of the "mis pedidos" table.
type CustomerRow struct {
	ID           int64
	Total        string
	Status       string
	Completed    bool
	ShowTimeline bool
	ShowCancel   bool
}

func NewCustomerRow(o models.Order) CustomerRow {
	st := o.CurrentStatus()
	return CustomerRow{
		ID:           o.ID,
		Total:        Money(o.Total),
		Status:       Capitalize(string(st)),
		Completed:    st == models.StatusCompleted,
		ShowTimeline: tracked(st),
		ShowCancel:   st == models.StatusPending,
	}
}

func CustomerRows(list []models.Order) []CustomerRow {
	rows := make([]CustomerRow, 0, len(list))
	for _, o := range list {
		rows = append(rows, NewCustomerRow(o))
	}
	return rows
}

type AddressView struct {
	Region   string
	Province string
	Line     string
	MapURL   string // empty without coordinates
}

// NewAddressView prints N/A for a missing address or field.
func NewAddressView(a *models.Address) AddressView {
	if a == nil {
		return AddressView{Region: NA, Province: NA, Line: NA}
	}
	v := AddressView{
		Region:   orNA(a.Region),
		Province: orNA(a.Province),
		Line:     orNA(a.Line),
	}
	if a.HasCoordinates() {
		v.MapURL = fmt.Sprintf("https://maps.google.com/?q=%s,%s",
			a.Latitude.Decimal.String(), a.Longitude.Decimal.String())
	}
	return v
}

type LineView struct {
	ID        int64
	ProductID int64
	Product   string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

func lineViews(lines []models.OrderLine) []LineView {
	out := make([]LineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineView{
			ID:        l.ID,
			ProductID: l.ProductID,
			Product:   orNA(l.ProductName()),
			Quantity:  l.Quantity,
			UnitPrice: Money(l.UnitPrice),
			Subtotal:  Money(l.Subtotal),
		})
	}
	return out
}

// CustomerDetail is the order detail dialog.
type CustomerDetail struct {
	ID      int64
	Total   string
	Status  string
	Address AddressView
	Lines   []LineView
	ShowPay bool
}

func NewCustomerDetail(o models.Order, addr *models.Address) CustomerDetail {
	st := o.CurrentStatus()
	return CustomerDetail{
		ID:      o.ID,
		Total:   Money(o.Total),
		Status:  Capitalize(string(st)),
		Address: NewAddressView(addr),
		Lines:   lineViews(o.Lines),
		ShowPay: !tracked(st),
	}
}

type Stage struct {
	Label  string
	Active bool
}

// Timeline marks every stage up to and including the current one.
// An order that is not on the timeline has no active stage.
func Timeline(st models.OrderStatus) []Stage {
	st = st.Normalize()
	current := -1
	for i, t := range trackedStatuses {
		if t == st {
			current = i
		}
	}
	stages := make([]Stage, len(trackedStatuses))
	for i, t := range trackedStatuses {
		stages[i] = Stage{Label: Capitalize(string(t)), Active: i <= current}
	}
	return stages
}

type TimelineView struct {
	ID     int64
	Stages []Stage
}

func NewTimelineView(o models.Order) TimelineView {
	return TimelineView{ID: o.ID, Stages: Timeline(o.Status)}
}

// Confirm is a yes/no dialog that posts confirmar=si to Action.
type Confirm struct {
	Question     string
	Detail       string
	Action       string
	ConfirmLabel string
	Back         string
}

func CancelConfirm(orderID int64) Confirm {
	return Confirm{
		Question:     "¿Estás seguro de que deseas cancelar este pedido?",
		Detail:       fmt.Sprintf("Pedido #%d. Esta acción no se puede deshacer.", orderID),
		Action:       fmt.Sprintf("/pedidos/%d/cancelar", orderID),
		ConfirmLabel: "Sí, cancelar pedido",
		Back:         "/pedidos",
	}
}

func DeleteConfirm(orderID int64) Confirm {
	return Confirm{
		Question:     "¿Eliminar este pedido?",
		Detail:       fmt.Sprintf("Pedido #%d. Esta acción es irreversible.", orderID),
		Action:       fmt.Sprintf("/admin/pedidos/%d/eliminar", orderID),
		ConfirmLabel: "Sí, eliminar",
		Back:         "/admin/pedidos",
	}
}
