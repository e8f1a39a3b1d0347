package orders

import (
	"context"

	"github.com/01moynul/pedidos-portal/internal/apiclient"
	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/session"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	MsgAdminListFailed     = "Error al obtener los pedidos. Intenta nuevamente."
	MsgStatusUpdated       = "Estado del pedido actualizado"
	MsgStatusFailed        = "Error al actualizar el estado del pedido"
	MsgPaymentUpdated      = "Estado de pago actualizado"
	MsgPaymentUpdateFailed = "Error al actualizar el estado de pago"
	MsgDeleted             = "Pedido eliminado correctamente"
	MsgDeleteFailed        = "Error al eliminar el pedido"
)

// AdminStatusOptions are the states an administrator may move a paid order to.
var AdminStatusOptions = []models.OrderStatus{
	models.StatusPreparing,
	models.StatusShipped,
	models.StatusCompleted,
}

// PaymentStatusOptions are the states an administrator may set on a payment.
var PaymentStatusOptions = []models.PaymentStatus{
	models.PaymentPending,
	models.PaymentCompleted,
}

// AdminAPI is the part of the API client the admin pages use.
type AdminAPI interface {
	ListAllOrders(ctx context.Context, token string) ([]models.Order, error)
	OrderAddress(ctx context.Context, token string, orderID int64) (*models.Address, error)
	UpdateOrderStatus(ctx context.Context, token string, orderID int64, status models.OrderStatus) (string, error)
	UpdatePaymentStatus(ctx context.Context, token string, paymentID, orderID int64, status models.PaymentStatus) (string, error)
	DeleteOrder(ctx context.Context, token string, orderID int64) (string, error)
}

type AdminService struct {
	api    AdminAPI
	runner *Runner
}

func NewAdminService(api AdminAPI, runner *Runner) *AdminService {
	return &AdminService{api: api, runner: runner}
}

// ListAllOrders returns every order and updates the pending badge.
func (s *AdminService) ListAllOrders(ctx context.Context, sess *session.Session, fb Feedback) ([]models.Order, error) {
	list, err := s.fetch(ctx, sess)
	if err != nil {
		fb.Error(apiclient.MessageOf(err, MsgAdminListFailed))
		return nil, err
	}
	fb.Badge(PendingCount(list))
	return list, nil
}

func (s *AdminService) fetch(ctx context.Context, sess *session.Session) ([]models.Order, error) {
	token := s.runner.ensure(ctx, sess)
	list, err := s.api.ListAllOrders(ctx, token)
	if err != nil {
		log.WithError(err).WithField("session", sess.ID).Warn("list all orders failed")
		return nil, err
	}
	return list, nil
}

func (s *AdminService) GetOrder(ctx context.Context, sess *session.Session, fb Feedback, orderID int64) (models.Order, error) {
	list, err := s.ListAllOrders(ctx, sess, fb)
	if err != nil {
		return models.Order{}, err
	}
	return findOrder(list, orderID)
}

// GetAddress returns nil on any failure, without a banner.
func (s *AdminService) GetAddress(ctx context.Context, sess *session.Session, orderID int64) *models.Address {
	token := s.runner.ensure(ctx, sess)
	addr, err := s.api.OrderAddress(ctx, token, orderID)
	if err != nil {
		log.WithError(err).WithField("order", orderID).Debug("admin address unavailable")
		return nil
	}
	return addr
}

// PendingCount counts orders that are neither completado nor cancelado.
func PendingCount(list []models.Order) int {
	n := 0
	for _, o := range list {
		switch o.CurrentStatus() {
		case models.StatusCompleted, models.StatusCancelled:
		default:
			n++
		}
	}
	return n
}

// CountPending is the badge value for the session.
func (s *AdminService) CountPending(ctx context.Context, sess *session.Session) (int, error) {
	list, err := s.fetch(ctx, sess)
	if err != nil {
		return 0, err
	}
	return PendingCount(list), nil
}

func (s *AdminService) refreshBadge(sess *session.Session, fb Feedback) func(ctx context.Context) {
	return func(ctx context.Context) {
		if n, err := s.CountPending(ctx, sess); err == nil {
			fb.Badge(n)
		}
	}
}

// ParseAdminStatus accepts only the states in AdminStatusOptions.
func ParseAdminStatus(raw string) (models.OrderStatus, error) {
	st := models.OrderStatus(raw).Normalize()
	for _, opt := range AdminStatusOptions {
		if st == opt {
			return st, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidStatus, "%q", raw)
}

func ParsePaymentStatus(raw string) (models.PaymentStatus, error) {
	st := models.PaymentStatus(raw).Normalize()
	for _, opt := range PaymentStatusOptions {
		if st == opt {
			return st, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidStatus, "%q", raw)
}

// SetOrderStatus moves a paid order along the fulfilment stages. Choosing the
// current status is a no-op that reports success without calling the API.
func (s *AdminService) SetOrderStatus(ctx context.Context, sess *session.Session, fb Feedback, orderID int64, raw string) (Result, error) {
	// 1. --- Validate target ---
	target, err := ParseAdminStatus(raw)
	if err != nil {
		return Result{}, err
	}

	// 2. --- Payment gate ---
	order, err := s.GetOrder(ctx, sess, fb, orderID)
	if err != nil {
		return Result{}, err
	}
	if !order.PaymentSettled() {
		return Result{}, ErrPaymentNotSettled
	}
	if order.CurrentStatus() == target {
		return Result{OK: true}, nil
	}

	// 3. --- Update ---
	return s.runner.Perform(ctx, sess, fb, Mutation{
		Call: func(ctx context.Context, token string) error {
			_, err := s.api.UpdateOrderStatus(ctx, token, orderID, target)
			return err
		},
		Success:  MsgStatusUpdated,
		Fallback: MsgStatusFailed,
		Refresh:  s.refreshBadge(sess, fb),
	}), nil
}

// SetPaymentStatus changes the payment of an order whose payment is not yet completado.
func (s *AdminService) SetPaymentStatus(ctx context.Context, sess *session.Session, fb Feedback, paymentID, orderID int64, raw string) (Result, error) {
	// 1. --- Validate target ---
	target, err := ParsePaymentStatus(raw)
	if err != nil {
		return Result{}, err
	}

	// 2. --- Payment gate ---
	order, err := s.GetOrder(ctx, sess, fb, orderID)
	if err != nil {
		return Result{}, err
	}
	pago := order.Payment()
	if pago == nil || pago.ID != paymentID {
		return Result{}, ErrPaymentNotFound
	}
	if order.PaymentSettled() {
		return Result{}, ErrPaymentSettled
	}
	if pago.Status.Normalize() == target {
		return Result{OK: true}, nil
	}

	// 3. --- Update ---
	return s.runner.Perform(ctx, sess, fb, Mutation{
		Call: func(ctx context.Context, token string) error {
			_, err := s.api.UpdatePaymentStatus(ctx, token, paymentID, orderID, target)
			return err
		},
		Success:  MsgPaymentUpdated,
		Fallback: MsgPaymentUpdateFailed,
	}), nil
}

// DeleteOrder removes an order after the administrator confirmed.
func (s *AdminService) DeleteOrder(ctx context.Context, sess *session.Session, fb Feedback, orderID int64, confirmed bool) (Result, error) {
	if !confirmed {
		return Result{}, ErrNotConfirmed
	}
	return s.runner.Perform(ctx, sess, fb, Mutation{
		Call: func(ctx context.Context, token string) error {
			_, err := s.api.DeleteOrder(ctx, token, orderID)
			return err
		},
		Success:  MsgDeleted,
		Fallback: MsgDeleteFailed,
		Refresh:  s.refreshBadge(sess, fb),
	}), nil
}
