package orders

import (
	"context"

	"github.com/01moynul/pedidos-portal/internal/apiclient"
	"github.com/01moynul/pedidos-portal/internal/auth"
	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/payment"
	"github.com/01moynul/pedidos-portal/internal/session"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	MsgListFailed    = "Error al obtener los pedidos. Intenta nuevamente."
	MsgCancelled     = "Pedido cancelado exitosamente"
	MsgCancelFailed  = "Error al cancelar el pedido"
	MsgAddressFailed = "Error al obtener la dirección del pedido."
	MsgTokenInvalid  = "Token inválido o no contiene idUsuario."
	MsgTokenMissing  = "No se encontró el token de autenticación."
)

// CustomerAPI is the part of the API client the customer pages use.
type CustomerAPI interface {
	ListUserOrders(ctx context.Context, token string, userID int64) ([]models.Order, error)
	UserOrderAddress(ctx context.Context, token string, orderID int64) (*models.Address, error)
	CancelOrder(ctx context.Context, token string, orderID int64) error
	payment.Submitter
}

type CustomerService struct {
	api    CustomerAPI
	runner *Runner
}

func NewCustomerService(api CustomerAPI, runner *Runner) *CustomerService {
	return &CustomerService{api: api, runner: runner}
}

// userID decodes the session token. A token without idUsuario never reaches the API.
func userID(sess *session.Session, fb Feedback) (int64, error) {
	claims, err := auth.DecodeClaims(sess.Token())
	if errors.Is(err, auth.ErrMissingToken) {
		fb.Error(MsgTokenMissing)
		return 0, err
	}
	if err != nil {
		fb.Error(MsgTokenInvalid)
		return 0, err
	}
	return claims.UserID, nil
}

// ListOrders returns the orders of the session's user.
func (s *CustomerService) ListOrders(ctx context.Context, sess *session.Session, fb Feedback) ([]models.Order, error) {
	// 1. --- Guard & identity ---
	token := s.runner.ensure(ctx, sess)
	id, err := userID(sess, fb)
	if err != nil {
		return nil, err
	}

	// 2. --- Fetch ---
	list, err := s.api.ListUserOrders(ctx, token, id)
	if err != nil {
		log.WithError(err).WithField("user", id).Warn("list user orders failed")
		fb.Error(apiclient.MessageOf(err, MsgListFailed))
		return nil, err
	}
	return list, nil
}

// GetOrder fetches the listing and picks one order out of it.
func (s *CustomerService) GetOrder(ctx context.Context, sess *session.Session, fb Feedback, orderID int64) (models.Order, error) {
	list, err := s.ListOrders(ctx, sess, fb)
	if err != nil {
		return models.Order{}, err
	}
	return findOrder(list, orderID)
}

// GetAddress never fails: on error it shows a banner and returns nil, and the
// page shows N/A.
func (s *CustomerService) GetAddress(ctx context.Context, sess *session.Session, fb Feedback, orderID int64) *models.Address {
	token := s.runner.ensure(ctx, sess)
	addr, err := s.api.UserOrderAddress(ctx, token, orderID)
	if err != nil {
		log.WithError(err).WithField("order", orderID).Warn("get address failed")
		fb.Error(apiclient.MessageOf(err, MsgAddressFailed))
		return nil
	}
	return addr
}

// CancelOrder cancels a pendiente order after the user confirmed.
// Validation errors are returned before any cancel request is sent.
func (s *CustomerService) CancelOrder(ctx context.Context, sess *session.Session, fb Feedback, orderID int64, confirmed bool) (Result, error) {
	// 1. --- Confirmation ---
	if !confirmed {
		return Result{}, ErrNotConfirmed
	}

	// 2. --- Eligibility (the API checks again) ---
	order, err := s.GetOrder(ctx, sess, fb, orderID)
	if err != nil {
		return Result{}, err
	}
	if order.CurrentStatus() != models.StatusPending {
		return Result{}, ErrNotCancelable
	}

	// 3. --- Cancel ---
	return s.runner.Perform(ctx, sess, fb, Mutation{
		Call: func(ctx context.Context, token string) error {
			return s.api.CancelOrder(ctx, token, orderID)
		},
		Success:  MsgCancelled,
		Fallback: MsgCancelFailed,
	}), nil
}

// SubmitPayment confirms the workflow. Validation errors (no method, missing
// comprobante) come back as errors with no request sent.
func (s *CustomerService) SubmitPayment(ctx context.Context, sess *session.Session, fb Feedback, w *payment.Workflow) (Result, error) {
	if err := w.Validate(); err != nil {
		return Result{}, err
	}

	method := w.Method()
	return s.runner.Perform(ctx, sess, fb, Mutation{
		Call: func(ctx context.Context, token string) error {
			_, err := w.Confirm(ctx, token, s.api)
			return err
		},
		Success:  payment.SuccessMessage(method),
		Fallback: payment.FailureMessage(method),
	}), nil
}
