// Package orders holds the customer and admin operations on pedidos. Every call
// goes through the session guard and reports to the session's feedback channel.
package orders

import (
	"context"

	"github.com/01moynul/pedidos-portal/internal/apiclient"
	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/session"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotConfirmed      = errors.New("la acción no fue confirmada")
	ErrNotCancelable     = errors.New("solo se pueden cancelar pedidos pendientes")
	ErrPaymentNotSettled = errors.New("el pago del pedido aún no está completado")
	ErrPaymentSettled    = errors.New("el pago ya fue completado")
	ErrInvalidStatus     = errors.New("estado no permitido")
	ErrOrderNotFound     = errors.New("pedido no encontrado")
	ErrPaymentNotFound   = errors.New("pedido sin información de pago")
)

// Ensurer keeps the session credential fresh. *auth.Guard in production.
type Ensurer interface {
	Ensure(ctx context.Context, sess *session.Session) error
}

// Feedback is what an operation reports to the user. *notify.Feedback in production.
type Feedback interface {
	Success(message string)
	Error(message string)
	Busy(on bool)
	Play(cue models.Cue)
	Badge(n int)
}

// Result is the outcome of a mutation as shown to the user.
type Result struct {
	OK      bool
	Message string
}

// Mutation describes one state-changing API call.
type Mutation struct {
	// Call receives the (possibly refreshed) token. Success messages are fixed,
	// so only the error matters.
	Call     func(ctx context.Context, token string) error
	Success  string // shown on success
	Fallback string // shown on failure when the API gives no message
	// Refresh runs after a successful call.
	Refresh func(ctx context.Context)
}

// Runner performs mutations with the same guard/busy/cue/banner sequence.
type Runner struct {
	guard Ensurer
}

func NewRunner(guard Ensurer) *Runner {
	return &Runner{guard: guard}
}

// ensure refreshes the credential and returns the token to use. Refresh errors
// are already logged by the guard; the call goes on with what the session has.
func (r *Runner) ensure(ctx context.Context, sess *session.Session) string {
	if err := r.guard.Ensure(ctx, sess); err != nil {
		log.WithError(err).WithField("session", sess.ID).Debug("guard did not refresh")
	}
	return sess.Token()
}

func (r *Runner) Perform(ctx context.Context, sess *session.Session, fb Feedback, m Mutation) Result {
	// 1. --- Guard ---
	token := r.ensure(ctx, sess)

	// 2. --- Call, with the busy indicator on ---
	fb.Busy(true)
	err := m.Call(ctx, token)
	fb.Busy(false)

	// 3. --- Report ---
	if err != nil {
		msg := apiclient.MessageOf(err, m.Fallback)
		log.WithError(err).WithField("session", sess.ID).Warn(m.Fallback)
		fb.Play(models.CueError)
		fb.Error(msg)
		return Result{OK: false, Message: msg}
	}

	fb.Play(models.CueSuccess)
	fb.Success(m.Success)
	if m.Refresh != nil {
		m.Refresh(ctx)
	}
	return Result{OK: true, Message: m.Success}
}

// findOrder picks id out of a listing.
func findOrder(list []models.Order, id int64) (models.Order, error) {
	for _, o := range list {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, errors.Wrapf(ErrOrderNotFound, "idPedido %d", id)
}
