// Package catalog lists the store's products for the customer pages.
package catalog

import (
	"context"
	"strings"

	"github.com/01moynul/pedidos-portal/internal/apiclient"
	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/session"
	log "github.com/sirupsen/logrus"
)

const MsgListFailed = "Error al cargar los productos."

type API interface {
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
}

type Ensurer interface {
	Ensure(ctx context.Context, sess *session.Session) error
}

// Notifier receives the failure banner.
type Notifier interface {
	Error(message string)
}

type Service struct {
	api   API
	guard Ensurer
}

func NewService(api API, guard Ensurer) *Service {
	return &Service{api: api, guard: guard}
}

// Search returns the products whose name contains query, ignoring case.
// An empty query returns everything.
func (s *Service) Search(ctx context.Context, sess *session.Session, fb Notifier, query string) ([]models.Product, error) {
	if err := s.guard.Ensure(ctx, sess); err != nil {
		log.WithError(err).Debug("guard did not refresh")
	}

	list, err := s.api.ListProducts(ctx, sess.Token())
	if err != nil {
		log.WithError(err).Warn("list products failed")
		fb.Error(apiclient.MessageOf(err, MsgListFailed))
		return nil, err
	}
	return Filter(list, query), nil
}

func Filter(list []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	out := make([]models.Product, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}
