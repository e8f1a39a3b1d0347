package catalog

import (
	"context"
	"testing"

	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	products []models.Product
	err      error
	token    string
}

func (f *fakeAPI) ListProducts(_ context.Context, token string) ([]models.Product, error) {
	f.token = token
	return f.products, f.err
}

type noopGuard struct{}

func (noopGuard) Ensure(context.Context, *session.Session) error { return nil }

type messages []string

func (m *messages) Error(s string) { *m = append(*m, s) }

func TestSearch(t *testing.T) {
	api := &fakeAPI{products: []models.Product{{Name: "Leche Gloria"}, {Name: "Pan francés"}, {Name: "leche de soya"}}}
	svc := NewService(api, noopGuard{})
	var fb messages

	got, err := svc.Search(context.Background(), session.New("tok"), &fb, "  LECHE ")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "tok", api.token)

	got, err = svc.Search(context.Background(), session.New("tok"), &fb, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Empty(t, fb)
}

func TestSearchFailure(t *testing.T) {
	svc := NewService(&fakeAPI{err: errors.New("boom")}, noopGuard{})
	var fb messages

	_, err := svc.Search(context.Background(), session.New("tok"), &fb, "x")
	require.Error(t, err)
	assert.Equal(t, messages{MsgListFailed}, fb)
}
