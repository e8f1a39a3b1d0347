package payment

import (
	"context"
	"testing"

	"github.com/01moynul/pedidos-portal/internal/apiclient"
	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submitCall struct {
	token   string
	orderID int64
	method  models.PaymentMethod
	receipt *apiclient.Receipt
}

type stubSubmitter struct {
	calls []submitCall
	err   error
}

func (s *stubSubmitter) SubmitPayment(_ context.Context, token string, orderID int64, method models.PaymentMethod, receipt *apiclient.Receipt) (string, error) {
	s.calls = append(s.calls, submitCall{token, orderID, method, receipt})
	return "ok", s.err
}

func testOrder() models.Order {
	return models.Order{ID: 42, Total: decimal.RequireFromString("15.50"), Status: models.StatusPending}
}

func TestReceiptRequiredBlocksNetwork(t *testing.T) {
	for _, method := range []string{"yape", "plin"} {
		t.Run(method, func(t *testing.T) {
			api := &stubSubmitter{}
			w := New(testOrder())
			require.NoError(t, w.Select(method))
			assert.True(t, w.ReceiptRequired())

			_, err := w.Confirm(context.Background(), "tok", api)
			assert.ErrorIs(t, err, ErrReceiptRequired)

			// an empty file counts as no file
			require.NoError(t, w.Attach(apiclient.Receipt{Filename: "vacio.png"}))
			_, err = w.Confirm(context.Background(), "tok", api)
			assert.ErrorIs(t, err, ErrReceiptRequired)

			assert.Empty(t, api.calls)
			assert.Equal(t, MethodSelected, w.State())
		})
	}
}

func TestCashSubmitsWithoutReceipt(t *testing.T) {
	api := &stubSubmitter{}
	w := New(testOrder())
	require.NoError(t, w.Select("efectivo"))
	assert.False(t, w.ReceiptRequired())
	assert.Empty(t, w.QRImage())

	msg, err := w.Confirm(context.Background(), "tok", api)
	require.NoError(t, err)
	assert.Equal(t, "Pago en efectivo confirmado", msg)

	require.Len(t, api.calls, 1)
	assert.Equal(t, submitCall{token: "tok", orderID: 42, method: models.MethodEfectivo}, api.calls[0])
	assert.Equal(t, Submitted, w.State())
}

func TestYapeWithReceipt(t *testing.T) {
	api := &stubSubmitter{}
	w := New(testOrder())
	require.NoError(t, w.Select("Yape"))
	assert.Equal(t, YapeQR, w.QRImage())

	require.NoError(t, w.Attach(apiclient.Receipt{Filename: "Mi Voucher Ñandú.PNG", ContentType: "image/png", Data: []byte{1, 2}}))
	msg, err := w.Confirm(context.Background(), "tok", api)
	require.NoError(t, err)
	assert.Equal(t, "Pago procesado exitosamente.", msg)

	require.Len(t, api.calls, 1)
	require.NotNil(t, api.calls[0].receipt)
	assert.Equal(t, "mi-voucher-nandu.png", api.calls[0].receipt.Filename)
}

func TestSwitchingMethodDropsReceipt(t *testing.T) {
	api := &stubSubmitter{}
	w := New(testOrder())
	require.NoError(t, w.Select("yape"))
	require.NoError(t, w.Attach(apiclient.Receipt{Filename: "a.jpg", Data: []byte{1}}))
	require.NoError(t, w.Select("plin"))
	assert.Equal(t, PlinQR, w.QRImage())

	_, err := w.Confirm(context.Background(), "tok", api)
	assert.ErrorIs(t, err, ErrReceiptRequired)
	assert.Empty(t, api.calls)
}

func TestConfirmWithoutMethod(t *testing.T) {
	api := &stubSubmitter{}
	_, err := New(testOrder()).Confirm(context.Background(), "tok", api)
	assert.ErrorIs(t, err, ErrMethodRequired)
	assert.Empty(t, api.calls)
}

func TestUnknownMethod(t *testing.T) {
	w := New(testOrder())
	assert.ErrorIs(t, w.Select("tarjeta"), ErrUnknownMethod)
	assert.Equal(t, MethodUnselected, w.State())
}

func TestSubmitFailureKeepsWorkflowOpen(t *testing.T) {
	api := &stubSubmitter{err: &apiclient.APIError{Status: 422, Message: "Pedido ya pagado"}}
	w := New(testOrder())
	require.NoError(t, w.Select("efectivo"))

	_, err := w.Confirm(context.Background(), "tok", api)
	require.Error(t, err)
	assert.Equal(t, "Pedido ya pagado", apiclient.MessageOf(err, FailureMessage(w.Method())))
	assert.Equal(t, MethodSelected, w.State())

	api.err = errors.New("connection reset")
	_, err = w.Confirm(context.Background(), "tok", api)
	assert.Equal(t, "Error al confirmar el pago en efectivo.", apiclient.MessageOf(err, FailureMessage(w.Method())))
}

func TestDismiss(t *testing.T) {
	api := &stubSubmitter{}
	w := New(testOrder())
	require.NoError(t, w.Select("yape"))
	w.Dismiss()

	assert.Equal(t, Dismissed, w.State())
	assert.Empty(t, w.Method())
	_, err := w.Confirm(context.Background(), "tok", api)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, w.Select("yape"), ErrClosed)
	assert.Empty(t, api.calls)
}

func TestOrderSnapshot(t *testing.T) {
	o := testOrder()
	w := New(o)
	o.ID = 99
	assert.Equal(t, int64(42), w.Order().ID)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "comprobante.jpg", SanitizeFilename("../../.JPG"))
	assert.Equal(t, "pago-yape.jpeg", SanitizeFilename(`C:\Users\ana\Pago Yape.JPEG`))
}
