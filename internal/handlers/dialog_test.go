package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/notify"
	"github.com/01moynul/pedidos-portal/internal/orders"
	"github.com/01moynul/pedidos-portal/internal/payment"
	"github.com/01moynul/pedidos-portal/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogForWrappedErrors(t *testing.T) {
	text, status, ok := dialogFor(errors.Wrapf(orders.ErrOrderNotFound, "idPedido %d", 9))
	require.True(t, ok)
	assert.Equal(t, "Pedido no encontrado.", text)
	assert.Equal(t, http.StatusNotFound, status)

	text, status, ok = dialogFor(payment.ErrReceiptRequired)
	require.True(t, ok)
	assert.Equal(t, "Por favor, adjunte un archivo de comprobante para proceder.", text)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	_, status, ok = dialogFor(errors.New("dial tcp: refused"))
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestDialogTextIsSeparateFromErrors(t *testing.T) {
	for _, d := range dialogs {
		msg := d.err.Error()
		r, _ := utf8.DecodeRuneInString(msg)
		assert.True(t, unicode.IsLower(r), "error %q should start lower-case", msg)
		assert.NotContains(t, ".!", msg[len(msg)-1:], "error %q should not end in punctuation", msg)

		r, _ = utf8.DecodeRuneInString(d.text)
		assert.True(t, unicode.IsUpper(r), "dialog %q should start upper-case", d.text)
	}
}

func renderPaymentDialog(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tmpl, terr := web.Templates()
	require.NoError(t, terr)

	h := &Handlers{Hub: notify.NewHub(time.Second)}
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/pago", func(c *gin.Context) {
		h.paymentDialog(c, payment.New(models.Order{ID: 42}), err)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pago", nil))
	return w
}

func TestPaymentDialogHidesReadErrors(t *testing.T) {
	w := renderPaymentDialog(t, errors.Wrap(io.ErrUnexpectedEOF, "read comprobante"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), MsgReceiptUnreadable)
	assert.NotContains(t, w.Body.String(), "read comprobante")
	assert.NotContains(t, w.Body.String(), "unexpected EOF")
}

func TestPaymentDialogReceiptTooLarge(t *testing.T) {
	w := renderPaymentDialog(t, ErrReceiptTooLarge)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "El comprobante supera el tamaño máximo de 8 MB.")
}
