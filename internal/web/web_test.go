package web

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/notify"
	"github.com/01moynul/pedidos-portal/internal/views"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"pedidos", "pedido_detalle", "pedido_estado", "pedido_pago", "confirmar", "productos", "error",
		"admin_pedidos", "admin_detalle", "admin_pago", "admin_comprobante", "admin_estado",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestRenderOrders(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	page := Page{
		Title: "Mis pedidos",
		Signals: notify.Signals{
			Banner: models.Notification{Message: "Pedido cancelado exitosamente", Severity: models.SeveritySuccess, Visible: true},
		},
		Data: views.CustomerRows([]models.Order{{ID: 42, Total: decimal.NewFromFloat(15.5), Status: models.StatusPending}}),
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "pedidos", page))
	html := buf.String()

	assert.Contains(t, html, "S/15.50")
	assert.Contains(t, html, "Cancelar Pedido")
	assert.NotContains(t, html, "Ver Estado")
	assert.Contains(t, html, "Pedido cancelado exitosamente")
	assert.Contains(t, html, "bg-green-500")
}

func TestRenderDialog(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "pedidos", Page{Dialog: "Por favor, adjunte un archivo de comprobante para proceder."}))
	assert.Contains(t, buf.String(), `role="alertdialog"`)
	assert.Contains(t, buf.String(), "No tienes pedidos registrados.")
}

func TestSignalsJSON(t *testing.T) {
	p := Page{Signals: notify.Signals{CueSeq: 4, Badge: 2}}
	assert.JSONEq(t,
		`{"banner":{"message":"","severity":"","visible":false},"busy":false,"cue":"","cueSeq":4,"badge":2,"_cuePlayed":4}`,
		p.SignalsJSON())
	assert.Equal(t, "2", p.Badge())
	assert.Equal(t, "", Page{}.Badge())
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"img/yapeqr.jpg", "img/plinqr.png", "img/default.png", "css/portal.css", "songs/success.wav", "songs/error.wav"} {
		_, err := fs.Stat(Static(), name)
		assert.NoError(t, err, name)
	}
}
