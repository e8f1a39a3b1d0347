package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/pkg/errors"
)

// Receipt is an uploaded comprobante.
type Receipt struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SubmitPayment is POST /api/procesar-pago/{orderId}. With a receipt the body is
// multipart (comprobante, metodo_pago); without one it is {"metodo_pago": method}.
func (c *Client) SubmitPayment(ctx context.Context, token string, orderID int64, method models.PaymentMethod, receipt *Receipt) (string, error) {
	path := fmt.Sprintf("/api/procesar-pago/%d", orderID)

	var (
		r   response
		err error
	)
	if receipt != nil {
		body, contentType, encErr := encodeReceipt(method, receipt)
		if encErr != nil {
			return "", encErr
		}
		r, err = c.do(ctx, token, http.MethodPost, path, body, contentType)
	} else {
		payload := struct {
			Method models.PaymentMethod `json:"metodo_pago"`
		}{method}
		r, err = c.doJSON(ctx, token, http.MethodPost, path, payload)
	}
	if err != nil {
		return "", err
	}
	return decodeEnvelope(r, nil)
}

func encodeReceipt(method models.PaymentMethod, receipt *Receipt) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	contentType := receipt.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="comprobante"; filename=%q`, receipt.Filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", errors.Wrap(err, "create comprobante part")
	}
	if _, err := part.Write(receipt.Data); err != nil {
		return nil, "", errors.Wrap(err, "write comprobante")
	}
	if err := w.WriteField("metodo_pago", string(method)); err != nil {
		return nil, "", errors.Wrap(err, "write metodo_pago")
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close multipart")
	}
	return buf, w.FormDataContentType(), nil
}
