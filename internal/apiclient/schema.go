package apiclient

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

var ErrUnexpectedResponse = errors.New("respuesta inesperada de la API")

const envelopeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["success"],
  "properties": {
    "success": { "type": "boolean" },
    "message": { "type": ["string", "null"] }
  }
}`

var envelopeLoader = gojsonschema.NewStringLoader(envelopeSchema)

// validateEnvelope rejects bodies that are not a {success, message} object.
func validateEnvelope(body []byte) error {
	result, err := gojsonschema.Validate(envelopeLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.Wrap(ErrUnexpectedResponse, err.Error())
	}
	if !result.Valid() {
		var sb strings.Builder
		for _, e := range result.Errors() {
			sb.WriteString(e.String())
			sb.WriteString("; ")
		}
		return errors.Wrap(ErrUnexpectedResponse, sb.String())
	}
	return nil
}
