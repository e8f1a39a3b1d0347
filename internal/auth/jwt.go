package auth

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	ErrMissingToken   = errors.New("no se encontró el token de autenticación")
	ErrMalformedToken = errors.New("token inválido")
	ErrMissingUserID  = errors.New("token no contiene idUsuario")
)

// userIDClaim is the claim the API puts the user identifier in.
const userIDClaim = "idUsuario"

// Claims is what the portal reads out of a credential for display and filtering.
type Claims struct {
	UserID    int64
	ExpiresAt time.Time // zero when the token carries no exp
}

// DecodeClaims reads the payload segment of a JWT without verifying the signature.
// Verification is the API's job; the portal only needs the user id and the expiry.
func DecodeClaims(token string) (Claims, error) {
	// 1. --- Reject empty input ---
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrMissingToken
	}

	// 2. --- Decode the payload (URL-safe base64 + JSON) ---
	parser := jwt.NewParser(jwt.WithJSONNumber(), jwt.WithPaddingAllowed())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Claims{}, errors.Wrap(ErrMalformedToken, err.Error())
	}

	// 3. --- Extract idUsuario ---
	userID, ok := numericClaim(claims[userIDClaim])
	if !ok || userID == 0 {
		return Claims{}, ErrMissingUserID
	}

	out := Claims{UserID: userID}

	// 4. --- Extract exp (optional) ---
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Claims{}, errors.Wrap(ErrMalformedToken, err.Error())
	}
	if exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// numericClaim accepts JSON numbers and numeric strings.
func numericClaim(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int64(f), true
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

// Expiring reports whether the claims expire within skew of now.
func (c Claims) Expiring(now time.Time, skew time.Duration) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(skew).Before(c.ExpiresAt)
}
