// Package views turns API models into what the templates print. Everything here
// is a pure function of its inputs.
package views

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// NA is printed for any value the API did not provide.
const NA = "N/A"

// Money formats an amount in soles with two decimals: S/15.50.
func Money(d decimal.Decimal) string {
	return "S/" + d.StringFixed(2)
}

// Capitalize upper-cases the first letter only.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NA
	}
	return s
}
