package models

import "strings"

// Customer is the usuario embedded in admin order listings.
type Customer struct {
	ID        int64  `json:"idUsuario"`
	FirstName string `json:"nombres"`
	LastName  string `json:"apellidos"`
}

// FullName returns "nombres apellidos", or "" when either part is missing.
func (c *Customer) FullName() string {
	if c == nil || strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return ""
	}
	return c.FirstName + " " + c.LastName
}
