// Package models defines the client-side data types shared by the session
// components.
package models

import (
	"fmt"
	"log/slog"
	"strings"
)

// Credentials is an email/password pair as typed by the user or as cached
// in the vault. The password must never be logged; String and LogValue
// both redact it.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewCredentials returns Credentials with the email normalized.
func NewCredentials(email, password string) Credentials {
	return Credentials{Email: NormalizeEmail(email), Password: password}
}

// NormalizeEmail lowercases email. Whitespace is kept as typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}

// IsZero reports whether no email is set.
func (c Credentials) IsZero() bool {
	return c.Email == ""
}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Email: %q, Password: [REDACTED]}", c.Email)
}

// LogValue implements slog.LogValuer.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", c.Email))
}
