package session

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/port"
)

const (
	TagSession      = "session_id"
	TagTransaction  = "transaction_id"
	TagCustomerType = "customerType"
)

// Session is the buyer identity of one process lifetime.
type Session struct {
	Email string
	ID    string
}

func New() *Session {
	return &Session{
		Email: strings.ToLower(gofakeit.Email()),
		ID:    uuid.NewString(),
	}
}

// NewTransactionID returns a fresh id for one checkout attempt.
func (s *Session) NewTransactionID() string {
	return uuid.NewString()
}

// Bind reports the session identity once at startup.
func Bind(s *Session, reporter port.Reporter, customerType string) {
	reporter.SetUser(s.Email)
	reporter.SetTag(TagSession, s.ID)
	if customerType != "" {
		reporter.SetTag(TagCustomerType, customerType)
	}
}
