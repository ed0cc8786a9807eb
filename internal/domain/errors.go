package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownItem       = errors.New("item is not in the catalog")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCheckoutPending   = errors.New("checkout already in progress")
	ErrNetwork           = errors.New("checkout request failed")
	ErrMalformedResponse = errors.New("checkout response unreadable")
	ErrCheckoutPanic     = errors.New("checkout panicked")
)

// StatusError is returned for a non-2xx checkout response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, e.Message)
}
