package banking

import (
	"errors"

	"github.com/meridianapi/meridian-go/rest"
)

// ErrBanking is the banking product's base sentinel: every error this
// package raises matches it via errors.Is, and matches rest.ErrAPI
// above it.
var ErrBanking = errors.New("banking client error")

// ClientError reports a login response whose status was not one of the
// documented outcomes.
type ClientError struct {
	Message string
}

func newClientError(message string) *ClientError {
	return &ClientError{Message: message}
}

func (e *ClientError) Error() string {
	if e.Message == "" {
		return ErrBanking.Error()
	}
	return ErrBanking.Error() + ": " + e.Message
}

func (e *ClientError) Unwrap() []error { return []error{ErrBanking, rest.ErrAPI} }
