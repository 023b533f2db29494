package dian

import (
	"errors"

	"github.com/meridianapi/meridian-go/rest"
)

// ErrDian is the DIAN product's base sentinel.
var ErrDian = errors.New("dian client error")

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
		return ErrDian.Error()
	}
	return ErrDian.Error() + ": " + e.Message
}

func (e *ClientError) Unwrap() []error { return []error{ErrDian, rest.ErrAPI} }
