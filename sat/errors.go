package sat

import (
	"errors"

	"github.com/meridianapi/meridian-go/rest"
)

// ErrSat is the SAT product's base sentinel.
var ErrSat = errors.New("sat client error")

// ClientError reports a business-level failure the backend signaled
// inside an otherwise successful response, or an undocumented login
// outcome.
type ClientError struct {
	Message string
}

func newClientError(message string) *ClientError {
	return &ClientError{Message: message}
}

func (e *ClientError) Error() string {
	if e.Message == "" {
		return ErrSat.Error()
	}
	return ErrSat.Error() + ": " + e.Message
}

func (e *ClientError) Unwrap() []error { return []error{ErrSat, rest.ErrAPI} }
