package curp

import (
	"errors"

	"github.com/meridianapi/meridian-go/rest"
)

// ErrCurp is the CURP product's base sentinel.
var ErrCurp = errors.New("curp client error")

// LookupError reports a failed CURP lookup, signaled by a populated
// `errors` object inside an HTTP 200 body.
type LookupError struct {
	Detail string
}

func newLookupError(detail string) *LookupError {
	return &LookupError{Detail: detail}
}

func (e *LookupError) Error() string {
	if e.Detail == "" {
		return ErrCurp.Error()
	}
	return ErrCurp.Error() + ": " + e.Detail
}

func (e *LookupError) Unwrap() []error { return []error{ErrCurp, rest.ErrAPI} }
