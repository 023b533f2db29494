package payment

import (
	"errors"

	"github.com/meridianapi/meridian-go/rest"
)

// ErrPayment is the payment product's base sentinel.
var ErrPayment = errors.New("payment client error")

// InvalidParameterError reports a 400 whose body rejects a named
// request field instead of carrying a top-level message.
type InvalidParameterError struct {
	Param   string
	Message string
}

func newInvalidParameterError(param, message string) *InvalidParameterError {
	return &InvalidParameterError{Param: param, Message: message}
}

func (e *InvalidParameterError) Error() string {
	return "payment: invalid parameter " + e.Param + ": " + e.Message
}

func (e *InvalidParameterError) Unwrap() []error {
	return []error{ErrPayment, rest.ErrInvalidParameter, rest.ErrAPI}
}
