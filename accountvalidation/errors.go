package accountvalidation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/meridianapi/meridian-go/rest"
)

// ErrAccountValidation is the account-validation product's base
// sentinel.
var ErrAccountValidation = errors.New("account validation client error")

// Per-outcome sentinels, one per documented body-level code. Match
// with errors.Is against the error returned by Validate.
var (
	ErrInvalidAccount          = errors.New("account does not exist")
	ErrPendingValidation       = errors.New("validation still pending")
	ErrCommunication           = errors.New("communication with the bank failed")
	ErrMethodNotAvailable      = errors.New("validation method not available")
	ErrBankProviderUnavailable = errors.New("bank provider not available")
	ErrCountryNotAvailable     = errors.New("country not available")
	ErrInvalidCurrencyAccount  = errors.New("account held in another currency")
)

// OutcomeError is the typed form of one documented body-level failure
// code carried inside the response's errors object.
type OutcomeError struct {
	Code    int
	Message string

	kind error
}

func (e *OutcomeError) Error() string {
	if e.Message == "" {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.Message
}

func (e *OutcomeError) Unwrap() []error {
	return []error{e.kind, ErrAccountValidation, rest.ErrAPI}
}

// parameterMessage is the backend's prose shape for parameter
// rejections: "<Kind> parameter: a, b. trailing detail".
var parameterMessage = regexp.MustCompile(`^(Invalid|Missing) parameter: ([^.,]+(?:,\s[^.,]+)*)[.]?\s*([^.]*)`)

// parseParameterError extracts the offending field names from a code
// 400 message. The bool reports whether the message had the expected
// shape at all.
func parseParameterError(message string) (kind string, fields []string, ok bool) {
	m := parameterMessage.FindStringSubmatch(message)
	if m == nil {
		return "", nil, false
	}

	return m[1], strings.Split(m[2], ", "), true
}
