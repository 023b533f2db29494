package rest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAPI is the root sentinel of the library's error taxonomy. Every typed
// error returned by this module matches it via errors.Is, so callers can
// catch "something failed" at a single point:
//
//	if errors.Is(err, rest.ErrAPI) { ... }
var ErrAPI = errors.New("meridian api error")

// Kind sentinels. Each typed error unwraps to exactly one of these,
// enabling errors.Is checks without asserting the concrete type.
var (
	ErrConfiguration        = errors.New("invalid configuration")
	ErrBadRequest           = errors.New("bad request")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrInternalAPI          = errors.New("internal api error")
	ErrProviderUnavailable  = errors.New("provider unavailable")
	ErrWrongCredentials     = errors.New("wrong credentials")
	ErrInvalidSessionKey    = errors.New("invalid session key")
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrMissingParameter     = errors.New("missing parameter")
	ErrResponseFormat       = errors.New("malformed response")
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
)

// apiErr carries the fields shared by every typed error: the backend's
// human-readable message, the HTTP status that produced it, and the raw
// response text when the body wasn't parseable JSON (a 500 is often HTML).
type apiErr struct {
	Message    string
	StatusCode int
	Raw        string
	kind       error
}

func (e *apiErr) Error() string {
	if e.Message == "" {
		return e.kind.Error()
	}
	return fmt.Sprintf("%v: %s", e.kind, e.Message)
}

func (e *apiErr) Unwrap() []error { return []error{e.kind, ErrAPI} }

// ConfigurationError reports an environment name that is not in the
// product's environment table. It is returned at construction time,
// never deferred to the first call.
type ConfigurationError struct {
	apiErr
	Environment string
	Valid       []string
}

func newConfigurationError(environment string, valid []string) *ConfigurationError {
	return &ConfigurationError{
		apiErr: apiErr{
			Message: fmt.Sprintf("invalid environment %q, options are %s",
				environment, strings.Join(valid, ", ")),
			kind: ErrConfiguration,
		},
		Environment: environment,
		Valid:       valid,
	}
}

// BadRequestError corresponds to HTTP 400.
type BadRequestError struct{ apiErr }

// UnauthorizedError corresponds to HTTP 401.
type UnauthorizedError struct{ apiErr }

// ForbiddenError corresponds to HTTP 403, unless the body signals
// wrong_credentials, which is reserved for login-level handling.
type ForbiddenError struct{ apiErr }

// NotFoundError corresponds to HTTP 404. Download polling treats it
// as "not ready yet" rather than a fatal condition.
type NotFoundError struct{ apiErr }

// InternalAPIError corresponds to HTTP 500. Message falls back to the
// raw response text, since a 500 frequently carries a non-JSON body.
type InternalAPIError struct{ apiErr }

// ProviderUnavailableError corresponds to HTTP 503: the provider being
// aggregated (the bank, the tax authority) is unreachable, as opposed
// to the API backend itself failing.
type ProviderUnavailableError struct{ apiErr }

// WrongCredentialsError is raised by login methods when the backend
// rejects the supplied credentials. It is an expected outcome the
// caller should handle by prompting for re-entry, which is why it is
// kept distinct from UnauthorizedError.
type WrongCredentialsError struct{ apiErr }

// InvalidSessionKeyError reports a stale or unknown session key.
type InvalidSessionKeyError struct{ apiErr }

// InvalidParameterError reports caller-supplied values the backend (or
// local validation) rejected. Fields names the offending parameters so
// callers can branch programmatically instead of parsing the message.
type InvalidParameterError struct {
	apiErr
	Fields []string
}

// MissingParameterError reports required parameters that were absent.
type MissingParameterError struct {
	apiErr
	Fields []string
}

// ResponseFormatError reports a response body that did not match the
// endpoint's documented schema. Fields lists the missing or mistyped
// fields found at the parse boundary.
type ResponseFormatError struct {
	apiErr
	Fields []string
}

// UnexpectedStatusError is returned when a response carries a status
// code that none of the classification tiers recognize, for example a
// non-2xx status on a raw file download.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() []error { return []error{e.Err, ErrAPI} }

// NewWrongCredentialsError builds the login-level credential rejection
// error from the backend's message. Exposed for product sub-clients,
// which detect the wrong_credentials signal in their own login flows.
func NewWrongCredentialsError(message string) *WrongCredentialsError {
	return &WrongCredentialsError{apiErr{Message: message, kind: ErrWrongCredentials}}
}

// NewInvalidParameterError builds a caller-input rejection carrying the
// offending field names.
func NewInvalidParameterError(message string, fields []string) *InvalidParameterError {
	return &InvalidParameterError{
		apiErr: apiErr{Message: message, kind: ErrInvalidParameter},
		Fields: fields,
	}
}

// NewMissingParameterError builds a missing-input rejection carrying the
// absent field names.
func NewMissingParameterError(message string, fields []string) *MissingParameterError {
	return &MissingParameterError{
		apiErr: apiErr{Message: message, kind: ErrMissingParameter},
		Fields: fields,
	}
}
