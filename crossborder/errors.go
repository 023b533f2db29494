package crossborder

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/meridianapi/meridian-go/rest"
)

// ErrCrossBorder is the cross-border product's base sentinel. Every
// error raised from a body-level X-code unwraps to it.
var ErrCrossBorder = errors.New("cross-border client error")

// Per-category sentinels, one per documented X-code family. Match with
// errors.Is against the error returned by any client method.
var (
	ErrValidation                  = errors.New("validation error")
	ErrParse                       = errors.New("malformed request")
	ErrUnauthorized                = errors.New("authentication failed")
	ErrPermission                  = errors.New("permission denied")
	ErrNotFound                    = errors.New("resource not found")
	ErrMethodNotAllowed            = errors.New("method not allowed")
	ErrNotAcceptable               = errors.New("not acceptable")
	ErrUnsupportedMediaType        = errors.New("unsupported media type")
	ErrThrottled                   = errors.New("request throttled")
	ErrAPIFailure                  = errors.New("backend failure")
	ErrInvalidAccountFormat        = errors.New("invalid account format")
	ErrInvalidTaxIDFormat          = errors.New("invalid tax id format")
	ErrProviderUnavailable         = errors.New("provider unavailable")
	ErrInvalidFinancialInstitution = errors.New("invalid financial institution")
	ErrInvalidAmount               = errors.New("invalid amount")
	ErrInvalidDate                 = errors.New("invalid date")
	ErrAuthorizationProvider       = errors.New("authorization provider failure")
	ErrInvalidProviderData         = errors.New("invalid provider data")
	ErrAlreadyRefunded             = errors.New("payment already refunded")
	ErrInsufficientAmount          = errors.New("insufficient amount")
	ErrAmountExceedsOriginal       = errors.New("amount exceeds original payment")
	ErrCannotBeRefunded            = errors.New("payment cannot be refunded")
	ErrAccountDataMismatch         = errors.New("account data does not match")
	ErrInvalidAccount              = errors.New("invalid account")
	ErrInvalidQuote                = errors.New("invalid quote")
	ErrQuoteAlreadyUsed            = errors.New("quote already used")
	ErrInvalidQuoteAmount          = errors.New("invalid quote amount")
	ErrInvalidQuoteCurrency        = errors.New("quote currency rate not found")
	ErrCurrencyPairNotAvailable    = errors.New("currency pair not available")
)

// CodeError is the typed form of one documented body-level failure
// code. Code is the wire code (X1002 and up), Type the backend's
// category string.
type CodeError struct {
	Code    string
	Type    string
	Message string

	kind error
}

func (e *CodeError) Error() string {
	if e.Message == "" {
		return e.Code + ": " + e.kind.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *CodeError) Unwrap() []error { return []error{e.kind, ErrCrossBorder, rest.ErrAPI} }

// ValidationItem is one rejected field of an X1001 response. Detail is
// either a list of messages or a map of subfield to messages; it is
// kept raw and flattened on demand.
type ValidationItem struct {
	FieldName string          `json:"field_name"`
	Detail    json.RawMessage `json:"error_detail"`
}

// ValidationError is the X1001 failure: the backend rejected the
// request payload field by field.
type ValidationError struct {
	Items []ValidationItem
}

func newValidationError(r *rest.Response) error {
	verr := &ValidationError{}
	// Decode failure leaves Items empty; the error still reports the
	// validation category.
	_ = json.Unmarshal([]byte(r.JSON.Get("description").Raw), &verr.Items)

	return verr
}

func (e *ValidationError) Error() string {
	details := e.Details()
	if len(details) == 0 {
		return "X1001: " + ErrValidation.Error()
	}
	return "X1001: " + ErrValidation.Error() + ": " + strings.Join(details, "; ")
}

// Details flattens every rejection into "field: message" lines, with
// subfields rendered as "field.subfield: message".
func (e *ValidationError) Details() []string {
	var details []string
	for _, item := range e.Items {
		field := item.FieldName
		if field == "" {
			field = "unknown_field"
		}

		var bySubfield map[string][]string
		if err := json.Unmarshal(item.Detail, &bySubfield); err == nil {
			for subfield, messages := range bySubfield {
				for _, msg := range messages {
					details = append(details, field+"."+subfield+": "+msg)
				}
			}
			continue
		}

		var messages []string
		if err := json.Unmarshal(item.Detail, &messages); err == nil {
			for _, msg := range messages {
				details = append(details, field+": "+msg)
			}
			continue
		}

		var msg string
		if err := json.Unmarshal(item.Detail, &msg); err == nil {
			details = append(details, field+": "+msg)
		}
	}
	sort.Strings(details)

	return details
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, ErrCrossBorder, rest.ErrAPI}
}

// ClientError covers a body-level code with no documented mapping.
type ClientError struct {
	Code    string
	Message string
}

func (e *ClientError) Error() string {
	if e.Message == "" {
		return e.Code + ": " + ErrCrossBorder.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *ClientError) Unwrap() []error { return []error{ErrCrossBorder, rest.ErrAPI} }
