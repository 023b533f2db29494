package crossborder

import "github.com/meridianapi/meridian-go/rest"

// codes is the documented X-code table. X1xxx codes mirror transport
// failures the backend reports in-body; X2xxx codes are domain
// rejections. X1001 carries structured per-field detail instead of a
// plain message.
var codes = rest.CodeMap{
	"X1001": func(_ string, r *rest.Response) error { return newValidationError(r) },
	"X1002": codeError("X1002", "parse_error", ErrParse),
	"X1003": codeError("X1003", "authentication_error", ErrUnauthorized),
	"X1004": codeError("X1004", "permission_denied", ErrPermission),
	"X1005": codeError("X1005", "not_found", ErrNotFound),
	"X1006": codeError("X1006", "method_not_allowed", ErrMethodNotAllowed),
	"X1007": codeError("X1007", "not_acceptable", ErrNotAcceptable),
	"X1008": codeError("X1008", "unsupported_media_type", ErrUnsupportedMediaType),
	"X1009": codeError("X1009", "throttling_error", ErrThrottled),
	"X1010": codeError("X1010", "api_error", ErrAPIFailure),
	"X2002": codeError("X2002", "invalid_account_type", ErrInvalidAccountFormat),
	"X2003": codeError("X2003", "invalid_tax_id_format", ErrInvalidTaxIDFormat),
	"X2004": codeError("X2004", "provider_unavailable", ErrProviderUnavailable),
	"X2005": codeError("X2005", "invalid_financial_institution", ErrInvalidFinancialInstitution),
	"X2006": codeError("X2006", "invalid_amount", ErrInvalidAmount),
	"X2007": codeError("X2007", "invalid_date", ErrInvalidDate),
	"X2008": codeError("X2008", "provider_unavailable", ErrAuthorizationProvider),
	"X2009": codeError("X2009", "invalid_provider_data", ErrInvalidProviderData),
	"X2010": codeError("X2010", "payment_already_refunded", ErrAlreadyRefunded),
	"X2011": codeError("X2011", "insufficient_amount", ErrInsufficientAmount),
	"X2012": codeError("X2012", "payment_amount_exceeds_original", ErrAmountExceedsOriginal),
	"X2013": codeError("X2013", "payment_cannot_be_refunded", ErrCannotBeRefunded),
	"X2014": codeError("X2014", "account_data_not_match", ErrAccountDataMismatch),
	"X2015": codeError("X2015", "invalid_account", ErrInvalidAccount),
	"X2020": codeError("X2020", "invalid_quote", ErrInvalidQuote),
	"X2021": codeError("X2021", "quote_already_used", ErrQuoteAlreadyUsed),
	"X2031": codeError("X2031", "invalid_amount", ErrInvalidQuoteAmount),
	"X2032": codeError("X2032", "fx_rate_not_found", ErrInvalidQuoteCurrency),
	"X2033": codeError("X2033", "pricing_rule_not_found", ErrCurrencyPairNotAvailable),
}

func codeError(code, typ string, kind error) rest.ErrorFactory {
	return func(message string, _ *rest.Response) error {
		return &CodeError{Code: code, Type: typ, Message: message, kind: kind}
	}
}

// refineCodes maps the body-level code to its typed error. An unmapped
// non-empty code still fails, as *ClientError; silence means the body
// carried no code at all.
func refineCodes(r *rest.Response) error {
	if err := codes.Hook("code", "message")(r); err != nil {
		return err
	}

	if code := r.JSON.Get("code").String(); code != "" {
		return &ClientError{Code: code, Message: r.JSON.Get("message").String()}
	}

	return nil
}
