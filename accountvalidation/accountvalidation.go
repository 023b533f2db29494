// Package accountvalidation wraps the account-validation product: a
// single operation that checks whether a bank account exists and
// matches the supplied owner data. The product is session-less.
// Failure outcomes arrive as numeric codes inside the body's errors
// object, independent of the HTTP status.
package accountvalidation

import (
	"context"
	"net/http"
	"strings"

	"github.com/meridianapi/meridian-go/rest"
)

const (
	productionURL = "https://account-validation.meridianapi.com"
	betaURL       = "https://account-validation.beta.meridianapi.com"
	sandboxURL    = "https://account-validation.sandbox.meridianapi.com"
)

// Environments is the closed environment table of the
// account-validation product.
var Environments = rest.Environments{
	"production": productionURL,
	"beta":       betaURL,
	"sandbox":    sandboxURL,
}

// outcomes maps the documented body-level codes to their typed errors.
// Code 400 is handled separately; its message needs parsing.
var outcomes = rest.CodeMap{
	"202": outcome(202, ErrPendingValidation),
	"404": outcome(404, ErrInvalidAccount),
	"503": outcome(503, ErrCommunication),
	"512": outcome(512, ErrMethodNotAvailable),
	"513": outcome(513, ErrBankProviderUnavailable),
	"514": outcome(514, ErrCountryNotAvailable),
}

func outcome(code int, kind error) rest.ErrorFactory {
	return func(message string, _ *rest.Response) error {
		return &OutcomeError{Code: code, Message: message, kind: kind}
	}
}

func refineOutcomes(r *rest.Response) error {
	code := r.JSON.Get("errors.code")
	if !code.Exists() {
		return nil
	}

	if code.Int() == 400 {
		message := r.JSON.Get("errors.message").String()
		switch {
		case message == "":
			return nil
		case strings.Contains(message, "Invalid"):
			_, fields, _ := parseParameterError(message)
			return rest.NewInvalidParameterError(message, fields)
		case strings.Contains(message, "Missing"):
			_, fields, _ := parseParameterError(message)
			return rest.NewMissingParameterError(message, fields)
		case strings.Contains(message, "Cuenta credito en otra divisa"):
			return &OutcomeError{Code: 400, Message: message, kind: ErrInvalidCurrencyAccount}
		}
		return nil
	}

	return outcomes.Hook("errors.code", "errors.message")(r)
}

// Client is the account-validation sub-client.
type Client struct {
	rest *rest.Client
}

// New builds an account-validation client.
func New(apiKey, environment string, opts ...rest.Option) (*Client, error) {
	opts = append(opts, rest.WithErrorHook(refineOutcomes))
	rc, err := rest.New(apiKey, environment, Environments, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{rest: rc}, nil
}

// Rest exposes the underlying dispatcher.
func (c *Client) Rest() *rest.Client { return c.rest }

// ValidationRequest describes one account to validate. AccountNumber
// and CountryCode are required; the remaining fields narrow the check
// and are omitted from the wire when empty.
type ValidationRequest struct {
	AccountNumber   string      `validate:"required"`
	CountryCode     CountryCode `validate:"required,len=2"`
	BankCode        BankCode
	DocumentNumber  string
	DocumentType    DocumentType
	BranchCode      string
	AccountType     AccountType
	BeneficiaryName string
}

// Validate checks the account against its bank and returns the
// confirmed account data.
func (c *Client) Validate(ctx context.Context, req ValidationRequest) (*AccountData, error) {
	if err := rest.ValidateInput(req); err != nil {
		return nil, err
	}

	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "/validate-account/", rest.WithForm(rest.Params{
		"account_number":   req.AccountNumber,
		"country_code":     req.CountryCode,
		"bank_code":        nullable(string(req.BankCode)),
		"document_number":  nullable(req.DocumentNumber),
		"document_type":    nullable(string(req.DocumentType)),
		"branch_code":      nullable(req.BranchCode),
		"account_type":     nullable(string(req.AccountType)),
		"beneficiary_name": nullable(req.BeneficiaryName),
	}))
	if err != nil {
		return nil, err
	}

	var data AccountData
	if err := resp.DecodeAt("data", &data); err != nil {
		return nil, err
	}

	return &data, nil
}

// ValidateAsync is the non-blocking entry point over Validate.
func (c *Client) ValidateAsync(ctx context.Context, req ValidationRequest) *rest.Promise[*AccountData] {
	return rest.Async(ctx, func(ctx context.Context) (*AccountData, error) {
		return c.Validate(ctx, req)
	})
}

// nullable maps the empty string to a nil parameter so the dispatcher
// strips it from the outgoing body.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
