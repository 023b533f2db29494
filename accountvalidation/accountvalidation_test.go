package accountvalidation_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/meridianapi/meridian-go/accountvalidation"
	"github.com/meridianapi/meridian-go/rest"
)

func newTestClient(t *testing.T, handler http.Handler) *accountvalidation.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := accountvalidation.New("test-key", "sandbox", rest.WithBaseURL(ts.URL))
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	return c
}

func TestValidate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("account_number"); got != "00112233" {
			t.Errorf("unexpected account number %q", got)
		}
		if got := r.PostForm.Get("country_code"); got != "PE" {
			t.Errorf("unexpected country code %q", got)
		}
		if r.PostForm.Has("branch_code") {
			t.Error("expected the empty branch code to be stripped")
		}
		io.WriteString(w, `{"data": {
			"valid": true, "message": "The account is valid",
			"account_number": "00112233", "bank_code": "002", "country_code": "PE",
			"beneficiary_name": "JUAN PEREZ", "account_currency": "PEN",
			"account_type": "SAVINGS"
		}}`)
	}))

	data, err := c.Validate(context.Background(), accountvalidation.ValidationRequest{
		AccountNumber: "00112233",
		CountryCode:   accountvalidation.Peru,
		BankCode:      "002",
	})
	if err != nil {
		t.Fatalf("validating account: %v", err)
	}
	if !data.Valid || data.BeneficiaryName != "JUAN PEREZ" {
		t.Errorf("unexpected account data: %+v", data)
	}

	// A single currency string decodes into the one-element list.
	if diff := cmp.Diff(accountvalidation.Currencies{"PEN"}, data.AccountCurrency); diff != "" {
		t.Errorf("currency mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_CurrencyList(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {
			"valid": true, "account_number": "1", "country_code": "UY",
			"account_currency": ["UYU", "USD"]
		}}`)
	}))

	data, err := c.Validate(context.Background(), accountvalidation.ValidationRequest{
		AccountNumber: "1",
		CountryCode:   accountvalidation.Uruguay,
	})
	if err != nil {
		t.Fatalf("validating account: %v", err)
	}
	if diff := cmp.Diff(accountvalidation.Currencies{"UYU", "USD"}, data.AccountCurrency); diff != "" {
		t.Errorf("currency mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_OutcomeCodes(t *testing.T) {
	tests := []struct {
		name       string
		httpStatus int
		code       string
		sentinel   error
	}{
		{"invalid account", http.StatusOK, "404", accountvalidation.ErrInvalidAccount},
		{"invalid account on http 404", http.StatusNotFound, "404", accountvalidation.ErrInvalidAccount},
		{"pending", http.StatusOK, "202", accountvalidation.ErrPendingValidation},
		{"communication", http.StatusOK, "503", accountvalidation.ErrCommunication},
		{"method not available", http.StatusOK, "512", accountvalidation.ErrMethodNotAvailable},
		{"bank provider down", http.StatusOK, "513", accountvalidation.ErrBankProviderUnavailable},
		{"country not available", http.StatusOK, "514", accountvalidation.ErrCountryNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.httpStatus)
				io.WriteString(w, `{"errors": {"code": `+tt.code+`, "message": "outcome"}}`)
			}))

			_, err := c.Validate(context.Background(), accountvalidation.ValidationRequest{
				AccountNumber: "1",
				CountryCode:   accountvalidation.TestCountry,
			})
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("expected %v, got: %v", tt.sentinel, err)
			}
			if !errors.Is(err, accountvalidation.ErrAccountValidation) || !errors.Is(err, rest.ErrAPI) {
				t.Error("expected the error to match the product and root sentinels")
			}
		})
	}
}

func TestValidate_ParameterMessages(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		sentinel error
		fields   []string
	}{
		{
			"invalid single",
			"Invalid parameter: bank_code",
			rest.ErrInvalidParameter,
			[]string{"bank_code"},
		},
		{
			"missing several",
			"Missing parameter: document_type, document_number. Required for this country",
			rest.ErrMissingParameter,
			[]string{"document_type", "document_number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"errors": {"code": 400, "message": "`+tt.message+`"}}`)
			}))

			_, err := c.Validate(context.Background(), accountvalidation.ValidationRequest{
				AccountNumber: "1",
				CountryCode:   accountvalidation.TestCountry,
			})
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("expected %v, got: %v", tt.sentinel, err)
			}

			var fields []string
			switch {
			case tt.sentinel == rest.ErrInvalidParameter:
				var paramErr *rest.InvalidParameterError
				if !errors.As(err, &paramErr) {
					t.Fatalf("expected *rest.InvalidParameterError, got %T", err)
				}
				fields = paramErr.Fields
			default:
				var paramErr *rest.MissingParameterError
				if !errors.As(err, &paramErr) {
					t.Fatalf("expected *rest.MissingParameterError, got %T", err)
				}
				fields = paramErr.Fields
			}

			if diff := cmp.Diff(tt.fields, fields); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_ForeignCurrencyAccount(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"errors": {"code": 400, "message": "Cuenta credito en otra divisa"}}`)
	}))

	_, err := c.Validate(context.Background(), accountvalidation.ValidationRequest{
		AccountNumber: "1",
		CountryCode:   accountvalidation.Chile,
	})
	if !errors.Is(err, accountvalidation.ErrInvalidCurrencyAccount) {
		t.Fatalf("expected ErrInvalidCurrencyAccount, got: %v", err)
	}
}

func TestValidate_LocalValidation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued for invalid input")
	}))

	_, err := c.Validate(context.Background(), accountvalidation.ValidationRequest{CountryCode: "PERU"})
	if !errors.Is(err, rest.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got: %v", err)
	}
}

func TestAccountTypesByCountry_ContainCommonSubset(t *testing.T) {
	for country, types := range accountvalidation.AccountTypesByCountry {
		accepted := make(map[accountvalidation.AccountType]bool, len(types))
		for _, at := range types {
			accepted[at] = true
		}
		for _, common := range accountvalidation.CommonAccountTypes {
			if !accepted[common] {
				t.Errorf("country %s is missing common account type %s", country, common)
			}
		}
	}
}
