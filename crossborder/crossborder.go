// Package crossborder wraps the cross-border transfer product:
// customers and their withdrawal accounts, FX quotes, pay-in intents
// with refunds, payout transfers, and local settlement accounts. The
// product is session-less; failures are signaled by body-level X-codes
// mapped through the package code table.
//
// Paths are resolved relative to the environment base URL, which
// carries the API version prefix.
package crossborder

import (
	"context"
	"net/http"
	"net/url"

	"github.com/meridianapi/meridian-go/rest"
)

const (
	productionURL = "https://crossborder.secure.meridianapi.com/v1/"
	sandboxURL    = "https://crossborder-api.sandbox.meridianapi.com/"
	betaURL       = "https://crossborder.beta.meridianapi.com/v1/"
)

// Environments is the closed environment table of the cross-border
// product. The custom entry requires rest.WithBaseURL at construction.
var Environments = rest.Environments{
	"production":   productionURL,
	"sandbox":      sandboxURL,
	"beta":         betaURL,
	rest.EnvCustom: "",
}

// Client is the cross-border sub-client.
type Client struct {
	rest *rest.Client
}

// New builds a cross-border client.
func New(apiKey, environment string, opts ...rest.Option) (*Client, error) {
	opts = append(opts, rest.WithErrorHook(refineCodes))
	rc, err := rest.New(apiKey, environment, Environments, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{rest: rc}, nil
}

// Rest exposes the underlying dispatcher.
func (c *Client) Rest() *rest.Client { return c.rest }

// CreateIntent registers a pay-in intent.
func (c *Client) CreateIntent(ctx context.Context, intent IntentRequest) (*IntentResponse, error) {
	if err := rest.ValidateInput(intent); err != nil {
		return nil, err
	}

	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "payin/intent", rest.WithJSONBody(intent))
	if err != nil {
		return nil, err
	}

	var created IntentResponse
	if err := resp.Decode(&created); err != nil {
		return nil, err
	}

	return &created, nil
}

// CreateIntentAsync is the non-blocking entry point over CreateIntent.
func (c *Client) CreateIntentAsync(ctx context.Context, intent IntentRequest) *rest.Promise[*IntentResponse] {
	return rest.Async(ctx, func(ctx context.Context) (*IntentResponse, error) {
		return c.CreateIntent(ctx, intent)
	})
}

// ListIntents lists pay-in intents.
func (c *Client) ListIntents(ctx context.Context) ([]Intent, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "payin/intent")
	if err != nil {
		return nil, err
	}

	var intents []Intent
	if err := resp.DecodeAt("results", &intents); err != nil {
		return nil, err
	}

	return intents, nil
}

// GetIntent fetches one pay-in intent with its event history.
func (c *Client) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "payin/intent/"+url.PathEscape(intentID))
	if err != nil {
		return nil, err
	}

	var intent Intent
	if err := resp.Decode(&intent); err != nil {
		return nil, err
	}

	return &intent, nil
}

// RefundIntent refunds a settled pay-in, fully or partially.
func (c *Client) RefundIntent(ctx context.Context, refund RefundRequest) (*PayoutResponse, error) {
	if err := rest.ValidateInput(refund); err != nil {
		return nil, err
	}

	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "payin/refund", rest.WithJSONBody(refund))
	if err != nil {
		return nil, err
	}

	var payout PayoutResponse
	if err := resp.Decode(&payout); err != nil {
		return nil, err
	}

	return &payout, nil
}

// CreateQuote prices an FX exchange. The quote is single-use.
func (c *Client) CreateQuote(ctx context.Context, quote QuoteRequest) (*Quote, error) {
	if err := rest.ValidateInput(quote); err != nil {
		return nil, err
	}

	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "fx/exchange", rest.WithJSONBody(quote))
	if err != nil {
		return nil, err
	}

	var priced Quote
	if err := resp.Decode(&priced); err != nil {
		return nil, err
	}

	return &priced, nil
}

// CreatePayout creates a payout transfer.
func (c *Client) CreatePayout(ctx context.Context, payout PayoutRequest) (*PayoutResponse, error) {
	if err := rest.ValidateInput(payout); err != nil {
		return nil, err
	}

	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "payout/transfer", rest.WithJSONBody(payout))
	if err != nil {
		return nil, err
	}

	var created PayoutResponse
	if err := resp.Decode(&created); err != nil {
		return nil, err
	}

	return &created, nil
}

// CreatePayoutAsync is the non-blocking entry point over CreatePayout.
func (c *Client) CreatePayoutAsync(ctx context.Context, payout PayoutRequest) *rest.Promise[*PayoutResponse] {
	return rest.Async(ctx, func(ctx context.Context) (*PayoutResponse, error) {
		return c.CreatePayout(ctx, payout)
	})
}

// GetPayout fetches one payout with its event history.
func (c *Client) GetPayout(ctx context.Context, payoutID string) (*PayoutTransfer, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "payout/transfer/"+url.PathEscape(payoutID))
	if err != nil {
		return nil, err
	}

	var payout PayoutTransfer
	if err := resp.Decode(&payout); err != nil {
		return nil, err
	}

	return &payout, nil
}

// ListPayouts lists payout transfers.
func (c *Client) ListPayouts(ctx context.Context) ([]PayoutTransfer, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "payout/transfer")
	if err != nil {
		return nil, err
	}

	var payouts []PayoutTransfer
	if err := resp.DecodeAt("results", &payouts); err != nil {
		return nil, err
	}

	return payouts, nil
}

// CreateCustomer registers a customer.
func (c *Client) CreateCustomer(ctx context.Context, customer CustomerInput) (*CustomerResponse, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "customer", rest.WithJSONBody(customer))
	if err != nil {
		return nil, err
	}

	var created CustomerResponse
	if err := resp.Decode(&created); err != nil {
		return nil, err
	}

	return &created, nil
}

// GetCustomer fetches one customer record.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*CustomerResponse, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "customer/"+url.PathEscape(customerID))
	if err != nil {
		return nil, err
	}

	var customer CustomerResponse
	if err := resp.Decode(&customer); err != nil {
		return nil, err
	}

	return &customer, nil
}

// ListCustomers lists customers. filter carries backend-defined query
// parameters and may be nil.
func (c *Client) ListCustomers(ctx context.Context, filter rest.Params) ([]Customer, error) {
	var opts []rest.RequestOption
	if len(filter) > 0 {
		opts = append(opts, rest.WithQuery(filter))
	}

	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "customer", opts...)
	if err != nil {
		return nil, err
	}

	var customers []Customer
	if err := resp.DecodeAt("results", &customers); err != nil {
		return nil, err
	}

	return customers, nil
}

// UpdateCustomer patches a customer record.
func (c *Client) UpdateCustomer(ctx context.Context, customerID string, customer CustomerInput) (*CustomerResponse, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodPatch, "customer/"+url.PathEscape(customerID), rest.WithJSONBody(customer))
	if err != nil {
		return nil, err
	}

	var updated CustomerResponse
	if err := resp.Decode(&updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// AddWithdrawalAccount registers a payout destination on a customer.
func (c *Client) AddWithdrawalAccount(ctx context.Context, customerID string, account WithdrawalAccountInput) (*CustomerResponse, error) {
	if err := rest.ValidateInput(account); err != nil {
		return nil, err
	}

	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "customer/"+url.PathEscape(customerID)+"/withdrawal_account", rest.WithJSONBody(account))
	if err != nil {
		return nil, err
	}

	var customer CustomerResponse
	if err := resp.Decode(&customer); err != nil {
		return nil, err
	}

	return &customer, nil
}

// SelectWithdrawalAccount marks one withdrawal account as the active
// payout destination.
func (c *Client) SelectWithdrawalAccount(ctx context.Context, customerID, accountID string) (*WithdrawalAccount, error) {
	path := "customer/" + url.PathEscape(customerID) + "/withdrawal_account/" + url.PathEscape(accountID) + "/select"
	resp, err := c.rest.CallAPI(ctx, http.MethodPost, path)
	if err != nil {
		return nil, err
	}

	var account WithdrawalAccount
	if err := resp.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

// GetAccounts lists the merchant's local settlement accounts.
func (c *Client) GetAccounts(ctx context.Context) ([]Account, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "account")
	if err != nil {
		return nil, err
	}

	var accounts []Account
	if err := resp.Decode(&accounts); err != nil {
		return nil, err
	}

	return accounts, nil
}

// GetAccount fetches one local settlement account.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "account/"+url.PathEscape(accountID))
	if err != nil {
		return nil, err
	}

	var account Account
	if err := resp.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

// GetAccountTransactions lists the movements of a local settlement
// account.
func (c *Client) GetAccountTransactions(ctx context.Context, accountID string) ([]Transaction, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "account/"+url.PathEscape(accountID)+"/transactions")
	if err != nil {
		return nil, err
	}

	var transactions []Transaction
	if err := resp.DecodeAt("results", &transactions); err != nil {
		return nil, err
	}

	return transactions, nil
}
