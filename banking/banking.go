// Package banking wraps the banking aggregation product: provider
// login flows (including interactive challenges and multi-client
// accounts), account and credit-card listings, and movement queries.
package banking

import (
	"context"
	"fmt"
	"net/http"

	"github.com/meridianapi/meridian-go/rest"
)

const (
	testingURL    = "https://test.banking.meridianapi.com"
	productionURL = "https://banking.meridianapi.com"
)

// Environments is the closed environment table of the banking product.
var Environments = rest.Environments{
	"testing":    testingURL,
	"production": productionURL,
}

// Client is the banking sub-client. Session keys travel as the `key`
// query or form parameter, the convention of this API generation.
type Client struct {
	rest *rest.Client
}

// New builds a banking client for the given credentials and
// environment name.
func New(apiKey, environment string, opts ...rest.Option) (*Client, error) {
	rc, err := rest.New(apiKey, environment, Environments, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{rest: rc}, nil
}

// Rest exposes the underlying dispatcher, mainly for raw-responses
// callers and tests.
func (c *Client) Rest() *rest.Client { return c.rest }

// Login authenticates against a banking provider. The returned session
// is in one of three states: logged in, select-client (the caller must
// pick a sub-account before other operations), or interaction-required
// (the backend demands a challenge answer; see Session.FinishLogin).
// A credential rejection returns *rest.WrongCredentialsError instead
// of a session.
func (c *Client) Login(ctx context.Context, provider, username, password string) (*Session, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "/login/", rest.WithForm(rest.Params{
		"provider": provider,
		"username": username,
		"password": password,
	}))
	if err != nil {
		return nil, err
	}

	status := rest.Status(resp.JSON.Get("status").String())
	switch status {
	case rest.StatusLoggedIn, rest.StatusSelectClient:
		return c.newSession(status, resp.JSON.Get("key").String(), "", ""), nil
	case rest.StatusInteractionRequired:
		return c.newSession(
			status,
			resp.JSON.Get("key").String(),
			resp.JSON.Get("context").String(),
			resp.JSON.Get("field").String(),
		), nil
	case rest.StatusWrongCredentials:
		return nil, rest.NewWrongCredentialsError(resp.JSON.Get("message").String())
	default:
		return nil, newClientError(resp.JSON.Get("message").String())
	}
}

// LoginAsync is the non-blocking entry point over Login.
func (c *Client) LoginAsync(ctx context.Context, provider, username, password string) *rest.Promise[*Session] {
	return rest.Async(ctx, func(ctx context.Context) (*Session, error) {
		return c.Login(ctx, provider, username, password)
	})
}

// RestoreSession reattaches to a previously established session key
// without validating it; a stale key fails on the first call.
func (c *Client) RestoreSession(key string) *Session {
	return &Session{Session: rest.RestoreSession(c.rest, key), client: c}
}

// NewSession returns an empty session bound to this client, for
// callers that drive the login flow themselves.
func (c *Client) NewSession() *Session {
	return &Session{Session: rest.NewSession(c.rest, "", ""), client: c}
}

// Logout invalidates the session key server-side.
func (c *Client) Logout(ctx context.Context, sessionKey string) error {
	_, err := c.rest.CallAPI(ctx, http.MethodGet, "/logout/", rest.WithQuery(rest.Params{
		"key": sessionKey,
	}))

	return err
}

// GetClients lists the sub-accounts available to a select-client
// session. The wire shape is a map of id to display name.
func (c *Client) GetClients(ctx context.Context, sessionKey string) ([]BankClient, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/client/", rest.WithQuery(rest.Params{
		"key": sessionKey,
	}))
	if err != nil {
		return nil, err
	}

	var raw map[string]string
	if err := resp.DecodeAt("clients", &raw); err != nil {
		return nil, err
	}

	clients := make([]BankClient, 0, len(raw))
	for id, name := range raw {
		clients = append(clients, BankClient{ID: id, Name: name})
	}

	return clients, nil
}

// SelectClient picks one of the sub-accounts listed by GetClients,
// completing a select-client login.
func (c *Client) SelectClient(ctx context.Context, sessionKey, clientID string) error {
	_, err := c.rest.CallAPI(ctx, http.MethodGet, fmt.Sprintf("/client/%s/", clientID),
		rest.WithQuery(rest.Params{"key": sessionKey}))

	return err
}

// GetAccounts lists the accounts visible to the session.
func (c *Client) GetAccounts(ctx context.Context, sessionKey string) ([]Account, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/account/", rest.WithQuery(rest.Params{
		"key": sessionKey,
	}))
	if err != nil {
		return nil, err
	}

	var accounts []Account
	if err := resp.DecodeAt("accounts", &accounts); err != nil {
		return nil, err
	}

	return accounts, nil
}

// GetMovements lists an account's movements in the given date range.
func (c *Client) GetMovements(ctx context.Context, sessionKey, accountNumber, currencyCode string, dateStart, dateEnd rest.Date) ([]Movement, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/movement/", rest.WithQuery(rest.Params{
		"key":        sessionKey,
		"account":    accountNumber,
		"currency":   currencyCode,
		"date_start": dateStart,
		"date_end":   dateEnd,
	}))
	if err != nil {
		return nil, err
	}

	var movements []Movement
	if err := resp.DecodeAt("movements", &movements); err != nil {
		return nil, err
	}

	return movements, nil
}

// GetCreditCards lists the credit cards visible to the session.
func (c *Client) GetCreditCards(ctx context.Context, sessionKey string) ([]CreditCard, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/credit-card/", rest.WithQuery(rest.Params{
		"key": sessionKey,
	}))
	if err != nil {
		return nil, err
	}

	var cards []CreditCard
	if err := resp.DecodeAt("credit_cards", &cards); err != nil {
		return nil, err
	}

	return cards, nil
}

// GetCreditCardMovements lists a card's movements in the given
// currency and date range.
func (c *Client) GetCreditCardMovements(ctx context.Context, sessionKey, cardNumber, currencyCode string, dateStart, dateEnd rest.Date) ([]Movement, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, fmt.Sprintf("/credit-card/%s/movements", cardNumber),
		rest.WithQuery(rest.Params{
			"key":        sessionKey,
			"currency":   currencyCode,
			"date_start": dateStart,
			"date_end":   dateEnd,
		}))
	if err != nil {
		return nil, err
	}

	var movements []Movement
	if err := resp.DecodeAt("movements", &movements); err != nil {
		return nil, err
	}

	return movements, nil
}

// GetProviders lists the banking providers available for login.
func (c *Client) GetProviders(ctx context.Context) ([]Provider, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/provider/")
	if err != nil {
		return nil, err
	}

	var providers []Provider
	if err := resp.DecodeAt("providers", &providers); err != nil {
		return nil, err
	}

	return providers, nil
}

// GetProviderDetail describes one provider, including the extra auth
// fields its login form requires.
func (c *Client) GetProviderDetail(ctx context.Context, providerCode string) (*ProviderDetail, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, fmt.Sprintf("/provider/%s/", providerCode))
	if err != nil {
		return nil, err
	}

	var detail ProviderDetail
	if err := resp.DecodeAt("provider", &detail); err != nil {
		return nil, err
	}

	return &detail, nil
}

func (c *Client) newSession(status rest.Status, key, interactiveContext, interactiveField string) *Session {
	return &Session{
		Session:            rest.NewSession(c.rest, status, key),
		client:             c,
		interactiveContext: interactiveContext,
		interactiveField:   interactiveField,
	}
}
