package banking

import (
	"context"
	"net/http"

	"github.com/meridianapi/meridian-go/rest"
)

// Session is one banking login flow. Beyond the base state it carries
// the interactive-challenge prompt and the field name the answer must
// be submitted under, when the backend requested one.
type Session struct {
	rest.Session

	client             *Client
	interactiveContext string
	interactiveField   string
}

// GetInteractiveContext returns the challenge prompt (the personal
// question text, or the OTP instruction) for an interaction-required
// session.
func (s *Session) GetInteractiveContext() string { return s.interactiveContext }

// FinishLogin answers an interactive challenge. The answer is
// submitted under exactly the field name the server supplied, together
// with the session key the first login step issued. On acceptance the
// session advances in place to logged in.
func (s *Session) FinishLogin(ctx context.Context, provider, username, password, answer string) error {
	resp, err := s.client.rest.CallAPI(ctx, http.MethodPost, "/login/", rest.WithForm(rest.Params{
		"provider":         provider,
		"username":         username,
		"password":         password,
		"key":              s.Key(),
		s.interactiveField: answer,
	}))
	if err != nil {
		return err
	}

	status := rest.Status(resp.JSON.Get("status").String())
	switch status {
	case rest.StatusLoggedIn, rest.StatusSelectClient:
		s.Advance(status, resp.JSON.Get("key").String())
		return nil
	case rest.StatusWrongCredentials:
		return rest.NewWrongCredentialsError(resp.JSON.Get("message").String())
	default:
		return newClientError(resp.JSON.Get("message").String())
	}
}

// GetClients lists the sub-accounts available to this session.
func (s *Session) GetClients(ctx context.Context) ([]BankClient, error) {
	return s.client.GetClients(ctx, s.Key())
}

// SelectClient completes a select-client login with one of the entries
// returned by GetClients, advancing the session to logged in.
func (s *Session) SelectClient(ctx context.Context, bankClient BankClient) error {
	if err := s.client.SelectClient(ctx, s.Key(), bankClient.ID); err != nil {
		return err
	}
	s.Advance(rest.StatusLoggedIn, "")

	return nil
}

// GetAccounts lists the session's accounts.
func (s *Session) GetAccounts(ctx context.Context) ([]Account, error) {
	return s.client.GetAccounts(ctx, s.Key())
}

// GetMovements lists an account's movements in the given date range.
func (s *Session) GetMovements(ctx context.Context, account Account, dateStart, dateEnd rest.Date) ([]Movement, error) {
	return s.client.GetMovements(ctx, s.Key(), account.Number, account.Currency, dateStart, dateEnd)
}

// GetCreditCards lists the session's credit cards.
func (s *Session) GetCreditCards(ctx context.Context) ([]CreditCard, error) {
	return s.client.GetCreditCards(ctx, s.Key())
}

// GetCreditCardMovements lists a card's movements in the given
// currency and date range.
func (s *Session) GetCreditCardMovements(ctx context.Context, card CreditCard, currencyCode string, dateStart, dateEnd rest.Date) ([]Movement, error) {
	return s.client.GetCreditCardMovements(ctx, s.Key(), card.Number, currencyCode, dateStart, dateEnd)
}

// Logout invalidates the session key server-side. The local value is
// simply abandoned afterwards.
func (s *Session) Logout(ctx context.Context) error {
	return s.client.Logout(ctx, s.Key())
}
