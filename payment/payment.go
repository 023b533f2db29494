// Package payment wraps the payment-intent product. Intents are
// created against a checkout widget and later inspected for their
// transaction history. The product is session-less.
package payment

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/meridianapi/meridian-go/rest"
)

const productionURL = "https://payment.meridianapi.com"

// Environments is the closed environment table of the payment product.
// Only production exists.
var Environments = rest.Environments{
	"production": productionURL,
}

// Client is the payment sub-client.
type Client struct {
	rest *rest.Client
}

// New builds a payment client. Validation failures arrive as a 400
// whose body maps field names to their rejections; the hook turns the
// first of them into an *InvalidParameterError.
func New(apiKey, environment string, opts ...rest.Option) (*Client, error) {
	opts = append(opts, rest.WithErrorHook(refineParameterErrors))
	rc, err := rest.New(apiKey, environment, Environments, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{rest: rc}, nil
}

func refineParameterErrors(r *rest.Response) error {
	if r.StatusCode != http.StatusBadRequest || r.JSON.Get("message").Exists() {
		return nil
	}

	var hookErr error
	r.JSON.ForEach(func(key, value gjson.Result) bool {
		hookErr = newInvalidParameterError(key.String(), value.String())
		return false
	})

	return hookErr
}

// Rest exposes the underlying dispatcher.
func (c *Client) Rest() *rest.Client { return c.rest }

// IntentRequest describes a payment intent to be created. ExternalID
// defaults to a fresh UUID when left empty. BankCodes narrows the
// banks the widget offers; nil means all of them.
type IntentRequest struct {
	WidgetID   string   `json:"product_id"  validate:"required"`
	Currency   string   `json:"currency"    validate:"required,len=3"`
	Amount     string   `json:"amount"      validate:"required"`
	ExternalID string   `json:"external_id"`
	Concept    string   `json:"concept"`
	BankCodes  []string `json:"bank_codes"`
}

// CreateIntent registers a payment intent and returns its identity.
func (c *Client) CreateIntent(ctx context.Context, intent IntentRequest) (*CreateIntentResponse, error) {
	if err := rest.ValidateInput(intent); err != nil {
		return nil, err
	}
	if intent.ExternalID == "" {
		intent.ExternalID = uuid.NewString()
	}

	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "/api/v1/payment-intent/", rest.WithJSONBody(rest.Params{
		"product_id":   intent.WidgetID,
		"product_type": "widget",
		"currency":     intent.Currency,
		"amount":       intent.Amount,
		"external_id":  intent.ExternalID,
		"concept":      intent.Concept,
		"bank_codes":   intent.BankCodes,
	}))
	if err != nil {
		return nil, err
	}

	var created CreateIntentResponse
	if err := resp.Decode(&created); err != nil {
		return nil, err
	}

	return &created, nil
}

// CreateIntentAsync is the non-blocking entry point over CreateIntent.
func (c *Client) CreateIntentAsync(ctx context.Context, intent IntentRequest) *rest.Promise[*CreateIntentResponse] {
	return rest.Async(ctx, func(ctx context.Context) (*CreateIntentResponse, error) {
		return c.CreateIntent(ctx, intent)
	})
}

// GetIntent fetches an intent's transaction data and status history.
func (c *Client) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/api/v1/payment-intent/"+url.PathEscape(intentID))
	if err != nil {
		return nil, err
	}

	var intent PaymentIntent
	if err := resp.Decode(&intent); err != nil {
		return nil, err
	}

	return &intent, nil
}

// GetIntentAsync is the non-blocking entry point over GetIntent.
func (c *Client) GetIntentAsync(ctx context.Context, intentID string) *rest.Promise[*PaymentIntent] {
	return rest.Async(ctx, func(ctx context.Context) (*PaymentIntent, error) {
		return c.GetIntent(ctx, intentID)
	})
}
