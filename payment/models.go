package payment

import "github.com/meridianapi/meridian-go/rest"

// CreateIntentResponse is the identity of a freshly created intent.
type CreateIntentResponse struct {
	IntentID   string   `json:"intent_id" validate:"required"`
	ExternalID string   `json:"external_id"`
	Concept    string   `json:"concept"`
	Currency   string   `json:"currency"`
	Amount     string   `json:"amount"`
	Email      string   `json:"email"`
	BankCodes  []string `json:"bank_codes"`
}

// StatusEvent is one entry of an intent's status history.
type StatusEvent struct {
	Status       string         `json:"status"`
	Message      string         `json:"message"`
	ErrorType    string         `json:"error_type"`
	ErrorCode    string         `json:"error_code"`
	ProviderCode string         `json:"provider_code"`
	Timestamp    rest.Timestamp `json:"timestamp"`
}

// Customer is the payer attached to an intent.
type Customer struct {
	Name           string `json:"name"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
}

// PaymentIntent is an intent's full transaction record.
type PaymentIntent struct {
	IntentID      string        `json:"intent_id" validate:"required"`
	ProductID     string        `json:"product_id"`
	ExternalID    string        `json:"external_id"`
	Concept       string        `json:"concept"`
	Currency      string        `json:"currency"`
	Amount        float64       `json:"amount"`
	StatusHistory []StatusEvent `json:"status_history"`
	Customer      *Customer     `json:"customer"`
	CurrentStatus string        `json:"current_status"`
}
