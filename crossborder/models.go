package crossborder

import (
	"encoding/json"

	"github.com/meridianapi/meridian-go/rest"
)

// TaxIDType is a customer's tax document kind. The accepted values
// depend on the customer's country.
type TaxIDType string

const (
	CNPJ TaxIDType = "cnpj"
	RFC  TaxIDType = "rfc"
	RUC  TaxIDType = "ruc"
	LE   TaxIDType = "le"
	DNI  TaxIDType = "dni"
	LM   TaxIDType = "lm"
	PAS  TaxIDType = "pas"
	CE   TaxIDType = "ce"
)

// PayinState is one state of a pay-in intent's lifecycle.
type PayinState string

const (
	PayinCreated   PayinState = "created"
	PayinInitiated PayinState = "initiated"
	PayinPending   PayinState = "pending"
	PayinRejected  PayinState = "rejected"
	PayinSettled   PayinState = "settled"
	PayinRefunded  PayinState = "refunded"
	PayinCancelled PayinState = "cancelled"
)

// PayoutState is one state of a payout transfer's lifecycle.
type PayoutState string

const (
	PayoutCreated   PayoutState = "created"
	PayoutInitiated PayoutState = "initiated"
	PayoutPending   PayoutState = "pending"
	PayoutConfirmed PayoutState = "confirmed"
	PayoutFailed    PayoutState = "failed"
	PayoutSettled   PayoutState = "settled"
	PayoutCancelled PayoutState = "cancelled"
)

// AccountFormat is the scheme an account number is expressed in.
type AccountFormat string

const (
	CLABE AccountFormat = "clabe"
	IBAN  AccountFormat = "iban"
	CCI   AccountFormat = "cci"
)

// Bank identifies a financial institution.
type Bank struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	BICFI   string `json:"bicfi"`
	Country string `json:"country"`
}

// BankRef is a bank that arrives either as a full record or as a bare
// identifier string, depending on the endpoint.
type BankRef struct {
	Bank

	// Ref is set instead of the embedded record when the wire value
	// was a bare string.
	Ref string
}

func (b *BankRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Ref)
	}
	return json.Unmarshal(data, &b.Bank)
}

// VirtualAccount is a collection account assigned to a customer.
type VirtualAccount struct {
	AccountFormat AccountFormat `json:"account_format"`
	AccountNumber string        `json:"account_number"`
	Name          string        `json:"name"`
	Branch        string        `json:"branch"`
	Bank          *Bank         `json:"bank"`
}

// QRCode is a payment QR assigned to a customer.
type QRCode struct {
	EMVCode      string         `json:"emv_code"`
	Image        string         `json:"img"`
	ExternalLink string         `json:"external_link"`
	ExpireDate   rest.Timestamp `json:"expire_date"`
}

// AccountDetails is a fully identified account on either end of a
// transfer.
type AccountDetails struct {
	AccountNumber string        `json:"account_number"`
	Branch        string        `json:"branch"`
	OwnerName     string        `json:"owner_name"`
	AccountFormat AccountFormat `json:"account_format"`
	TaxIDType     string        `json:"tax_id_type"`
	TaxID         string        `json:"tax_id"`
	Bank          Bank          `json:"bank"`
}

// WithdrawalAccount is a customer's registered payout destination.
type WithdrawalAccount struct {
	ID               string        `json:"id"`
	AccountFormat    AccountFormat `json:"account_format"`
	AccountNumber    string        `json:"account_number"`
	ValidationStatus string        `json:"validation_status"`
	Description      string        `json:"description"`
	Selected         *bool         `json:"selected"`
	Branch           string        `json:"branch"`
	Bank             *BankRef      `json:"bank"`
}

// PayinCustomer is the customer view attached to pay-in records.
type PayinCustomer struct {
	Name           string          `json:"name"`
	TaxIDType      TaxIDType       `json:"tax_id_type"`
	TaxID          string          `json:"tax_id"`
	ExternalID     string          `json:"external_id"`
	VirtualAccount *VirtualAccount `json:"virtual_account"`
	QRCode         *QRCode         `json:"qr_code"`
}

// Customer is a full customer record.
type Customer struct {
	Name               string              `json:"name"`
	TaxIDType          TaxIDType           `json:"tax_id_type"`
	TaxID              string              `json:"tax_id"`
	ExternalID         string              `json:"external_id"`
	WithdrawalAccounts []WithdrawalAccount `json:"withdrawal_account"`
	VirtualAccounts    []VirtualAccount    `json:"virtual_accounts"`
	QRCodes            []QRCode            `json:"qr_codes"`
}

// PayinEvent is one lifecycle transition of a pay-in intent.
type PayinEvent struct {
	State     PayinState     `json:"state"`
	Timestamp rest.Timestamp `json:"timestamp"`
	Message   string         `json:"message"`
}

// PayoutEvent is one lifecycle transition of a payout transfer.
type PayoutEvent struct {
	State     PayoutState    `json:"state"`
	Timestamp rest.Timestamp `json:"timestamp"`
	Message   string         `json:"message"`
}

// Intent is a pay-in intent's full record.
type Intent struct {
	ID          string         `json:"id"`
	ExternalID  string         `json:"external_id"`
	Concept     string         `json:"concept"`
	Currency    string         `json:"currency"`
	Amount      float64        `json:"amount"`
	Reference   string         `json:"reference"`
	Customer    PayinCustomer  `json:"customer"`
	Destination AccountDetails `json:"destination"`
	Events      []PayinEvent   `json:"events"`
}

// IntentResponse is the identity of a freshly created intent.
type IntentResponse struct {
	ID       string        `json:"id"`
	Customer PayinCustomer `json:"customer"`
}

// WithdrawalAccountInput registers a payout destination on a customer.
type WithdrawalAccountInput struct {
	AccountFormat AccountFormat `json:"account_format" validate:"required"`
	AccountNumber string        `json:"account_number" validate:"required"`
	Description   string        `json:"description,omitempty"`
	Selected      bool          `json:"selected"`
	Branch        string        `json:"branch,omitempty"`
	BICFI         string        `json:"bicfi,omitempty"`
}

// CustomerInput creates or updates a customer.
type CustomerInput struct {
	Name              string                  `json:"name,omitempty"`
	TaxIDType         TaxIDType               `json:"tax_id_type,omitempty"`
	TaxID             string                  `json:"tax_id,omitempty"`
	ExternalID        string                  `json:"external_id,omitempty"`
	WithdrawalAccount *WithdrawalAccountInput `json:"withdrawal_account,omitempty"`
}

// CustomerSpec references an existing customer by id or describes a
// new one inline. Exactly one of the two should be set; ID wins.
type CustomerSpec struct {
	ID  string
	New *CustomerInput
}

func (s CustomerSpec) MarshalJSON() ([]byte, error) {
	if s.ID != "" {
		return json.Marshal(s.ID)
	}
	return json.Marshal(s.New)
}

// IntentRequest creates a pay-in intent.
type IntentRequest struct {
	DestinationID string       `json:"destination_id" validate:"required"`
	Concept       string       `json:"concept"        validate:"required"`
	Currency      string       `json:"currency"       validate:"required,len=3"`
	Amount        float64      `json:"amount"         validate:"required,gt=0"`
	ExternalID    string       `json:"external_id"    validate:"required"`
	Customer      CustomerSpec `json:"customer"`
}

// RefundRequest refunds a settled pay-in intent, fully or partially.
type RefundRequest struct {
	IntentID   string  `json:"intent_id"   validate:"required"`
	ExternalID string  `json:"external_id" validate:"required"`
	Amount     float64 `json:"amount"      validate:"required,gt=0"`
}

// PayoutRequest creates a payout transfer from a local account.
type PayoutRequest struct {
	Origin      string       `json:"origin"      validate:"required"`
	Description string       `json:"description" validate:"required"`
	Currency    string       `json:"currency"    validate:"required,len=3"`
	Amount      float64      `json:"amount"      validate:"required,gt=0"`
	ExternalID  string       `json:"external_id" validate:"required"`
	Customer    CustomerSpec `json:"customer"`
}

// PayoutCustomer is the customer view attached to payout records.
type PayoutCustomer struct {
	Name              string            `json:"name"`
	TaxIDType         TaxIDType         `json:"tax_id_type"`
	TaxID             string            `json:"tax_id"`
	ExternalID        string            `json:"external_id"`
	WithdrawalAccount WithdrawalAccount `json:"withdrawal_account"`
}

// PayoutTransfer is a payout's full record.
type PayoutTransfer struct {
	ID        string         `json:"id"`
	Customer  PayoutCustomer `json:"customer"`
	Amount    float64        `json:"amount"`
	Currency  string         `json:"currency"`
	Reference string         `json:"reference"`
	Events    []PayoutEvent  `json:"events"`
}

// PayoutResponse is the identity of a freshly created payout.
type PayoutResponse struct {
	ID       string         `json:"id"`
	Customer PayoutCustomer `json:"customer"`
}

// CustomerAccountDetails is one withdrawal account as listed on a
// customer record.
type CustomerAccountDetails struct {
	ID            string        `json:"id"`
	Selected      *bool         `json:"selected"`
	AccountFormat AccountFormat `json:"account_format"`
	AccountNumber string        `json:"account_number"`
	Branch        string        `json:"branch"`
	Bank          BankRef       `json:"bank"`
}

// CustomerResponse is a customer record as returned by the customer
// endpoints.
type CustomerResponse struct {
	ID                 string                   `json:"id"`
	Name               string                   `json:"name"`
	TaxIDType          TaxIDType                `json:"tax_id_type"`
	TaxID              string                   `json:"tax_id"`
	ExternalID         string                   `json:"external_id"`
	WithdrawalAccounts []CustomerAccountDetails `json:"withdrawal_account"`
	VirtualAccounts    []VirtualAccount         `json:"virtual_account"`
	QRCodes            []QRCode                 `json:"qr_code"`
}

// Account is one of the merchant's local settlement accounts.
type Account struct {
	ID                 string  `json:"id"`
	LocalAccountNumber string  `json:"local_account_number"`
	Balance            float64 `json:"balance"`
	AvailableBalance   float64 `json:"available_balance"`
	Currency           string  `json:"currency"`
	Country            string  `json:"country"`
	Active             bool    `json:"active"`
}

// AccountTransaction is the account side of a transaction endpoint.
type AccountTransaction struct {
	Number string        `json:"number"`
	Format AccountFormat `json:"format"`
}

// TaxInformation is the tax identity on a transaction endpoint.
type TaxInformation struct {
	Type  string `json:"type"`
	TaxID string `json:"tax_id"`
}

// TransactionEndpoint is one side of a settled transaction.
type TransactionEndpoint struct {
	AccountDetails  AccountTransaction `json:"account_details"`
	TaxInformation  TaxInformation     `json:"tax_information"`
	BeneficiaryName string             `json:"beneficiary_name"`
}

// Transaction is one movement on a local settlement account.
type Transaction struct {
	ID          string              `json:"id"`
	Amount      float64             `json:"amount"`
	Timestamp   rest.Timestamp      `json:"timestamp"`
	Detail      string              `json:"detail"`
	Type        string              `json:"type"`
	Reference   string              `json:"reference"`
	State       string              `json:"state"`
	Origin      TransactionEndpoint `json:"origin"`
	Destination TransactionEndpoint `json:"destination"`
}

// QuoteRequest asks for an FX quote on a currency pair.
type QuoteRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Pair   string  `json:"pair"   validate:"required"`
}

// Quote is a priced FX exchange, usable once before it expires.
type Quote struct {
	ID              string         `json:"id"`
	Pair            string         `json:"pair"`
	Rate            float64        `json:"rate"`
	Amount          float64        `json:"amount"`
	ConvertedAmount float64        `json:"converted_amount"`
	ExpiresAt       rest.Timestamp `json:"expires_at"`
}

// VoucherData points at the settlement voucher of a webhook event.
type VoucherData struct {
	KeyTracing string `json:"key_tracing"`
	URL        string `json:"url"`
}

// PayloadError is the failure detail of a rejected webhook event.
type PayloadError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EventPayload is the transfer snapshot carried by a webhook event.
type EventPayload struct {
	ID            string         `json:"id"`
	Amount        float64        `json:"amount"`
	Concept       string         `json:"concept"`
	Currency      string         `json:"currency"`
	IntentID      string         `json:"intent_id"`
	TransactionID string         `json:"transaction_id"`
	ExternalID    string         `json:"external_id"`
	Origin        AccountDetails `json:"origin"`
	Destination   AccountDetails `json:"destination"`
	VoucherData   VoucherData    `json:"voucher_data"`
	Error         *PayloadError  `json:"error"`
}

// Event is one webhook notification.
type Event struct {
	EventType string         `json:"event_type"`
	EventID   string         `json:"event_id"`
	Timestamp rest.Timestamp `json:"timestamp"`
	Payload   EventPayload   `json:"payload"`
}

// WebhookPayload is the body delivered to a merchant webhook endpoint.
type WebhookPayload struct {
	VerifyToken string  `json:"verify_token"`
	Events      []Event `json:"events"`
}
