package banking

import "github.com/meridianapi/meridian-go/rest"

// BankClient is one of the sub-accounts a multi-client provider login
// exposes for selection.
type BankClient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Account is a bank account visible to a session.
type Account struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name"`
	Number   string  `json:"number" validate:"required"`
	Branch   string  `json:"branch"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

// Movement is one account or credit-card movement.
type Movement struct {
	ID        int64     `json:"id" validate:"required"`
	Reference string    `json:"reference"`
	Date      rest.Date `json:"date"`
	Detail    string    `json:"detail"`
	Debit     float64   `json:"debit"`
	Credit    float64   `json:"credit"`
}

// CreditCard is a credit card visible to a session.
type CreditCard struct {
	ID            string    `json:"id" validate:"required"`
	Name          string    `json:"name"`
	Number        string    `json:"number" validate:"required"`
	CloseDate     rest.Date `json:"close_date"`
	DueDate       rest.Date `json:"due_date"`
	BalanceLocal  float64   `json:"balance_local"`
	BalanceDollar float64   `json:"balance_dollar"`
}

// Provider is a banking provider available for login.
type Provider struct {
	Code    string `json:"code" validate:"required"`
	Country string `json:"country"`
	Name    string `json:"name"`
}

// AuthField is one credential input a provider's login form requires.
type AuthField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Interactive bool   `json:"interactive"`
	Optional    bool   `json:"optional"`
	LabelEs     string `json:"label_es"`
	LabelEn     string `json:"label_en"`
}

// ProviderDetail describes one provider, including its auth fields.
type ProviderDetail struct {
	Code       string      `json:"code" validate:"required"`
	Country    string      `json:"country"`
	Name       string      `json:"name"`
	AuthFields []AuthField `json:"auth_fields"`
}
