package accountvalidation

import "encoding/json"

// Currencies is the currency set of a validated account. Some banks
// report a single currency string, others a list; both decode into the
// same slice.
type Currencies []string

func (c *Currencies) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*c = Currencies{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = many

	return nil
}

// AccountData is the confirmed account record of a successful
// validation.
type AccountData struct {
	Valid           bool       `json:"valid"`
	Message         string     `json:"message"`
	AccountNumber   string     `json:"account_number"`
	BankCode        string     `json:"bank_code"`
	CountryCode     string     `json:"country_code"`
	BranchCode      string     `json:"branch_code"`
	DocumentType    string     `json:"document_type"`
	DocumentNumber  string     `json:"document_number"`
	BeneficiaryName string     `json:"beneficiary_name"`
	AccountCurrency Currencies `json:"account_currency"`
	AccountType     string     `json:"account_type"`
}
