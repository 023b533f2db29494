package dian

import (
	"encoding/json"
	"sort"

	"github.com/meridianapi/meridian-go/rest"
)

// Name is a person's name as the registry splits it.
type Name struct {
	FirstSurname  string `json:"first_surname"`
	SecondSurname string `json:"second_surname"`
	FirstName     string `json:"first_name"`
	OtherNames    string `json:"other_names"`
}

// Accountant is the company's registered accountant.
type Accountant struct {
	Document         string    `json:"document"`
	StartDate        rest.Date `json:"start_date"`
	Name             string    `json:"name"`
	ProfessionalCard string    `json:"professional_card"`
}

// CapitalComposition is the split of the company's capital.
type CapitalComposition struct {
	National        float64 `json:"national"`
	NationalPrivate float64 `json:"national_private"`
	NationalPublic  float64 `json:"national_public"`
	Foreign         float64 `json:"foreign"`
	ForeignPrivate  float64 `json:"foreign_private"`
	ForeignPublic   float64 `json:"foreign_public"`
}

// Location is the company's registered address and contact points.
type Location struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	Phone1     string `json:"phone1"`
	Phone2     string `json:"phone2"`
	Department string `json:"department"`
	Address    string `json:"address"`
	Email      string `json:"email"`
}

// Representative is one legal representative of the company.
type Representative struct {
	Document           string    `json:"document"`
	DocumentType       string    `json:"document_type"`
	Name               Name      `json:"name"`
	RepresentationType string    `json:"representation_type"`
	StartDate          rest.Date `json:"start_date"`
}

// Member is one member of the company.
type Member struct {
	DocumentType string    `json:"document_type"`
	Document     string    `json:"document"`
	Nationality  string    `json:"nationality"`
	Name         Name      `json:"name"`
	StartDate    rest.Date `json:"start_date"`
}

// CompanyInfo is the company's registry record. PDF defers fetching
// the registry certificate.
type CompanyInfo struct {
	Accountant         Accountant         `json:"accountant"`
	CapitalComposition CapitalComposition `json:"capital_composition"`
	Reason             string             `json:"reason"`
	PDFURL             string             `json:"pdf_url"`
	Location           Location           `json:"location"`
	Name               string             `json:"name"`
	ConstitutionDate   rest.Date          `json:"constitution_date"`
	Representation     []Representative   `json:"representation"`
	Members            []Member           `json:"members"`

	PDF *rest.Download `json:"-"`
}

// Balance is one taxpayer balance line.
type Balance struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Value  float64 `json:"value"`
}

// Field is one numbered box of a declaration form.
type Field struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Value  string `json:"value"`
}

// FieldList carries a declaration's boxes. The wire shape is a map
// keyed by box number; it is flattened into number order on decode.
type FieldList []Field

func (f *FieldList) UnmarshalJSON(b []byte) error {
	var m map[string]Field
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	*f = make(FieldList, 0, len(keys))
	for _, k := range keys {
		*f = append(*f, m[k])
	}

	return nil
}

// RentDeclaration is a year's rent declaration.
type RentDeclaration struct {
	PDFURL           string    `json:"pdf_url"`
	Fields           FieldList `json:"fields"`
	Year             int       `json:"year"`
	FormNumber       string    `json:"form_number"`
	NIT              string    `json:"nit"`
	DV               string    `json:"dv"`
	Name             Name      `json:"name"`
	Reason           string    `json:"reason"`
	DirectionCode    string    `json:"direction_code"`
	EconomicActivity string    `json:"economic_activity"`
	CorrectionCode   string    `json:"correction_code"`
	PreviousForm     string    `json:"previous_form"`

	PDF *rest.Download `json:"-"`
}

// VATDeclaration is one period's VAT declaration.
type VATDeclaration struct {
	PDFURL         string    `json:"pdf_url"`
	Fields         FieldList `json:"fields"`
	Year           int       `json:"year"`
	Period         int       `json:"period"`
	FormNumber     string    `json:"form_number"`
	NIT            string    `json:"nit"`
	DV             string    `json:"dv"`
	Name           Name      `json:"name"`
	Reason         string    `json:"reason"`
	DirectionCode  string    `json:"direction_code"`
	CorrectionCode string    `json:"correction_code"`
	PreviousForm   string    `json:"previous_form"`

	PDF *rest.Download `json:"-"`
}

// NumerationRange is one authorized invoice number range.
type NumerationRange struct {
	Establishment string `json:"establishment"`
	FromNumber    int64  `json:"from"`
	ToNumber      int64  `json:"to"`
	Mode          string `json:"mode"`
	Prefix        string `json:"prefix"`
	Type          string `json:"type"`
}

// Numeration is one invoicing numeration record.
type Numeration struct {
	NIT          string            `json:"nit"`
	DV           string            `json:"dv"`
	Name         *Name             `json:"name"`
	Reason       string            `json:"reason"`
	Address      string            `json:"address"`
	Country      string            `json:"country"`
	Department   string            `json:"department"`
	Municipality string            `json:"municipality"`
	Ranges       []NumerationRange `json:"ranges"`
	PDFURL       string            `json:"pdf_url"`
	PDFAvailable bool              `json:"pdf_available"`
}

// Retentions is one period's retentions declaration.
type Retentions struct {
	PDFURL        string    `json:"pdf_url"`
	Fields        FieldList `json:"fields"`
	Year          int       `json:"year"`
	Period        int       `json:"period"`
	FormNumber    string    `json:"form_number"`
	NIT           string    `json:"nit"`
	Reason        string    `json:"reason"`
	DirectionCode string    `json:"direction_code"`

	PDF *rest.Download `json:"-"`
}
