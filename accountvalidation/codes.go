package accountvalidation

// CountryCode is an ISO 3166-1 alpha-2 country the product validates
// accounts in. TestCountry is the sandbox-only fixture country.
type CountryCode string

const (
	Argentina   CountryCode = "AR"
	Brazil      CountryCode = "BR"
	Chile       CountryCode = "CL"
	Colombia    CountryCode = "CO"
	Ecuador     CountryCode = "EC"
	Peru        CountryCode = "PE"
	Uruguay     CountryCode = "UY"
	USA         CountryCode = "US"
	Mexico      CountryCode = "MX"
	TestCountry CountryCode = "XX"
)

// BankCode is a provider-assigned bank identifier. The accepted values
// vary per country and are documented by the backend.
type BankCode string

// AccountType is the kind of account under validation. Checking and
// savings are accepted everywhere; the remaining values only in the
// countries listed in AccountTypesByCountry.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"

	// Brazil.
	Easy         AccountType = "EASY"
	Payments     AccountType = "PAYMENTS"
	PublicEntity AccountType = "PUBLIC_ENTITY"
	PIXKey       AccountType = "PIX_KEY"

	// Chile.
	Demand AccountType = "DEMAND"

	// Ecuador.
	VirtualAccount AccountType = "VIRTUAL_ACCOUNT"
	ElectronicRole AccountType = "ROL_ELECTRONICO"
	FriendAccount  AccountType = "CUENTA_AMIGA"
	DebitCard      AccountType = "CARD"
)

// CommonAccountTypes is the subset accepted in every country.
var CommonAccountTypes = []AccountType{Checking, Savings}

// AccountTypesByCountry lists the account types each country accepts.
// Countries absent from the map accept exactly the common subset.
var AccountTypesByCountry = map[CountryCode][]AccountType{
	Brazil:  withCommon(Easy, Payments, PublicEntity, PIXKey),
	Chile:   withCommon(Demand),
	Ecuador: withCommon(VirtualAccount, ElectronicRole, FriendAccount, DebitCard),
}

func withCommon(extra ...AccountType) []AccountType {
	return append(append([]AccountType{}, CommonAccountTypes...), extra...)
}

// DocumentType is the identity document kind attached to an account.
type DocumentType string

const (
	CNPJ DocumentType = "CNPJ"
	CPF  DocumentType = "CPF"
	CC   DocumentType = "CC"
	NIT  DocumentType = "NIT"
	RUT  DocumentType = "RUT"
	RUC  DocumentType = "RUC"
	PAS  DocumentType = "PAS"
	RFC  DocumentType = "RFC"
	DNI  DocumentType = "DNI"
	CI   DocumentType = "CI"
)

// DocumentTypesByCountry lists the document types each country accepts.
var DocumentTypesByCountry = map[CountryCode][]DocumentType{
	Brazil:   {CNPJ, CPF},
	Colombia: {CC, NIT},
	Chile:    {RUT},
	Ecuador:  {CC, RUC, PAS},
	Mexico:   {RFC},
	Peru:     {DNI, RUC},
	Uruguay:  {CI, RUT},
}
