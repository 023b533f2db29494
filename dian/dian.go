// Package dian wraps the Colombian tax authority (DIAN) product:
// company registry information, balances, rent and VAT declarations,
// invoicing numeration, and retentions. Session keys travel as the
// `session_key` parameter.
package dian

import (
	"context"
	"net/http"

	"github.com/meridianapi/meridian-go/rest"
)

const (
	testingURL    = "https://test.dian.meridianapi.com"
	productionURL = "https://dian.meridianapi.com"
)

// Environments is the closed environment table of the DIAN product.
var Environments = rest.Environments{
	"testing":    testingURL,
	"production": productionURL,
}

// DocumentType identifies the document a person logs in with.
type DocumentType string

const (
	TarjetaIdentidad         DocumentType = "12"
	CedulaCiudadania         DocumentType = "13"
	CertificadoRegistraduria DocumentType = "14"
	TarjetaExtranjeria       DocumentType = "21"
	CedulaExtranjeria        DocumentType = "22"
	Pasaporte                DocumentType = "41"
	DocumentoExtranjero      DocumentType = "42"
	SinIdentificacion        DocumentType = "43"
	DocumentoExtranjeroPJ    DocumentType = "44"
	CarneDiplomatico         DocumentType = "46"
)

// NumerationType selects which invoicing numeration to query.
type NumerationType string

const (
	Authorization  NumerationType = "authorization"
	Habilitation   NumerationType = "habilitation"
	Inhabilitation NumerationType = "inhabilitation"
)

// Periodicity selects the VAT declaration cadence.
type Periodicity string

const (
	Quarterly Periodicity = "q"
	Bimonthly Periodicity = "b"
)

// Client is the DIAN sub-client.
type Client struct {
	rest *rest.Client
}

// New builds a DIAN client.
func New(apiKey, environment string, opts ...rest.Option) (*Client, error) {
	rc, err := rest.New(apiKey, environment, Environments, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{rest: rc}, nil
}

// Rest exposes the underlying dispatcher.
func (c *Client) Rest() *rest.Client { return c.rest }

// Login authenticates a person or company. nit is required only when
// logging in on behalf of a company; pass the empty string otherwise.
func (c *Client) Login(ctx context.Context, documentType DocumentType, document, password, nit string) (*Session, error) {
	params := rest.Params{
		"provider":      "dian",
		"document_type": documentType,
		"document":      document,
		"password":      password,
	}
	if nit != "" {
		params["nit"] = nit
	}

	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "/login/", rest.WithForm(params))
	if err != nil {
		return nil, err
	}

	switch rest.Status(resp.JSON.Get("status").String()) {
	case rest.StatusLoggedIn:
		return &Session{
			Session: rest.NewSession(c.rest, rest.StatusLoggedIn, resp.JSON.Get("session_key").String()),
			client:  c,
		}, nil
	case rest.StatusWrongCredentials:
		return nil, rest.NewWrongCredentialsError(resp.JSON.Get("message").String())
	default:
		return nil, newClientError(resp.JSON.Get("message").String())
	}
}

// LoginAsync is the non-blocking entry point over Login.
func (c *Client) LoginAsync(ctx context.Context, documentType DocumentType, document, password, nit string) *rest.Promise[*Session] {
	return rest.Async(ctx, func(ctx context.Context) (*Session, error) {
		return c.Login(ctx, documentType, document, password, nit)
	})
}

// RestoreSession reattaches to a previously established session key
// without validating it.
func (c *Client) RestoreSession(key string) *Session {
	return &Session{Session: rest.RestoreSession(c.rest, key), client: c}
}

// GetCompanyInfo fetches the company's registry record.
func (c *Client) GetCompanyInfo(ctx context.Context, sessionKey string) (*CompanyInfo, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/company-info/", rest.WithQuery(rest.Params{
		"session_key": sessionKey,
	}))
	if err != nil {
		return nil, err
	}

	var info CompanyInfo
	if err := resp.DecodeAt("info", &info); err != nil {
		return nil, err
	}
	info.PDF = rest.NewDownload(c.rest, info.PDFURL)

	return &info, nil
}

// GetBalances lists the taxpayer's balances.
func (c *Client) GetBalances(ctx context.Context, sessionKey string) ([]Balance, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/balances/", rest.WithQuery(rest.Params{
		"session_key": sessionKey,
	}))
	if err != nil {
		return nil, err
	}

	var balances []Balance
	if err := resp.DecodeAt("balances", &balances); err != nil {
		return nil, err
	}

	return balances, nil
}

// GetRentDeclaration fetches the rent declaration for a year.
func (c *Client) GetRentDeclaration(ctx context.Context, sessionKey string, year int) (*RentDeclaration, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/rent/", rest.WithQuery(rest.Params{
		"session_key": sessionKey,
		"year":        year,
	}))
	if err != nil {
		return nil, err
	}

	var declaration RentDeclaration
	if err := resp.DecodeAt("declaration", &declaration); err != nil {
		return nil, err
	}
	declaration.PDF = rest.NewDownload(c.rest, declaration.PDFURL)

	return &declaration, nil
}

// GetVATDeclaration fetches a VAT declaration for a period.
func (c *Client) GetVATDeclaration(ctx context.Context, sessionKey string, year int, periodicity Periodicity, period int) (*VATDeclaration, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/vat/", rest.WithQuery(rest.Params{
		"session_key": sessionKey,
		"year":        year,
		"periodicity": periodicity,
		"period":      period,
	}))
	if err != nil {
		return nil, err
	}

	var declaration VATDeclaration
	if err := resp.DecodeAt("declaration", &declaration); err != nil {
		return nil, err
	}
	declaration.PDF = rest.NewDownload(c.rest, declaration.PDFURL)

	return &declaration, nil
}

// GetNumeration lists invoicing numerations of the given type in a
// date range.
func (c *Client) GetNumeration(ctx context.Context, sessionKey string, numerationType NumerationType, dateStart, dateEnd rest.Date) ([]Numeration, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/numeration/", rest.WithQuery(rest.Params{
		"session_key": sessionKey,
		"type":        numerationType,
		"date_start":  dateStart,
		"date_end":    dateEnd,
	}))
	if err != nil {
		return nil, err
	}

	var numerations []Numeration
	if err := resp.DecodeAt("numeration", &numerations); err != nil {
		return nil, err
	}

	return numerations, nil
}

// GetRetentions fetches the retentions declaration for a period.
func (c *Client) GetRetentions(ctx context.Context, sessionKey string, year, period int) (*Retentions, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/retentions/", rest.WithQuery(rest.Params{
		"session_key": sessionKey,
		"year":        year,
		"period":      period,
	}))
	if err != nil {
		return nil, err
	}

	var retentions Retentions
	if err := resp.DecodeAt("retentions", &retentions); err != nil {
		return nil, err
	}
	retentions.PDF = rest.NewDownload(c.rest, retentions.PDFURL)

	return &retentions, nil
}

// Session is one DIAN login. All methods delegate to the owning client
// with the session key attached.
type Session struct {
	rest.Session

	client *Client
}

// GetCompanyInfo fetches the company's registry record.
func (s *Session) GetCompanyInfo(ctx context.Context) (*CompanyInfo, error) {
	return s.client.GetCompanyInfo(ctx, s.Key())
}

// GetBalances lists the taxpayer's balances.
func (s *Session) GetBalances(ctx context.Context) ([]Balance, error) {
	return s.client.GetBalances(ctx, s.Key())
}

// GetRentDeclaration fetches the rent declaration for a year.
func (s *Session) GetRentDeclaration(ctx context.Context, year int) (*RentDeclaration, error) {
	return s.client.GetRentDeclaration(ctx, s.Key(), year)
}

// GetVATDeclaration fetches a VAT declaration for a period.
func (s *Session) GetVATDeclaration(ctx context.Context, year int, periodicity Periodicity, period int) (*VATDeclaration, error) {
	return s.client.GetVATDeclaration(ctx, s.Key(), year, periodicity, period)
}

// GetNumeration lists invoicing numerations in a date range.
func (s *Session) GetNumeration(ctx context.Context, numerationType NumerationType, dateStart, dateEnd rest.Date) ([]Numeration, error) {
	return s.client.GetNumeration(ctx, s.Key(), numerationType, dateStart, dateEnd)
}

// GetRetentions fetches the retentions declaration for a period.
func (s *Session) GetRetentions(ctx context.Context, year, period int) (*Retentions, error) {
	return s.client.GetRetentions(ctx, s.Key(), year, period)
}
