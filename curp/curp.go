// Package curp wraps the CURP identity-lookup product: resolving a
// CURP into the person's registry data, and the reverse search by
// personal information. The product is session-less; every call is
// authenticated by the API key alone.
package curp

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/meridianapi/meridian-go/rest"
)

const (
	testingURL    = "https://test.curp.meridianapi.com"
	productionURL = "https://curp.meridianapi.com"
)

// Environments is the closed environment table of the CURP product.
var Environments = rest.Environments{
	"testing":    testingURL,
	"production": productionURL,
}

// Gender is a person's registered gender.
type Gender string

const (
	Male   Gender = "H"
	Female Gender = "M"
)

// State is the federal entity a person is registered in.
type State string

const (
	Aguascalientes       State = "AS"
	BajaCalifornia       State = "BC"
	BajaCaliforniaSur    State = "BS"
	Campeche             State = "CC"
	Coahuila             State = "CL"
	Colima               State = "CM"
	Chiapas              State = "CS"
	Chihuahua            State = "CH"
	CiudadDeMexico       State = "DF"
	Durango              State = "DG"
	Guanajuato           State = "GT"
	Guerrero             State = "GR"
	Hidalgo              State = "HG"
	Jalisco              State = "JC"
	EstadoDeMexico       State = "MC"
	Michoacan            State = "MN"
	Morelos              State = "MS"
	Nayarit              State = "NT"
	NuevoLeon            State = "NL"
	Oaxaca               State = "OC"
	Puebla               State = "PL"
	Queretaro            State = "QT"
	QuintanaRoo          State = "QR"
	SanLuisPotosi        State = "SP"
	Sinaloa              State = "SL"
	Sonora               State = "SR"
	Tabasco              State = "TC"
	Tamaulipas           State = "TS"
	Tlaxcala             State = "TL"
	Veracruz             State = "VZ"
	Yucatan              State = "YN"
	Zacatecas            State = "ZS"
	NacidoEnElExtranjero State = "NE"
)

// Client is the CURP sub-client.
type Client struct {
	rest *rest.Client
}

// New builds a CURP client. Lookup failures arrive inside a 200 body
// as a populated `errors` object; the hook converts them before any
// decoding happens.
func New(apiKey, environment string, opts ...rest.Option) (*Client, error) {
	opts = append(opts, rest.WithErrorHook(rejectLookupErrors))
	rc, err := rest.New(apiKey, environment, Environments, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{rest: rc}, nil
}

func rejectLookupErrors(r *rest.Response) error {
	errs := r.JSON.Get("errors")
	if !errs.Exists() || errs.Type == gjson.Null {
		return nil
	}

	return newLookupError(errs.Get("detail").String())
}

// Rest exposes the underlying dispatcher.
func (c *Client) Rest() *rest.Client { return c.rest }

// Query finds the personal data associated with a CURP.
func (c *Client) Query(ctx context.Context, curp string) (*QueryResult, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "/query", rest.WithForm(rest.Params{
		"curp": curp,
	}))
	if err != nil {
		return nil, err
	}

	return c.result(resp)
}

// QueryAsync is the non-blocking entry point over Query.
func (c *Client) QueryAsync(ctx context.Context, curp string) *rest.Promise[*QueryResult] {
	return rest.Async(ctx, func(ctx context.Context) (*QueryResult, error) {
		return c.Query(ctx, curp)
	})
}

// ReverseQuery searches for a person by their personal information.
func (c *Client) ReverseQuery(ctx context.Context, state State, birthdate rest.Date, name, firstSurname, lastSurname string, gender Gender) (*QueryResult, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "/reverse-query", rest.WithForm(rest.Params{
		"state":         state,
		"birthdate":     birthdate,
		"name":          name,
		"first_surname": firstSurname,
		"last_surname":  lastSurname,
		"gender":        gender,
	}))
	if err != nil {
		return nil, err
	}

	return c.result(resp)
}

func (c *Client) result(resp *rest.Response) (*QueryResult, error) {
	var result QueryResult
	if err := resp.DecodeAt("data", &result); err != nil {
		return nil, err
	}
	result.PDF = rest.NewDownload(c.rest, result.PDFURL)

	return &result, nil
}
