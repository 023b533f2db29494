// Package meridian is the entry point of the Meridian API client
// library. A single Client carries the credential and environment
// name, and lazily constructs one sub-client per product on first
// use:
//
//	cli := meridian.New(apiKey, "production")
//
//	bank, err := cli.Banking()
//	if err != nil {
//		// unknown environment for this product
//	}
//	session, err := bank.Login(ctx, "bbva", "user", "pass")
//
// Each product package can also be used directly when only one
// product is needed; the facade adds caching and nothing else.
package meridian

import (
	"sync"

	"github.com/meridianapi/meridian-go/accountvalidation"
	"github.com/meridianapi/meridian-go/banking"
	"github.com/meridianapi/meridian-go/crossborder"
	"github.com/meridianapi/meridian-go/curp"
	"github.com/meridianapi/meridian-go/dian"
	"github.com/meridianapi/meridian-go/payment"
	"github.com/meridianapi/meridian-go/rest"
	"github.com/meridianapi/meridian-go/sat"
)

// Client is the product facade. It is safe for concurrent use; each
// sub-client is constructed at most once.
type Client struct {
	apiKey      string
	environment string
	opts        []rest.Option

	mu                sync.Mutex
	banking           *banking.Client
	sat               *sat.Client
	curp              *curp.Client
	dian              *dian.Client
	payment           *payment.Client
	crossborder       *crossborder.Client
	accountvalidation *accountvalidation.Client
}

// New builds a facade for the given credential and environment name.
// The name is validated per product when the sub-client is first
// requested, since each product declares its own environment table.
func New(apiKey, environment string, opts ...rest.Option) *Client {
	return &Client{apiKey: apiKey, environment: environment, opts: opts}
}

// Banking returns the banking sub-client.
func (c *Client) Banking() (*banking.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.banking == nil {
		sub, err := banking.New(c.apiKey, c.environment, c.opts...)
		if err != nil {
			return nil, err
		}
		c.banking = sub
	}

	return c.banking, nil
}

// Sat returns the SAT sub-client.
func (c *Client) Sat() (*sat.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sat == nil {
		sub, err := sat.New(c.apiKey, c.environment, c.opts...)
		if err != nil {
			return nil, err
		}
		c.sat = sub
	}

	return c.sat, nil
}

// Curp returns the CURP sub-client.
func (c *Client) Curp() (*curp.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.curp == nil {
		sub, err := curp.New(c.apiKey, c.environment, c.opts...)
		if err != nil {
			return nil, err
		}
		c.curp = sub
	}

	return c.curp, nil
}

// Dian returns the DIAN sub-client.
func (c *Client) Dian() (*dian.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dian == nil {
		sub, err := dian.New(c.apiKey, c.environment, c.opts...)
		if err != nil {
			return nil, err
		}
		c.dian = sub
	}

	return c.dian, nil
}

// Payment returns the payment sub-client.
func (c *Client) Payment() (*payment.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.payment == nil {
		sub, err := payment.New(c.apiKey, c.environment, c.opts...)
		if err != nil {
			return nil, err
		}
		c.payment = sub
	}

	return c.payment, nil
}

// CrossBorder returns the cross-border sub-client.
func (c *Client) CrossBorder() (*crossborder.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crossborder == nil {
		sub, err := crossborder.New(c.apiKey, c.environment, c.opts...)
		if err != nil {
			return nil, err
		}
		c.crossborder = sub
	}

	return c.crossborder, nil
}

// AccountValidation returns the account-validation sub-client.
func (c *Client) AccountValidation() (*accountvalidation.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accountvalidation == nil {
		sub, err := accountvalidation.New(c.apiKey, c.environment, c.opts...)
		if err != nil {
			return nil, err
		}
		c.accountvalidation = sub
	}

	return c.accountvalidation, nil
}
