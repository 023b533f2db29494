package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meridianapi/meridian-go/rest/throttle"
)

// HeaderAPIKey is sent on every request.
const HeaderAPIKey = "X-API-Key"

// HeaderSessionKey carries the session key on the newer API generations.
const HeaderSessionKey = "X-Session-Key"

// HeaderRequestID correlates a request across client and backend logs.
const HeaderRequestID = "X-Request-Id"

// Hook inspects an interpreted response envelope. Product sub-clients
// register hooks to refine error classification and to reject
// business-level failures signaled inside a 200 body.
type Hook func(*Response) error

// Client is the request dispatcher every product sub-client builds on.
// It owns the environment configuration and the underlying http.Client
// exclusively; session and download handles hold a reference back to
// it and never their own connection.
type Client struct {
	apiKey      string
	environment string
	base        *url.URL

	hc     *http.Client
	logger *slog.Logger
	tracer trace.Tracer

	raw          bool
	errorHook    Hook
	responseHook Hook
}

// New builds a dispatcher for the given credentials against one of the
// product's named environments. An environment name outside envs fails
// here with a *ConfigurationError rather than on first use.
func New(apiKey, environment string, envs Environments, optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	base, err := envs.resolve(environment, opts.baseURL)
	if err != nil {
		return nil, err
	}

	client := &Client{
		apiKey:       apiKey,
		environment:  environment,
		base:         base,
		hc:           &http.Client{},
		logger:       slog.Default(),
		tracer:       otel.Tracer("github.com/meridianapi/meridian-go/rest"),
		raw:          opts.raw,
		errorHook:    opts.errorHook,
		responseHook: opts.responseHook,
	}

	if opts.client != nil {
		client.hc = opts.client
	}
	if opts.logger != nil {
		client.logger = opts.logger
	}
	if opts.timeout != nil {
		client.hc.Timeout = *opts.timeout
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.proxy != nil:
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.Proxy = http.ProxyURL(opts.proxy)
		transport = t
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.rps, opts.throttle.burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.hc.Transport = transport

	return client, nil
}

// Environment returns the name the client was constructed with.
func (c *Client) Environment() string { return c.environment }

// BaseURL returns the resolved base URL of the selected environment.
func (c *Client) BaseURL() *url.URL { return c.base }

// MakeRequest resolves path against the environment's base URL, injects
// the API-key header, strips nil-valued body params, and issues the
// call. It does not interpret the response; the caller owns the body.
func (c *Client) MakeRequest(ctx context.Context, method, path string, optFns ...RequestOption) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, optFns...)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("issuing request: %w", err)
	}

	return resp, nil
}

// CallAPI issues the request and runs the universal interpretation
// pipeline: lenient JSON parse, the ordered error-classification tiers,
// the product error hook, then the product response hook. The error
// hook sees every envelope and may substitute a more specific error
// for a base classification; when it stays silent the base error
// stands. In raw-responses mode the pipeline is bypassed entirely and
// the envelope carries the live transport response instead.
func (c *Client) CallAPI(ctx context.Context, method, path string, optFns ...RequestOption) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "CallAPI", trace.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.String("environment", c.environment),
	))
	defer span.End()

	resp, err := c.MakeRequest(ctx, method, path, optFns...)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if c.raw {
		return &Response{StatusCode: resp.StatusCode, Header: resp.Header, HTTP: resp}, nil
	}

	envelope, err := c.readResponse(resp)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", envelope.StatusCode))

	baseErr := classify(envelope)
	if c.errorHook != nil {
		if err := c.errorHook(envelope); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	if baseErr != nil {
		span.RecordError(baseErr)
		return nil, baseErr
	}
	if c.responseHook != nil {
		if err := c.responseHook(envelope); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	return envelope, nil
}

// newRequest builds the outgoing request: URL resolution, query and
// body encoding, and the standard header set.
func (c *Client) newRequest(ctx context.Context, method, path string, optFns ...RequestOption) (*http.Request, error) {
	var opts requestOpts
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying request option: %w", err)
		}
	}

	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parsing request path: %w", err)
	}
	full := c.base.ResolveReference(ref)

	if len(opts.query) > 0 {
		q := full.Query()
		for k, vs := range opts.query.Values() {
			for _, v := range vs {
				q.Set(k, v)
			}
		}
		full.RawQuery = q.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case opts.form != nil:
		body = strings.NewReader(opts.form.Values().Encode())
		contentType = "application/x-www-form-urlencoded"
	case opts.jsonBody != nil:
		payload := opts.jsonBody
		if p, ok := payload.(Params); ok {
			payload = p.stripped()
		}
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
		body = &buf
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, full.String(), body)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if opts.sessionKey != "" {
		req.Header.Set(HeaderSessionKey, opts.sessionKey)
	}
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// readResponse drains the transport response into an envelope. A body
// that fails to parse as JSON is not an error by itself: classification
// still runs with whatever partial information exists, typically the
// raw text of a 500.
func (c *Client) readResponse(resp *http.Response) (*Response, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return newResponse(resp.StatusCode, resp.Header, b), nil
}

// classify is the universal classification pipeline. Order matters:
// product-specific refinements assume these tiers have already passed.
func classify(r *Response) error {
	base := apiErr{
		Message:    r.JSON.Get("message").String(),
		StatusCode: r.StatusCode,
	}

	switch r.StatusCode {
	case http.StatusBadRequest:
		base.kind = ErrBadRequest
		return &BadRequestError{base}
	case http.StatusUnauthorized:
		base.kind = ErrUnauthorized
		return &UnauthorizedError{base}
	case http.StatusForbidden:
		// A 403 whose body says wrong_credentials is reserved for the
		// product's own login handling and must fall through here.
		if r.JSON.Get("status").String() != "wrong_credentials" {
			base.kind = ErrForbidden
			return &ForbiddenError{base}
		}
	case http.StatusNotFound:
		base.kind = ErrNotFound
		return &NotFoundError{base}
	case http.StatusInternalServerError:
		if base.Message == "" {
			base.Message = string(r.Body)
			base.Raw = string(r.Body)
		}
		base.kind = ErrInternalAPI
		return &InternalAPIError{base}
	case http.StatusServiceUnavailable:
		base.kind = ErrProviderUnavailable
		return &ProviderUnavailableError{base}
	}

	return nil
}
