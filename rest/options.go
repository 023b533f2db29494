package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Option is a functional option for configuring a [Client] via [New].
type Option func(*options) error

type options struct {
	client       *http.Client
	rt           http.RoundTripper
	proxy        *url.URL
	timeout      *time.Duration
	userAgent    string
	throttle     *throttleConfig
	baseURL      string
	raw          bool
	logger       *slog.Logger
	errorHook    Hook
	responseHook Hook
}

type throttleConfig struct {
	rps   int
	burst int
}

// WithHTTPClient replaces the default [http.Client] used by the [Client].
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithProxy routes all outgoing requests through the given proxy URL.
func WithProxy(proxyURL string) Option {
	return func(o *options) error {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return fmt.Errorf("parsing proxy url: %w", err)
		}
		o.proxy = u
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given
// requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] must be greater than zero", rps, burst)
		}
		o.throttle = &throttleConfig{rps: rps, burst: burst}
		return nil
	}
}

// WithBaseURL overrides the base URL of the selected environment. It is
// required when the environment is [EnvCustom].
func WithBaseURL(baseURL string) Option {
	return func(o *options) error {
		if baseURL == "" {
			return errors.New("base URL must not be empty")
		}
		o.baseURL = baseURL
		return nil
	}
}

// WithRawResponses disables all response interpretation: [Client.CallAPI]
// returns the unmediated transport response for every call, including
// error statuses, and neither classification nor hooks run. Callers that
// need headers or streaming bytes opt in here, at construction time.
func WithRawResponses() Option {
	return func(o *options) error {
		o.raw = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithErrorHook registers the product-specific error refinement, run
// after the base classification pipeline on every interpreted response.
// The hook returns nil to fall through or a typed error to stop
// propagation of the response.
func WithErrorHook(hook Hook) Option {
	return func(o *options) error {
		o.errorHook = hook
		return nil
	}
}

// WithResponseHook registers the product-specific success inspection,
// run after classification passes. Products that signal business-level
// failure inside a 200 body raise it from here.
func WithResponseHook(hook Hook) Option {
	return func(o *options) error {
		o.responseHook = hook
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

// RequestOption is a functional option for [Client.MakeRequest] and
// [Client.CallAPI].
type RequestOption func(*requestOpts) error

type requestOpts struct {
	query      Params
	form       Params
	jsonBody   any
	headers    map[string]string
	sessionKey string
}

// WithQuery appends query parameters to the request URL. Nil-valued
// entries are omitted.
func WithQuery(params Params) RequestOption {
	return func(o *requestOpts) error {
		o.query = params
		return nil
	}
}

// WithForm sends params as a form-encoded request body, the convention
// of the legacy product endpoints. Nil-valued entries are omitted.
func WithForm(params Params) RequestOption {
	return func(o *requestOpts) error {
		o.form = params
		return nil
	}
}

// WithJSONBody sends body JSON-encoded, the convention of the newer
// product endpoints. A [Params] body has its nil-valued entries omitted;
// typed records express optionality with pointer fields and omitempty.
func WithJSONBody(body any) RequestOption {
	return func(o *requestOpts) error {
		if body == nil {
			return errors.New("json body must not be nil")
		}
		o.jsonBody = body
		return nil
	}
}

// WithHeader adds a header to the outgoing request.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOpts) error {
		if key == "" {
			return errors.New("header key must not be empty")
		}
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
		return nil
	}
}

// WithSessionKeyHeader propagates a session key via the X-Session-Key
// header, the convention of the newer API generations. Legacy products
// pass the key as a query or body parameter instead.
func WithSessionKeyHeader(key string) RequestOption {
	return func(o *requestOpts) error {
		if key == "" {
			return errors.New("session key must not be empty")
		}
		o.sessionKey = key
		return nil
	}
}
