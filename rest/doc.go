// Package rest implements the request/response core shared by every
// Meridian product sub-client: the dispatcher, the tiered error
// classification pipeline, session and download handles, and the
// blocking/non-blocking calling conventions.
//
// # Building a dispatcher
//
// Each product package declares its closed table of environments and
// builds a [Client] with [New]:
//
//	c, err := rest.New(apiKey, "production", rest.Environments{
//		"testing":    "https://test.example.com",
//		"production": "https://api.example.com",
//	},
//		rest.WithTimeout(10*time.Second),
//		rest.WithThrottle(20, 5),
//	)
//
// An unknown environment name fails immediately with a
// [*ConfigurationError]; it is never deferred to the first call.
//
// # Issuing calls
//
// [Client.CallAPI] issues the request, parses the body leniently, and
// runs the classification pipeline: generic HTTP-status tiers first,
// then the product's error hook, then the product's response hook.
// Sub-client methods decode the surviving envelope into typed records:
//
//	resp, err := c.CallAPI(ctx, http.MethodGet, "/account/",
//		rest.WithQuery(rest.Params{"key": sessionKey}))
//	if err != nil {
//		return nil, err
//	}
//	var accounts []Account
//	err = resp.DecodeAt("accounts", &accounts)
//
// # Errors
//
// Every failure is a typed error matching [ErrAPI] via errors.Is.
// Callers catch at the granularity they care about: the root sentinel
// for "something failed", a kind sentinel such as [ErrNotFound], or the
// concrete type via errors.As when they need structured metadata like
// the offending field list of an [*InvalidParameterError].
//
// # Sessions and downloads
//
// [Session] threads a backend-issued key through a login flow;
// [Download] defers fetching a remote file until [Download.GetFile].
// Neither owns a connection; both delegate to the dispatcher.
//
// # Blocking and non-blocking calls
//
// Every operation is written once in blocking, context-aware style.
// [Async] lifts any of them into a [Promise] for callers that want to
// overlap work, and products expose ...Async variants for their
// long-running calls.
package rest
