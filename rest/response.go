package rest

import (
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"
)

// Response is the interpreted envelope returned by [Client.CallAPI].
// The body is kept both raw and as an untyped JSON view; product
// sub-clients decode the parts they need into typed records via
// [Response.Decode] and [Response.DecodeAt].
type Response struct {
	StatusCode int
	Header     http.Header

	// Body is the raw response body. Empty in raw-responses mode,
	// where the live transport response is handed back instead.
	Body []byte

	// JSON is a lazy view over Body. Zero-valued when the body was
	// not valid JSON; lookups on it simply report absent fields.
	JSON gjson.Result

	// HTTP is set only in raw-responses mode. The body has not been
	// consumed; the caller owns and must close it.
	HTTP *http.Response
}

func newResponse(status int, header http.Header, body []byte) *Response {
	r := &Response{StatusCode: status, Header: header, Body: body}
	if gjson.ValidBytes(body) {
		r.JSON = gjson.ParseBytes(body)
	}

	return r
}

// Decode unmarshals the whole body into dst and validates it against
// dst's schema tags, failing with a *ResponseFormatError that lists the
// missing or mistyped fields. The raw untyped body never leaks past
// this boundary in non-raw mode.
func (r *Response) Decode(dst any) error {
	return decodeJSON(r.Body, dst)
}

// DecodeAt unmarshals the value at the given JSON path into dst. An
// absent path is a schema violation, reported the same way as a failed
// decode.
func (r *Response) DecodeAt(path string, dst any) error {
	v := r.JSON.Get(path)
	if !v.Exists() {
		return &ResponseFormatError{
			apiErr: apiErr{Message: "response is missing " + path, kind: ErrResponseFormat},
			Fields: []string{path},
		}
	}

	return decodeJSON([]byte(v.Raw), dst)
}

func decodeJSON(b []byte, dst any) error {
	if err := json.Unmarshal(b, dst); err != nil {
		return &ResponseFormatError{
			apiErr: apiErr{Message: "decoding response: " + err.Error(), kind: ErrResponseFormat},
		}
	}

	return validateSchema(dst)
}
