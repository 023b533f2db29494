package rest

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

// Params holds request parameters destined for a query string, a form
// body, or a JSON body. Entries with a nil value are stripped before
// transmission: the wire contract of every product is omission, not
// null-serialization.
type Params map[string]any

// WireDate is the dd/mm/yyyy date format used by the legacy product
// endpoints for range filters.
const WireDate = "02/01/2006"

// Values renders the params as url.Values, dropping nil entries.
func (p Params) Values() url.Values {
	vals := url.Values{}
	for k, v := range p {
		if isNil(v) {
			continue
		}
		vals.Set(k, paramString(v))
	}

	return vals
}

// stripped returns a copy with nil entries removed, for JSON encoding.
func (p Params) stripped() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		if isNil(v) {
			continue
		}
		out[k] = v
	}

	return out
}

// isNil also catches typed nil pointers handed in through the any
// interface, which compare non-equal to untyped nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func paramString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case time.Time:
		return t.Format(WireDate)
	case fmt.Stringer:
		return t.String()
	default:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr {
			return paramString(rv.Elem().Interface())
		}
		return fmt.Sprint(t)
	}
}
