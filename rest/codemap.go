package rest

// ErrorFactory builds the typed error for one documented backend
// failure code. The envelope is supplied for factories that need more
// than the message, such as structured validation detail.
type ErrorFactory func(message string, r *Response) error

// CodeMap is a declarative mapping from a body-level error code to the
// factory for its typed error. Products with documented code tables
// (the X-codes of the cross-border API, the numeric codes of account
// validation) declare one map at package level instead of an ordered
// chain of string checks.
type CodeMap map[string]ErrorFactory

// Hook adapts the map into a product error hook. codePath and
// messagePath are gjson paths into the response body; an absent or
// unmapped code falls through with no error, leaving the response to
// the success path or to a later hook.
func (m CodeMap) Hook(codePath, messagePath string) Hook {
	return func(r *Response) error {
		code := r.JSON.Get(codePath)
		if !code.Exists() {
			return nil
		}

		factory, ok := m[code.String()]
		if !ok {
			return nil
		}

		return factory(r.JSON.Get(messagePath).String(), r)
	}
}
