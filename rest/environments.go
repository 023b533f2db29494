package rest

import (
	"net/url"
	"sort"
)

// EnvCustom is the conventional name for a caller-supplied base URL.
// Products that support it map the name to an empty URL in their
// environment table; the caller fills it in with WithBaseURL.
const EnvCustom = "custom"

// Environments is a product's closed table of named environments.
// Each sub-client declares its own table; the table is instance data
// on the client it configures, never shared mutable state.
type Environments map[string]string

// resolve maps an environment name to its parsed base URL. An unknown
// name is a configuration error surfaced at construction time.
func (e Environments) resolve(name, override string) (*url.URL, error) {
	raw, ok := e[name]
	if !ok {
		return nil, newConfigurationError(name, e.names())
	}

	if override != "" {
		raw = override
	}
	if raw == "" {
		return nil, &ConfigurationError{
			apiErr:      apiErr{Message: "environment " + name + " requires a base URL override", kind: ErrConfiguration},
			Environment: name,
			Valid:       e.names(),
		}
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, &ConfigurationError{
			apiErr:      apiErr{Message: "invalid base URL for environment " + name + ": " + err.Error(), kind: ErrConfiguration},
			Environment: name,
			Valid:       e.names(),
		}
	}

	return base, nil
}

func (e Environments) names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
