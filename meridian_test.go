package meridian_test

import (
	"errors"
	"testing"

	meridian "github.com/meridianapi/meridian-go"
	"github.com/meridianapi/meridian-go/rest"
)

func TestSubClientsAreCached(t *testing.T) {
	cli := meridian.New("test-key", "testing")

	first, err := cli.Banking()
	if err != nil {
		t.Fatalf("building banking sub-client: %v", err)
	}

	second, err := cli.Banking()
	if err != nil {
		t.Fatalf("rebuilding banking sub-client: %v", err)
	}

	if first != second {
		t.Error("expected the same sub-client instance on repeated calls")
	}
}

func TestEnvironmentValidatedPerProduct(t *testing.T) {
	// The payment product only exists in production, so a testing
	// facade fails at that accessor and nowhere else.
	cli := meridian.New("test-key", "testing")

	if _, err := cli.Sat(); err != nil {
		t.Errorf("expected testing to be valid for sat, got: %v", err)
	}

	_, err := cli.Payment()
	if !errors.Is(err, rest.ErrConfiguration) {
		t.Fatalf("expected a configuration error, got: %v", err)
	}

	var confErr *rest.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected *rest.ConfigurationError, got %T", err)
	}
	if confErr.Environment != "testing" {
		t.Errorf("unexpected environment %q", confErr.Environment)
	}
}
