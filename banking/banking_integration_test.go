//go:build integration

package banking_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/meridianapi/meridian-go/banking"
	"github.com/meridianapi/meridian-go/rest"
)

// Integration tests hit the live testing environment. Credentials come
// from the environment, optionally seeded from a local .env file:
//
//	MERIDIAN_API_KEY=...
//	MERIDIAN_BANKING_PROVIDER=test
//	MERIDIAN_BANKING_USERNAME=12345
//	MERIDIAN_BANKING_PASSWORD=gfdsa
func integrationClient(t *testing.T) *banking.Client {
	t.Helper()

	_ = godotenv.Load()

	apiKey := os.Getenv("MERIDIAN_API_KEY")
	if apiKey == "" {
		t.Skip("MERIDIAN_API_KEY not set")
	}

	c, err := banking.New(apiKey, "testing")
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	return c
}

func TestIntegration_LoginAndListAccounts(t *testing.T) {
	c := integrationClient(t)

	provider := os.Getenv("MERIDIAN_BANKING_PROVIDER")
	username := os.Getenv("MERIDIAN_BANKING_USERNAME")
	password := os.Getenv("MERIDIAN_BANKING_PASSWORD")
	if provider == "" || username == "" || password == "" {
		t.Skip("banking test credentials not set")
	}

	session, err := c.Login(context.Background(), provider, username, password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer session.Logout(context.Background())

	if session.Status() != rest.StatusLoggedIn {
		t.Fatalf("expected a logged-in session, got status %q", session.Status())
	}

	accounts, err := session.GetAccounts(context.Background())
	if err != nil {
		t.Fatalf("listing accounts: %v", err)
	}
	if len(accounts) == 0 {
		t.Error("expected the test provider to expose at least one account")
	}
}

func TestIntegration_WrongCredentials(t *testing.T) {
	c := integrationClient(t)

	provider := os.Getenv("MERIDIAN_BANKING_PROVIDER")
	if provider == "" {
		t.Skip("MERIDIAN_BANKING_PROVIDER not set")
	}

	_, err := c.Login(context.Background(), provider, "nobody", "wrong")
	if !errors.Is(err, rest.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got: %v", err)
	}
}

func TestIntegration_GetProviders(t *testing.T) {
	c := integrationClient(t)

	providers, err := c.GetProviders(context.Background())
	if err != nil {
		t.Fatalf("listing providers: %v", err)
	}
	if len(providers) == 0 {
		t.Error("expected at least one provider in the catalog")
	}
}
