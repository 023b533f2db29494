package banking_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/meridianapi/meridian-go/banking"
	"github.com/meridianapi/meridian-go/rest"
)

func newTestClient(t *testing.T, handler http.Handler) *banking.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := banking.New("test-key", "testing", rest.WithBaseURL(ts.URL))
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	return c
}

func TestLogin_LoggedIn(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("provider"); got != "bbva" {
			t.Errorf("expected provider bbva, got %q", got)
		}
		io.WriteString(w, `{"status": "logged_in", "key": "sess-1"}`)
	}))

	s, err := c.Login(context.Background(), "bbva", "user", "pass")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if s.Status() != rest.StatusLoggedIn {
		t.Errorf("expected logged_in, got %s", s.Status())
	}
	if s.Key() != "sess-1" {
		t.Errorf("expected key sess-1, got %q", s.Key())
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "wrong_credentials", "message": "wrong password"}`)
	}))

	_, err := c.Login(context.Background(), "bbva", "user", "badpass")
	if !errors.Is(err, rest.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got: %v", err)
	}
}

func TestLogin_WrongCredentialsOn403(t *testing.T) {
	// Some providers report the rejection with a 403 status; the body
	// signal must still reach the login handler instead of becoming a
	// generic forbidden error.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"status": "wrong_credentials", "message": "wrong password"}`)
	}))

	_, err := c.Login(context.Background(), "bbva", "user", "badpass")
	if !errors.Is(err, rest.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got: %v", err)
	}
}

func TestLogin_InteractiveChallenge(t *testing.T) {
	step := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}

		step++
		switch step {
		case 1:
			io.WriteString(w, `{
				"status": "interaction_required",
				"key": "K1",
				"context": "What was your first pet's name?",
				"field": "personal_question"
			}`)
		case 2:
			// The answer must come back under the server-chosen field
			// name, together with the step-one key.
			if got := r.PostForm.Get("personal_question"); got != "42" {
				t.Errorf("expected answer under personal_question, got %q", got)
			}
			if got := r.PostForm.Get("key"); got != "K1" {
				t.Errorf("expected key K1 on the second step, got %q", got)
			}
			io.WriteString(w, `{"status": "logged_in", "key": "K1"}`)
		}
	}))

	s, err := c.Login(context.Background(), "bbva", "user", "pass")
	if err != nil {
		t.Fatalf("first login step failed: %v", err)
	}
	if s.Status() != rest.StatusInteractionRequired {
		t.Fatalf("expected interaction_required, got %s", s.Status())
	}
	if got := s.GetInteractiveContext(); got != "What was your first pet's name?" {
		t.Errorf("unexpected challenge prompt: %q", got)
	}

	if err := s.FinishLogin(context.Background(), "bbva", "user", "pass", "42"); err != nil {
		t.Fatalf("finishing login: %v", err)
	}
	if s.Status() != rest.StatusLoggedIn {
		t.Errorf("expected logged_in after the challenge, got %s", s.Status())
	}
}

func TestSelectClientFlow(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login/":
			io.WriteString(w, `{"status": "select_client", "key": "K2"}`)
		case "/client/":
			if got := r.URL.Query().Get("key"); got != "K2" {
				t.Errorf("expected key K2, got %q", got)
			}
			io.WriteString(w, `{"clients": {"27": "Acme SA", "31": "Personal"}}`)
		case "/client/27/":
			io.WriteString(w, `{"status": "success"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	s, err := c.Login(context.Background(), "santander", "user", "pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.Status() != rest.StatusSelectClient {
		t.Fatalf("expected select_client, got %s", s.Status())
	}

	clients, err := s.GetClients(context.Background())
	if err != nil {
		t.Fatalf("listing clients: %v", err)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })

	want := []banking.BankClient{{ID: "27", Name: "Acme SA"}, {ID: "31", Name: "Personal"}}
	if diff := cmp.Diff(want, clients); diff != "" {
		t.Errorf("clients mismatch (-want +got):\n%s", diff)
	}

	if err := s.SelectClient(context.Background(), clients[0]); err != nil {
		t.Fatalf("selecting client: %v", err)
	}
	if s.Status() != rest.StatusLoggedIn {
		t.Errorf("expected logged_in after selection, got %s", s.Status())
	}
}

func TestGetAccountsAndMovements(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/account/":
			io.WriteString(w, `{"accounts": [
				{"id": "a1", "name": "Caja de ahorro", "number": "00123", "branch": "central", "currency": "UYU", "balance": 1500.5}
			]}`)
		case "/movement/":
			q := r.URL.Query()
			if q.Get("account") != "00123" || q.Get("currency") != "UYU" {
				t.Errorf("unexpected movement query: %v", q)
			}
			if q.Get("date_start") != "01/01/2024" || q.Get("date_end") != "31/01/2024" {
				t.Errorf("unexpected date range: %v", q)
			}
			io.WriteString(w, `{"movements": [
				{"id": 7, "reference": "0000123", "date": "15/01/2024", "detail": "transfer", "debit": 0, "credit": 250.0}
			]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	s := c.RestoreSession("K3")

	accounts, err := s.GetAccounts(context.Background())
	if err != nil {
		t.Fatalf("listing accounts: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Number != "00123" {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}

	start := rest.DateOf(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	end := rest.DateOf(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))

	movements, err := s.GetMovements(context.Background(), accounts[0], start, end)
	if err != nil {
		t.Fatalf("listing movements: %v", err)
	}
	if len(movements) != 1 || movements[0].Credit != 250.0 {
		t.Fatalf("unexpected movements: %+v", movements)
	}
}

func TestGetProviderDetail(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/provider/bbva/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"provider": {
			"code": "bbva", "country": "UY", "name": "BBVA Uruguay",
			"auth_fields": [{"name": "otp", "type": "input", "interactive": true, "optional": false}]
		}}`)
	}))

	detail, err := c.GetProviderDetail(context.Background(), "bbva")
	if err != nil {
		t.Fatalf("fetching provider detail: %v", err)
	}
	if len(detail.AuthFields) != 1 || !detail.AuthFields[0].Interactive {
		t.Errorf("unexpected auth fields: %+v", detail.AuthFields)
	}
}
