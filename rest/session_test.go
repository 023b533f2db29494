package rest_test

import (
	"testing"

	"github.com/meridianapi/meridian-go/rest"
)

func TestSession_Advance(t *testing.T) {
	s := rest.NewSession(nil, rest.StatusInteractionRequired, "key-1")

	if s.Status() != rest.StatusInteractionRequired {
		t.Errorf("expected status %q, got %q", rest.StatusInteractionRequired, s.Status())
	}

	// An empty key keeps the current one.
	s.Advance(rest.StatusLoggedIn, "")
	if s.Status() != rest.StatusLoggedIn || s.Key() != "key-1" {
		t.Errorf("expected (logged_in, key-1), got (%s, %s)", s.Status(), s.Key())
	}

	s.Advance(rest.StatusLoggedIn, "key-2")
	if s.Key() != "key-2" {
		t.Errorf("expected rotated key key-2, got %s", s.Key())
	}
}

func TestRestoreSession_NoValidation(t *testing.T) {
	// Restoring never touches the network; a stale key fails on first
	// use instead.
	s := rest.RestoreSession(nil, "stored-key")

	if s.Status() != rest.StatusLoggedIn {
		t.Errorf("expected restored sessions to report logged_in, got %s", s.Status())
	}
	if s.Key() != "stored-key" {
		t.Errorf("expected key %q, got %q", "stored-key", s.Key())
	}
}
