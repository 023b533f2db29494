package sat_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/meridianapi/meridian-go/rest"
	"github.com/meridianapi/meridian-go/sat"
)

func newTestClient(t *testing.T, handler http.Handler) *sat.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := sat.New("test-key", "testing", rest.WithBaseURL(ts.URL))
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	return c
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("scope"); got != "cfdi" {
			t.Errorf("expected scope cfdi, got %q", got)
		}
		io.WriteString(w, `{"status": "logged_in", "session_key": "sat-sess"}`)
	}))

	s, err := c.Login(context.Background(), "AAA010101AAA", "ciec", sat.ScopeCFDI)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.Key() != "sat-sess" {
		t.Errorf("expected key sat-sess, got %q", s.Key())
	}
}

func TestErrorStatusInside200(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "error", "message": "RFC temporarily locked"}`)
	}))

	s := c.RestoreSession("sat-sess")
	_, err := s.GetEmittedBills(context.Background(), rest.Date{}, rest.Date{}, sat.BillValid)
	if !errors.Is(err, sat.ErrSat) {
		t.Fatalf("expected a sat client error, got: %v", err)
	}

	var clientErr *sat.ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected *ClientError, got %T", err)
	}
	if clientErr.Message != "RFC temporarily locked" {
		t.Errorf("unexpected message: %q", clientErr.Message)
	}
}

func TestGetEmittedBills(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != "list" {
			t.Errorf("expected action list, got %q", q.Get("action"))
		}
		if q.Get("session_key") != "sat-sess" {
			t.Errorf("expected session key on the query, got %q", q.Get("session_key"))
		}
		io.WriteString(w, `{"status": "success", "emitted": [
			{"id": "b1", "emitter_rfc": "AAA010101AAA", "receiver_rfc": "BBB020202BBB",
			 "certification_date": "2024-02-01T10:00:00", "total_value": 1160.0, "status": "valid"}
		]}`)
	}))

	s := c.RestoreSession("sat-sess")
	start := rest.DateOf(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	end := rest.DateOf(time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC))

	bills, err := s.GetEmittedBills(context.Background(), start, end, sat.BillValid)
	if err != nil {
		t.Fatalf("listing bills: %v", err)
	}
	if len(bills) != 1 || bills[0].TotalValue != 1160.0 {
		t.Fatalf("unexpected bills: %+v", bills)
	}
}

func TestDownloadRequest_PollingAndMemoization(t *testing.T) {
	var resolutions atomic.Int32

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cfdi/emitted/":
			io.WriteString(w, `{"status": "success", "emitted": [{"request_id": "req-9"}]}`)
		case "/cfdi/download/req-9/":
			if resolutions.Add(1) == 1 {
				// First poll: the zip is still being prepared.
				w.WriteHeader(http.StatusNotFound)
				io.WriteString(w, `{"message": "not ready"}`)
				return
			}
			io.WriteString(w, `{"status": "success", "download": {"download_url": "/files/req-9.zip"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	s := c.RestoreSession("sat-sess")
	requests, err := s.DownloadEmittedBills(context.Background(), rest.Date{}, rest.Date{}, sat.BillAny)
	if err != nil {
		t.Fatalf("creating bulk download: %v", err)
	}
	if len(requests) != 1 || requests[0].RequestID != "req-9" {
		t.Fatalf("unexpected requests: %+v", requests)
	}

	req := requests[0]

	ready, err := req.IsReady(context.Background())
	if err != nil {
		t.Fatalf("first poll: %v", err)
	}
	if ready {
		t.Fatal("expected the file to not be ready on the first poll")
	}

	ready, err = req.IsReady(context.Background())
	if err != nil || !ready {
		t.Fatalf("expected the file to be ready on the second poll, got (%t, %v)", ready, err)
	}

	// Further resolutions come from the memoized handle.
	dl, err := req.GetDownload(context.Background())
	if err != nil {
		t.Fatalf("resolving download: %v", err)
	}
	if dl.URL != "/files/req-9.zip" {
		t.Errorf("unexpected download URL %q", dl.URL)
	}
	if got := resolutions.Load(); got != 2 {
		t.Errorf("expected 2 backend resolutions, got %d", got)
	}
}

func TestGetAcknowledgements(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("motive") != "all" || q.Get("document_type") != "ct" {
			t.Errorf("unexpected query: %v", q)
		}
		io.WriteString(w, `{"status": "success", "results": [
			{"id": "ack-1", "period": "2024-01", "motive": "af", "status": "accepted"}
		]}`)
	}))

	s := c.RestoreSession("sat-sess")
	acks, err := s.GetAcknowledgements(context.Background(), 2024, 1, 3, sat.MotiveAll, sat.DocumentCT, sat.AckAll, sat.SendAll)
	if err != nil {
		t.Fatalf("listing acknowledgements: %v", err)
	}
	if len(acks) != 1 || acks[0].ID != "ack-1" {
		t.Fatalf("unexpected acknowledgements: %+v", acks)
	}
}
