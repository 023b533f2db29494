package curp_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meridianapi/meridian-go/curp"
	"github.com/meridianapi/meridian-go/rest"
)

func newTestClient(t *testing.T, handler http.Handler) *curp.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := curp.New("test-key", "testing", rest.WithBaseURL(ts.URL))
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	return c
}

func TestQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("curp"); got != "ABCD800101HDFRRN09" {
			t.Errorf("unexpected curp %q", got)
		}
		io.WriteString(w, `{
			"errors": null,
			"data": {
				"document_data": {"numActa": "123", "anioReg": "1980"},
				"personal_data": {
					"curp": "ABCD800101HDFRRN09", "sexo": "H", "nombres": "JUAN",
					"fechaNacimiento": "01/01/1980", "statusCurp": "RCN"
				},
				"pdf_url": "/pdfs/ABCD800101HDFRRN09.pdf"
			}
		}`)
	}))

	result, err := c.Query(context.Background(), "ABCD800101HDFRRN09")
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	if result.PersonalData.Sexo != curp.Male {
		t.Errorf("expected gender H, got %q", result.PersonalData.Sexo)
	}
	if got := result.PersonalData.FechaNacimiento.Year(); got != 1980 {
		t.Errorf("expected birth year 1980, got %d", got)
	}
	if result.PDF == nil || result.PDF.URL != "/pdfs/ABCD800101HDFRRN09.pdf" {
		t.Errorf("expected a deferred PDF handle, got %+v", result.PDF)
	}
}

func TestQuery_LookupError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"errors": {"detail": "CURP not found"}, "data": null}`)
	}))

	_, err := c.Query(context.Background(), "XXXX000000XXXXXX00")
	if !errors.Is(err, curp.ErrCurp) {
		t.Fatalf("expected a curp lookup error, got: %v", err)
	}

	var lookupErr *curp.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *LookupError, got %T", err)
	}
	if lookupErr.Detail != "CURP not found" {
		t.Errorf("unexpected detail %q", lookupErr.Detail)
	}
}

func TestReverseQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("birthdate"); got != "01/01/1980" {
			t.Errorf("unexpected birthdate %q", got)
		}
		if got := r.PostForm.Get("state"); got != "DF" {
			t.Errorf("unexpected state %q", got)
		}
		io.WriteString(w, `{
			"errors": null,
			"data": {
				"document_data": {},
				"personal_data": {"curp": "ABCD800101HDFRRN09"},
				"pdf_url": "/pdfs/found.pdf"
			}
		}`)
	}))

	birth := rest.DateOf(time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC))
	result, err := c.ReverseQuery(context.Background(), curp.CiudadDeMexico, birth, "JUAN", "PEREZ", "LOPEZ", curp.Male)
	if err != nil {
		t.Fatalf("reverse query: %v", err)
	}
	if result.PersonalData.CURP != "ABCD800101HDFRRN09" {
		t.Errorf("unexpected curp %q", result.PersonalData.CURP)
	}
}
