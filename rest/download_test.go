package rest_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/meridianapi/meridian-go/rest"
)

func TestDownload_GetFileReturnsExactBytes(t *testing.T) {
	content := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff, 0xfe}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/doc.pdf" {
			t.Errorf("expected path /files/doc.pdf, got %s", r.URL.Path)
		}
		w.Write(content)
	}))

	dl := rest.NewDownload(c, "/files/doc.pdf")
	got, err := dl.GetFile(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !bytes.Equal(content, got) {
		t.Errorf("expected exact bytes %v, got %v", content, got)
	}
}

func TestDownload_NotReadySurfacesNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	dl := rest.NewDownload(c, "/files/pending.xml")
	if _, err := dl.GetFile(context.Background()); !errors.Is(err, rest.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a pending file, got: %v", err)
	}
}

func TestDownload_UnclassifiedStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	dl := rest.NewDownload(c, "/files/odd")
	_, err := dl.GetFile(context.Background())
	if !errors.Is(err, rest.ErrUnexpectedStatusCode) {
		t.Errorf("expected ErrUnexpectedStatusCode, got: %v", err)
	}
}

func TestDownload_GetFileAsync(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("file body"))
	}))

	dl := rest.NewDownload(c, "/files/async")
	got, err := dl.GetFileAsync(context.Background()).Get()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if string(got) != "file body" {
		t.Errorf("expected %q, got %q", "file body", got)
	}
}
