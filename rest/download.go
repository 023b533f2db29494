package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Download is a deferred reference to a remote file, such as a bill
// XML or a PDF document. No bytes are fetched until GetFile is called;
// the handle is immutable after construction and holds only the URL
// plus a reference to the dispatcher that can resolve it.
type Download struct {
	client *Client

	// URL of the remote artifact, absolute or relative to the owning
	// client's environment base URL.
	URL string
}

// NewDownload wraps a URL field from a response in a deferred handle.
func NewDownload(client *Client, url string) *Download {
	return &Download{client: client, URL: url}
}

// GetFile fetches the artifact and returns its exact bytes, bypassing
// JSON interpretation: file downloads return raw content, not an error
// envelope, on success. Non-2xx statuses still pass through the usual
// classification, so a 404 surfaces as *NotFoundError, which callers
// polling for readiness treat as "not ready yet".
func (d *Download) GetFile(ctx context.Context) ([]byte, error) {
	resp, err := d.client.MakeRequest(ctx, http.MethodGet, d.URL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			d.client.logger.Error("failed to close download body", "error", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading download body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		envelope := newResponse(resp.StatusCode, resp.Header, b)
		if err := classify(envelope); err != nil {
			return nil, err
		}

		return nil, &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        ErrUnexpectedStatusCode,
		}
	}

	return b, nil
}

// GetFileAsync starts the fetch without blocking. It is the
// non-blocking entry point over the same implementation as GetFile.
func (d *Download) GetFileAsync(ctx context.Context) *Promise[[]byte] {
	return Async(ctx, d.GetFile)
}
