// Package sat wraps the Mexican tax authority (SAT) product: CFDI bill
// listings and bulk downloads, PDF exports, and SIAT acknowledgements.
// Session keys travel as the `session_key` parameter.
package sat

import (
	"context"
	"fmt"
	"net/http"

	"github.com/meridianapi/meridian-go/rest"
)

const (
	testingURL    = "https://test.sat.meridianapi.com"
	productionURL = "https://sat.meridianapi.com"
)

// Environments is the closed environment table of the SAT product.
var Environments = rest.Environments{
	"testing":    testingURL,
	"production": productionURL,
}

// LoginScope selects the kind of information a session can query.
type LoginScope string

const (
	// ScopeCFDI logs in for bill (CFDI) listings and downloads.
	ScopeCFDI LoginScope = "cfdi"
	// ScopeSIAT logs in for acknowledgement queries.
	ScopeSIAT LoginScope = "siat"
)

// BillStatus filters bill listings.
type BillStatus string

const (
	BillAny       BillStatus = "any"
	BillCancelled BillStatus = "cancelled"
	BillValid     BillStatus = "valid"
)

// Motive filters acknowledgement queries.
type Motive string

const (
	MotiveAll     Motive = "all"
	MotiveAF      Motive = "af"
	MotiveDE      Motive = "de"
	MotiveCO      Motive = "co"
	MotiveFC      Motive = "fc"
	MotiveMonthly Motive = "monthly"
)

// DocumentType filters acknowledgement queries.
type DocumentType string

const (
	DocumentAll DocumentType = "all"
	DocumentCT  DocumentType = "ct"
	DocumentB   DocumentType = "b"
	DocumentPL  DocumentType = "pl"
	DocumentXF  DocumentType = "xf"
	DocumentXC  DocumentType = "xc"
)

// AckStatus filters acknowledgement queries.
type AckStatus string

const (
	AckAll      AckStatus = "all"
	AckReceived AckStatus = "received"
	AckAccepted AckStatus = "accepted"
	AckRejected AckStatus = "rejected"
)

// SendType filters acknowledgement queries.
type SendType string

const (
	SendAll SendType = "all"
	SendN   SendType = "n"
	SendC   SendType = "c"
)

// action selects what a bill query produces server-side.
type action string

const (
	actionList             action = "list"
	actionBulkDownload     action = "bulk_download"
	actionMetadataDownload action = "metadata_download"
	actionPDFExport        action = "pdf_export"
)

// Client is the SAT sub-client.
type Client struct {
	rest *rest.Client
}

// New builds a SAT client. A business-level failure inside a 200 body
// (`status: "error"`) is rejected by the response hook, so resource
// methods never see it.
func New(apiKey, environment string, opts ...rest.Option) (*Client, error) {
	opts = append(opts, rest.WithResponseHook(rejectErrorStatus))
	rc, err := rest.New(apiKey, environment, Environments, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{rest: rc}, nil
}

// rejectErrorStatus surfaces the `status: "error"` pattern some SAT
// endpoints use on HTTP 200.
func rejectErrorStatus(r *rest.Response) error {
	if r.JSON.Get("status").String() == "error" {
		return newClientError(r.JSON.Get("message").String())
	}

	return nil
}

// Rest exposes the underlying dispatcher.
func (c *Client) Rest() *rest.Client { return c.rest }

// Login authenticates with an RFC and its CIEC password. SAT has no
// interactive challenges; the outcome is either a logged-in session, a
// *rest.WrongCredentialsError, or a *ClientError for anything else.
func (c *Client) Login(ctx context.Context, rfc, password string, scope LoginScope) (*Session, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodPost, "/login/", rest.WithForm(rest.Params{
		"provider": "sat",
		"rfc":      rfc,
		"password": password,
		"scope":    scope,
	}))
	if err != nil {
		return nil, err
	}

	switch rest.Status(resp.JSON.Get("status").String()) {
	case rest.StatusLoggedIn:
		return &Session{
			Session: rest.NewSession(c.rest, rest.StatusLoggedIn, resp.JSON.Get("session_key").String()),
			client:  c,
		}, nil
	case rest.StatusWrongCredentials:
		return nil, rest.NewWrongCredentialsError(resp.JSON.Get("message").String())
	default:
		return nil, newClientError(resp.JSON.Get("message").String())
	}
}

// LoginAsync is the non-blocking entry point over Login.
func (c *Client) LoginAsync(ctx context.Context, rfc, password string, scope LoginScope) *rest.Promise[*Session] {
	return rest.Async(ctx, func(ctx context.Context) (*Session, error) {
		return c.Login(ctx, rfc, password, scope)
	})
}

// RestoreSession reattaches to a previously established session key
// without validating it.
func (c *Client) RestoreSession(key string) *Session {
	return &Session{Session: rest.RestoreSession(c.rest, key), client: c}
}

// Logout invalidates the session key server-side.
func (c *Client) Logout(ctx context.Context, sessionKey string) error {
	_, err := c.rest.CallAPI(ctx, http.MethodGet, "/logout/", rest.WithQuery(rest.Params{
		"session_key": sessionKey,
	}))

	return err
}

// ListEmitted lists emitted bills in a date range.
func (c *Client) ListEmitted(ctx context.Context, sessionKey string, dateStart, dateEnd rest.Date, status BillStatus) ([]CFDIBill, error) {
	resp, err := c.queryEmitted(ctx, sessionKey, dateStart, dateEnd, status, actionList)
	if err != nil {
		return nil, err
	}

	var bills []CFDIBill
	if err := resp.DecodeAt("emitted", &bills); err != nil {
		return nil, err
	}

	return bills, nil
}

// BulkDownloadEmitted asks the backend to prepare a zip of all emitted
// bills in the range, returning the request tickets to poll.
func (c *Client) BulkDownloadEmitted(ctx context.Context, sessionKey string, dateStart, dateEnd rest.Date, status BillStatus) ([]DownloadTicket, error) {
	resp, err := c.queryEmitted(ctx, sessionKey, dateStart, dateEnd, status, actionBulkDownload)
	if err != nil {
		return nil, err
	}

	var tickets []DownloadTicket
	if err := resp.DecodeAt("emitted", &tickets); err != nil {
		return nil, err
	}

	return tickets, nil
}

// ExportEmittedPDF asks the backend for PDF renderings of the emitted
// bills in the range.
func (c *Client) ExportEmittedPDF(ctx context.Context, sessionKey string, dateStart, dateEnd rest.Date, status BillStatus) ([]*rest.Download, error) {
	resp, err := c.queryEmitted(ctx, sessionKey, dateStart, dateEnd, status, actionPDFExport)
	if err != nil {
		return nil, err
	}

	return c.pdfHandles(resp, "emitted")
}

func (c *Client) queryEmitted(ctx context.Context, sessionKey string, dateStart, dateEnd rest.Date, status BillStatus, act action) (*rest.Response, error) {
	return c.rest.CallAPI(ctx, http.MethodGet, "/cfdi/emitted/", rest.WithQuery(rest.Params{
		"session_key": sessionKey,
		"date_start":  dateStart,
		"date_end":    dateEnd,
		"status":      status,
		"action":      act,
	}))
}

// ListReceived lists received bills for a month.
func (c *Client) ListReceived(ctx context.Context, sessionKey string, year, month int, status BillStatus) ([]CFDIBill, error) {
	resp, err := c.queryReceived(ctx, sessionKey, year, month, status, actionList)
	if err != nil {
		return nil, err
	}

	var bills []CFDIBill
	if err := resp.DecodeAt("received", &bills); err != nil {
		return nil, err
	}

	return bills, nil
}

// BulkDownloadReceived asks the backend to prepare a zip of all
// received bills for a month, returning the request tickets to poll.
func (c *Client) BulkDownloadReceived(ctx context.Context, sessionKey string, year, month int, status BillStatus) ([]DownloadTicket, error) {
	resp, err := c.queryReceived(ctx, sessionKey, year, month, status, actionBulkDownload)
	if err != nil {
		return nil, err
	}

	var tickets []DownloadTicket
	if err := resp.DecodeAt("received", &tickets); err != nil {
		return nil, err
	}

	return tickets, nil
}

// ExportReceivedPDF asks the backend for PDF renderings of the
// received bills for a month.
func (c *Client) ExportReceivedPDF(ctx context.Context, sessionKey string, year, month int, status BillStatus) ([]*rest.Download, error) {
	resp, err := c.queryReceived(ctx, sessionKey, year, month, status, actionPDFExport)
	if err != nil {
		return nil, err
	}

	return c.pdfHandles(resp, "received")
}

func (c *Client) queryReceived(ctx context.Context, sessionKey string, year, month int, status BillStatus, act action) (*rest.Response, error) {
	return c.rest.CallAPI(ctx, http.MethodGet, "/cfdi/received/", rest.WithQuery(rest.Params{
		"session_key": sessionKey,
		"year":        year,
		"month":       month,
		"status":      status,
		"action":      act,
	}))
}

func (c *Client) pdfHandles(resp *rest.Response, path string) ([]*rest.Download, error) {
	var files []PDFFile
	if err := resp.DecodeAt(path, &files); err != nil {
		return nil, err
	}

	downloads := make([]*rest.Download, 0, len(files))
	for _, f := range files {
		downloads = append(downloads, rest.NewDownload(c.rest, f.PDFURL))
	}

	return downloads, nil
}

// DownloadEmitted resolves one emitted bill's XML download.
func (c *Client) DownloadEmitted(ctx context.Context, sessionKey, billID string) (*rest.Download, error) {
	return c.resolveDownload(ctx, fmt.Sprintf("/cfdi/emitted/%s/", billID), sessionKey)
}

// DownloadReceived resolves one received bill's XML download.
func (c *Client) DownloadReceived(ctx context.Context, sessionKey, billID string) (*rest.Download, error) {
	return c.resolveDownload(ctx, fmt.Sprintf("/cfdi/received/%s/", billID), sessionKey)
}

// GetDownloads lists the bulk-download requests available to the
// session.
func (c *Client) GetDownloads(ctx context.Context, sessionKey string) ([]CFDIDownloadItem, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/cfdi/download/", rest.WithQuery(rest.Params{
		"session_key": sessionKey,
	}))
	if err != nil {
		return nil, err
	}

	var items []CFDIDownloadItem
	if err := resp.DecodeAt("downloads", &items); err != nil {
		return nil, err
	}

	return items, nil
}

// GetDownload resolves a bulk-download request into a file handle. A
// *rest.NotFoundError means the backend has not finished preparing the
// file; see DownloadRequest.IsReady.
func (c *Client) GetDownload(ctx context.Context, sessionKey, requestID string) (*rest.Download, error) {
	return c.resolveDownload(ctx, fmt.Sprintf("/cfdi/download/%s/", requestID), sessionKey)
}

// GetAcknowledgements lists SIAT acknowledgements for a month range.
func (c *Client) GetAcknowledgements(ctx context.Context, sessionKey string, year, monthStart, monthEnd int, motive Motive, documentType DocumentType, status AckStatus, sendType SendType) ([]Acknowledgement, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, "/ccee/acknowledgment/", rest.WithQuery(rest.Params{
		"session_key":   sessionKey,
		"year":          year,
		"month_start":   monthStart,
		"month_end":     monthEnd,
		"motive":        motive,
		"document_type": documentType,
		"status":        status,
		"send_type":     sendType,
	}))
	if err != nil {
		return nil, err
	}

	var acks []Acknowledgement
	if err := resp.DecodeAt("results", &acks); err != nil {
		return nil, err
	}

	return acks, nil
}

// DownloadAcknowledgement resolves one acknowledgement's file download.
func (c *Client) DownloadAcknowledgement(ctx context.Context, sessionKey, ackID string) (*rest.Download, error) {
	return c.resolveDownload(ctx, fmt.Sprintf("/ccee/acknowledgment/%s/", ackID), sessionKey)
}

// resolveDownload fetches a download descriptor and wraps its URL in a
// deferred handle; no file bytes are fetched here.
func (c *Client) resolveDownload(ctx context.Context, path, sessionKey string) (*rest.Download, error) {
	resp, err := c.rest.CallAPI(ctx, http.MethodGet, path, rest.WithQuery(rest.Params{
		"session_key": sessionKey,
	}))
	if err != nil {
		return nil, err
	}

	var file DownloadFile
	if err := resp.DecodeAt("download", &file); err != nil {
		return nil, err
	}

	return rest.NewDownload(c.rest, file.DownloadURL), nil
}
