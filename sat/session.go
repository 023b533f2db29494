package sat

import (
	"context"
	"errors"

	"github.com/meridianapi/meridian-go/rest"
)

// Session is one SAT login. All methods delegate to the owning client
// with the session key attached.
type Session struct {
	rest.Session

	client *Client
}

// Logout invalidates the session server-side. The session value is not
// usable afterwards.
func (s *Session) Logout(ctx context.Context) error {
	return s.client.Logout(ctx, s.Key())
}

// GetEmittedBills lists emitted bills in a date range.
func (s *Session) GetEmittedBills(ctx context.Context, dateStart, dateEnd rest.Date, status BillStatus) ([]CFDIBill, error) {
	return s.client.ListEmitted(ctx, s.Key(), dateStart, dateEnd, status)
}

// DownloadEmittedBills creates bulk-download requests for all emitted
// bills in a date range.
func (s *Session) DownloadEmittedBills(ctx context.Context, dateStart, dateEnd rest.Date, status BillStatus) ([]*DownloadRequest, error) {
	tickets, err := s.client.BulkDownloadEmitted(ctx, s.Key(), dateStart, dateEnd, status)
	if err != nil {
		return nil, err
	}

	return s.requests(tickets), nil
}

// GetReceivedBills lists received bills for a month.
func (s *Session) GetReceivedBills(ctx context.Context, year, month int, status BillStatus) ([]CFDIBill, error) {
	return s.client.ListReceived(ctx, s.Key(), year, month, status)
}

// DownloadReceivedBills creates bulk-download requests for all
// received bills for a month.
func (s *Session) DownloadReceivedBills(ctx context.Context, year, month int, status BillStatus) ([]*DownloadRequest, error) {
	tickets, err := s.client.BulkDownloadReceived(ctx, s.Key(), year, month, status)
	if err != nil {
		return nil, err
	}

	return s.requests(tickets), nil
}

// GetDownloads lists the session's pending and prepared bulk
// downloads.
func (s *Session) GetDownloads(ctx context.Context) ([]*DownloadRequest, error) {
	items, err := s.client.GetDownloads(ctx, s.Key())
	if err != nil {
		return nil, err
	}

	requests := make([]*DownloadRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, &DownloadRequest{
			client:     s.client,
			sessionKey: s.Key(),
			RequestID:  item.RequestID,
		})
	}

	return requests, nil
}

// GetAcknowledgements lists SIAT acknowledgements for a month range.
func (s *Session) GetAcknowledgements(ctx context.Context, year, monthStart, monthEnd int, motive Motive, documentType DocumentType, status AckStatus, sendType SendType) ([]Acknowledgement, error) {
	return s.client.GetAcknowledgements(ctx, s.Key(), year, monthStart, monthEnd, motive, documentType, status, sendType)
}

// DownloadAcknowledgement resolves one acknowledgement's file.
func (s *Session) DownloadAcknowledgement(ctx context.Context, ack Acknowledgement) (*rest.Download, error) {
	return s.client.DownloadAcknowledgement(ctx, s.Key(), ack.ID)
}

func (s *Session) requests(tickets []DownloadTicket) []*DownloadRequest {
	requests := make([]*DownloadRequest, 0, len(tickets))
	for _, t := range tickets {
		requests = append(requests, &DownloadRequest{
			client:     s.client,
			sessionKey: s.Key(),
			RequestID:  t.RequestID,
		})
	}

	return requests
}

// DownloadRequest is a bulk-download the backend prepares
// asynchronously. Resolving it returns the zip's download handle; the
// resolution is memoized once it succeeds.
type DownloadRequest struct {
	client     *Client
	sessionKey string
	download   *rest.Download

	RequestID string
}

// GetDownload resolves the request into a file handle, memoizing the
// result. While the backend is still preparing the file this fails
// with *rest.NotFoundError.
func (r *DownloadRequest) GetDownload(ctx context.Context) (*rest.Download, error) {
	if r.download != nil {
		return r.download, nil
	}

	download, err := r.client.GetDownload(ctx, r.sessionKey, r.RequestID)
	if err != nil {
		return nil, err
	}
	r.download = download

	return download, nil
}

// IsReady polls whether the backend has finished preparing the file,
// mapping the not-ready NotFound signal to false rather than an error.
func (r *DownloadRequest) IsReady(ctx context.Context) (bool, error) {
	_, err := r.GetDownload(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, rest.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
