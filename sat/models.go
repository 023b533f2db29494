package sat

import "github.com/meridianapi/meridian-go/rest"

// CFDIBill is one emitted or received bill.
type CFDIBill struct {
	ID                string         `json:"id" validate:"required"`
	EmitterRFC        string         `json:"emitter_rfc"`
	EmitterReason     string         `json:"emitter_reason"`
	ReceiverRFC       string         `json:"receiver_rfc"`
	ReceiverReason    string         `json:"receiver_reason"`
	EmittedDate       rest.Timestamp `json:"emitted_date"`
	CertificationDate rest.Timestamp `json:"certification_date"`
	CertificationPAC  string         `json:"certification_pac"`
	TotalValue        float64        `json:"total_value"`
	Effect            string         `json:"effect"`
	Status            BillStatus     `json:"status"`
}

// DownloadTicket identifies a bulk-download request the backend is
// preparing.
type DownloadTicket struct {
	RequestID string `json:"request_id" validate:"required"`
}

// CFDIDownloadItem describes one entry of the session's download list.
type CFDIDownloadItem struct {
	RequestID string `json:"request_id" validate:"required"`
	Type      string `json:"type"`
	Count     int    `json:"count"`
}

// PDFFile is a PDF export descriptor.
type PDFFile struct {
	PDFURL string `json:"pdf_url" validate:"required"`
}

// DownloadFile is the resolved location of a prepared file.
type DownloadFile struct {
	DownloadURL string `json:"download_url" validate:"required"`
}

// Acknowledgement is one SIAT acknowledgement entry.
type Acknowledgement struct {
	ID            string `json:"id" validate:"required"`
	Period        string `json:"period"`
	Motive        string `json:"motive"`
	DocumentType  string `json:"document_type"`
	SendType      string `json:"send_type"`
	FileName      string `json:"file_name"`
	ReceptionDate string `json:"reception_date"`
	Status        string `json:"status"`
}
