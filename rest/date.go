package rest

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day carried on the wire as dd/mm/yyyy, the format
// of the legacy product endpoints.
type Date struct {
	time.Time
}

// DateOf builds a Date from any time.Time, truncating to the day.
func DateOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(WireDate)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}

	t, err := time.Parse(WireDate, s)
	if err != nil {
		return fmt.Errorf("parsing wire date %q: %w", s, err)
	}
	d.Time = t

	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(WireDate) + `"`), nil
}

// Timestamp is carried on the wire as an ISO-8601 local timestamp
// without zone, the format of the tax-authority document endpoints.
type Timestamp struct {
	time.Time
}

const wireTimestamp = "2006-01-02T15:04:05"

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}

	parsed, err := time.Parse(wireTimestamp, s)
	if err != nil {
		// Newer products zone their timestamps.
		parsed, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return fmt.Errorf("parsing wire timestamp %q: %w", s, err)
	}
	t.Time = parsed

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(wireTimestamp) + `"`), nil
}
