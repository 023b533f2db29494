package rest_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/meridianapi/meridian-go/rest"
)

func TestDate_Wire(t *testing.T) {
	var d rest.Date
	if err := json.Unmarshal([]byte(`"25/12/2023"`), &d); err != nil {
		t.Fatalf("unmarshaling date: %v", err)
	}

	want := time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC)
	if !d.Time.Equal(want) {
		t.Errorf("expected %v, got %v", want, d.Time)
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshaling date: %v", err)
	}
	if string(b) != `"25/12/2023"` {
		t.Errorf("expected %q, got %s", `"25/12/2023"`, b)
	}
}

func TestTimestamp_AcceptsBothWireForms(t *testing.T) {
	for _, raw := range []string{`"2023-06-01T14:30:00"`, `"2023-06-01T14:30:00Z"`} {
		var ts rest.Timestamp
		if err := json.Unmarshal([]byte(raw), &ts); err != nil {
			t.Errorf("unmarshaling %s: %v", raw, err)
			continue
		}
		if ts.Year() != 2023 || ts.Month() != time.June || ts.Hour() != 14 {
			t.Errorf("unexpected parse of %s: %v", raw, ts.Time)
		}
	}
}
