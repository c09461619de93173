package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOnlyUnmarshalKeepsCalendarDay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain date", `"2026-03-10"`, "2026-03-10"},
		{"utc timestamp", `"2026-03-10T12:00:00Z"`, "2026-03-10"},
		// Late evening in a negative offset is already the next day in
		// UTC; the day the client picked must survive.
		{"late evening negative offset", `"2026-03-10T23:30:00-03:00"`, "2026-03-10"},
		{"early morning positive offset", `"2026-03-10T00:30:00+03:00"`, "2026-03-10"},
		{"nanoseconds", `"2026-03-10T23:59:59.123456789-03:00"`, "2026-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateOnly
			if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("got %s, expected %s", got, tt.want)
			}
		})
	}

	var d DateOnly
	if err := json.Unmarshal([]byte(`"10/03/2026"`), &d); err == nil {
		t.Error("expected an error for an unsupported date format")
	}
}

func TestDateOnlyScan(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name string
		src  interface{}
		want string
	}{
		{"nil", nil, "0001-01-01"},
		{"plain date string", "2026-03-10", "2026-03-10"},
		{"datetime string", "2026-03-10 00:00:00", "2026-03-10"},
		{"zoned datetime string", "2026-03-10 23:30:00.000000000-03:00", "2026-03-10"},
		{"rfc3339 bytes", []byte("2026-03-10T00:00:00Z"), "2026-03-10"},
		{"time value with offset", time.Date(2026, 3, 10, 23, 30, 0, 0, loc), "2026-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateOnly
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("scan %v: %v", tt.src, err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("got %s, expected %s", got, tt.want)
			}
		})
	}

	var d DateOnly
	if err := d.Scan(42); err == nil {
		t.Error("expected an error for an unsupported source type")
	}
}
