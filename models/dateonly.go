package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateOnly wraps time.Time for DATE columns so we control both
// JSON un/marshaling and SQL driver encoding.
type DateOnly time.Time

// UnmarshalJSON accepts "2006-01-02" as well as full RFC3339 strings
// (mobile clients send whatever their date picker produces).
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		*d = DateOnly(t)
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = dateOf(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("DateOnly.UnmarshalJSON: cannot parse %q: %w", s, err)
	}
	*d = dateOf(t)
	return nil
}

// dateOf keeps the calendar day the client saw. Truncating in absolute
// time would shift timestamps with non-UTC offsets onto the wrong day.
func dateOf(t time.Time) DateOnly {
	y, m, day := t.Date()
	return DateOnly(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}

// MarshalJSON always emits "2006-01-02".
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format("2006-01-02"))
}

func (d DateOnly) String() string {
	return time.Time(d).Format("2006-01-02")
}

func (d DateOnly) IsZero() bool {
	return time.Time(d).IsZero()
}

// Value implements driver.Valuer so GORM/pgx can bind a DATE parameter.
func (d DateOnly) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// Scan implements sql.Scanner so GORM can read DATE columns back.
func (d *DateOnly) Scan(src interface{}) error {
	if src == nil {
		*d = DateOnly(time.Time{})
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*d = dateOf(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("DateOnly.Scan: unsupported type %T", src)
	}
}

// scanString tries the layouts different drivers emit for DATE columns.
func (d *DateOnly) scanString(s string) error {
	for _, layout := range []string{
		"2006-01-02",
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = dateOf(t)
			return nil
		}
	}
	return fmt.Errorf("DateOnly.Scan: cannot parse %q", s)
}
