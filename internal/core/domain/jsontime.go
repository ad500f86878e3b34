package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// The API serializes dates and times the way a Java backend does:
// LocalDate as "2006-01-02", LocalTime as "15:04:05" (seconds optional),
// LocalDateTime as "2006-01-02T15:04:05" with optional fractional seconds
// and no zone. These wrappers keep the wire format stable regardless of
// the process locale.

var jsonNull = []byte("null")

// Date is a calendar day with no time component.
type Date struct {
	Time time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) IsZero() bool { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return jsonNull, nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, ok := unquote(data)
	if !ok {
		*d = Date{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	*d = Date{Time: t}
	return nil
}

// Clock is a time of day with no date component.
type Clock struct {
	Time time.Time
}

func (c Clock) IsZero() bool { return c.Time.IsZero() }

func (c Clock) String() string { return c.Time.Format("15:04") }

func (c Clock) MarshalJSON() ([]byte, error) {
	if c.Time.IsZero() {
		return jsonNull, nil
	}
	return json.Marshal(c.Time.Format("15:04:05"))
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	s, ok := unquote(data)
	if !ok {
		*c = Clock{}
		return nil
	}
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		// seconds are omitted when zero
		t, err = time.Parse("15:04", s)
		if err != nil {
			return fmt.Errorf("parse time %q: %w", s, err)
		}
	}
	*c = Clock{Time: t}
	return nil
}

// Timestamp is a zone-less date and time.
type Timestamp struct {
	Time time.Time
}

func (ts Timestamp) IsZero() bool { return ts.Time.IsZero() }

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Time.IsZero() {
		return jsonNull, nil
	}
	return json.Marshal(ts.Time.Format("2006-01-02T15:04:05"))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s, ok := unquote(data)
	if !ok {
		*ts = Timestamp{}
		return nil
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			*ts = Timestamp{Time: t}
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q: unsupported layout", s)
}

// unquote strips JSON string quotes; reports false for null or empty values.
func unquote(data []byte) (string, bool) {
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	if s == "" {
		return "", false
	}
	return s, true
}
