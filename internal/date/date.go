// Package date provides a calendar-date value (a day, with no time of
// day) in ISO YYYY-MM-DD form.
package date

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Layout is the wire format for dates.
const Layout = "2006-01-02"

// Date is a calendar date. The zero value is "no date" and reports
// IsZero; optional dates are carried as *Date.
type Date struct {
	t time.Time
}

// New returns the date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse parses a date in YYYY-MM-DD form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// Today returns the current date.
func Today() Date {
	now := time.Now()
	return New(now.Year(), now.Month(), now.Day())
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.t.Format(Layout)
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// Equal reports whether d and other name the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Compare returns -1 if d is earlier than other, 0 if equal, +1 if later.
func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

// MarshalText implements encoding.TextMarshaler, so dates serialize as
// YYYY-MM-DD strings in JSON.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The scalar text is parsed
// directly, so unquoted dates (which YAML resolves as timestamps) and
// quoted strings both round-trip.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}
