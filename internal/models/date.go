// Package models defines data structures for riskfolio
package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DateFormat is the wire format for as-of dates.
const DateFormat = "2006-01-02"

// ErrBadDate indicates a date string that is not a YYYY-MM-DD literal.
var ErrBadDate = errors.New("invalid date")

// Date represents a calendar date with day-level granularity. The zero
// value is not a valid date.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// ParseDate parses a YYYY-MM-DD literal. The format is checked by length
// before any field is parsed; anything other than 10 characters fails
// immediately rather than producing a partial date.
func ParseDate(s string) (Date, error) {
	if len(s) != 10 {
		return Date{}, fmt.Errorf("%w: %q must be a string of format YYYY-MM-DD", ErrBadDate, s)
	}
	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q has a non-numeric year", ErrBadDate, s)
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q has a non-numeric month", ErrBadDate, s)
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q has a non-numeric day", ErrBadDate, s)
	}
	d := NewDate(year, time.Month(month), day)
	// time.Date normalizes out-of-range fields (month 13 rolls into the
	// next year), so an impossible calendar date survives as a different
	// one. Reject anything that did not round-trip unchanged.
	if d.y != year || d.m != time.Month(month) || d.d != day {
		return Date{}, fmt.Errorf("%w: %q is not a real calendar date", ErrBadDate, s)
	}
	return d, nil
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// String formats the date as a YYYY-MM-DD literal.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// MarshalJSON encodes the date as a quoted YYYY-MM-DD literal.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD literal.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s is not a quoted date", ErrBadDate, s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
