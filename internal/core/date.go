// Package core holds the domain types shared by the ledger store and the
// reporting engine.
//
// This file defines CalendarDate, a day identified by year/month/day with no
// time-of-day or timezone component. Storing calendar days instead of instants
// removes the classic off-by-one-day bug where a date-only string parsed as
// UTC midnight renders as the previous day for users west of UTC.
package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDay   = errors.New("invalid day")
	ErrInvalidMonth = errors.New("invalid month")
	ErrInvalidDate  = errors.New("invalid date")
)

// CalendarDate is a civil date: "this happened on this day", not an instant.
type CalendarDate struct {
	Year  int
	Month int // 1-12
	Day   int
}

// NewCalendarDate creates a CalendarDate from year, month, day.
func NewCalendarDate(year, month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: int(m), Day: d}
}

// ParseCalendarDate parses a calendar date string.
//
// The canonical form is "2006-01-02". RFC3339 timestamps written by older
// clients are accepted too; for those the local calendar day is taken, which
// absorbs the UTC-midnight timezone correction in exactly one place.
func ParseCalendarDate(s string) (CalendarDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CalendarDate{}, ErrInvalidDate
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		y, m, d := t.Date()
		return CalendarDate{Year: y, Month: int(m), Day: d}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t.Local()), nil
	}
	return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d CalendarDate) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	if d.Month < 1 || d.Month > 12 {
		return ErrInvalidMonth
	}
	if d.Day < 1 || d.Day > 31 {
		return ErrInvalidDay
	}
	return nil
}

// IsZero reports whether the date is the zero value.
func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Compare orders two calendar dates: -1 if d is earlier than other,
// 0 if equal, +1 if later.
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	case d.Day != other.Day:
		return sign(d.Day - other.Day)
	default:
		return 0
	}
}

// Before reports whether d is strictly earlier than other.
func (d CalendarDate) Before(other CalendarDate) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly later than other.
func (d CalendarDate) After(other CalendarDate) bool { return d.Compare(other) > 0 }

// SameMonth reports whether d falls in the given calendar month.
func (d CalendarDate) SameMonth(year, month int) bool {
	return d.Year == year && d.Month == month
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes "YYYY-MM-DD" or an RFC3339 timestamp.
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = CalendarDate{}
		return nil
	}
	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
