package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Layout is the only wire format for dates: no time component, no timezone.
const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD")

// Date is a pure calendar date. Comparisons and weekday arithmetic never
// involve time-of-day or timezone, so a date parsed anywhere in the world
// lands on the same weekday.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a strict "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return FromTime(t), nil
}

// FromTime truncates a time.Time to its calendar day in the time's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar day in local time.
func Today() Date {
	return FromTime(time.Now())
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of week for the date.
func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

// IsWeekend reports whether the date falls on Saturday or Sunday,
// independent of any holiday calendar.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.time().AddDate(0, 0, n))
}

func (d Date) Equal(u Date) bool {
	return d == u
}

func (d Date) Before(u Date) bool {
	if d.Year != u.Year {
		return d.Year < u.Year
	}
	if d.Month != u.Month {
		return d.Month < u.Month
	}
	return d.Day < u.Day
}

func (d Date) After(u Date) bool {
	return u.Before(d)
}

// DatesBetween returns every calendar date from start to end inclusive,
// ascending. start == end yields a single element; start > end yields nil.
func DatesBetween(start, end Date) []Date {
	if start.After(end) {
		return nil
	}
	var dates []Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON accepts a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
