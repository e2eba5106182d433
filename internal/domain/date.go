package domain

import (
	"strings"
	"time"
)

// ISODateLayout is the wire format of every date field.
const ISODateLayout = "2006-01-02"

// Date is a calendar date that may fail to parse. Invalid dates keep their
// raw text so they can be carried through filtering and grouping instead of
// aborting a whole batch.
type Date struct {
	t   time.Time
	raw string
	ok  bool
}

// ParseDate never fails. It accepts YYYY-MM-DD optionally followed by a time
// component, which is ignored.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	head := s
	if i := strings.IndexAny(head, "T "); i >= 0 {
		head = head[:i]
	}

	t, err := time.Parse(ISODateLayout, head)
	if err != nil {
		return Date{raw: s}
	}

	return Date{t: t, raw: s, ok: true}
}

// NewDate builds a valid date in UTC.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t: t, raw: t.Format(ISODateLayout), ok: true}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) Valid() bool     { return d.ok }
func (d Date) Time() time.Time { return d.t }
func (d Date) Raw() string     { return d.raw }

func (d Date) Year() int {
	if !d.ok {
		return 0
	}
	return d.t.Year()
}

func (d Date) Month() time.Month {
	if !d.ok {
		return 0
	}
	return d.t.Month()
}

func (d Date) Day() int {
	if !d.ok {
		return 0
	}
	return d.t.Day()
}

// String returns YYYY-MM-DD for valid dates and the raw text otherwise.
func (d Date) String() string {
	if d.ok {
		return d.t.Format(ISODateLayout)
	}
	return d.raw
}

// Before compares two valid dates by calendar day.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After compares two valid dates by calendar day.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal compares two valid dates by calendar day.
func (d Date) Equal(o Date) bool { return d.ok == o.ok && d.t.Equal(o.t) }

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	*d = ParseDate(string(b))
	return nil
}
