// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package distroinfo contains the core model for distro-info-data
// release files: calendar dates, distributions, and release records.
package distroinfo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/errs"
)

var (
	// ErrDateFormat is returned when a date string does not have exactly
	// three dash-separated parts.
	ErrDateFormat = errs.Class("date format")
	// ErrDateNumeric is returned when a date part is not an integer.
	ErrDateNumeric = errs.Class("date numeric")
	// ErrDateCalendar is returned when integer parts do not form a valid
	// calendar date.
	ErrDateCalendar = errs.Class("date calendar")
)

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate constructs a Date, rejecting values that do not name a real
// calendar day.
func NewDate(year int, month time.Month, day int) (*Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	if y != year || m != month || d != day {
		return nil, ErrDateCalendar.New("%04d-%02d-%02d is not a valid calendar date", year, int(month), day)
	}
	return &Date{Year: year, Month: month, Day: day}, nil
}

// ConvertDate converts a date string in ISO 8601 into a Date. An empty
// string converts to nil without error.
func ConvertDate(s string) (*Date, error) {
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, "-")
	parts := make([]int, 0, len(fields))
	for _, field := range fields {
		part, err := strconv.Atoi(field)
		if err != nil {
			return nil, ErrDateNumeric.Wrap(err)
		}
		parts = append(parts, part)
	}

	if len(parts) != 3 {
		return nil, ErrDateFormat.New("date not in ISO 8601 format")
	}

	return NewDate(parts[0], time.Month(parts[1]), parts[2])
}

// Time returns the date at midnight UTC.
func (date Date) Time() time.Time {
	return time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether date is earlier than other.
func (date Date) Before(other Date) bool {
	return date.Time().Before(other.Time())
}

// After reports whether date is later than other.
func (date Date) After(other Date) bool {
	return date.Time().After(other.Time())
}

func (date Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", date.Year, int(date.Month), date.Day)
}

// MarshalCSV implements strictcsv.Marshaler.
func (date Date) MarshalCSV() (string, error) {
	return date.String(), nil
}

// UnmarshalCSV implements strictcsv.Unmarshaler.
func (date *Date) UnmarshalCSV(s string) error {
	converted, err := ConvertDate(s)
	if err != nil {
		return err
	}
	if converted == nil {
		return ErrDateFormat.New("date not in ISO 8601 format")
	}
	*date = *converted
	return nil
}
