// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astrotime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// This file implements the ISO 8601 text representation of dates, times and
// date-times. Parsing accepts the calendar (2000-01-01), ordinal (2000-001)
// and week (2000-W01-6) date formats, with or without separators, and clock
// times with an optional fraction and UTC offset. There is no general layout
// machinery: ISO 8601 is the only representation.

var (
	calendarDateRE = regexp.MustCompile(`^(-?\d{4})-?(\d{2})-?(\d{2})$`)
	ordinalDateRE  = regexp.MustCompile(`^(-?\d{4})-?(\d{3})$`)
	weekDateRE     = regexp.MustCompile(`^(-?\d{4})-?W(\d{2})-?(\d)$`)
	clockTimeRE    = regexp.MustCompile(`^(\d{2}):?(\d{2})(?::?(\d{2}(?:[.,]\d+)?))?(Z|[-+]\d{2}(?::?\d{2})?)?$`)
)

// ParseError describes a problem parsing an ISO 8601 string.
type ParseError struct {
	// Value is the input that failed to parse.
	Value string

	// Message describes the failure when no underlying error applies.
	Message string

	// Err is the validation error for an input that is syntactically ISO
	// 8601 but names a value that does not exist.
	Err error
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("parsing %q: %s", e.Value, e.Message)
}

// Unwrap returns the underlying validation error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseDate parses an ISO 8601 date. It accepts the calendar ("2000-01-02",
// "20000102"), ordinal ("2000-002", "2000002") and week ("2000-W52-2",
// "2000W522") formats, with an optional sign for BC years. Years must have
// four digits.
func ParseDate(s string) (Date, error) {
	if m := calendarDateRE.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		d, err := NewDate(year, time.Month(month), day)
		if err != nil {
			return 0, &ParseError{Value: s, Err: err}
		}
		return d, nil
	}
	if m := ordinalDateRE.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		yday, _ := strconv.Atoi(m[2])
		d, err := NewDateFromYearDay(year, yday)
		if err != nil {
			return 0, &ParseError{Value: s, Err: err}
		}
		return d, nil
	}
	if m := weekDateRE.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		weekday, _ := strconv.Atoi(m[3])
		d, err := NewDateFromISOWeek(year, week, weekday)
		if err != nil {
			return 0, &ParseError{Value: s, Err: err}
		}
		return d, nil
	}
	return 0, &ParseError{Value: s, Message: "not an ISO-8601 date"}
}

// ParseTime parses an ISO 8601 time of day: "hh:mm", "hh:mm:ss" or
// "hhmmss", with an optional decimal fraction of the second (a point or a
// comma) and an optional UTC offset ("Z", "+01:00", "-0730", "+05").
func ParseTime(s string) (Time, error) {
	m := clockTimeRE.FindStringSubmatch(s)
	if m == nil {
		return Time{}, &ParseError{Value: s, Message: "not an ISO-8601 time"}
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	var second float64
	if m[3] != "" {
		second, _ = strconv.ParseFloat(strings.Replace(m[3], ",", ".", 1), 64)
	}
	t, err := NewTimeWithOffset(hour, minute, second, parseUTCOffset(m[4]))
	if err != nil {
		return Time{}, &ParseError{Value: s, Err: err}
	}
	return t, nil
}

// parseUTCOffset converts a matched offset designator into minutes from
// UTC. An empty designator and "Z" both mean UTC itself.
func parseUTCOffset(s string) int {
	if s == "" || s == "Z" {
		return 0
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	hours, _ := strconv.Atoi(s[1:3])
	minutes := 0
	if rest := strings.TrimPrefix(s[3:], ":"); rest != "" {
		minutes, _ = strconv.Atoi(rest)
	}
	return sign * (60*hours + minutes)
}

// ParseDateTime parses an ISO 8601 date-time, a date and a time joined by
// 'T', such as "2000-01-02T03:04:05.678Z".
func ParseDateTime(s string) (DateTime, error) {
	i := strings.IndexByte(s, 'T')
	if i < 0 {
		return DateTime{}, &ParseError{Value: s, Message: "not an ISO-8601 date-time: missing 'T'"}
	}
	d, err := ParseDate(s[:i])
	if err != nil {
		return DateTime{}, err
	}
	t, err := ParseTime(s[i+1:])
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: t}, nil
}

// appendYear appends year as at least four digits, with a leading '-' for
// BC years.
func appendYear(b []byte, year int) []byte {
	if year < 0 {
		b = append(b, '-')
		year = -year
	}
	if year < 1000 {
		b = append(b, '0')
	}
	if year < 100 {
		b = append(b, '0')
	}
	if year < 10 {
		b = append(b, '0')
	}
	return strconv.AppendInt(b, int64(year), 10)
}

func append2d(b []byte, n int) []byte {
	if n < 10 {
		b = append(b, '0')
	}
	return strconv.AppendInt(b, int64(n), 10)
}

// String returns the date in the ISO 8601 calendar format, like
// "2000-01-02" or "-4712-01-01".
func (d Date) String() string {
	year, month, day := d.Date()
	b := make([]byte, 0, 16)
	b = appendYear(b, year)
	b = append(b, '-')
	b = append2d(b, int(month))
	b = append(b, '-')
	b = append2d(b, day)
	return string(b)
}

// MarshalText implements the encoding.TextMarshaler interface. The date is
// formatted in the ISO 8601 calendar format.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The date
// must be in one of the ISO 8601 formats accepted by ParseDate.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err == nil {
		*d = v
	}
	return err
}

// String returns the time in ISO 8601 format with millisecond resolution,
// like "23:59:60.500Z" or "09:30:00.000+01:00".
func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%06.3f", t.hour, t.minute, t.second)
	if t.minutesFromUTC == 0 {
		return s + "Z"
	}
	sign, off := byte('+'), t.minutesFromUTC
	if off < 0 {
		sign, off = '-', -off
	}
	return s + fmt.Sprintf("%c%02d:%02d", sign, off/60, off%60)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The time
// must be in the ISO 8601 format accepted by ParseTime.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := ParseTime(string(b))
	if err == nil {
		*t = v
	}
	return err
}

// String returns the date-time in ISO 8601 format, like
// "2000-01-02T03:04:05.678Z".
func (dt DateTime) String() string {
	return dt.date.String() + "T" + dt.time.String()
}

// MarshalText implements the encoding.TextMarshaler interface.
func (dt DateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The
// date-time must be in the ISO 8601 format accepted by ParseDateTime.
func (dt *DateTime) UnmarshalText(b []byte) error {
	v, err := ParseDateTime(string(b))
	if err == nil {
		*dt = v
	}
	return err
}
