// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astrotime

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tcs := []struct {
		in   string
		want Date
	}{
		{"2000-01-01", 0},
		{"20000101", 0},
		{"2000-001", 0},
		{"2000001", 0},
		{"1999-W52-6", 0},
		{"1999W526", 0},
		{"1999-12-31", -1},
		{"1582-10-15", -152384},
		{"-4712-01-01", -2451545},
		{"-47120101", -2451545},
		{"0000-12-31", -730122},
		{"1995-001", MustDate(1995, time.January, 1)},
		{"1994-W52-7", MustDate(1995, time.January, 1)},
	}
	for _, tc := range tcs {
		got, err := ParseDate(tc.in)
		if err != nil {
			t.Errorf("ParseDate(%q) = _, %v, want <nil>", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDateError(t *testing.T) {
	syntax := []string{
		"",
		"garbage",
		"200-01-01",
		"2000-1-1",
		"12000-01-01",
		"2000-01-01T12:00:00Z",
		"2000-W1-1",
	}
	for _, in := range syntax {
		_, err := ParseDate(in)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseDate(%q) = _, %v, want *ParseError", in, err)
			continue
		}
		if perr.Err != nil {
			t.Errorf("ParseDate(%q) reported a validation error %v, want a syntax error", in, perr.Err)
		}
	}

	invalid := []struct {
		in   string
		want error
	}{
		{"2000-02-30", ErrInvalidDate},
		{"1582-10-10", ErrInvalidDate},
		{"2000-13-01", ErrInvalidDate},
		{"1582-356", ErrInvalidDate},
		{"2000-W54-1", ErrInvalidWeekDate},
		{"2000-W53-1", ErrInvalidWeekDate},
		{"2000-W01-8", ErrInvalidWeekDate},
	}
	for _, tc := range invalid {
		_, err := ParseDate(tc.in)
		if !errors.Is(err, tc.want) {
			t.Errorf("ParseDate(%q) = _, %v, want %v", tc.in, err, tc.want)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseDate(%q) = _, %v, want *ParseError", tc.in, err)
		}
	}
}

func TestParseTime(t *testing.T) {
	tcs := []struct {
		in             string
		hour, minute   int
		second         float64
		minutesFromUTC int
	}{
		{"09:30", 9, 30, 0, 0},
		{"09:30:15", 9, 30, 15, 0},
		{"093015", 9, 30, 15, 0},
		{"09:30:15Z", 9, 30, 15, 0},
		{"23:59:60.5", 23, 59, 60.5, 0},
		{"23:59:60,5", 23, 59, 60.5, 0},
		{"09:30:00+01:00", 9, 30, 0, 60},
		{"093000-0730", 9, 30, 0, -450},
		{"21:00:00-05", 21, 0, 0, -300},
		{"00:00+00:00", 0, 0, 0, 0},
	}
	for _, tc := range tcs {
		got, err := ParseTime(tc.in)
		if err != nil {
			t.Errorf("ParseTime(%q) = _, %v, want <nil>", tc.in, err)
			continue
		}
		if got.Hour() != tc.hour || got.Minute() != tc.minute || math.Abs(got.Second()-tc.second) > 1e-9 || got.MinutesFromUTC() != tc.minutesFromUTC {
			t.Errorf("ParseTime(%q) = %v, want %02d:%02d:%v%+d", tc.in, got, tc.hour, tc.minute, tc.second, tc.minutesFromUTC)
		}
	}
}

func TestParseTimeError(t *testing.T) {
	for _, in := range []string{"", "noon", "9:30", "09", "09:30:15.5.5"} {
		_, err := ParseTime(in)
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Err != nil {
			t.Errorf("ParseTime(%q) = _, %v, want a *ParseError syntax error", in, err)
		}
	}
	for _, in := range []string{"25:00:00", "12:60:00", "12:00:61"} {
		if _, err := ParseTime(in); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ParseTime(%q) = _, %v, want ErrInvalidTime", in, err)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	dt, err := ParseDateTime("2000-01-01T12:00:00.5Z")
	if err != nil {
		t.Fatalf("ParseDateTime() = _, %v, want <nil>", err)
	}
	if dt.Date() != 0 || dt.Time().Hour() != 12 || dt.Time().Second() != 0.5 {
		t.Errorf("ParseDateTime() = %v, want 2000-01-01T12:00:00.500Z", dt)
	}

	for _, in := range []string{"2000-01-01", "12:00:00", "2000-01-01 12:00:00", "1582-10-10T12:00:00"} {
		if _, err := ParseDateTime(in); err == nil {
			t.Errorf("ParseDateTime(%q) = _, <nil>, want error", in)
		}
	}
}

func TestDateString(t *testing.T) {
	tcs := []struct {
		d    Date
		want string
	}{
		{0, "2000-01-01"},
		{-152385, "1582-10-04"},
		{-2451545, "-4712-01-01"},
		{MustDate(33, time.February, 3), "0033-02-03"},
		{MustDate(0, time.December, 31), "0000-12-31"},
		{MinDate, "-5877490-03-03"},
		{MaxDate, "5881610-07-11"},
	}
	for _, tc := range tcs {
		if got := tc.d.String(); got != tc.want {
			t.Errorf("Date(%d).String() = %q, want %q", int(tc.d), got, tc.want)
		}
	}
}

func TestTimeString(t *testing.T) {
	leap, err := NewTime(23, 59, 60.5)
	if err != nil {
		t.Fatal(err)
	}
	local, err := NewTimeWithOffset(9, 30, 0, -330)
	if err != nil {
		t.Fatal(err)
	}
	tcs := []struct {
		t    Time
		want string
	}{
		{Midnight, "00:00:00.000Z"},
		{Noon, "12:00:00.000Z"},
		{leap, "23:59:60.500Z"},
		{local, "09:30:00.000-05:30"},
	}
	for _, tc := range tcs {
		if got := tc.t.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	local, err := NewTimeWithOffset(9, 30, 15.25, 330)
	if err != nil {
		t.Fatal(err)
	}
	dts := []DateTime{
		NewDateTime(0, Noon),
		NewDateTime(MustDate(1582, time.October, 15), Midnight),
		NewDateTime(MustDate(-4712, time.January, 1), local),
	}
	for _, want := range dts {
		s := want.String()
		got, err := ParseDateTime(s)
		if err != nil {
			t.Errorf("ParseDateTime(%q) = _, %v, want <nil>", s, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDateTime(%q) = %v, want %v", s, got, want)
		}
	}
}
