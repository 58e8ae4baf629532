// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astrotime

import (
	"math"
	"time"
)

// A DateTime pairs a Date with a Time within that day. The zero value of
// DateTime is 2000-01-01T00:00:00 UTC.
type DateTime struct {
	date Date
	time Time
}

// JulianEpochDateTime is the reference instant for Julian dates,
// -4712-01-01 at noon.
var JulianEpochDateTime = NewDateTime(JulianEpoch, Noon)

// NewDateTime returns the DateTime combining the given date and time of
// day.
func NewDateTime(d Date, t Time) DateTime {
	return DateTime{date: d, time: t}
}

// NewDateTimeFromFields returns the DateTime with the given calendar and
// clock components, in UTC.
func NewDateTimeFromFields(year int, month time.Month, day, hour, minute int, second float64) (DateTime, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	t, err := NewTime(hour, minute, second)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: t}, nil
}

// Date returns the calendar day of dt.
func (dt DateTime) Date() Date {
	return dt.date
}

// Time returns the time of day of dt.
func (dt DateTime) Time() Time {
	return dt.time
}

// AddSeconds returns the DateTime the given number of seconds after dt,
// crossing day boundaries as needed. The offset may be negative and carry a
// fractional part; it must be finite. The result keeps dt's UTC offset.
func (dt DateTime) AddSeconds(seconds float64) DateTime {
	day := int(dt.date)
	s := dt.time.SecondsInLocalDay() + seconds

	dayShift := int(math.Floor(s / secondsInDay))
	s -= secondsInDay * float64(dayShift)
	day += dayShift

	// s is in [0, 86400] here, so the conversion cannot fail
	t, _ := TimeFromSecondsInDay(s)
	t.minutesFromUTC = dt.time.minutesFromUTC
	return DateTime{date: Date(day), time: t}
}

// OffsetFrom returns the number of seconds from o to dt, such that
// o.AddSeconds(dt.OffsetFrom(o)) names the same instant as dt. It is the
// antisymmetric counterpart of AddSeconds.
func (dt DateTime) OffsetFrom(o DateTime) float64 {
	dateOffset := int(dt.date) - int(o.date)
	timeOffset := dt.time.SecondsInUTCDay() - o.time.SecondsInUTCDay()
	return secondsInDay*float64(dateOffset) + timeOffset
}

// Equal reports whether dt and o have the same date and, within the second
// tolerance of Time.Equal, the same time of day.
func (dt DateTime) Equal(o DateTime) bool {
	return dt.date == o.date && dt.time.Equal(o.time)
}

// Compare orders date-times by date first, then by the UTC-normalized time
// of day. It returns -1 if dt is before o, +1 if it is after and 0 if they
// coincide.
func (dt DateTime) Compare(o DateTime) int {
	if c := dt.date.Compare(o.date); c != 0 {
		return c
	}
	return dt.time.Compare(o.time)
}

// Hash returns a hash of dt consistent with equality up to the second's bit
// pattern, combining the hashes of the date and the time.
func (dt DateTime) Hash() uint64 {
	return dt.date.Hash()<<16 ^ dt.time.Hash()
}
