// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astrotime

import (
	"fmt"
	"math"
)

// secondsInDay is the duration of a day in seconds (a Julian day).
const secondsInDay = 86400

// secondTolerance is the absolute tolerance used when comparing the second
// fields of two times, to absorb floating point round-off.
const secondTolerance = 1e-8

// A Time represents a time within a day, broken up into hour, minute and
// second components, plus the offset of the local time from UTC as an
// integral number of minutes, as per ISO 8601.
//
// The second is a float64 between 0 (inclusive) and the duration of the
// current minute (exclusive). The minute duration is normally 60 seconds,
// but reaches 61 during the introduction of a positive leap second, so
// seconds between 60 and 61 do occur. The zero value of Time is midnight
// UTC.
type Time struct {
	hour           int
	minute         int
	second         float64
	minutesFromUTC int
}

// Commonly used times of day.
var (
	// Midnight is 00:00:00 UTC, the zero value of Time.
	Midnight = Time{}

	// Noon is 12:00:00 UTC.
	Noon = Time{hour: 12}
)

// NewTime returns the Time with the given clock components in UTC.
//
// Seconds between 60 (inclusive) and 61 (exclusive) are allowed, since they
// occur during the introduction of positive leap seconds. A NaN second is
// accepted and kept as is, see TimeFromSeconds.
func NewTime(hour, minute int, second float64) (Time, error) {
	return NewTimeWithOffset(hour, minute, second, 0)
}

// NewTimeWithOffset returns the Time with the given clock components in a
// local time displaced from UTC by minutesFromUTC.
func NewTimeWithOffset(hour, minute int, second float64, minutesFromUTC int) (Time, error) {
	if hour < 0 || hour > 23 {
		return Time{}, fmt.Errorf("%w: hour %d out of range", ErrInvalidTime, hour)
	}
	if minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("%w: minute %d out of range", ErrInvalidTime, minute)
	}
	if second < 0 || second >= 61 {
		return Time{}, fmt.Errorf("%w: second %v out of range [0, 61)", ErrInvalidTime, second)
	}
	return Time{hour: hour, minute: minute, second: second, minutesFromUTC: minutesFromUTC}, nil
}

// TimeFromSecondsInDay returns the Time at the given number of seconds past
// midnight UTC, between 0 (inclusive) and 86401 (exclusive).
//
// If secondInDay reaches into the last minute's worth of overflow (at least
// 86400), the constructor assumes the day ends with a positive leap second
// and the returned second reaches into [60, 61).
func TimeFromSecondsInDay(secondInDay float64) (Time, error) {
	return TimeFromSplitSeconds(0, secondInDay)
}

// TimeFromSplitSeconds is TimeFromSecondsInDay with the seconds split into
// two values whose sum is the seconds past midnight. The split preserves
// sub-second resolution where a single float64 holding a large
// seconds-of-day value could not.
func TimeFromSplitSeconds(secondInDayA int, secondInDayB float64) (Time, error) {
	if (secondsInDay-float64(secondInDayA))-secondInDayB > 0 {
		return TimeFromSeconds(secondInDayA, secondInDayB, 0, 60)
	}
	// at least 86400 seconds in the day: assume a positive leap second
	return TimeFromSeconds(secondInDayA-1, secondInDayB, 1, 61)
}

// TimeFromSeconds returns the Time at secondInDayA+secondInDayB+leap seconds
// past midnight UTC during a minute lasting minuteDuration seconds.
//
// Only secondInDayA+secondInDayB is used to compute the hour and minute;
// leap is the magnitude of the leap second in progress (0 outside leap
// seconds) and is added to the second component alone. minuteDuration is
// normally 60, and 61 during a positive leap second. The arguments must
// satisfy
//
//	0 <= secondInDayA+secondInDayB < 86400
//	0 <= leap <= minuteDuration-60   (or 0 >= leap >= minuteDuration-60)
//
// or an error wrapping ErrInvalidSeconds is returned.
//
// If the computed second of minute rounds up to minuteDuration because the
// inputs carry more precision than a float64, it is rounded down to the
// largest float64 below minuteDuration instead, keeping the time valid.
//
// If secondInDayB or leap is NaN, the hour and minute are still derived from
// secondInDayA alone and the second is NaN. This is a deliberate best-effort
// fallback, not an error.
func TimeFromSeconds(secondInDayA int, secondInDayB, leap float64, minuteDuration int) (Time, error) {
	// split into a whole number of seconds and a fractional part in [0, 1)
	carry := 0
	fractional := secondInDayB
	if f := math.Floor(secondInDayB); !math.IsNaN(f) {
		carry = int(f)
		fractional = secondInDayB - f
	}
	wholeSeconds := secondInDayA + carry

	if !math.IsNaN(secondInDayB) && !math.IsNaN(leap) {
		if wholeSeconds < 0 || wholeSeconds >= secondsInDay {
			return Time{}, fmt.Errorf("%w: %v seconds in day outside range [0, 86400)",
				ErrInvalidSeconds, float64(secondInDayA)+secondInDayB)
		}
		maxExtra := float64(minuteDuration - 60)
		if leap*maxExtra < 0 || math.Abs(leap) > math.Abs(maxExtra) {
			return Time{}, fmt.Errorf("%w: leap %v incompatible with minute duration %d",
				ErrInvalidSeconds, leap, minuteDuration)
		}
	}

	hour := wholeSeconds / 3600
	wholeSeconds -= 3600 * hour
	minute := wholeSeconds / 60
	wholeSeconds -= 60 * minute

	second := float64(wholeSeconds) + leap + fractional
	switch {
	case second < 0:
		return Time{}, fmt.Errorf("%w: second of minute %v is negative", ErrInvalidSeconds, second)
	case second >= float64(minuteDuration):
		// The inputs carried more precision than a float64 and the second
		// rounded up to the full minute. Round down instead, at the cost of
		// up to one ULP of error. A NaN second never lands here.
		second = math.Nextafter(float64(minuteDuration), math.Inf(-1))
	}
	return Time{hour: hour, minute: minute, second: second}, nil
}

// Hour returns the hour number, between 0 and 23.
func (t Time) Hour() int {
	return t.hour
}

// Minute returns the minute number, between 0 and 59.
func (t Time) Minute() int {
	return t.minute
}

// Second returns the second of minute, between 0 (inclusive) and 61
// (exclusive). Seconds of 60 and above only occur during a positive leap
// second.
func (t Time) Second() float64 {
	return t.second
}

// MinutesFromUTC returns the offset of the local time from UTC as an
// integral number of minutes.
func (t Time) MinutesFromUTC() int {
	return t.minutesFromUTC
}

// SecondsInLocalDay returns the number of seconds past local midnight,
// without applying the UTC offset.
func (t Time) SecondsInLocalDay() float64 {
	return t.second + 60*float64(t.minute) + 3600*float64(t.hour)
}

// SecondsInUTCDay returns the number of seconds past UTC midnight, applying
// the UTC offset.
func (t Time) SecondsInUTCDay() float64 {
	return t.second + 60*float64(t.minute-t.minutesFromUTC) + 3600*float64(t.hour)
}

// Equal reports whether t and o are the same time of day. The hour, minute
// and UTC offset must match exactly, the seconds within an absolute
// tolerance of 1e-8 to absorb floating point round-off.
func (t Time) Equal(o Time) bool {
	return t.hour == o.hour &&
		t.minute == o.minute &&
		math.Abs(t.second-o.second) < secondTolerance &&
		t.minutesFromUTC == o.minutesFromUTC
}

// Compare returns -1 if t is an earlier instant of the UTC day than o, +1 if
// it is later and 0 if they coincide.
func (t Time) Compare(o Time) int {
	switch a, b := t.SecondsInUTCDay(), o.SecondsInUTCDay(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Hash returns a hash of t consistent with equality up to the second's bit
// pattern, combining the hour, the UTC-adjusted minute and the second.
func (t Time) Hash() uint64 {
	bits := math.Float64bits(t.second)
	return uint64(t.hour)<<16 ^ uint64(t.minute-t.minutesFromUTC)<<8 ^ (bits ^ bits>>32)
}
