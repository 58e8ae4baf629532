// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package astrotime converts between equivalent representations of an instant
// of civil time: a (year, month, day) calendar triple, a signed day count
// relative to the J2000 reference day (2000-01-01), and an (hour, minute,
// second, UTC offset) time of day.
//
// When handling dates for scientific timekeeping, the standard library time
// package has some shortcomings:
//
//   - A time.Time uses the proleptic Gregorian calendar for all dates.
//     Astronomical timekeeping instead follows the convention of the historic
//     calendars: a year zero exists between years -1 and +1, dates up to
//     1582-10-04 follow the Julian calendar (proleptic before year 1) and the
//     ten days 1582-10-05 to 1582-10-14 never happened.
//   - A time.Time cannot represent a leap second. A Time in this package can:
//     23:59:60.5 is a valid time of day during the introduction of a positive
//     leap second, and minutes with a non-standard duration are supported.
//   - There is no easy way to get the number of days between two time.Time
//     values, while a Date here is that number of days.
//
// The conversions use closed-form integer arithmetic throughout. No operation
// iterates over dates and no operation depends on the magnitude of its
// arguments.
//
// All values are immutable and safe for concurrent use.
package astrotime

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

// Errors reported by the constructors in this package. Accessors, arithmetic
// and comparisons operate on already validated values and never fail.
var (
	// ErrInvalidDate means a (year, month, day) triple or a (year, day of
	// year) pair does not name an existing day.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrInvalidWeekDate means an ISO week date has a week number or day of
	// week out of range for its week year.
	ErrInvalidWeekDate = errors.New("invalid week date")

	// ErrInvalidTime means a clock triple has a field out of range.
	ErrInvalidTime = errors.New("invalid time of day")

	// ErrInvalidSeconds means a seconds-of-day quantity violates the
	// documented preconditions of its constructor.
	ErrInvalidSeconds = errors.New("invalid seconds of day")
)

// A Date represents a calendar day, as the number of days since the J2000
// reference day 2000-01-01. The zero value of Date is that reference day.
//
// Dates follow the astronomical convention for calendars: a year zero exists
// between years -1 and +1, and ten days are missing in October 1582. The
// calendars used around these special dates are:
//
//   - up to 0000-12-31: proleptic Julian calendar
//   - from 0001-01-01 to 1582-10-04: Julian calendar
//   - from 1582-10-15: Gregorian calendar
//
// Since a Date is a day count, dates can be compared and shifted by a number
// of days using Go's ordinary operators.
type Date int32

const (
	// MinDate is the earliest representable date, -5877490-03-03.
	MinDate Date = math.MinInt32

	// MaxDate is the latest representable date, 5881610-07-11.
	MaxDate Date = math.MaxInt32

	// Years outside this range cannot produce a representable day count;
	// keeping them out also keeps the day arithmetic far from overflowing.
	minYear = -5877491
	maxYear = 5881611

	// mjdToJ2000 is the day count of the modified Julian day epoch 1858-11-17.
	mjdToJ2000 = 51544
)

// Reference epochs commonly used as the origin of day counts and time scales.
// They are ordinary Date values and carry no special behavior.
var (
	// JulianEpoch is the reference epoch for Julian dates: -4712-01-01.
	//
	// Note that it lies in year -4712 and not in year -4713 as stated by
	// sources that do not use the astronomical year numbering convention.
	JulianEpoch = MustDate(-4712, time.January, 1)

	// ModifiedJulianEpoch is the reference epoch for modified Julian dates:
	// 1858-11-17.
	ModifiedJulianEpoch = MustDate(1858, time.November, 17)

	// FiftiesEpoch is the reference epoch for 1950 dates: 1950-01-01.
	FiftiesEpoch = MustDate(1950, time.January, 1)

	// CCSDSEpoch is the reference epoch for CCSDS Time Code Format (CCSDS
	// 301.0-B-4): 1958-01-01.
	CCSDSEpoch = MustDate(1958, time.January, 1)

	// GalileoEpoch is the reference epoch for Galileo System Time: 1999-08-22.
	GalileoEpoch = MustDate(1999, time.August, 22)

	// GPSEpoch is the reference epoch for GPS weeks: 1980-01-06.
	GPSEpoch = MustDate(1980, time.January, 6)

	// QZSSEpoch is the reference epoch for QZSS weeks: 1980-01-06.
	QZSSEpoch = MustDate(1980, time.January, 6)

	// IRNSSEpoch is the reference epoch for IRNSS weeks: 1999-08-22.
	IRNSSEpoch = MustDate(1999, time.August, 22)

	// BeiDouEpoch is the reference epoch for BeiDou weeks: 2006-01-01.
	BeiDouEpoch = MustDate(2006, time.January, 1)

	// GlonassEpoch is the reference epoch for the GLONASS four-year interval
	// number: 1996-01-01.
	GlonassEpoch = MustDate(1996, time.January, 1)

	// J2000Epoch is the J2000.0 reference epoch: 2000-01-01, day count zero.
	J2000Epoch = MustDate(2000, time.January, 1)

	// UnixEpoch is the Unix reference epoch: 1970-01-01.
	UnixEpoch = MustDate(1970, time.January, 1)
)

// calendar identifies the leap year rule and year numbering in effect for a
// stretch of the astronomical calendar. The set is closed, so the regimes
// are dispatched with a switch instead of dynamic dispatch.
type calendar int

const (
	prolepticJulian calendar = iota
	julian
	gregorian
)

// calendarAt returns the calendar in effect for a day count.
func calendarAt(day int) calendar {
	switch {
	case day >= -152384: // 1582-10-15
		return gregorian
	case day > -730122: // 0001-01-01 is -730121
		return julian
	default:
		return prolepticJulian
	}
}

// calendarFor returns the calendar in effect for an unvalidated calendar
// triple.
func calendarFor(year, month, day int) calendar {
	if year >= 1583 {
		return gregorian
	}
	if year < 1 {
		return prolepticJulian
	}
	if year < 1582 || month < 10 || (month < 11 && day < 5) {
		return julian
	}
	return gregorian
}

// yearOf returns the year containing the given day count. The formulas are
// closed forms of the mean year lengths; only the Gregorian one needs a
// correction step, as the estimate is one unit too high for about 0.16% of
// the days of each 400 year cycle.
func (c calendar) yearOf(day int) int {
	switch c {
	case prolepticJulian:
		return int(-((-4*int64(day) - 2920488) / 1461))
	case julian:
		return int((4*int64(day) + 2921948) / 1461)
	default:
		year := int((400*int64(day) + 292194288) / 146097)
		if day <= c.lastDayOfYear(year-1) {
			year--
		}
		return year
	}
}

// lastDayOfYear returns the day count of the given year's December 31st.
func (c calendar) lastDayOfYear(year int) int {
	y := int64(year)
	switch c {
	case prolepticJulian:
		return int(365*y + (y+1)/4 - 730123)
	case julian:
		return int(365*y + y/4 - 730122)
	default:
		return int(365*y + y/4 - y/100 + y/400 - 730120)
	}
}

// isLeap reports whether the given year is a leap year.
func (c calendar) isLeap(year int) bool {
	if year%4 != 0 {
		return false
	}
	if c == gregorian {
		return year%400 == 0 || year%100 != 0
	}
	return true
}

// previousMonthEnd[m] is the day in year of the last day of month m-1, so
// that day-of-month = day-in-year - previousMonthEnd[month]. Entry 0 is
// unused.
var (
	previousMonthEndCommon = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
	previousMonthEndLeap   = [13]int{0, 0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335}
)

func monthEnds(leap bool) *[13]int {
	if leap {
		return &previousMonthEndLeap
	}
	return &previousMonthEndCommon
}

// monthOf returns the month containing the given day in year. Outside
// January the month boundaries of both year shapes follow a line of slope
// 306/10, which makes a single division sufficient.
func monthOf(dayInYear int, leap bool) int {
	if dayInYear < 32 {
		return 1
	}
	if leap {
		return (10*dayInYear + 313) / 306
	}
	return (10*dayInYear + 323) / 306
}

// dayCountOf computes the day count of an unvalidated triple.
func dayCountOf(year, month, day int) int {
	c := calendarFor(year, month, day)
	return c.lastDayOfYear(year-1) + day + monthEnds(c.isLeap(year))[month]
}

// NewDate returns the Date with the given year, month and day. The year may
// be zero or negative for BC years.
//
// Unlike time.Date, the fields are not normalized: a triple that does not
// name an existing day (February 29 of a common year, a day inside the ten
// day gap of October 1582, a month or day out of range) is reported as an
// error wrapping ErrInvalidDate.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return 0, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, int(month))
	}
	if day < 1 || day > 31 {
		return 0, fmt.Errorf("%w: day %d out of range", ErrInvalidDate, day)
	}
	if year < minYear || year > maxYear {
		return 0, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	n := dayCountOf(year, int(month), day)
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %04d-%02d-%02d before MinDate or after MaxDate", ErrInvalidDate, year, int(month), day)
	}
	d := Date(n)
	// Reconvert and compare to catch the days that slip through the range
	// checks above: February 29 of common years, day 31 of short months and
	// the ten days dropped in October 1582.
	if y, m, dd := d.Date(); y != year || m != month || dd != day {
		return 0, fmt.Errorf("%w: %04d-%02d-%02d does not exist", ErrInvalidDate, year, int(month), day)
	}
	return d, nil
}

// MustDate is like NewDate but panics if the triple does not name an
// existing day. It simplifies initialization of date values known to be
// valid.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDateFromYearDay returns the Date with the given year and day number
// within that year, between 1 (January 1st) and the year's length.
func NewDateFromYearDay(year, yday int) (Date, error) {
	if year < minYear || year > maxYear {
		return 0, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	if yday < 1 || yday > 366 {
		return 0, fmt.Errorf("%w: day %d of year out of range", ErrInvalidDate, yday)
	}
	n := dayCountOf(year-1, 12, 31) + yday
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: day %d of year %d before MinDate or after MaxDate", ErrInvalidDate, yday, year)
	}
	d := Date(n)
	// a day number beyond the year's length lands in the next year
	if d.YearDay() != yday {
		return 0, fmt.Errorf("%w: year %d has no day %d", ErrInvalidDate, year, yday)
	}
	return d, nil
}

// NewDateFromISOWeek returns the Date with the given ISO 8601 week date
// components: the week year, the week number from 1 to 52 or 53 depending on
// the year, and the day of week from 1 (Monday) to 7 (Sunday).
func NewDateFromISOWeek(weekYear, week, weekday int) (Date, error) {
	if week < 1 || week > 53 {
		return 0, fmt.Errorf("%w: week %d out of range", ErrInvalidWeekDate, week)
	}
	if weekday < 1 || weekday > 7 {
		return 0, fmt.Errorf("%w: day of week %d out of range", ErrInvalidWeekDate, weekday)
	}
	if weekYear < minYear || weekYear > maxYear {
		return 0, fmt.Errorf("%w: week year %d out of range", ErrInvalidWeekDate, weekYear)
	}
	n := firstWeekMonday(weekYear) + 7*week + weekday - 8
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d-W%02d-%d before MinDate or after MaxDate", ErrInvalidWeekDate, weekYear, week, weekday)
	}
	d := Date(n)
	if y, w := d.ISOWeek(); y != weekYear || w != week {
		return 0, fmt.Errorf("%w: year %d has no week %d", ErrInvalidWeekDate, weekYear, week)
	}
	return d, nil
}

// DateFromMJD returns the Date with the given modified Julian day number. It
// is the inverse of Date.MJD.
func DateFromMJD(mjd int) Date {
	return Date(mjd - mjdToJ2000)
}

// Date returns the year, month and day of d under the calendar in effect at
// d.
func (d Date) Date() (year int, month time.Month, day int) {
	c := calendarAt(int(d))
	year = c.yearOf(int(d))
	dayInYear := int(d) - c.lastDayOfYear(year-1)
	leap := c.isLeap(year)
	m := monthOf(dayInYear, leap)
	return year, time.Month(m), dayInYear - monthEnds(leap)[m]
}

// Year returns the year in which d occurs. It may be zero or negative for BC
// years.
func (d Date) Year() int {
	return calendarAt(int(d)).yearOf(int(d))
}

// Month returns the month of the year specified by d.
func (d Date) Month() time.Month {
	_, month, _ := d.Date()
	return month
}

// Day returns the day of the month of d.
func (d Date) Day() int {
	_, _, day := d.Date()
	return day
}

// J2000Day returns the day count of d with respect to the J2000 epoch
// 2000-01-01.
func (d Date) J2000Day() int {
	return int(d)
}

// MJD returns the modified Julian day number of d. The modified Julian day
// of ModifiedJulianEpoch (1858-11-17) is 0.
func (d Date) MJD() int {
	return int(d) + mjdToJ2000
}

// YearDay returns the day of the year specified by d, between 1 (January
// 1st) and either 365 or 366 depending on the year. Year 1582 is ten days
// short.
func (d Date) YearDay() int {
	// count from the actual previous December 31st rather than from the
	// current regime's year formula. The two differ in 1582, whose January
	// falls under the Julian calendar while its end is Gregorian.
	return int(d) - dayCountOf(d.Year()-1, 12, 31)
}

// firstWeekMonday returns the day count of the Monday of the given year's
// first ISO week, the week containing the year's first Thursday. It may lie
// in the previous year.
func firstWeekMonday(year int) int {
	jan1 := dayCountOf(year, 1, 1)
	offset := 4 - (jan1+2)%7
	if offset > 3 {
		offset -= 7
	}
	return jan1 + offset
}

// ISOWeek returns the ISO 8601 week year and week number in which d occurs.
// Week ranges from 1 to 53. The last days of December may belong to week 1
// of the next year, and the first days of January to week 52 or 53 of the
// previous year.
func (d Date) ISOWeek() (year, week int) {
	year = calendarAt(int(d)).yearOf(int(d))
	delta := int(d) - firstWeekMonday(year)
	switch {
	case delta < 0:
		// still in a week of the previous year
		year--
		delta = int(d) - firstWeekMonday(year)
	case delta > 363:
		// up to three days at the end of the year may belong to the first
		// week of the next year (by chance, there is no need for a specific
		// check in year 1582)
		if span := firstWeekMonday(year+1) - firstWeekMonday(year); delta >= span {
			delta -= span
			year++
		}
	}
	return year, 1 + delta/7
}

// ISOWeekday returns the ISO 8601 day of week of d, between 1 (Monday) and 7
// (Sunday).
func (d Date) ISOWeekday() int {
	dow := (int(d) + 6) % 7 // between -6 and 6, 2000-01-01 was a Saturday
	if dow < 1 {
		dow += 7
	}
	return dow
}

// Weekday returns the day of the week specified by d, in the standard
// library's numbering.
func (d Date) Weekday() time.Weekday {
	return time.Weekday(d.ISOWeekday() % 7)
}

// Compare returns -1 if d is before o, 0 if they are the same day and +1 if
// d is after o. Dates being day counts, d < o is equivalent.
func (d Date) Compare(o Date) int {
	return cmp.Compare(d, o)
}

// Hash returns a hash of d consistent with equality, combining year, month
// and day.
func (d Date) Hash() uint64 {
	year, month, day := d.Date()
	return uint64(year)<<16 ^ uint64(month)<<8 ^ uint64(day)
}

// GoString implements fmt.GoStringer and formats d to be printed in Go
// source code.
func (d Date) GoString() string {
	year, month, day := d.Date()
	return fmt.Sprintf("astrotime.MustDate(%d, %d, %d)", year, int(month), day)
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The date
// is represented as a binary.Varint of the day count.
func (d Date) MarshalBinary() ([]byte, error) {
	b := make([]byte, binary.MaxVarintLen64)
	return b[:binary.PutVarint(b, int64(d))], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (d *Date) UnmarshalBinary(b []byte) error {
	v, i := binary.Varint(b)
	switch {
	case i == 0:
		return errors.New("encoded date truncated")
	case i < 0 || int64(Date(v)) != v:
		return errors.New("encoded date overflows day count")
	case i != len(b):
		return errors.New("extra data after date")
	}
	*d = Date(v)
	return nil
}
