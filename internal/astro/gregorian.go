// Package astro implements the astronomical primitives behind the Chinese
// calendar: Gregorian fixed-day arithmetic, solar longitude, new moons and
// the Beijing-time rules that turn them into calendar days.
//
// Fixed days count from 1 = January 1 of year 1 (proleptic Gregorian).
// Moments are fixed days with a fractional time of day.
package astro

import "math"

// floorDiv returns floor(a/b) for b > 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

// mod returns a non-negative remainder for b > 0.
func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// amod maps a onto 1..b instead of 0..b-1.
func amod(a, b int) int {
	if r := mod(a, b); r != 0 {
		return r
	}
	return b
}

func fmod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

func ifloor(x float64) int {
	return int(math.Floor(x))
}

// round rounds half up, matching floor(x + 0.5).
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// IsGregorianLeapYear reports whether year has a February 29.
func IsGregorianLeapYear(year int) bool {
	m := mod(year, 400)
	if m == 100 || m == 200 || m == 300 {
		return false
	}
	return mod(year, 4) == 0
}

// FixedFromGregorian converts a Gregorian date to a fixed day.
func FixedFromGregorian(year, month, day int) int {
	y := year - 1
	fixed := 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) +
		floorDiv(367*month-362, 12)
	switch {
	case month <= 2:
	case IsGregorianLeapYear(year):
		fixed--
	default:
		fixed -= 2
	}
	return fixed + day
}

// GregorianYearFromFixed returns the Gregorian year containing a fixed day.
func GregorianYearFromFixed(date int) int {
	d0 := date - 1
	n400 := floorDiv(d0, 146097)
	d1 := mod(d0, 146097)
	n100 := d1 / 36524
	d2 := d1 % 36524
	n4 := d2 / 1461
	d3 := d2 % 1461
	n1 := d3 / 365
	year := 400*n400 + 100*n100 + 4*n4 + n1
	if n100 == 4 || n1 == 4 {
		return year
	}
	return year + 1
}

// GregorianFromFixed converts a fixed day back to year, month and day.
func GregorianFromFixed(date int) (year, month, day int) {
	year = GregorianYearFromFixed(date)
	priorDays := date - FixedFromGregorian(year, 1, 1)
	correction := 0
	if date >= FixedFromGregorian(year, 3, 1) {
		if IsGregorianLeapYear(year) {
			correction = 1
		} else {
			correction = 2
		}
	}
	month = floorDiv(12*(priorDays+correction)+373, 367)
	day = date - FixedFromGregorian(year, month, 1) + 1
	return year, month, day
}

// DayOfWeek returns 0 for Sunday through 6 for Saturday.
func DayOfWeek(date int) int {
	return mod(date, 7)
}
