// Package calendar derives Chinese lunisolar dates, month headers, day-cell
// annotations and phenological markers for Gregorian calendar pages.
//
// The astronomy is supplied by a Gateway; this package only decides when it
// has to be asked. Dates are advanced one day at a time from the previous
// day's value, and the gateway is consulted only when a new lunar month
// might be a leap month.
package calendar

// Gateway is the astronomical calendar the core consumes.
// Fixed days are integer day counts shared by all calendars.
type Gateway interface {
	FixedFromGregorian(year, month, day int) int
	GregorianFromFixed(fixed int) (year, month, day int)
	NewMoonOnOrAfter(fixed int) int
	MinorSolarTermOnOrAfter(fixed int) float64
	MajorSolarTermOnOrAfter(fixed int) float64
	ChineseFromFixed(fixed int) (cycle, offset, month int, leap bool, day int)
	SexagesimalName(fixed int) (stem, branch int)
	DayOfWeek(fixed int) int
	IsGregorianLeapYear(year int) bool
}

// Supported Gregorian year range.
const (
	MinYear = 1645
	MaxYear = 7000
)

// ChineseDate is a date in the Chinese calendar.
//
// Offset is the year's position (1..60) in its sexagesimal cycle and Cycle
// counts cycles. A leap month carries the number of the month it repeats.
type ChineseDate struct {
	Cycle  int
	Offset int
	Month  int
	Leap   bool
	Day    int
}

// FromGateway decomposes a fixed day through the gateway.
func FromGateway(gw Gateway, fixed int) ChineseDate {
	cycle, offset, month, leap, day := gw.ChineseFromFixed(fixed)
	return ChineseDate{Cycle: cycle, Offset: offset, Month: month, Leap: leap, Day: day}
}

// NextDay returns the following day of the same lunar month.
func (d ChineseDate) NextDay() ChineseDate {
	d.Day++
	return d
}

// NextMonth returns day 1 of the following regular (non-leap) month,
// rolling the year and cycle over after month 12.
func (d ChineseDate) NextMonth() ChineseDate {
	next := ChineseDate{Cycle: d.Cycle, Offset: d.Offset, Month: d.Month + 1, Day: 1}
	if d.Month == 12 {
		next.Month = 1
		next.Offset++
		if next.Offset > 60 {
			next.Offset = 1
			next.Cycle++
		}
	}
	return next
}

// YearStem returns the 0-based heavenly stem of the lunar year.
func (d ChineseDate) YearStem() int {
	return (d.Offset - 1) % 10
}

// YearBranch returns the 0-based earthly branch of the lunar year.
func (d ChineseDate) YearBranch() int {
	return (d.Offset - 1) % 12
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the length of a Gregorian month.
func DaysInMonth(gw Gateway, year, month int) int {
	if month == 2 && gw.IsGregorianLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// monthLength maps the gap between consecutive new moons to 29 or 30.
func monthLength(gap int) int {
	if gap == 30 {
		return 30
	}
	return 29
}
