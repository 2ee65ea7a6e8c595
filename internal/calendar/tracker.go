package calendar

import "math"

// Window holds the astronomical boundaries of one Gregorian month.
// NewMoon is the first new-moon day on or after First and NextNewMoon the
// one after it; either may fall after Last.
type Window struct {
	First       int
	Last        int
	NewMoon     int
	NextNewMoon int
	MinorTerm   int
	MajorTerm   int
}

// IsNewMoon reports whether day starts a lunar month inside the window.
func (w Window) IsNewMoon(day int) bool {
	return day == w.NewMoon || day == w.NextNewMoon
}

// Tracker derives each day's Chinese date from the previous day's.
type Tracker struct {
	gw Gateway

	// Lookups counts authoritative decompositions requested from the gateway.
	Lookups int
}

// NewTracker returns a Tracker backed by gw.
func NewTracker(gw Gateway) *Tracker {
	return &Tracker{gw: gw}
}

// Decompose asks the gateway for the Chinese date of fixed.
func (t *Tracker) Decompose(fixed int) ChineseDate {
	t.Lookups++
	return FromGateway(t.gw, fixed)
}

// Advance returns the Chinese date of today, given the date of the day
// before. A nil prev starts a new run and is resolved by the gateway.
func (t *Tracker) Advance(prev *ChineseDate, today int, w Window) ChineseDate {
	if prev == nil {
		return t.Decompose(today)
	}
	// A lunar month has 29 or 30 days; day 29 ends it only on a new moon.
	if prev.Day < 29 || (prev.Day == 29 && !w.IsNewMoon(today)) {
		return prev.NextDay()
	}
	return t.MonthStarting(*prev, today, w)
}

// MonthStarting returns day 1 of the lunar month that begins on newMoon,
// following the month of prev.
//
// A month that starts on or before the window's major solar term contains
// it and cannot be leap; neither can one starting within five days of the
// window's end, since it reaches the next month's major term. Any other
// new moon is decomposed by the gateway, which applies the leap rule.
func (t *Tracker) MonthStarting(prev ChineseDate, newMoon int, w Window) ChineseDate {
	if newMoon <= w.MajorTerm || newMoon+5 > w.Last {
		return prev.NextMonth()
	}
	return t.Decompose(newMoon)
}

// Walk calls fn for every day of the month described by f, in order, and
// returns the Chinese date of the last day.
func (t *Tracker) Walk(f MonthFacts, fn func(fixed int, date ChineseDate)) ChineseDate {
	date := f.Start
	for fixed := f.First; fixed <= f.Last; fixed++ {
		if fixed != f.First {
			date = t.Advance(&date, fixed, f.Window)
		}
		if fn != nil {
			fn(fixed, date)
		}
	}
	return date
}

func floorMoment(moment float64) int {
	return int(math.Floor(moment))
}
