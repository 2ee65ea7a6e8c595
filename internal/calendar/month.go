package calendar

// Shape classifies how lunar months overlap a Gregorian month.
type Shape int

const (
	// ShapeWithin: the whole Gregorian month lies inside one lunar month.
	ShapeWithin Shape = iota
	// ShapeOneBoundary: one lunar month starts inside the Gregorian month.
	ShapeOneBoundary
	// ShapeTwoBoundaries: two lunar months start inside it, same lunar year.
	ShapeTwoBoundaries
	// ShapeTwoBoundariesNewYear: two lunar months start inside it and the
	// second one opens a new lunar year.
	ShapeTwoBoundariesNewYear
)

// Boundary describes a lunar month beginning inside the Gregorian month.
type Boundary struct {
	Fixed  int
	Date   ChineseDate
	Length int
	// Offset is the 1-based Gregorian day the lunar month begins on.
	Offset int
}

// MonthFacts are the lunar facts of one Gregorian month page.
type MonthFacts struct {
	Window
	Year  int
	Month int
	Days  int

	// Start is the Chinese date of the 1st; StartLength is the length of
	// its lunar month.
	Start       ChineseDate
	StartLength int

	Shape      Shape
	Boundaries []Boundary
}

// Resolve computes the lunar facts of a Gregorian month. prev is the
// Chinese date of the preceding day, or nil to start a fresh run.
func (t *Tracker) Resolve(year, month int, prev *ChineseDate) MonthFacts {
	gw := t.gw
	first := gw.FixedFromGregorian(year, month, 1)
	days := DaysInMonth(gw, year, month)

	w := Window{First: first, Last: first + days - 1}
	w.NewMoon = gw.NewMoonOnOrAfter(first)
	w.NextNewMoon = gw.NewMoonOnOrAfter(w.NewMoon + 29)
	w.MinorTerm = floorMoment(gw.MinorSolarTermOnOrAfter(first))
	w.MajorTerm = floorMoment(gw.MajorSolarTermOnOrAfter(first))

	start := t.Advance(prev, first, w)
	f := MonthFacts{
		Window: w,
		Year:   year,
		Month:  month,
		Days:   days,
		Start:  start,
	}

	startNewMoon := first - start.Day + 1
	f.StartLength = monthLength(w.NewMoon - startNewMoon)
	if w.NewMoon == first {
		f.StartLength = monthLength(w.NextNewMoon - w.NewMoon)
	}

	if w.NewMoon > w.Last {
		f.Shape = ShapeWithin
		return f
	}

	incoming := start
	if w.NewMoon != first {
		incoming = t.MonthStarting(start, w.NewMoon, w)
	}
	f.Boundaries = append(f.Boundaries, Boundary{
		Fixed:  w.NewMoon,
		Date:   incoming,
		Length: monthLength(w.NextNewMoon - w.NewMoon),
		Offset: w.NewMoon - first + 1,
	})

	if w.NextNewMoon > w.Last {
		f.Shape = ShapeOneBoundary
		return f
	}

	second := t.MonthStarting(incoming, w.NextNewMoon, w)
	following := gw.NewMoonOnOrAfter(w.NextNewMoon + 29)
	f.Boundaries = append(f.Boundaries, Boundary{
		Fixed:  w.NextNewMoon,
		Date:   second,
		Length: monthLength(following - w.NextNewMoon),
		Offset: w.NextNewMoon - first + 1,
	})

	if second.Offset != incoming.Offset {
		f.Shape = ShapeTwoBoundariesNewYear
	} else {
		f.Shape = ShapeTwoBoundaries
	}
	return f
}
