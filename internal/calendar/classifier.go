package calendar

// CellKind is the annotation a day cell shows.
type CellKind int

const (
	CellOrdinal CellKind = iota
	CellSolarTerm
	CellMonthName
)

func (k CellKind) String() string {
	switch k {
	case CellOrdinal:
		return "ordinal"
	case CellSolarTerm:
		return "solar_term"
	case CellMonthName:
		return "month_name"
	default:
		return "unknown"
	}
}

// Cell is the classified annotation of one day.
type Cell struct {
	Kind  CellKind
	Fixed int
	Date  ChineseDate
	// Term is the solar-term index 0..23 (Minor Cold first) for CellSolarTerm.
	Term int
}

// Classifier picks the annotation of each day of one month page.
// Days must be classified in order.
type Classifier struct {
	window  Window
	month   int
	newMoon int

	// deferred is set when a new moon shares its day with a solar term;
	// the month name then moves to the following day.
	deferred bool
}

// NewClassifier returns a classifier for the page described by f.
func NewClassifier(f MonthFacts) *Classifier {
	return &Classifier{
		window:  f.Window,
		month:   f.Month,
		newMoon: f.NewMoon,
	}
}

// Classify returns the cell for fixed, whose Chinese date is date.
// A solar term outranks a month name, which outranks the ordinal day.
func (c *Classifier) Classify(fixed int, date ChineseDate) Cell {
	cell := Cell{Kind: CellOrdinal, Fixed: fixed, Date: date}
	isTerm := fixed == c.window.MinorTerm || fixed == c.window.MajorTerm
	isNewMoon := fixed == c.newMoon

	switch {
	case isTerm:
		cell.Kind = CellSolarTerm
		cell.Term = (c.month - 1) * 2
		if fixed == c.window.MajorTerm {
			cell.Term++
		}
		if isNewMoon {
			c.deferred = true
			c.roll()
		}
	case c.deferred || isNewMoon:
		cell.Kind = CellMonthName
		c.deferred = false
		if isNewMoon {
			c.roll()
		}
	}
	return cell
}

// Deferred reports whether the next day owes a month name.
func (c *Classifier) Deferred() bool {
	return c.deferred
}

// roll moves the tracked new moon to the next one on the page, if any.
func (c *Classifier) roll() {
	if c.window.NextNewMoon <= c.window.Last {
		c.newMoon = c.window.NextNewMoon
	}
}
