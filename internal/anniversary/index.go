package anniversary

import "github.com/zapponejosh/lunarcal/internal/database"

type monthDay struct {
	month, day int
}

// Index looks up anniversaries by calendar day. Gregorian-anchored records
// are keyed by Gregorian month and day, lunar-anchored ones by lunar month
// and day; a leap month counts as the month it repeats.
type Index struct {
	gregorian map[monthDay][]database.Anniversary
	lunar     map[monthDay][]database.Anniversary
}

// NewIndex indexes records. Callers pass verified records only.
func NewIndex(records []database.Anniversary) *Index {
	ix := &Index{
		gregorian: make(map[monthDay][]database.Anniversary),
		lunar:     make(map[monthDay][]database.Anniversary),
	}
	for _, a := range records {
		if a.LunarAnchored {
			k := monthDay{a.LunarMonth, a.LunarDay}
			ix.lunar[k] = append(ix.lunar[k], a)
		} else {
			k := monthDay{a.AnchorMonth, a.AnchorDay}
			ix.gregorian[k] = append(ix.gregorian[k], a)
		}
	}
	return ix
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	n := 0
	for _, rs := range ix.gregorian {
		n += len(rs)
	}
	for _, rs := range ix.lunar {
		n += len(rs)
	}
	return n
}

// Matches are the anniversaries falling on one day.
type Matches struct {
	Births []database.Anniversary
	Deaths []database.Anniversary
}

// Empty reports whether nothing matched.
func (m Matches) Empty() bool {
	return len(m.Births) == 0 && len(m.Deaths) == 0
}

// Match returns the anniversaries recurring on the Gregorian date
// year-month-day whose Chinese date is lunarMonth/lunarDay. Records anchored
// after the date never match. A nil Index matches nothing.
func (ix *Index) Match(year, month, day, lunarMonth, lunarDay int) Matches {
	var m Matches
	if ix == nil {
		return m
	}

	date := dateKey(year, month, day)
	add := func(rs []database.Anniversary) {
		for _, a := range rs {
			if dateKey(a.AnchorYear, a.AnchorMonth, a.AnchorDay) > date {
				continue
			}
			if a.IsBirth {
				m.Births = append(m.Births, a)
			} else {
				m.Deaths = append(m.Deaths, a)
			}
		}
	}
	add(ix.gregorian[monthDay{month, day}])
	add(ix.lunar[monthDay{lunarMonth, lunarDay}])
	return m
}

func dateKey(year, month, day int) int {
	return year*10000 + month*100 + day
}
