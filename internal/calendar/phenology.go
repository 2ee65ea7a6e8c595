package calendar

import "fmt"

// PhenologyRule selects the plum-rain rule set.
type PhenologyRule int

const (
	// RuleShenShuJing: plum rain enters on the first Bing day after Grain
	// in Ear and leaves on the first Wei day after Minor Heat.
	RuleShenShuJing PhenologyRule = iota
	// RuleBenCao: plum rain enters on the first Ren day after Grain in Ear
	// and leaves on the first Ren day after Minor Heat.
	RuleBenCao
)

func (r PhenologyRule) String() string {
	switch r {
	case RuleShenShuJing:
		return "shenshujing"
	case RuleBenCao:
		return "bencao"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// ParsePhenologyRule parses the String form of a rule.
func ParsePhenologyRule(s string) (PhenologyRule, error) {
	switch s {
	case "", "shenshujing", "default":
		return RuleShenShuJing, nil
	case "bencao", "alternate":
		return RuleBenCao, nil
	default:
		return 0, fmt.Errorf("unknown phenology rule %q", s)
	}
}

// Marker is a phenological marker; the nine-nine markers are consecutive,
// FirstNine through FirstNine+8.
type Marker int

const (
	PlumEntry Marker = iota
	PlumExit
	ChuFu
	ZhongFu
	MoFu
	FirstNine
)

// Stem and branch indices used by the rules.
const (
	stemBing  = 2
	stemGeng  = 6
	stemRen   = 8
	branchWei = 7
)

type sexagesimalTarget struct {
	branch bool
	index  int
}

var plumRules = map[PhenologyRule]struct {
	entry, exit sexagesimalTarget
}{
	RuleShenShuJing: {entry: sexagesimalTarget{index: stemBing}, exit: sexagesimalTarget{branch: true, index: branchWei}},
	RuleBenCao:      {entry: sexagesimalTarget{index: stemRen}, exit: sexagesimalTarget{index: stemRen}},
}

// PhenologyWindows are the phenological dates of one Gregorian year,
// as fixed days.
type PhenologyWindows struct {
	Year      int
	PlumEntry int
	PlumExit  int
	// DogDays holds the starts of ChuFu, ZhongFu and MoFu.
	DogDays [3]int
	// ZhongFuLength is 10 or 20 days.
	ZhongFuLength int
	// WinterSolstice opens this year's nine-nines in December;
	// PrevWinterSolstice opens the ones running January to March.
	WinterSolstice     int
	PrevWinterSolstice int
}

// PhenologyCache holds the windows of the most recently requested year.
type PhenologyCache struct {
	windows *PhenologyWindows
	rule    PhenologyRule
}

// NewPhenologyCache returns an empty cache.
func NewPhenologyCache() *PhenologyCache {
	return &PhenologyCache{}
}

func (c *PhenologyCache) get(year int, rule PhenologyRule) (PhenologyWindows, bool) {
	if c.windows == nil || c.windows.Year != year || c.rule != rule {
		return PhenologyWindows{}, false
	}
	return *c.windows, true
}

func (c *PhenologyCache) put(w PhenologyWindows, rule PhenologyRule) {
	c.windows = &w
	c.rule = rule
}

// Phenology derives phenological markers from solar terms and sexagesimal
// day names.
type Phenology struct {
	gw    Gateway
	rule  PhenologyRule
	cache *PhenologyCache
}

// NewPhenology returns an engine using rule. A nil cache gets a private one.
func NewPhenology(gw Gateway, rule PhenologyRule, cache *PhenologyCache) *Phenology {
	if cache == nil {
		cache = NewPhenologyCache()
	}
	return &Phenology{gw: gw, rule: rule, cache: cache}
}

// Windows returns the phenological windows of a Gregorian year, computing
// them when the cache holds another year.
func (p *Phenology) Windows(year int) PhenologyWindows {
	if w, ok := p.cache.get(year, p.rule); ok {
		return w
	}
	w := p.compute(year)
	p.cache.put(w, p.rule)
	return w
}

func (p *Phenology) compute(year int) PhenologyWindows {
	gw := p.gw
	minor := func(month int) int {
		return floorMoment(gw.MinorSolarTermOnOrAfter(gw.FixedFromGregorian(year, month, 1)))
	}
	major := func(y, month int) int {
		return floorMoment(gw.MajorSolarTermOnOrAfter(gw.FixedFromGregorian(y, month, 1)))
	}

	rules := plumRules[p.rule]
	w := PhenologyWindows{Year: year}
	w.PlumEntry = p.firstOnOrAfter(minor(6), rules.entry)
	w.PlumExit = p.firstOnOrAfter(minor(7), rules.exit)

	// ChuFu is the third Geng day counting from the summer solstice.
	geng := sexagesimalTarget{index: stemGeng}
	w.DogDays[0] = p.firstOnOrAfter(major(year, 6), geng) + 20
	w.DogDays[1] = w.DogDays[0] + 10
	w.DogDays[2] = p.firstOnOrAfter(minor(8), geng)
	w.ZhongFuLength = w.DogDays[2] - w.DogDays[1]

	w.WinterSolstice = major(year, 12)
	w.PrevWinterSolstice = major(year-1, 12)
	return w
}

func (p *Phenology) firstOnOrAfter(day int, t sexagesimalTarget) int {
	stem, branch := p.gw.SexagesimalName(day)
	if t.branch {
		return day + (t.index-branch+12)%12
	}
	return day + (t.index-stem+10)%10
}

// MarkerOn returns the phenological marker starting on fixed, if any.
func (p *Phenology) MarkerOn(fixed int) (Marker, bool) {
	year, _, _ := p.gw.GregorianFromFixed(fixed)
	w := p.Windows(year)

	switch fixed {
	case w.PlumEntry:
		return PlumEntry, true
	case w.PlumExit:
		return PlumExit, true
	case w.DogDays[0]:
		return ChuFu, true
	case w.DogDays[1]:
		return ZhongFu, true
	case w.DogDays[2]:
		return MoFu, true
	}

	for _, solstice := range []int{w.PrevWinterSolstice, w.WinterSolstice} {
		d := fixed - solstice
		if d >= 0 && d < 81 && d%9 == 0 {
			return FirstNine + Marker(d/9), true
		}
	}
	return 0, false
}
