package astro

// Gateway exposes the primitives the calendar core consumes.
// It is stateless and safe to share.
type Gateway struct{}

// New returns a Gateway.
func New() Gateway {
	return Gateway{}
}

func (Gateway) FixedFromGregorian(year, month, day int) int {
	return FixedFromGregorian(year, month, day)
}

func (Gateway) GregorianFromFixed(fixed int) (year, month, day int) {
	return GregorianFromFixed(fixed)
}

// NewMoonOnOrAfter returns the Beijing calendar day of the first new moon
// on or after fixed.
func (Gateway) NewMoonOnOrAfter(fixed int) int {
	return chineseNewMoonOnOrAfter(fixed)
}

// MinorSolarTermOnOrAfter returns the Beijing moment of the first minor
// solar term (odd multiple of 15 degrees) on or after the start of fixed.
func (Gateway) MinorSolarTermOnOrAfter(fixed int) float64 {
	return minorSolarTermOnOrAfter(fixed)
}

// MajorSolarTermOnOrAfter returns the Beijing moment of the first major
// solar term (multiple of 30 degrees) on or after the start of fixed.
func (Gateway) MajorSolarTermOnOrAfter(fixed int) float64 {
	return majorSolarTermOnOrAfter(fixed)
}

func (Gateway) ChineseFromFixed(fixed int) (cycle, offset, month int, leap bool, day int) {
	return chineseFromFixed(fixed)
}

func (Gateway) SexagesimalName(fixed int) (stem, branch int) {
	return sexagesimalName(fixed)
}

func (Gateway) DayOfWeek(fixed int) int {
	return DayOfWeek(fixed)
}

func (Gateway) IsGregorianLeapYear(year int) bool {
	return IsGregorianLeapYear(year)
}

// HasMajorSolarTerm reports whether the lunar month beginning on the
// new-moon day fixed contains a major solar term.
func (Gateway) HasMajorSolarTerm(newMoon int) bool {
	return !chineseNoMajorSolarTerm(newMoon)
}
