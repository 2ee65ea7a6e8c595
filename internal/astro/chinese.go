package astro

import "math"

// chineseEpoch is the fixed day of the first Chinese new year,
// February 15, 2637 BCE.
var chineseEpoch = FixedFromGregorian(-2636, 2, 15)

// dayNameEpoch anchors the sexagesimal day count.
const dayNameEpoch = 45

// chineseZone returns the offset of Beijing standard time from universal
// time, in days. Before 1929 the calendar used Beijing mean solar time.
func chineseZone(tee float64) float64 {
	if GregorianYearFromFixed(ifloor(tee)) < 1929 {
		return 1397.0 / 180 / 24
	}
	return 8.0 / 24
}

func midnightInChina(date int) float64 {
	return float64(date) - chineseZone(float64(date))
}

func standardFromUniversal(tee float64) float64 {
	return tee + chineseZone(tee)
}

// chineseSolarLongitudeOnOrAfter returns the Beijing moment at or after the
// start of date when the sun reaches longitude lambda.
func chineseSolarLongitudeOnOrAfter(lambda float64, date int) float64 {
	return standardFromUniversal(solarLongitudeAfter(lambda, midnightInChina(date)))
}

func currentMajorSolarTerm(date int) int {
	s := solarLongitude(midnightInChina(date))
	return amod(2+ifloor(s/30), 12)
}

func majorSolarTermOnOrAfter(date int) float64 {
	s := solarLongitude(midnightInChina(date))
	l := fmod(30*math.Ceil(s/30), 360)
	return chineseSolarLongitudeOnOrAfter(l, date)
}

func minorSolarTermOnOrAfter(date int) float64 {
	s := solarLongitude(midnightInChina(date))
	l := fmod(30*math.Ceil((s-15)/30)+15, 360)
	return chineseSolarLongitudeOnOrAfter(l, date)
}

func chineseNewMoonOnOrAfter(date int) int {
	return ifloor(standardFromUniversal(newMoonAtOrAfter(midnightInChina(date))))
}

func chineseNewMoonBefore(date int) int {
	return ifloor(standardFromUniversal(newMoonBefore(midnightInChina(date))))
}

func chineseWinterSolsticeOnOrBefore(date int) int {
	approx := estimatePriorSolarLongitude(winter, midnightInChina(date+1))
	day := ifloor(approx) - 1
	for solarLongitude(midnightInChina(day+1)) <= winter {
		day++
	}
	return day
}

// chineseNoMajorSolarTerm reports whether the lunar month starting at
// new moon date lacks a major solar term.
func chineseNoMajorSolarTerm(date int) bool {
	return currentMajorSolarTerm(date) ==
		currentMajorSolarTerm(chineseNewMoonOnOrAfter(date+1))
}

func chinesePriorLeapMonth(mPrime, m int) bool {
	for m >= mPrime {
		if chineseNoMajorSolarTerm(m) {
			return true
		}
		m = chineseNewMoonBefore(m)
	}
	return false
}

// chineseFromFixed decomposes a fixed day into cycle, year offset within the
// cycle, month, leap flag and day of month.
func chineseFromFixed(date int) (cycle, offset, month int, leap bool, day int) {
	s1 := chineseWinterSolsticeOnOrBefore(date)
	s2 := chineseWinterSolsticeOnOrBefore(s1 + 370)
	m12 := chineseNewMoonOnOrAfter(s1 + 1)
	nextM11 := chineseNewMoonBefore(s2 + 1)
	m := chineseNewMoonBefore(date + 1)
	leapYear := round(float64(nextM11-m12)/meanSynodicMonth) == 12

	month = round(float64(m-m12) / meanSynodicMonth)
	if leapYear && chinesePriorLeapMonth(m12, m) {
		month--
	}
	month = amod(month, 12)
	leap = leapYear && chineseNoMajorSolarTerm(m) &&
		!chinesePriorLeapMonth(m12, chineseNewMoonBefore(m))

	elapsed := ifloor(1.5 - float64(month)/12 + float64(date-chineseEpoch)/meanTropicalYear)
	cycle = floorDiv(elapsed-1, 60) + 1
	offset = amod(elapsed, 60)
	day = date - m + 1
	return cycle, offset, month, leap, day
}

// sexagesimalName returns 0-based stem (0..9) and branch (0..11) of date.
func sexagesimalName(date int) (stem, branch int) {
	n := date - dayNameEpoch
	return mod(n-1, 10), mod(n-1, 12)
}
