package astro

import "math"

var (
	newMoonSineCoeff = [...]float64{
		-0.40720, 0.17241, 0.01608, 0.01039, 0.00739, -0.00514, 0.00208,
		-0.00111, -0.00057, 0.00056, -0.00042, 0.00042, 0.00038, -0.00024,
		-0.00007, 0.00004, 0.00004, 0.00003, 0.00003, -0.00003, 0.00003,
		-0.00002, -0.00002, 0.00002,
	}
	newMoonEFactor = [...]int{
		0, 1, 0, 0, 1, 1, 2, 0, 0, 1, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	newMoonSolarCoeff = [...]float64{
		0, 1, 0, 0, -1, 1, 2, 0, 0, 1, 0, 1, 1, -1, 2, 0, 3, 1, 0, 1, -1, -1, 1, 0,
	}
	newMoonLunarCoeff = [...]float64{
		1, 0, 2, 0, 1, 1, 0, 1, 1, 2, 3, 0, 0, 2, 1, 2, 0, 1, 2, 1, 1, 1, 3, 4,
	}
	newMoonArgCoeff = [...]float64{
		0, 0, 0, 2, 0, 0, 0, -2, 2, 0, 0, 2, -2, 0, 0, -2, 0, -2, 2, 2, 2, -2, 0, 0,
	}

	planetaryConst = [...]float64{
		251.88, 251.83, 349.42, 84.66, 141.74, 207.14, 154.84,
		34.52, 207.19, 291.34, 161.72, 239.56, 331.55,
	}
	planetaryCoeff = [...]float64{
		0.016321, 26.651886, 36.412478, 18.206239, 53.303771, 2.453732,
		7.306860, 27.261239, 0.121824, 1.844379, 24.198154, 25.513099, 3.592518,
	}
	planetaryFactor = [...]float64{
		0.000165, 0.000164, 0.000126, 0.000110, 0.000062, 0.000060, 0.000056,
		0.000047, 0.000042, 0.000040, 0.000037, 0.000035, 0.000023,
	}
)

// nthNewMoon returns the universal moment of the n-th new moon after the
// fixed-day epoch. n = 24724 is the new moon of January 6, 2000.
func nthNewMoon(n int) float64 {
	k := float64(n - 24724)
	c := k / 1236.85
	approx := j2000 + poly(c, 5.09766, meanSynodicMonth*1236.85, 0.0001437,
		-0.000000150, 0.00000000073)
	e := poly(c, 1, -0.002516, -0.0000074)
	solarAnomaly := poly(c, 2.5534, 1236.85*29.10535670, -0.0000014, -0.00000011)
	lunarAnomaly := poly(c, 201.5643, 385.81693528*1236.85, 0.0107582,
		0.00001238, -0.000000058)
	moonArgument := poly(c, 160.7108, 390.67050284*1236.85, -0.0016118,
		-0.00000227, 0.000000011)
	omega := poly(c, 124.7746, -1.56375588*1236.85, 0.0020672, 0.00000215)

	correction := -0.00017 * sinDeg(omega)
	for i := range newMoonSineCoeff {
		correction += newMoonSineCoeff[i] * math.Pow(e, float64(newMoonEFactor[i])) *
			sinDeg(newMoonSolarCoeff[i]*solarAnomaly+
				newMoonLunarCoeff[i]*lunarAnomaly+
				newMoonArgCoeff[i]*moonArgument)
	}

	extra := 0.000325 * sinDeg(poly(c, 299.77, 132.8475848, -0.009173))

	additional := 0.0
	for i := range planetaryConst {
		additional += planetaryFactor[i] * sinDeg(planetaryConst[i]+planetaryCoeff[i]*k)
	}

	return universalFromDynamical(approx + correction + extra + additional)
}

// meanNewMoonIndex estimates the index of the new moon nearest tee.
func meanNewMoonIndex(tee float64) int {
	return 24724 + ifloor((tee-j2000-5.09766)/meanSynodicMonth)
}

// newMoonAtOrAfter returns the first new moon at or after universal moment tee.
func newMoonAtOrAfter(tee float64) float64 {
	n := meanNewMoonIndex(tee) - 1
	for nthNewMoon(n) < tee {
		n++
	}
	return nthNewMoon(n)
}

// newMoonBefore returns the last new moon strictly before universal moment tee.
func newMoonBefore(tee float64) float64 {
	n := meanNewMoonIndex(tee) + 2
	for nthNewMoon(n) >= tee {
		n--
	}
	return nthNewMoon(n)
}
