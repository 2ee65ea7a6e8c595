package astro

import "math"

const (
	meanTropicalYear = 365.242189
	meanSynodicMonth = 29.530588861

	// j2000 is noon of January 1, 2000 as a fixed moment.
	j2000 = 730120.5

	// winter is the solar longitude of the December solstice.
	winter = 270.0
)

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func sinDeg(deg float64) float64 { return math.Sin(radians(deg)) }

func cosDeg(deg float64) float64 { return math.Cos(radians(deg)) }

// poly evaluates coeffs[0] + coeffs[1]*x + ... by Horner's rule.
func poly(x float64, coeffs ...float64) float64 {
	sum := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		sum = sum*x + coeffs[i]
	}
	return sum
}

// ephemerisCorrection returns dynamical time minus universal time, in days.
func ephemerisCorrection(tee float64) float64 {
	year := GregorianYearFromFixed(ifloor(tee))
	c := float64(FixedFromGregorian(year, 7, 1)-FixedFromGregorian(1900, 1, 1)) / 36525
	switch {
	case year >= 1988 && year <= 2019:
		return float64(year-1933) / 86400
	case year >= 1900 && year <= 1987:
		return poly(c, -0.00002, 0.000297, 0.025184, -0.181133, 0.553040,
			-0.861938, 0.677066, -0.212591)
	case year >= 1800 && year <= 1899:
		return poly(c, -0.000009, 0.003844, 0.083563, 0.865736, 4.867575,
			15.845535, 31.332267, 38.291999, 28.316289, 11.636204, 2.043794)
	case year >= 1700 && year <= 1799:
		return poly(float64(year-1700), 8.118780842, -0.005092142,
			0.003336121, -0.0000266484) / 86400
	case year >= 1620 && year <= 1699:
		return poly(float64(year-1600), 196.58333, -4.0675, 0.0219167) / 86400
	default:
		x := 0.5 + float64(FixedFromGregorian(year, 1, 1)-FixedFromGregorian(1810, 1, 1))
		return (x*x/41048480 - 15) / 86400
	}
}

func dynamicalFromUniversal(tee float64) float64 {
	return tee + ephemerisCorrection(tee)
}

func universalFromDynamical(tee float64) float64 {
	return tee - ephemerisCorrection(tee)
}

func julianCenturies(tee float64) float64 {
	return (dynamicalFromUniversal(tee) - j2000) / 36525
}

var (
	solarCoefficients = [...]float64{
		403406, 195207, 119433, 112392, 3891, 2819, 1721, 660, 350, 334,
		314, 268, 242, 234, 158, 132, 129, 114, 99, 93,
		86, 78, 72, 68, 64, 46, 38, 37, 32, 29,
		28, 27, 27, 25, 24, 21, 21, 20, 18, 17,
		14, 13, 13, 13, 12, 10, 10, 10, 10,
	}
	solarMultipliers = [...]float64{
		0.9287892, 35999.1376958, 35999.4089666, 35998.7287385, 71998.20261,
		71998.4403, 36000.35726, 71997.4812, 32964.4678, -19.4410,
		445267.1117, 45036.8840, 3.1008, 22518.4434, -19.9739,
		65928.9345, 9038.0293, 3034.7684, 33718.148, 3034.448,
		-2280.773, 29929.992, 31556.493, 149.588, 9037.750,
		107997.405, -4444.176, 151.771, 67555.316, 31556.080,
		-4561.540, 107996.706, 1221.655, 62894.167, 31437.369,
		14578.298, -31931.757, 34777.243, 1221.999, 62894.511,
		-4442.039, 107997.909, 119.066, 16859.071, -4.578,
		26895.292, -39.127, 12297.536, 90073.778,
	}
	solarAddends = [...]float64{
		270.54861, 340.19128, 63.91854, 331.26220, 317.843,
		86.631, 240.052, 310.26, 247.23, 260.87,
		297.82, 343.14, 166.79, 81.53, 3.50,
		132.75, 182.95, 162.03, 29.8, 266.4,
		249.2, 157.6, 257.8, 185.1, 69.9,
		8.0, 197.1, 250.4, 65.3, 162.7,
		341.5, 291.6, 98.5, 146.7, 110.0,
		5.2, 342.6, 230.9, 256.1, 45.3,
		242.9, 115.2, 151.8, 285.3, 53.3,
		126.6, 205.7, 85.9, 146.1,
	}
)

// solarLongitude returns the apparent longitude of the sun, in degrees,
// at universal moment tee.
func solarLongitude(tee float64) float64 {
	c := julianCenturies(tee)
	sum := 0.0
	for i := range solarCoefficients {
		sum += solarCoefficients[i] * sinDeg(solarAddends[i]+solarMultipliers[i]*c)
	}
	lambda := 282.7771834 + 36000.76953744*c + 0.000005729577951308232*sum
	return fmod(lambda+aberration(tee)+nutation(tee), 360)
}

func nutation(tee float64) float64 {
	c := julianCenturies(tee)
	a := poly(c, 124.90, -1934.134, 0.002063)
	b := poly(c, 201.11, 72001.5377, 0.00057)
	return -0.004778*sinDeg(a) - 0.0003667*sinDeg(b)
}

func aberration(tee float64) float64 {
	c := julianCenturies(tee)
	return 0.0000974*cosDeg(177.63+35999.01848*c) - 0.005575
}

// solarLongitudeAfter returns the first universal moment at or after tee
// when the sun reaches longitude lambda.
func solarLongitudeAfter(lambda, tee float64) float64 {
	rate := meanTropicalYear / 360
	tau := tee + rate*fmod(lambda-solarLongitude(tee), 360)
	lo := math.Max(tee, tau-5)
	hi := tau + 5
	for {
		x := (lo + hi) / 2
		if hi-lo <= 1e-5 {
			return x
		}
		if fmod(solarLongitude(x)-lambda, 360) < 180 {
			hi = x
		} else {
			lo = x
		}
	}
}

// estimatePriorSolarLongitude approximates the last moment before tee when
// the sun was at longitude lambda.
func estimatePriorSolarLongitude(lambda, tee float64) float64 {
	rate := meanTropicalYear / 360
	tau := tee - rate*fmod(solarLongitude(tee)-lambda, 360)
	delta := fmod(solarLongitude(tau)-lambda+180, 360) - 180
	return math.Min(tee, tau-rate*delta)
}
