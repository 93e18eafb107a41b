// Package astro computes lunar and solar positions using the simplified
// ephemeris formulas from Astronomical Algorithms (Meeus) as popularized by
// the SunCalc library. Accuracy is on the order of arcminutes, which is
// plenty for horizon visibility work.
package astro

import (
	"math"
	"time"
)

// rad converts degrees to radians when used as a multiplier.
const rad = math.Pi / 180

// obliquity of the Earth's axis (J2000), radians.
const obliquity = rad * 23.4397

// rightAscension computes RA from ecliptic longitude l and latitude b (radians).
func rightAscension(l, b float64) float64 {
	return math.Atan2(math.Sin(l)*math.Cos(obliquity)-math.Tan(b)*math.Sin(obliquity), math.Cos(l))
}

// declination computes Dec from ecliptic longitude l and latitude b (radians).
func declination(l, b float64) float64 {
	return math.Asin(math.Sin(b)*math.Cos(obliquity) + math.Cos(b)*math.Sin(obliquity)*math.Sin(l))
}

// azimuth returns the azimuth for hour angle H, observer latitude phi and
// declination dec. Measured from south, positive westward (SunCalc convention).
func azimuth(h, phi, dec float64) float64 {
	return math.Atan2(math.Sin(h), math.Cos(h)*math.Sin(phi)-math.Tan(dec)*math.Cos(phi))
}

// altitude returns the altitude above the horizon for hour angle H,
// observer latitude phi and declination dec. Radians.
func altitude(h, phi, dec float64) float64 {
	return math.Asin(math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(h))
}

// siderealTime returns the local sidereal time for days-since-J2000 d and
// west longitude lw (radians).
func siderealTime(d, lw float64) float64 {
	return rad*(280.16+360.9856235*d) - lw
}

// astroRefraction approximates atmospheric refraction for apparent altitude h
// (radians). Formula 16.4 of Astronomical Algorithms, 2nd ed.
func astroRefraction(h float64) float64 {
	if h < 0 {
		h = 0
	}
	return 0.0002967 / math.Tan(h+0.00312536/(h+0.08901179))
}

func hoursLater(t time.Time, h float64) time.Time {
	return t.Add(time.Duration(h * float64(time.Hour)))
}
