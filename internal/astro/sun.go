package astro

import "math"

// sunCoords holds the sun's equatorial coordinates (radians).
type sunCoords struct {
	ra  float64
	dec float64
}

// solarMeanAnomaly for days-since-J2000 d.
func solarMeanAnomaly(d float64) float64 {
	return rad * (357.5291 + 0.98560028*d)
}

// eclipticLongitude of the sun from its mean anomaly m, including the
// equation of center and perihelion of the Earth.
func eclipticLongitude(m float64) float64 {
	c := rad * (1.9148*math.Sin(m) + 0.02*math.Sin(2*m) + 0.0003*math.Sin(3*m))
	p := rad * 102.9372
	return m + c + p + math.Pi
}

func getSunCoords(d float64) sunCoords {
	m := solarMeanAnomaly(d)
	l := eclipticLongitude(m)
	return sunCoords{
		ra:  rightAscension(l, 0),
		dec: declination(l, 0),
	}
}
