package astro

import (
	"math"
	"time"
)

// MoonPosition is the moon's position in the observer's sky.
//
// AzimuthRad follows the SunCalc convention: radians, measured from south,
// positive westward. Callers that want a compass bearing must re-reference
// to north. AltitudeRad includes atmospheric refraction.
type MoonPosition struct {
	AzimuthRad          float64
	AltitudeRad         float64
	DistanceKm          float64
	ParallacticAngleRad float64
}

// MoonIllumination describes how the moon's disc is lit at an instant.
// Phase runs 0 (new) through 0.5 (full) and wraps below 1.
type MoonIllumination struct {
	Fraction float64 // lit fraction of the visible disc, 0..1
	Phase    float64 // position in the synodic cycle, [0,1)
	AngleRad float64 // midpoint angle of the bright limb
}

// MoonTimes holds rise/set events for one calendar day. A nil Rise or Set
// means no such event occurs that day; AlwaysUp/AlwaysDown distinguish the
// circumpolar cases when neither event exists.
type MoonTimes struct {
	Rise       *time.Time
	Set        *time.Time
	AlwaysUp   bool
	AlwaysDown bool
}

// moonCoords holds geocentric equatorial coordinates of the moon.
type moonCoords struct {
	ra   float64
	dec  float64
	dist float64 // km
}

// getMoonCoords computes geocentric RA/Dec and distance for days-since-J2000 d.
func getMoonCoords(d float64) moonCoords {
	l := rad * (218.316 + 13.176396*d) // ecliptic longitude
	m := rad * (134.963 + 13.064993*d) // mean anomaly
	f := rad * (93.272 + 13.229350*d)  // mean distance

	lon := l + rad*6.289*math.Sin(m)
	lat := rad * 5.128 * math.Sin(f)
	dist := 385001 - 20905*math.Cos(m)

	return moonCoords{
		ra:   rightAscension(lon, lat),
		dec:  declination(lon, lat),
		dist: dist,
	}
}

// MoonPositionAt computes the moon's apparent position for an observer at
// latDeg/lonDeg (degrees, north/east positive) at time t.
func MoonPositionAt(t time.Time, latDeg, lonDeg float64) MoonPosition {
	lw := rad * -lonDeg
	phi := rad * latDeg
	d := toDays(t)

	c := getMoonCoords(d)
	h := siderealTime(d, lw) - c.ra
	alt := altitude(h, phi, c.dec)

	pa := math.Atan2(math.Sin(h), math.Tan(phi)*math.Cos(c.dec)-math.Sin(c.dec)*math.Cos(h))

	alt += astroRefraction(alt)

	return MoonPosition{
		AzimuthRad:          azimuth(h, phi, c.dec),
		AltitudeRad:         alt,
		DistanceKm:          c.dist,
		ParallacticAngleRad: pa,
	}
}

// MoonIlluminationAt computes the moon's illumination parameters at time t.
// The calculation is geocentric and does not depend on the observer.
func MoonIlluminationAt(t time.Time) MoonIllumination {
	d := toDays(t)
	s := getSunCoords(d)
	m := getMoonCoords(d)

	const sunDistKm = 149598000.0

	phi := math.Acos(math.Sin(s.dec)*math.Sin(m.dec) + math.Cos(s.dec)*math.Cos(m.dec)*math.Cos(s.ra-m.ra))
	inc := math.Atan2(sunDistKm*math.Sin(phi), m.dist-sunDistKm*math.Cos(phi))
	angle := math.Atan2(math.Cos(s.dec)*math.Sin(s.ra-m.ra), math.Sin(s.dec)*math.Cos(m.dec)-
		math.Cos(s.dec)*math.Sin(m.dec)*math.Cos(s.ra-m.ra))

	return MoonIllumination{
		Fraction: (1 + math.Cos(inc)) / 2,
		Phase:    0.5 + 0.5*inc*math.Copysign(1, angle)/math.Pi,
		AngleRad: angle,
	}
}

// MoonTimesFor computes moon rise/set times for the calendar day containing
// date, in date's location. The scan samples altitude every two hours and
// solves the quadratic through each triple of samples for horizon crossings.
func MoonTimesFor(date time.Time, latDeg, lonDeg float64) MoonTimes {
	loc := date.Location()
	t := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	// hc lowers the horizon slightly to account for refraction and the
	// moon's apparent radius.
	hc := 0.133 * rad
	h0 := MoonPositionAt(t, latDeg, lonDeg).AltitudeRad - hc

	var (
		h1, h2, riseHr, setHr float64
		ye                    float64
		hasRise, hasSet       bool
	)

	for i := 1; i <= 24; i += 2 {
		h1 = MoonPositionAt(hoursLater(t, float64(i)), latDeg, lonDeg).AltitudeRad - hc
		h2 = MoonPositionAt(hoursLater(t, float64(i+1)), latDeg, lonDeg).AltitudeRad - hc

		// Fit a parabola through (h0, h1, h2) and find its roots within
		// the two-hour window.
		a := (h0+h2)/2 - h1
		b := (h2 - h0) / 2
		xe := -b / (2 * a)
		ye = (a*xe+b)*xe + h1
		d := b*b - 4*a*h1
		roots := 0
		var x1, x2 float64

		if d >= 0 {
			dx := math.Sqrt(d) / (math.Abs(a) * 2)
			x1 = xe - dx
			x2 = xe + dx
			if math.Abs(x1) <= 1 {
				roots++
			}
			if math.Abs(x2) <= 1 {
				roots++
			}
			if x1 < -1 {
				x1 = x2
			}
		}

		if roots == 1 {
			if h0 < 0 {
				riseHr = float64(i) + x1
				hasRise = true
			} else {
				setHr = float64(i) + x1
				hasSet = true
			}
		} else if roots == 2 {
			if ye < 0 {
				riseHr = float64(i) + x2
				setHr = float64(i) + x1
			} else {
				riseHr = float64(i) + x1
				setHr = float64(i) + x2
			}
			hasRise = true
			hasSet = true
		}

		if hasRise && hasSet {
			break
		}

		h0 = h2
	}

	var result MoonTimes

	if hasRise {
		rise := hoursLater(t, riseHr)
		result.Rise = &rise
	}
	if hasSet {
		set := hoursLater(t, setHr)
		result.Set = &set
	}

	if !hasRise && !hasSet {
		if ye > 0 {
			result.AlwaysUp = true
		} else {
			result.AlwaysDown = true
		}
	}

	return result
}
