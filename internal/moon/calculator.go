package moon

import (
	"fmt"
	"math"
	"time"
)

// SearchHorizonDays bounds the forward search for the next rise/set event.
// Near the poles the moon can stay above or below the horizon for days, so
// "today's" event may not exist; a week covers every non-polar gap and caps
// the cost for polar observers where no event will be found at all.
const SearchHorizonDays = 7

// Observation is the computed lunar snapshot for one (time, coordinate)
// pair. It is a value object: recomputed wholesale on every refresh, never
// mutated.
type Observation struct {
	Time       time.Time
	Coordinate Coordinate

	Visible     bool    // altitude strictly above the horizon
	AltitudeDeg float64 // degrees above (+) or below (-) the horizon
	AzimuthDeg  float64 // [0,360), 0 = true north, clockwise

	Phase               float64 // [0,1), 0 = new moon
	IlluminatedFraction float64 // [0,1]

	DistanceKm          float64
	ParallacticAngleDeg float64

	// Next future rise/set relative to Time, nil when no event exists
	// within SearchHorizonDays. Searched independently; they may land on
	// different days.
	NextRise *time.Time
	NextSet  *time.Time
}

// Calculator computes observations from an Ephemeris.
type Calculator struct {
	eph Ephemeris
}

// NewCalculator creates a calculator. A nil ephemeris selects the built-in
// SunCalc provider.
func NewCalculator(eph Ephemeris) *Calculator {
	if eph == nil {
		eph = SunCalc{}
	}
	return &Calculator{eph: eph}
}

// Provider returns the underlying ephemeris.
func (c *Calculator) Provider() Ephemeris { return c.eph }

// Observation computes the lunar snapshot for time t at coord.
// The coordinate is validated before any ephemeris call; any provider
// failure aborts the whole computation with ErrEphemerisUnavailable.
func (c *Calculator) Observation(t time.Time, coord Coordinate) (Observation, error) {
	if err := coord.Validate(); err != nil {
		return Observation{}, err
	}

	pos, err := c.eph.Position(t, coord)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: position: %v", ErrEphemerisUnavailable, err)
	}

	ill, err := c.eph.Illumination(t)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: illumination: %v", ErrEphemerisUnavailable, err)
	}

	altDeg := pos.AltitudeRad * 180 / math.Pi

	obs := Observation{
		Time:                t,
		Coordinate:          coord,
		AltitudeDeg:         altDeg,
		AzimuthDeg:          northAzimuthDeg(pos.AzimuthRad),
		Visible:             altDeg > 0,
		Phase:               ill.Phase,
		IlluminatedFraction: ill.Fraction,
		DistanceKm:          pos.DistanceKm,
		ParallacticAngleDeg: pos.ParallacticAngleRad * 180 / math.Pi,
	}

	obs.NextRise, err = c.nextEvent(t, coord, func(rs RiseSet) *time.Time { return rs.Rise })
	if err != nil {
		return Observation{}, err
	}

	obs.NextSet, err = c.nextEvent(t, coord, func(rs RiseSet) *time.Time { return rs.Set })
	if err != nil {
		return Observation{}, err
	}

	return obs, nil
}

// nextEvent finds the first event strictly after t, scanning today and then
// day-by-day up to SearchHorizonDays. An exhausted horizon yields nil, not
// an error.
func (c *Calculator) nextEvent(t time.Time, coord Coordinate, pick func(RiseSet) *time.Time) (*time.Time, error) {
	for day := 0; day <= SearchHorizonDays; day++ {
		rs, err := c.eph.RiseSet(t.AddDate(0, 0, day), coord)
		if err != nil {
			return nil, fmt.Errorf("%w: rise/set: %v", ErrEphemerisUnavailable, err)
		}
		if ev := pick(rs); ev != nil && ev.After(t) {
			return ev, nil
		}
	}
	return nil, nil
}

// northAzimuthDeg converts a south-referenced azimuth in radians to a
// north-referenced compass bearing in [0,360).
func northAzimuthDeg(azRad float64) float64 {
	deg := math.Mod(azRad*180/math.Pi+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
