package moon

import (
	"time"

	"github.com/litescript/ls-moonwatch/internal/astro"
)

// Position is the raw lunar position as an ephemeris reports it:
// radians, with azimuth referenced to south (positive westward).
type Position struct {
	AzimuthRad          float64
	AltitudeRad         float64
	DistanceKm          float64
	ParallacticAngleRad float64
}

// Illumination is the raw phase/illumination pair for an instant.
type Illumination struct {
	Phase    float64 // [0,1), 0 = new moon
	Fraction float64 // lit fraction of the disc, [0,1]
}

// RiseSet holds the rise/set events for one calendar day. Nil means the
// event does not occur that day.
type RiseSet struct {
	Rise       *time.Time
	Set        *time.Time
	AlwaysUp   bool
	AlwaysDown bool
}

// Ephemeris is the source of raw lunar data. Implementations may be
// in-process math or remote services; the calculator treats any error as
// fatal for the current computation.
type Ephemeris interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Position returns the moon's position at t for the given coordinate.
	Position(t time.Time, c Coordinate) (Position, error)

	// Illumination returns phase and lit fraction at t.
	Illumination(t time.Time) (Illumination, error)

	// RiseSet returns rise/set events for the calendar day containing t.
	RiseSet(t time.Time, c Coordinate) (RiseSet, error)
}

// SunCalc is the default Ephemeris, backed by the in-process SunCalc-derived
// formulas in internal/astro. Its methods never fail.
type SunCalc struct{}

// Name implements Ephemeris.
func (SunCalc) Name() string { return "suncalc" }

// Position implements Ephemeris.
func (SunCalc) Position(t time.Time, c Coordinate) (Position, error) {
	pos := astro.MoonPositionAt(t, c.LatDeg, c.LonDeg)
	return Position{
		AzimuthRad:          pos.AzimuthRad,
		AltitudeRad:         pos.AltitudeRad,
		DistanceKm:          pos.DistanceKm,
		ParallacticAngleRad: pos.ParallacticAngleRad,
	}, nil
}

// Illumination implements Ephemeris.
func (SunCalc) Illumination(t time.Time) (Illumination, error) {
	ill := astro.MoonIlluminationAt(t)
	return Illumination{Phase: ill.Phase, Fraction: ill.Fraction}, nil
}

// RiseSet implements Ephemeris.
func (SunCalc) RiseSet(t time.Time, c Coordinate) (RiseSet, error) {
	times := astro.MoonTimesFor(t, c.LatDeg, c.LonDeg)
	return RiseSet{
		Rise:       times.Rise,
		Set:        times.Set,
		AlwaysUp:   times.AlwaysUp,
		AlwaysDown: times.AlwaysDown,
	}, nil
}
