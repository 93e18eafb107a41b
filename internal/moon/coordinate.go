// Package moon turns raw ephemeris output into a horizon-relative
// visibility model: is the moon up, where in the sky, and when does it
// next rise or set.
package moon

import (
	"errors"
	"fmt"
)

// Errors reported by the calculator.
var (
	ErrInvalidCoordinate    = errors.New("coordinate out of range")
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")
)

// Coordinate is an observer location on the Earth's surface.
type Coordinate struct {
	LatDeg float64 // north positive, [-90, 90]
	LonDeg float64 // east positive, [-180, 180]
}

// Validate checks the coordinate against the inclusive lat/lon bounds.
func (c Coordinate) Validate() error {
	if c.LatDeg < -90 || c.LatDeg > 90 {
		return fmt.Errorf("%w: latitude %.4f", ErrInvalidCoordinate, c.LatDeg)
	}
	if c.LonDeg < -180 || c.LonDeg > 180 {
		return fmt.Errorf("%w: longitude %.4f", ErrInvalidCoordinate, c.LonDeg)
	}
	return nil
}

// String formats the coordinate as "51.51°N 0.13°W".
func (c Coordinate) String() string {
	latHemi, lonHemi := "N", "E"
	lat, lon := c.LatDeg, c.LonDeg
	if lat < 0 {
		latHemi = "S"
		lat = -lat
	}
	if lon < 0 {
		lonHemi = "W"
		lon = -lon
	}
	return fmt.Sprintf("%.2f°%s %.2f°%s", lat, latHemi, lon, lonHemi)
}
