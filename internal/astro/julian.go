package astro

import "time"

// Julian date epochs and conversion constants.
const (
	dayMs = 1000 * 60 * 60 * 24
	j1970 = 2440588
	j2000 = 2451545
)

// toJulian converts a time to a Julian date.
func toJulian(t time.Time) float64 {
	return float64(t.UnixMilli())/dayMs - 0.5 + j1970
}

// fromJulian converts a Julian date back to a time (UTC).
func fromJulian(j float64) time.Time {
	ms := int64((j + 0.5 - j1970) * dayMs)
	return time.UnixMilli(ms).UTC()
}

// toDays returns days since the J2000.0 epoch.
func toDays(t time.Time) float64 {
	return toJulian(t) - j2000
}
