package moon

import (
	"math"
	"time"
)

// SynodicMonthDays is the mean length of the lunar cycle.
const SynodicMonthDays = 29.53

// Phase is a named band of the lunar cycle.
type Phase int

const (
	PhaseNew Phase = iota
	PhaseWaxingCrescent
	PhaseFirstQuarter
	PhaseWaxingGibbous
	PhaseFull
	PhaseWaningGibbous
	PhaseLastQuarter
	PhaseWaningCrescent
)

// String returns the display name.
func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "New Moon"
	case PhaseWaxingCrescent:
		return "Waxing Crescent"
	case PhaseFirstQuarter:
		return "First Quarter"
	case PhaseWaxingGibbous:
		return "Waxing Gibbous"
	case PhaseFull:
		return "Full Moon"
	case PhaseWaningGibbous:
		return "Waning Gibbous"
	case PhaseLastQuarter:
		return "Last Quarter"
	case PhaseWaningCrescent:
		return "Waning Crescent"
	default:
		return "Unknown"
	}
}

// Icon returns the Unicode glyph for the phase.
func (p Phase) Icon() string {
	icons := []string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}
	if p < 0 || int(p) >= len(icons) {
		return "🌑"
	}
	return icons[p]
}

// PhaseOf maps a cycle fraction in [0,1) to its named band. Bands are
// half-open on the left: 0.03 is already Waxing Crescent, and the New Moon
// band wraps across 0.
func PhaseOf(phase float64) Phase {
	switch {
	case phase < 0.03 || phase >= 0.97:
		return PhaseNew
	case phase < 0.22:
		return PhaseWaxingCrescent
	case phase < 0.28:
		return PhaseFirstQuarter
	case phase < 0.47:
		return PhaseWaxingGibbous
	case phase < 0.53:
		return PhaseFull
	case phase < 0.72:
		return PhaseWaningGibbous
	case phase < 0.78:
		return PhaseLastQuarter
	default:
		return PhaseWaningCrescent
	}
}

// AgeDays converts a cycle fraction to the moon's age in days, rounded to
// one decimal.
func AgeDays(phase float64) float64 {
	return math.Round(phase*SynodicMonthDays*10) / 10
}

// NextMajorPhase returns the nearest upcoming quarter (new, first quarter,
// full, last quarter) strictly ahead of phase, and its predicted date.
func NextMajorPhase(phase float64, now time.Time) (Phase, time.Time) {
	quarters := []struct {
		at    float64
		label Phase
	}{
		{0.25, PhaseFirstQuarter},
		{0.50, PhaseFull},
		{0.75, PhaseLastQuarter},
		{1.00, PhaseNew},
	}

	for _, q := range quarters {
		if phase < q.at {
			days := (q.at - phase) * SynodicMonthDays
			return q.label, now.Add(time.Duration(days * 24 * float64(time.Hour)))
		}
	}

	// phase >= 1 cannot happen for valid input; treat as just before new.
	return PhaseNew, now
}

// compassPoints are the 16 compass point labels, clockwise from north.
var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass maps an azimuth in degrees to one of 16 compass points.
func Compass(azimuthDeg float64) string {
	idx := int(math.Round(azimuthDeg/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// Remaining is a whole hours/minutes countdown.
type Remaining struct {
	Hours   int
	Minutes int
}

// TimeRemaining returns the floor-divided countdown until target, or nil if
// target is absent or not in the future.
func TimeRemaining(target *time.Time, now time.Time) *Remaining {
	if target == nil || !target.After(now) {
		return nil
	}
	d := target.Sub(now)
	return &Remaining{
		Hours:   int(d / time.Hour),
		Minutes: int(d/time.Minute) % 60,
	}
}
