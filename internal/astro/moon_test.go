package astro

import (
	"math"
	"testing"
	"time"
)

// Reference values from the SunCalc test suite: 2013-03-05 00:00 UTC,
// observer at 50.5N 30.5E.
var (
	refTime = time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)
	refLat  = 50.5
	refLon  = 30.5
)

func TestMoonPositionAt(t *testing.T) {
	pos := MoonPositionAt(refTime, refLat, refLon)

	tests := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"azimuth", pos.AzimuthRad, -0.9783999522438226, 1e-6},
		{"altitude", pos.AltitudeRad, 0.014551482243892251, 1e-6},
		{"distance", pos.DistanceKm, 364121.37256256194, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > tt.tol {
				t.Errorf("got %v, want %v (tolerance %v)", tt.got, tt.want, tt.tol)
			}
		})
	}
}

func TestMoonIlluminationAt(t *testing.T) {
	ill := MoonIlluminationAt(refTime)

	if math.Abs(ill.Fraction-0.4848068202456373) > 1e-6 {
		t.Errorf("Fraction = %v, want ~0.4848", ill.Fraction)
	}
	if math.Abs(ill.Phase-0.7548368838538762) > 1e-6 {
		t.Errorf("Phase = %v, want ~0.7548", ill.Phase)
	}
	if ill.Phase < 0 || ill.Phase >= 1 {
		t.Errorf("Phase = %v, want in [0,1)", ill.Phase)
	}
	if ill.Fraction < 0 || ill.Fraction > 1 {
		t.Errorf("Fraction = %v, want in [0,1]", ill.Fraction)
	}
}

func TestMoonTimesFor(t *testing.T) {
	day := time.Date(2013, 3, 4, 0, 0, 0, 0, time.UTC)
	times := MoonTimesFor(day, refLat, refLon)

	if times.Rise == nil {
		t.Fatal("Rise = nil, want an event")
	}
	if times.Set == nil {
		t.Fatal("Set = nil, want an event")
	}

	wantRise := time.Date(2013, 3, 4, 23, 54, 29, 0, time.UTC)
	wantSet := time.Date(2013, 3, 4, 7, 47, 58, 0, time.UTC)

	if d := times.Rise.Sub(wantRise); d < -time.Minute || d > time.Minute {
		t.Errorf("Rise = %v, want %v ±1m", times.Rise, wantRise)
	}
	if d := times.Set.Sub(wantSet); d < -time.Minute || d > time.Minute {
		t.Errorf("Set = %v, want %v ±1m", times.Set, wantSet)
	}
}

func TestMoonTimesFor_Circumpolar(t *testing.T) {
	// Near the poles the moon can stay up or down for days at a time.
	// Scan a month from the North Pole and require both cases to appear.
	var sawUp, sawDown bool
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		times := MoonTimesFor(day.AddDate(0, 0, i), 89.9, 0)
		if times.AlwaysUp {
			sawUp = true
		}
		if times.AlwaysDown {
			sawDown = true
		}
	}

	if !sawUp || !sawDown {
		t.Errorf("polar month: sawUp=%v sawDown=%v, want both", sawUp, sawDown)
	}
}

func TestJulianRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), // J2000 epoch
		time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 30, 18, 45, 12, 0, time.UTC),
	}

	for _, in := range times {
		out := fromJulian(toJulian(in))
		if d := out.Sub(in); d < -time.Millisecond || d > time.Millisecond {
			t.Errorf("round trip of %v drifted by %v", in, d)
		}
	}

	// J2000 epoch is exactly 2451545.0.
	if j := toJulian(times[0]); math.Abs(j-2451545.0) > 1e-6 {
		t.Errorf("toJulian(J2000) = %v, want 2451545.0", j)
	}
}
