package moon

import (
	"errors"
	"math"
	"testing"
	"time"
)

// fakeEphemeris lets tests script raw ephemeris responses.
type fakeEphemeris struct {
	pos     Position
	posErr  error
	ill     Illumination
	illErr  error
	riseSet func(t time.Time, c Coordinate) (RiseSet, error)

	riseSetCalls int
}

func (f *fakeEphemeris) Name() string { return "fake" }

func (f *fakeEphemeris) Position(t time.Time, c Coordinate) (Position, error) {
	return f.pos, f.posErr
}

func (f *fakeEphemeris) Illumination(t time.Time) (Illumination, error) {
	return f.ill, f.illErr
}

func (f *fakeEphemeris) RiseSet(t time.Time, c Coordinate) (RiseSet, error) {
	f.riseSetCalls++
	if f.riseSet == nil {
		return RiseSet{}, nil
	}
	return f.riseSet(t, c)
}

var (
	london  = Coordinate{LatDeg: 51.5074, LonDeg: -0.1278}
	queryAt = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
)

func TestObservation_LondonScenario(t *testing.T) {
	// Raw altitude 0.1 rad, azimuth 0 rad (due south in the provider's
	// convention) must come out visible and bearing 180°.
	eph := &fakeEphemeris{
		pos: Position{AltitudeRad: 0.1, AzimuthRad: 0},
		ill: Illumination{Phase: 0.25, Fraction: 0.5},
	}
	calc := NewCalculator(eph)

	obs, err := calc.Observation(queryAt, london)
	if err != nil {
		t.Fatalf("Observation() error = %v", err)
	}

	if !obs.Visible {
		t.Error("Visible = false, want true")
	}
	if math.Abs(obs.AzimuthDeg-180) > 1e-9 {
		t.Errorf("AzimuthDeg = %v, want 180", obs.AzimuthDeg)
	}
	if math.Abs(obs.AltitudeDeg-0.1*180/math.Pi) > 1e-9 {
		t.Errorf("AltitudeDeg = %v, want %v", obs.AltitudeDeg, 0.1*180/math.Pi)
	}
	if obs.Phase != 0.25 || obs.IlluminatedFraction != 0.5 {
		t.Errorf("Phase/Fraction = %v/%v, want 0.25/0.5", obs.Phase, obs.IlluminatedFraction)
	}
}

func TestObservation_CoordinateValidation(t *testing.T) {
	calc := NewCalculator(&fakeEphemeris{})

	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"lat over", Coordinate{LatDeg: 91, LonDeg: 0}, true},
		{"lon under", Coordinate{LatDeg: 0, LonDeg: -181}, true},
		{"inclusive bounds", Coordinate{LatDeg: 90, LonDeg: 180}, false},
		{"negative bounds", Coordinate{LatDeg: -90, LonDeg: -180}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Observation(queryAt, tt.coord)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCoordinate) {
					t.Errorf("error = %v, want ErrInvalidCoordinate", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestObservation_ValidationBeforeEphemeris(t *testing.T) {
	eph := &fakeEphemeris{}
	calc := NewCalculator(eph)

	_, err := calc.Observation(queryAt, Coordinate{LatDeg: 100, LonDeg: 0})
	if !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("error = %v, want ErrInvalidCoordinate", err)
	}
	if eph.riseSetCalls != 0 {
		t.Errorf("ephemeris was called %d times before validation failed", eph.riseSetCalls)
	}
}

func TestObservation_AzimuthNormalization(t *testing.T) {
	tests := []struct {
		azRad   float64
		wantDeg float64
	}{
		{0, 180},
		{math.Pi / 2, 270},
		{math.Pi, 0},
		{-math.Pi / 2, 90},
		{-math.Pi, 0},
		{3 * math.Pi, 0},
	}

	for _, tt := range tests {
		eph := &fakeEphemeris{pos: Position{AzimuthRad: tt.azRad}}
		calc := NewCalculator(eph)

		obs, err := calc.Observation(queryAt, london)
		if err != nil {
			t.Fatalf("Observation() error = %v", err)
		}
		if obs.AzimuthDeg < 0 || obs.AzimuthDeg >= 360 {
			t.Errorf("azRad %v: AzimuthDeg = %v, want in [0,360)", tt.azRad, obs.AzimuthDeg)
		}
		if math.Abs(obs.AzimuthDeg-tt.wantDeg) > 1e-9 {
			t.Errorf("azRad %v: AzimuthDeg = %v, want %v", tt.azRad, obs.AzimuthDeg, tt.wantDeg)
		}
	}
}

func TestObservation_HorizonBoundary(t *testing.T) {
	// Altitude exactly 0 counts as not visible: the boundary is strict.
	eph := &fakeEphemeris{pos: Position{AltitudeRad: 0}}
	calc := NewCalculator(eph)

	obs, err := calc.Observation(queryAt, london)
	if err != nil {
		t.Fatalf("Observation() error = %v", err)
	}
	if obs.Visible {
		t.Error("Visible = true at altitude 0, want false")
	}
}

func TestObservation_NoRiseWithinHorizon(t *testing.T) {
	eph := &fakeEphemeris{
		riseSet: func(t time.Time, c Coordinate) (RiseSet, error) {
			return RiseSet{AlwaysDown: true}, nil
		},
	}
	calc := NewCalculator(eph)

	obs, err := calc.Observation(queryAt, london)
	if err != nil {
		t.Fatalf("Observation() error = %v", err)
	}
	if obs.NextRise != nil {
		t.Errorf("NextRise = %v, want nil", obs.NextRise)
	}
	if obs.NextSet != nil {
		t.Errorf("NextSet = %v, want nil", obs.NextSet)
	}
	// Today plus seven days ahead, once per event.
	want := 2 * (SearchHorizonDays + 1)
	if eph.riseSetCalls != want {
		t.Errorf("riseSetCalls = %d, want %d", eph.riseSetCalls, want)
	}
}

func TestObservation_TodayEventUsedWhenFuture(t *testing.T) {
	rise := queryAt.Add(3 * time.Hour)
	set := queryAt.Add(9 * time.Hour)
	eph := &fakeEphemeris{
		riseSet: func(day time.Time, c Coordinate) (RiseSet, error) {
			if day.YearDay() == queryAt.YearDay() {
				return RiseSet{Rise: &rise, Set: &set}, nil
			}
			return RiseSet{}, nil
		},
	}
	calc := NewCalculator(eph)

	obs, err := calc.Observation(queryAt, london)
	if err != nil {
		t.Fatalf("Observation() error = %v", err)
	}
	if obs.NextRise == nil || !obs.NextRise.Equal(rise) {
		t.Errorf("NextRise = %v, want %v", obs.NextRise, rise)
	}
	if obs.NextSet == nil || !obs.NextSet.Equal(set) {
		t.Errorf("NextSet = %v, want %v", obs.NextSet, set)
	}
}

func TestObservation_ForwardSearchSkipsElapsed(t *testing.T) {
	// Today's rise already happened; tomorrow has the next one. The set
	// event resolves on a different day than the rise.
	staleRise := queryAt.Add(-2 * time.Hour)
	tomorrowRise := queryAt.Add(22 * time.Hour)
	dayAfterSet := queryAt.Add(40 * time.Hour)

	eph := &fakeEphemeris{
		riseSet: func(day time.Time, c Coordinate) (RiseSet, error) {
			switch day.YearDay() - queryAt.YearDay() {
			case 0:
				return RiseSet{Rise: &staleRise}, nil
			case 1:
				return RiseSet{Rise: &tomorrowRise}, nil
			case 2:
				return RiseSet{Set: &dayAfterSet}, nil
			}
			return RiseSet{}, nil
		},
	}
	calc := NewCalculator(eph)

	obs, err := calc.Observation(queryAt, london)
	if err != nil {
		t.Fatalf("Observation() error = %v", err)
	}
	if obs.NextRise == nil || !obs.NextRise.Equal(tomorrowRise) {
		t.Errorf("NextRise = %v, want %v", obs.NextRise, tomorrowRise)
	}
	if obs.NextSet == nil || !obs.NextSet.Equal(dayAfterSet) {
		t.Errorf("NextSet = %v, want %v", obs.NextSet, dayAfterSet)
	}
}

func TestObservation_EphemerisFailure(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		eph  *fakeEphemeris
	}{
		{"position", &fakeEphemeris{posErr: boom}},
		{"illumination", &fakeEphemeris{illErr: boom}},
		{"rise/set", &fakeEphemeris{riseSet: func(time.Time, Coordinate) (RiseSet, error) {
			return RiseSet{}, boom
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(tt.eph)
			obs, err := calc.Observation(queryAt, london)
			if !errors.Is(err, ErrEphemerisUnavailable) {
				t.Errorf("error = %v, want ErrEphemerisUnavailable", err)
			}
			// No partial observation on failure.
			if obs != (Observation{}) {
				t.Errorf("observation = %+v, want zero value", obs)
			}
		})
	}
}

func TestObservation_SunCalcEndToEnd(t *testing.T) {
	// Real provider sanity: outputs stay in range and the visibility flag
	// agrees with altitude across a spread of times and places.
	calc := NewCalculator(nil)

	coords := []Coordinate{
		london,
		{LatDeg: -33.8688, LonDeg: 151.2093}, // Sydney
		{LatDeg: 78.2232, LonDeg: 15.6267},   // Svalbard
	}

	for _, coord := range coords {
		for hour := 0; hour < 48; hour += 6 {
			at := queryAt.Add(time.Duration(hour) * time.Hour)
			obs, err := calc.Observation(at, coord)
			if err != nil {
				t.Fatalf("Observation(%v, %v) error = %v", at, coord, err)
			}
			if obs.AzimuthDeg < 0 || obs.AzimuthDeg >= 360 {
				t.Errorf("AzimuthDeg = %v, want in [0,360)", obs.AzimuthDeg)
			}
			if obs.Visible != (obs.AltitudeDeg > 0) {
				t.Errorf("Visible = %v but AltitudeDeg = %v", obs.Visible, obs.AltitudeDeg)
			}
			if obs.Phase < 0 || obs.Phase >= 1 {
				t.Errorf("Phase = %v, want in [0,1)", obs.Phase)
			}
			if obs.NextRise != nil && !obs.NextRise.After(at) {
				t.Errorf("NextRise = %v not after query time %v", obs.NextRise, at)
			}
			if obs.NextSet != nil && !obs.NextSet.After(at) {
				t.Errorf("NextSet = %v not after query time %v", obs.NextSet, at)
			}
		}
	}
}
