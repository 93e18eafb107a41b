package location

import (
	"strings"

	"github.com/litescript/ls-moonwatch/internal/moon"
)

// City is a named preset coordinate.
type City struct {
	Name       string
	Coordinate moon.Coordinate
}

// Cities is the fixed preset list, shown in the location picker in this
// order.
var Cities = []City{
	{"London", moon.Coordinate{LatDeg: 51.5074, LonDeg: -0.1278}},
	{"New York", moon.Coordinate{LatDeg: 40.7128, LonDeg: -74.0060}},
	{"Los Angeles", moon.Coordinate{LatDeg: 34.0522, LonDeg: -118.2437}},
	{"Chicago", moon.Coordinate{LatDeg: 41.8781, LonDeg: -87.6298}},
	{"Mexico City", moon.Coordinate{LatDeg: 19.4326, LonDeg: -99.1332}},
	{"São Paulo", moon.Coordinate{LatDeg: -23.5505, LonDeg: -46.6333}},
	{"Buenos Aires", moon.Coordinate{LatDeg: -34.6037, LonDeg: -58.3816}},
	{"Paris", moon.Coordinate{LatDeg: 48.8566, LonDeg: 2.3522}},
	{"Berlin", moon.Coordinate{LatDeg: 52.5200, LonDeg: 13.4050}},
	{"Madrid", moon.Coordinate{LatDeg: 40.4168, LonDeg: -3.7038}},
	{"Rome", moon.Coordinate{LatDeg: 41.9028, LonDeg: 12.4964}},
	{"Cairo", moon.Coordinate{LatDeg: 30.0444, LonDeg: 31.2357}},
	{"Lagos", moon.Coordinate{LatDeg: 6.5244, LonDeg: 3.3792}},
	{"Nairobi", moon.Coordinate{LatDeg: -1.2921, LonDeg: 36.8219}},
	{"Moscow", moon.Coordinate{LatDeg: 55.7558, LonDeg: 37.6173}},
	{"Dubai", moon.Coordinate{LatDeg: 25.2048, LonDeg: 55.2708}},
	{"Mumbai", moon.Coordinate{LatDeg: 19.0760, LonDeg: 72.8777}},
	{"Singapore", moon.Coordinate{LatDeg: 1.3521, LonDeg: 103.8198}},
	{"Hong Kong", moon.Coordinate{LatDeg: 22.3193, LonDeg: 114.1694}},
	{"Tokyo", moon.Coordinate{LatDeg: 35.6762, LonDeg: 139.6503}},
	{"Sydney", moon.Coordinate{LatDeg: -33.8688, LonDeg: 151.2093}},
	{"Auckland", moon.Coordinate{LatDeg: -36.8509, LonDeg: 174.7645}},
	{"Reykjavík", moon.Coordinate{LatDeg: 64.1466, LonDeg: -21.9426}},
	{"Longyearbyen", moon.Coordinate{LatDeg: 78.2232, LonDeg: 15.6267}},
}

// FindCity looks up a preset by name, case-insensitively.
func FindCity(name string) (City, bool) {
	for _, c := range Cities {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return City{}, false
}

// PresetSelection builds a Selection for a preset city.
func PresetSelection(c City) Selection {
	return Selection{
		Kind:       KindPreset,
		Name:       c.Name,
		Coordinate: c.Coordinate,
	}
}
