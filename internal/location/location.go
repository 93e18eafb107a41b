// Package location resolves where the observer is: either a device-reported
// position looked up over the network, or a preset from a fixed city list.
package location

import (
	"errors"

	"github.com/litescript/ls-moonwatch/internal/moon"
)

// Errors reported by the resolvers.
var (
	// ErrUnavailable means device location could not be determined.
	ErrUnavailable = errors.New("location unavailable")

	// ErrGeocodeUnavailable means reverse geocoding failed. Callers treat
	// this as non-fatal and fall back to raw coordinates.
	ErrGeocodeUnavailable = errors.New("reverse geocoding unavailable")
)

// Kind distinguishes how a selection was made.
type Kind int

const (
	KindDevice Kind = iota // resolved from the network/device
	KindPreset             // chosen from the city list
)

// Selection is the active observer location. Exactly one selection is
// active at a time; switching replaces the coordinate wholesale.
type Selection struct {
	Kind       Kind
	Name       string // place name, may be empty until geocoded
	Coordinate moon.Coordinate
}

// Label returns the display name, falling back to raw coordinates.
func (s Selection) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Coordinate.String()
}
