// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geocode resolves free-text location input into coordinates and a
// canonical display name using an ordered chain of geocoding providers.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrNotFound is returned when no provider in the chain matched the input.
var ErrNotFound = errors.New("location not found")

// Location is a successfully resolved place. Coordinates are validated on
// creation and never mutated afterwards.
type Location struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Valid reports whether the coordinates are finite and within range.
func (l Location) Valid() bool {
	if math.IsNaN(l.Latitude) || math.IsInf(l.Latitude, 0) {
		return false
	}
	if math.IsNaN(l.Longitude) || math.IsInf(l.Longitude, 0) {
		return false
	}
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

// Resolver is implemented by each geocoding backend.
type Resolver interface {
	Name() string
	Supports(kind Kind) bool
	Resolve(ctx context.Context, text string, kind Kind) (Location, error)
}

func notFound(text string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, text)
}
