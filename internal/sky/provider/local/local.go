// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package local computes sky data without any network access. It is the last
// link of the sky provider chain and must never fail once constructed.
package local

import (
	"context"
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/stargazer/internal/logger"
	"github.com/wneessen/stargazer/internal/sky"
)

const name = "local"

const (
	// Altitude stand-in until proper topocentric moon position math lands.
	// TODO: replace with a real altitude calculation (hour angle from RA/Dec).
	placeholderMoonAltitude = 45

	catalogMagnitudeCutoff = 2.0
	catalogStarLimit       = 5
)

// Planet visibility would need full ephemeris math, so the local provider
// reports the two giants that are visible most nights of the year.
var defaultPlanets = []string{"Jupiter", "Saturn"}

type Local struct {
	log     *logger.Logger
	catalog []sky.Star
}

// New returns a new local sky data provider. It fails only when the embedded
// star catalog cannot be parsed.
func New(log *logger.Logger) (*Local, error) {
	catalog, err := sky.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load star catalog: %w", err)
	}
	return &Local{log: log, catalog: catalog}, nil
}

func (l *Local) Name() string {
	return name
}

// Fetch computes a snapshot for the given instant from the lunation fraction,
// the embedded star catalog and the sun's position.
func (l *Local) Fetch(_ context.Context, lat, lon float64, instant time.Time, _ string) (sky.Snapshot, error) {
	fraction := moonphase.New(instant).Phase()
	rise, set := sunrise.SunriseSunset(lat, lon, instant.Year(), instant.Month(), instant.Day())

	return sky.Snapshot{
		MoonPhase:        sky.PhaseName(fraction),
		MoonIllumination: sky.Illumination(fraction),
		MoonAltitude:     placeholderMoonAltitude,
		Planets:          defaultPlanets,
		Stars:            sky.BrightestNames(l.catalog, catalogMagnitudeCutoff, catalogStarLimit),
		Sunrise:          rise,
		Sunset:           set,
	}, nil
}
