// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package sky enriches observation windows with astronomical conditions: moon
// phase and altitude, visible planets, bright stars and the sun's set and rise
// times. Data comes from a provider chain so a local computation can stand in
// when the remote API is unreachable.
package sky

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wneessen/stargazer/internal/logger"
)

// ErrUnavailable is returned when every provider in the chain has failed.
var ErrUnavailable = errors.New("no sky data provider available")

// Moon impact thresholds on the 0-100 illumination scale.
const (
	impactMediumIllumination = 30
	impactHighIllumination   = 60
)

// Impact describes how much the moon interferes with observation.
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

// Snapshot holds the sky conditions around a single point in time.
type Snapshot struct {
	MoonPhase        string
	MoonIllumination int
	MoonAltitude     float64
	Planets          []string
	Stars            []string
	Sunset           time.Time
	Sunrise          time.Time
}

// MoonVisible reports whether the moon stands above the horizon.
func (s Snapshot) MoonVisible() bool {
	return s.MoonAltitude > 0
}

// MoonImpact grades the moon's interference. A moon below the horizon is
// always Low regardless of illumination.
func (s Snapshot) MoonImpact() Impact {
	if !s.MoonVisible() || s.MoonIllumination < impactMediumIllumination {
		return ImpactLow
	}
	if s.MoonIllumination < impactHighIllumination {
		return ImpactMedium
	}
	return ImpactHigh
}

// Provider is implemented by each sky data backend.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64, instant time.Time, tz string) (Snapshot, error)
}

// Chain tries providers in order, falling through on failure.
type Chain struct {
	logger    *logger.Logger
	providers []Provider
}

// NewChain returns a new provider Chain.
func NewChain(log *logger.Logger, providers ...Provider) *Chain {
	return &Chain{
		logger:    log,
		providers: providers,
	}
}

// Fetch returns the first successful provider snapshot.
func (c *Chain) Fetch(ctx context.Context, lat, lon float64, instant time.Time, tz string) (Snapshot, error) {
	for _, provider := range c.providers {
		snapshot, err := provider.Fetch(ctx, lat, lon, instant, tz)
		if err != nil {
			c.logger.Warn("sky data provider failed, trying next in chain",
				slog.String("provider", provider.Name()), logger.Err(err))
			continue
		}
		return snapshot, nil
	}
	return Snapshot{}, ErrUnavailable
}
