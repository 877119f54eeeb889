// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package forecast fetches hourly weather data for coordinates from an
// ordered chain of providers and normalizes every provider response into one
// canonical hourly series.
package forecast

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wneessen/stargazer/internal/logger"
)

// ErrUnavailable is returned when every provider in the chain failed.
var ErrUnavailable = errors.New("no forecast provider available")

// HourSample is one normalized forecast hour.
type HourSample struct {
	TimeUTC     time.Time
	CloudCover  float64 // percent, 0-100
	Temperature float64
	WindSpeed   float64
}

// HourlySeries is a contiguous, chronologically ordered sequence of hour
// samples covering the forecast horizon. It is created once per fetch and
// never mutated afterwards.
type HourlySeries []HourSample

// Result couples a series with the name of the provider that produced it.
type Result struct {
	Series   HourlySeries
	Provider string
}

// Provider is implemented by each forecast backend.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64) (HourlySeries, error)
}

// Chain tries providers in order. A failure of a non-final provider (timeout,
// non-2xx, malformed body) is logged and swallowed; only full exhaustion
// surfaces as ErrUnavailable.
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

// Fetch returns the first successful provider result.
func (c *Chain) Fetch(ctx context.Context, lat, lon float64) (Result, error) {
	for _, provider := range c.providers {
		series, err := provider.Fetch(ctx, lat, lon)
		if err != nil {
			c.logger.Warn("forecast provider failed, trying next in chain",
				slog.String("provider", provider.Name()), logger.Err(err))
			continue
		}
		return Result{Series: series, Provider: provider.Name()}, nil
	}
	return Result{}, ErrUnavailable
}
