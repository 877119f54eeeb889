// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package timezone resolves coordinates to an IANA timezone name. Resolution
// never fails: when every provider is exhausted a static geographic table
// supplies a coarse zone, and "UTC" is the final fallback.
package timezone

import (
	"context"
	"log/slog"

	"github.com/wneessen/stargazer/internal/logger"
)

// Provider is implemented by each timezone lookup backend.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, lat, lon float64) (string, error)
}

// Resolver queries its providers in order and degrades to the static table.
type Resolver struct {
	logger    *logger.Logger
	providers []Provider
}

// NewResolver returns a new timezone Resolver.
func NewResolver(log *logger.Logger, providers ...Provider) *Resolver {
	return &Resolver{
		logger:    log,
		providers: providers,
	}
}

// Resolve returns the IANA timezone name for the given coordinates.
func (r *Resolver) Resolve(ctx context.Context, lat, lon float64) string {
	for _, provider := range r.providers {
		zone, err := provider.Lookup(ctx, lat, lon)
		if err != nil {
			r.logger.Warn("timezone provider failed, trying fallback",
				slog.String("provider", provider.Name()), logger.Err(err))
			continue
		}
		if zone == "" {
			continue
		}
		return zone
	}
	return fallbackZone(lat, lon)
}
