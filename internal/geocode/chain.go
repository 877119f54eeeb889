// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wneessen/stargazer/internal/logger"
)

// Chain tries a list of capability-equivalent resolvers in order and returns
// the first successful result. Provider errors before the end of the chain
// are logged and swallowed.
type Chain struct {
	logger    *logger.Logger
	resolvers []Resolver
}

// NewChain returns a new resolver Chain.
func NewChain(log *logger.Logger, resolvers ...Resolver) *Chain {
	return &Chain{
		logger:    log,
		resolvers: resolvers,
	}
}

// Resolve classifies the input and walks the chain. It fails with ErrNotFound
// carrying the original input text when every provider is exhausted.
func (c *Chain) Resolve(ctx context.Context, text string) (Location, error) {
	text = strings.TrimSpace(text)
	kind := Classify(text)
	c.logger.Debug("resolving location", slog.String("input", text), slog.String("kind", kind.String()))

	for _, resolver := range c.resolvers {
		if !resolver.Supports(kind) {
			continue
		}
		location, err := resolver.Resolve(ctx, text, kind)
		if err != nil {
			c.logger.Warn("geocoding provider failed, trying next in chain",
				slog.String("provider", resolver.Name()), logger.Err(err))
			continue
		}
		if !location.Valid() {
			c.logger.Warn("geocoding provider returned invalid coordinates",
				slog.String("provider", resolver.Name()),
				slog.Float64("lat", location.Latitude), slog.Float64("lon", location.Longitude))
			continue
		}
		c.logger.Debug("location resolved", slog.String("provider", resolver.Name()),
			slog.String("display_name", location.DisplayName))
		return location, nil
	}

	return Location{}, notFound(text)
}
