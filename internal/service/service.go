// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service orchestrates the full request pipeline: geocoding, timezone
// resolution, forecast retrieval, window scoring and sky data enrichment. All
// upstream results flow through a shared TTL cache.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wneessen/stargazer/internal/cache"
	"github.com/wneessen/stargazer/internal/forecast"
	"github.com/wneessen/stargazer/internal/geocode"
	"github.com/wneessen/stargazer/internal/logger"
	"github.com/wneessen/stargazer/internal/scoring"
	"github.com/wneessen/stargazer/internal/sky"
)

// ErrEmptyLocation is returned before any upstream call when the request
// carries no location text.
var ErrEmptyLocation = errors.New("location must not be empty")

const (
	// coordPrecision quantizes cache key coordinates to roughly a kilometer,
	// so nearby addresses share forecast and sky cache entries.
	coordPrecision = 1e-2

	startLayout = "Jan 2, 3:04 PM"
	endLayout   = "3:04 PM"
	sunLayout   = "3:04 PM"
)

// Geocoder resolves free-form location text into coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, text string) (geocode.Location, error)
}

// Forecaster delivers a normalized hourly forecast for a coordinate.
type Forecaster interface {
	Fetch(ctx context.Context, lat, lon float64) (forecast.Result, error)
}

// SkySource delivers sky conditions around an instant.
type SkySource interface {
	Fetch(ctx context.Context, lat, lon float64, instant time.Time, tz string) (sky.Snapshot, error)
}

// TimezoneResolver maps a coordinate to an IANA zone name.
type TimezoneResolver interface {
	Resolve(ctx context.Context, lat, lon float64) string
}

// TTLs groups the cache lifetimes of the three upstream concerns.
type TTLs struct {
	Geocode  time.Duration
	Forecast time.Duration
	Sky      time.Duration
}

type Service struct {
	logger    *logger.Logger
	cache     *cache.Store
	geocoder  Geocoder
	timezones TimezoneResolver
	forecasts Forecaster
	skies     SkySource
	ttls      TTLs
}

// New returns a new Service wired to the given pipeline stages.
func New(log *logger.Logger, store *cache.Store, geocoder Geocoder, timezones TimezoneResolver,
	forecasts Forecaster, skies SkySource, ttls TTLs,
) *Service {
	return &Service{
		logger:    log,
		cache:     store,
		geocoder:  geocoder,
		timezones: timezones,
		forecasts: forecasts,
		skies:     skies,
		ttls:      ttls,
	}
}

// Weather carries the rounded display averages of a window.
type Weather struct {
	Cloud int `json:"cloud"`
	Temp  int `json:"temp"`
	Wind  int `json:"wind"`
}

// Moon carries the display moon data of a window.
type Moon struct {
	Phase  string     `json:"phase"`
	Illum  int        `json:"illum"`
	Impact sky.Impact `json:"impact"`
}

// Sun carries the formatted sun set and rise times around a window.
type Sun struct {
	Set  string `json:"set"`
	Rise string `json:"rise"`
}

// Window is a single recommended observation window, ready for display.
type Window struct {
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Weather Weather  `json:"weather"`
	Moon    Moon     `json:"moon"`
	Sun     Sun      `json:"sun"`
	Planets []string `json:"planets"`
	Stars   []string `json:"stars"`
}

// Result is the full recommendation for a location.
type Result struct {
	Location string   `json:"location"`
	Windows  []Window `json:"windows"`
}

// BestWindows runs the full pipeline for a free-form location and returns up
// to three ranked observation windows.
func (s *Service) BestWindows(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmptyLocation
	}

	location, err := s.resolveLocation(ctx, text)
	if err != nil {
		return Result{}, err
	}

	tz := s.timezones.Resolve(ctx, location.Latitude, location.Longitude)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.logger.Warn("failed to load timezone, falling back to UTC", slog.String("zone", tz),
			logger.Err(err))
		loc = time.UTC
	}

	result, err := s.resolveForecast(ctx, location.Latitude, location.Longitude)
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("forecast retrieved", slog.String("provider", result.Provider),
		slog.Int("samples", len(result.Series)))

	slots := scoring.BuildSlots(result.Series, loc)
	windows := scoring.GroupWindows(slots)

	enriched, err := s.enrichWindows(ctx, location, windows, tz, loc)
	if err != nil {
		return Result{}, err
	}

	return Result{Location: location.DisplayName, Windows: enriched}, nil
}

// enrichWindows fetches sky data for every window concurrently. Rank order of
// the incoming windows is preserved.
func (s *Service) enrichWindows(ctx context.Context, location geocode.Location,
	windows []scoring.Window, tz string, loc *time.Location,
) ([]Window, error) {
	enriched := make([]Window, len(windows))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, window := range windows {
		group.Go(func() error {
			snapshot, err := s.resolveSky(groupCtx, location.Latitude, location.Longitude,
				window.Midpoint(), tz)
			if err != nil {
				return fmt.Errorf("failed to enrich window starting %s: %w", window.Start, err)
			}
			enriched[i] = display(window, snapshot, loc)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// display assembles the response window. Sun times arrive in UTC and are
// shifted into the window's local zone so every label on a window reads on
// the same clock.
func display(window scoring.Window, snapshot sky.Snapshot, loc *time.Location) Window {
	cloud, temp, wind := window.AverageWeather()
	return Window{
		Start:   window.Start.Format(startLayout),
		End:     window.End.Format(endLayout),
		Weather: Weather{Cloud: cloud, Temp: temp, Wind: wind},
		Moon: Moon{
			Phase:  snapshot.MoonPhase,
			Illum:  snapshot.MoonIllumination,
			Impact: snapshot.MoonImpact(),
		},
		Sun: Sun{
			Set:  snapshot.Sunset.In(loc).Format(sunLayout),
			Rise: snapshot.Sunrise.In(loc).Format(sunLayout),
		},
		Planets: snapshot.Planets,
		Stars:   snapshot.Stars,
	}
}

func (s *Service) resolveLocation(ctx context.Context, text string) (geocode.Location, error) {
	key := "geocode:" + strings.ToLower(text)
	value, err := s.cache.GetOrCompute(ctx, key, s.ttls.Geocode, func(ctx context.Context) (any, error) {
		return s.geocoder.Resolve(ctx, text)
	})
	if err != nil {
		return geocode.Location{}, err
	}
	return value.(geocode.Location), nil
}

func (s *Service) resolveForecast(ctx context.Context, lat, lon float64) (forecast.Result, error) {
	key := fmt.Sprintf("forecast:%d:%d", quantize(lat), quantize(lon))
	value, err := s.cache.GetOrCompute(ctx, key, s.ttls.Forecast, func(ctx context.Context) (any, error) {
		return s.forecasts.Fetch(ctx, lat, lon)
	})
	if err != nil {
		return forecast.Result{}, err
	}
	return value.(forecast.Result), nil
}

func (s *Service) resolveSky(ctx context.Context, lat, lon float64, instant time.Time,
	tz string,
) (sky.Snapshot, error) {
	key := fmt.Sprintf("sky:%d:%d:%s", quantize(lat), quantize(lon),
		instant.UTC().Truncate(time.Hour).Format(time.RFC3339))
	value, err := s.cache.GetOrCompute(ctx, key, s.ttls.Sky, func(ctx context.Context) (any, error) {
		return s.skies.Fetch(ctx, lat, lon, instant, tz)
	})
	if err != nil {
		return sky.Snapshot{}, err
	}
	return value.(sky.Snapshot), nil
}

func quantize(coord float64) int64 {
	return int64(math.Round(coord / coordPrecision))
}
