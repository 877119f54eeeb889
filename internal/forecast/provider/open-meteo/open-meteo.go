// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package openmeteo implements a forecast.Provider backed by the free
// Open-Meteo forecast API. It is the general-purpose fallback behind the
// Astrospheric provider and must carry a request on its own when the primary
// is down.
package openmeteo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/wneessen/stargazer/internal/forecast"
	"github.com/wneessen/stargazer/internal/logger"
)

const name = "open-meteo"

var dataFields = []string{"cloud_cover", "temperature_2m", "wind_speed_10m"}

type OpenMeteo struct {
	client  omgo.Client
	log     *logger.Logger
	units   string
	timeout time.Duration
}

// New returns a new Open-Meteo forecast provider.
func New(log *logger.Logger, units string, timeout time.Duration) (*OpenMeteo, error) {
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	return &OpenMeteo{
		client:  client,
		log:     log,
		units:   units,
		timeout: timeout,
	}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

// Fetch retrieves the raw forecast body and runs it through the shared
// envelope normalization, same as the primary provider. Timestamps are
// requested in UTC so both providers produce comparable series.
func (o *OpenMeteo) Fetch(ctx context.Context, lat, lon float64) (forecast.HourlySeries, error) {
	loc, err := omgo.NewLocation(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("failed to build Open-Meteo location: %w", err)
	}

	opts := &omgo.Options{
		Timezone:      "UTC",
		HourlyMetrics: dataFields,
	}
	if strings.ToLower(o.units) == "imperial" {
		opts.TemperatureUnit = "fahrenheit"
		opts.WindspeedUnit = "mph"
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	body, err := o.client.Get(ctx, loc, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve forecast data from Open-Meteo API: %w", err)
	}

	series, err := forecast.ParseHourly(body)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize Open-Meteo response: %w", err)
	}
	return series, nil
}
