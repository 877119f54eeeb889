// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package astrospheric implements a forecast.Provider backed by the
// astronomy-specialized Astrospheric forecast API. It is the primary provider
// in the chain; a circuit breaker makes a known-bad upstream fail fast into
// the Open-Meteo fallback instead of burning the request timeout every time.
package astrospheric

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/wneessen/stargazer/internal/forecast"
	"github.com/wneessen/stargazer/internal/http"
	"github.com/wneessen/stargazer/internal/logger"
)

const (
	APIEndpoint = "https://api.astrospheric.com/GetForecastData_V1"
	name        = "astrospheric"
)

type Astrospheric struct {
	http    *http.Client
	log     *logger.Logger
	circuit *gobreaker.CircuitBreaker
	apiKey  string
	hours   int
	timeout time.Duration
}

// New returns a new Astrospheric forecast provider.
func New(client *http.Client, log *logger.Logger, apiKey string, hours int, timeout time.Duration) *Astrospheric {
	circuit := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Astrospheric{
		http:    client,
		log:     log,
		circuit: circuit,
		apiKey:  apiKey,
		hours:   hours,
		timeout: timeout,
	}
}

func (a *Astrospheric) Name() string {
	return name
}

// Fetch retrieves the hourly forecast. A timed-out call is indistinguishable
// from any other failure for fallback purposes.
func (a *Astrospheric) Fetch(ctx context.Context, lat, lon float64) (forecast.HourlySeries, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("astrospheric API key is not configured")
	}

	body, err := a.circuit.Execute(func() (interface{}, error) {
		query := url.Values{}
		query.Set("key", a.apiKey)
		query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
		query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
		query.Set("hours", strconv.Itoa(a.hours))

		var raw json.RawMessage
		code, err := a.http.GetWithTimeout(ctx, APIEndpoint, &raw, query, nil, a.timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve forecast data from Astrospheric API: %w", err)
		}
		if code != 200 {
			return nil, fmt.Errorf("Astrospheric API returned non-positive response code: %d", code)
		}
		return []byte(raw), nil
	})
	if err != nil {
		return nil, err
	}

	series, err := forecast.ParseHourly(body.([]byte))
	if err != nil {
		return nil, fmt.Errorf("failed to normalize Astrospheric response: %w", err)
	}
	return series, nil
}
