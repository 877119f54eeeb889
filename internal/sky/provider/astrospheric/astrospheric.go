// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package astrospheric implements a sky.Provider backed by the Astrospheric
// sky API. It is the primary provider in the chain; a circuit breaker makes a
// known-bad upstream fail fast into the local computation instead of burning
// the request timeout for every window.
package astrospheric

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sony/gobreaker"

	"github.com/wneessen/stargazer/internal/http"
	"github.com/wneessen/stargazer/internal/logger"
	"github.com/wneessen/stargazer/internal/sky"
)

const (
	APIEndpoint = "https://api.astrospheric.com/GetSky_V1"
	name        = "astrospheric"

	// dateLayout is the second-resolution timestamp the sky API expects.
	dateLayout = "2006-01-02T15:04:05"
)

type Astrospheric struct {
	http    *http.Client
	log     *logger.Logger
	circuit *gobreaker.CircuitBreaker
	apiKey  string
	timeout time.Duration
}

type response struct {
	Moon struct {
		Phase        string  `json:"phase"`
		Illumination int     `json:"illumination"`
		Altitude     float64 `json:"altitude"`
	} `json:"moon"`
	Planets []string `json:"planets"`
	Stars   []string `json:"stars"`
}

// New returns a new Astrospheric sky data provider.
func New(client *http.Client, log *logger.Logger, apiKey string, timeout time.Duration) *Astrospheric {
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
		timeout: timeout,
	}
}

func (a *Astrospheric) Name() string {
	return name
}

// Fetch retrieves the sky conditions around the given instant. Sun set and
// rise times are computed locally since the sky API does not deliver them.
func (a *Astrospheric) Fetch(ctx context.Context, lat, lon float64, instant time.Time, tz string) (sky.Snapshot, error) {
	if a.apiKey == "" {
		return sky.Snapshot{}, fmt.Errorf("astrospheric API key is not configured")
	}

	result, err := a.circuit.Execute(func() (interface{}, error) {
		query := url.Values{}
		query.Set("key", a.apiKey)
		query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
		query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
		query.Set("date", instant.UTC().Format(dateLayout))
		query.Set("tz", tz)

		var data response
		code, err := a.http.GetWithTimeout(ctx, APIEndpoint, &data, query, nil, a.timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve sky data from Astrospheric API: %w", err)
		}
		if code != 200 {
			return nil, fmt.Errorf("Astrospheric API returned non-positive response code: %d", code)
		}
		return data, nil
	})
	if err != nil {
		return sky.Snapshot{}, err
	}

	data := result.(response)
	rise, set := sunrise.SunriseSunset(lat, lon, instant.Year(), instant.Month(), instant.Day())
	return sky.Snapshot{
		MoonPhase:        data.Moon.Phase,
		MoonIllumination: data.Moon.Illumination,
		MoonAltitude:     data.Moon.Altitude,
		Planets:          data.Planets,
		Stars:            data.Stars,
		Sunrise:          rise,
		Sunset:           set,
	}, nil
}
