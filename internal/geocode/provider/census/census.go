// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package census implements a geocode.Resolver backed by the US Census Bureau
// geocoding service. It only handles US ZIP code input; everything else falls
// through to the global resolver in the chain.
package census

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wneessen/stargazer/internal/geocode"
	"github.com/wneessen/stargazer/internal/http"
	"github.com/wneessen/stargazer/internal/logger"
)

const (
	APIEndpoint = "https://geocoding.geo.census.gov/geocoder/locations/onelineaddress"
	APITimeout  = time.Second * 10
	name        = "us-census"

	benchmark = "Public_AR_Current"
)

type Census struct {
	http *http.Client
	log  *logger.Logger
}

type response struct {
	Result struct {
		AddressMatches []match `json:"addressMatches"`
	} `json:"result"`
}

type match struct {
	MatchedAddress string `json:"matchedAddress"`
	Coordinates    struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"coordinates"`
	AddressComponents struct {
		City   string `json:"city"`
		State  string `json:"state"`
		Zip    string `json:"zip"`
		County string `json:"county"`
	} `json:"addressComponents"`
}

// New returns a new Census resolver.
func New(client *http.Client, log *logger.Logger) *Census {
	return &Census{http: client, log: log}
}

func (c *Census) Name() string {
	return name
}

// Supports limits this resolver to US ZIP input.
func (c *Census) Supports(kind geocode.Kind) bool {
	return kind == geocode.KindUSZip
}

// Resolve queries the oneline-address endpoint with the raw input. An empty
// match list triggers one retry with a country suffix appended, which the
// Census geocoder needs for bare ZIP codes.
func (c *Census) Resolve(ctx context.Context, text string, kind geocode.Kind) (geocode.Location, error) {
	matched, err := c.search(ctx, text)
	if err != nil {
		return geocode.Location{}, err
	}
	if matched == nil {
		matched, err = c.search(ctx, text+", USA")
		if err != nil {
			return geocode.Location{}, err
		}
	}
	if matched == nil {
		return geocode.Location{}, fmt.Errorf("no address match for %q", text)
	}

	return geocode.Location{
		Latitude:    matched.Coordinates.Y,
		Longitude:   matched.Coordinates.X,
		DisplayName: displayName(*matched),
	}, nil
}

func (c *Census) search(ctx context.Context, address string) (*match, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("benchmark", benchmark)
	query.Set("format", "json")

	var result response
	code, err := c.http.GetWithTimeout(ctx, APIEndpoint, &result, query, nil, APITimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch address details from Census API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("Census API returned non-positive response code: %d", code)
	}
	if len(result.Result.AddressMatches) < 1 {
		return nil, nil
	}
	return &result.Result.AddressMatches[0], nil
}

// displayName prefers city and state components, appending county or district
// detail in a parenthetical suffix when the API provides it.
func displayName(m match) string {
	components := m.AddressComponents
	if components.City == "" || components.State == "" {
		return m.MatchedAddress
	}

	var builder strings.Builder
	builder.WriteString(components.City)
	builder.WriteString(", ")
	builder.WriteString(components.State)
	if components.Zip != "" {
		builder.WriteString(" ")
		builder.WriteString(components.Zip)
	}
	if components.County != "" {
		builder.WriteString(" (")
		builder.WriteString(components.County)
		builder.WriteString(")")
	}
	return builder.String()
}
