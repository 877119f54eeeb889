// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package nominatim implements a geocode.Resolver backed by the OpenStreetMap
// Nominatim search API. It acts as the global fallback for every input kind.
package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/stargazer/internal/geocode"
	"github.com/wneessen/stargazer/internal/http"
	"github.com/wneessen/stargazer/internal/logger"
)

const (
	APISearchEndpoint = "https://nominatim.openstreetmap.org/search"
	APITimeout        = time.Second * 10
	name              = "osm-nominatim"
)

type Nominatim struct {
	http *http.Client
	log  *logger.Logger
	lang language.Tag
}

type searchResult struct {
	APILat      string  `json:"lat"`
	APILon      string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Address     address `json:"address"`
}

type address struct {
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	CityDistrict  string `json:"city_district"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	County        string `json:"county"`
	State         string `json:"state"`
	Province      string `json:"province"`
	Postcode      string `json:"postcode"`
	Country       string `json:"country"`
}

// New returns a new Nominatim resolver.
func New(client *http.Client, log *logger.Logger, lang language.Tag) *Nominatim {
	return &Nominatim{http: client, log: log, lang: lang}
}

func (n *Nominatim) Name() string {
	return name
}

// Supports accepts every input kind; Nominatim is the end of the chain.
func (n *Nominatim) Supports(_ geocode.Kind) bool {
	return true
}

// Resolve queries the search endpoint for exactly one best match. Postal-code
// input gets a country hint appended to disambiguate the short query.
func (n *Nominatim) Resolve(ctx context.Context, text string, kind geocode.Kind) (geocode.Location, error) {
	searchText := text
	if hint := kind.CountryHint(); hint != "" {
		searchText = text + ", " + hint
	}

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("q", searchText)
	query.Set("limit", "1")
	query.Set("addressdetails", "1")
	query.Set("accept-language", n.lang.String())

	var results []searchResult
	code, err := n.http.GetWithTimeout(ctx, APISearchEndpoint, &results, query, nil, APITimeout)
	if err != nil {
		return geocode.Location{}, fmt.Errorf("failed to fetch address details from Nominatim API: %w", err)
	}
	if code != 200 {
		return geocode.Location{}, fmt.Errorf("Nominatim API returned non-positive response code: %d", code)
	}
	if len(results) < 1 {
		return geocode.Location{}, fmt.Errorf("no coordinates found for address %q", searchText)
	}

	result := results[0]
	location := geocode.Location{DisplayName: displayName(result)}
	location.Latitude, err = strconv.ParseFloat(result.APILat, 64)
	if err != nil {
		return geocode.Location{}, fmt.Errorf("failed to parse latitude from Nominatim API response: %w", err)
	}
	location.Longitude, err = strconv.ParseFloat(result.APILon, 64)
	if err != nil {
		return geocode.Location{}, fmt.Errorf("failed to parse longitude from Nominatim API response: %w", err)
	}

	return location, nil
}

// displayName composes whatever administrative hierarchy fields are present
// into a comma-joined name (city, region, country), annotated with bracketed
// detail tags for district, county and postcode when available. Falls back to
// the provider's own display name when the address block is empty.
func displayName(result searchResult) string {
	addr := result.Address

	district := addr.Suburb
	if district == "" {
		district = addr.Neighbourhood
	}
	if district == "" {
		district = addr.CityDistrict
	}

	city := addr.City
	if city == "" {
		city = addr.Town
	}
	if city == "" {
		city = addr.Village
	}

	region := addr.State
	if region == "" {
		region = addr.Province
	}

	parts := make([]string, 0, 3)
	for _, part := range []string{city, region, addr.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return result.DisplayName
	}

	composed := strings.Join(parts, ", ")
	for _, tag := range []string{district, addr.County, addr.Postcode} {
		if tag != "" {
			composed += " [" + tag + "]"
		}
	}
	return composed
}
