// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package timezonedb implements a timezone.Provider backed by the TimeZoneDB
// get-time-zone API.
package timezonedb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wneessen/stargazer/internal/http"
	"github.com/wneessen/stargazer/internal/logger"
)

const (
	APIEndpoint = "https://api.timezonedb.com/v2.1/get-time-zone"
	APITimeout  = time.Second * 10
	name        = "timezonedb"
)

type TimeZoneDB struct {
	http   *http.Client
	log    *logger.Logger
	apiKey string
}

type response struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	ZoneName string `json:"zoneName"`
}

// New returns a new TimeZoneDB provider.
func New(client *http.Client, log *logger.Logger, apiKey string) *TimeZoneDB {
	return &TimeZoneDB{http: client, log: log, apiKey: apiKey}
}

func (t *TimeZoneDB) Name() string {
	return name
}

// Lookup queries the position endpoint for the zone name.
func (t *TimeZoneDB) Lookup(ctx context.Context, lat, lon float64) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("TimeZoneDB API key is not configured")
	}

	query := url.Values{}
	query.Set("key", t.apiKey)
	query.Set("format", "json")
	query.Set("by", "position")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(lon, 'f', -1, 64))

	var result response
	code, err := t.http.GetWithTimeout(ctx, APIEndpoint, &result, query, nil, APITimeout)
	if err != nil {
		return "", fmt.Errorf("failed to fetch timezone from TimeZoneDB API: %w", err)
	}
	if code != 200 {
		return "", fmt.Errorf("TimeZoneDB API returned non-positive response code: %d", code)
	}
	if result.Status != "OK" || result.ZoneName == "" {
		return "", fmt.Errorf("TimeZoneDB API returned no zone: %s", result.Message)
	}

	return result.ZoneName, nil
}
