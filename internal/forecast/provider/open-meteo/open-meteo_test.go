// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"log/slog"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	"github.com/wneessen/stargazer/internal/logger"
	"github.com/wneessen/stargazer/internal/testhelper"
)

const flatBody = `{"hourly":{
"time":["2026-03-01T21:00","2026-03-01T22:00"],
"cloud_cover":[12,34],
"temperature_2m":[40.2,39.8],
"wind_speed_10m":[5.5,6.0]}}`

func TestOpenMeteo_Fetch(t *testing.T) {
	t.Run("flat forecast body normalizes into a series", func(t *testing.T) {
		provider, err := New(logger.New(slog.LevelError), "imperial", time.Second)
		if err != nil {
			t.Fatalf("failed to create Open-Meteo provider: %s", err)
		}
		provider.client.Client = &stdhttp.Client{
			Transport: testhelper.MockRoundTripper{Fn: func(req *stdhttp.Request) (*stdhttp.Response, error) {
				query := req.URL.Query()
				if !strings.Contains(query.Get("hourly"), "cloud_cover") {
					t.Errorf("expected cloud_cover metric in query, got %q", query.Get("hourly"))
				}
				if query.Get("timezone") != "UTC" {
					t.Errorf("expected UTC timezone in query, got %q", query.Get("timezone"))
				}
				if query.Get("temperature_unit") != "fahrenheit" {
					t.Errorf("expected fahrenheit temperatures, got %q", query.Get("temperature_unit"))
				}
				return testhelper.JSONResponse(200, flatBody), nil
			}},
		}

		series, err := provider.Fetch(context.Background(), 41.77, -88.15)
		if err != nil {
			t.Fatalf("failed to fetch forecast: %s", err)
		}
		if len(series) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(series))
		}
		if series[1].WindSpeed != 6.0 {
			t.Errorf("unexpected wind speed: %f", series[1].WindSpeed)
		}
	})
	t.Run("metric units skip the unit overrides", func(t *testing.T) {
		provider, err := New(logger.New(slog.LevelError), "metric", time.Second)
		if err != nil {
			t.Fatalf("failed to create Open-Meteo provider: %s", err)
		}
		provider.client.Client = &stdhttp.Client{
			Transport: testhelper.MockRoundTripper{Fn: func(req *stdhttp.Request) (*stdhttp.Response, error) {
				if unit := req.URL.Query().Get("temperature_unit"); unit != "" && unit != "celsius" {
					t.Errorf("unexpected temperature unit override: %q", unit)
				}
				return testhelper.JSONResponse(200, flatBody), nil
			}},
		}
		if _, err := provider.Fetch(context.Background(), 41.77, -88.15); err != nil {
			t.Fatalf("failed to fetch forecast: %s", err)
		}
	})
	t.Run("out-of-range coordinates fail", func(t *testing.T) {
		provider, err := New(logger.New(slog.LevelError), "imperial", time.Second)
		if err != nil {
			t.Fatalf("failed to create Open-Meteo provider: %s", err)
		}
		if _, err := provider.Fetch(context.Background(), 123.0, -88.15); err == nil {
			t.Error("expected out-of-range latitude to fail")
		}
	})
}
