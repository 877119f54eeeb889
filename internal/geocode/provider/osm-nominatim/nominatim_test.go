// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"context"
	"log/slog"
	stdhttp "net/http"
	"testing"

	"golang.org/x/text/language"

	"github.com/wneessen/stargazer/internal/geocode"
	"github.com/wneessen/stargazer/internal/http"
	"github.com/wneessen/stargazer/internal/logger"
	"github.com/wneessen/stargazer/internal/testhelper"
)

const palaceBody = `[{"lat":"51.501009","lon":"-0.141588","display_name":"Buckingham Palace, London, England, United Kingdom",
"address":{"suburb":"Westminster","city":"London","state":"England","postcode":"SW1A 1AA","country":"United Kingdom"}}]`

func newTestResolver(t *testing.T, fn func(req *stdhttp.Request) (*stdhttp.Response, error)) *Nominatim {
	t.Helper()
	client := http.New(logger.New(slog.LevelError))
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	return New(client, logger.New(slog.LevelError), language.English)
}

func TestNominatim_Supports(t *testing.T) {
	coder := newTestResolver(t, nil)
	kinds := []geocode.Kind{geocode.KindGeneral, geocode.KindUSZip, geocode.KindCAPostal, geocode.KindUKPostcode}
	for _, kind := range kinds {
		if !coder.Supports(kind) {
			t.Errorf("expected nominatim resolver to support %s input", kind)
		}
	}
}

func TestNominatim_Resolve(t *testing.T) {
	t.Run("UK postcode input carries a country hint", func(t *testing.T) {
		coder := newTestResolver(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			query := req.URL.Query()
			if got, want := query.Get("q"), "SW1A 1AA, United Kingdom"; got != want {
				t.Errorf("expected search query %q, got %q", want, got)
			}
			if query.Get("limit") != "1" {
				t.Errorf("expected a single best match to be requested, got limit=%q", query.Get("limit"))
			}
			if query.Get("addressdetails") != "1" {
				t.Error("expected address details to be requested")
			}
			return testhelper.JSONResponse(200, palaceBody), nil
		})

		location, err := coder.Resolve(context.Background(), "SW1A 1AA", geocode.KindUKPostcode)
		if err != nil {
			t.Fatalf("failed to resolve postcode: %s", err)
		}
		if location.Latitude != 51.501009 || location.Longitude != -0.141588 {
			t.Errorf("unexpected coordinates: %f, %f", location.Latitude, location.Longitude)
		}
		want := "London, England, United Kingdom [Westminster] [SW1A 1AA]"
		if location.DisplayName != want {
			t.Errorf("expected display name %q, got %q", want, location.DisplayName)
		}
	})
	t.Run("general input carries no hint", func(t *testing.T) {
		coder := newTestResolver(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if got := req.URL.Query().Get("q"); got != "Naperville, IL" {
				t.Errorf("expected unmodified search query, got %q", got)
			}
			return testhelper.JSONResponse(200, palaceBody), nil
		})
		if _, err := coder.Resolve(context.Background(), "Naperville, IL", geocode.KindGeneral); err != nil {
			t.Fatalf("failed to resolve location: %s", err)
		}
	})
	t.Run("empty result list fails", func(t *testing.T) {
		coder := newTestResolver(t, func(_ *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.JSONResponse(200, `[]`), nil
		})
		if _, err := coder.Resolve(context.Background(), "atlantis", geocode.KindGeneral); err == nil {
			t.Fatal("expected resolution to fail without results")
		}
	})
	t.Run("unparseable coordinates fail", func(t *testing.T) {
		coder := newTestResolver(t, func(_ *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.JSONResponse(200, `[{"lat":"not-a-number","lon":"0","display_name":"x"}]`), nil
		})
		if _, err := coder.Resolve(context.Background(), "somewhere", geocode.KindGeneral); err == nil {
			t.Fatal("expected resolution to fail on invalid latitude")
		}
	})
}

func TestDisplayName(t *testing.T) {
	t.Run("town substitutes for a missing city", func(t *testing.T) {
		result := searchResult{Address: address{Town: "Windsor", State: "England", Country: "United Kingdom"}}
		if got, want := displayName(result), "Windsor, England, United Kingdom"; got != want {
			t.Errorf("expected display name %q, got %q", want, got)
		}
	})
	t.Run("district, county and postcode become bracketed tags", func(t *testing.T) {
		result := searchResult{Address: address{
			Suburb: "Lincoln Park", City: "Chicago", County: "Cook County",
			State: "Illinois", Postcode: "60614", Country: "United States",
		}}
		want := "Chicago, Illinois, United States [Lincoln Park] [Cook County] [60614]"
		if got := displayName(result); got != want {
			t.Errorf("expected display name %q, got %q", want, got)
		}
	})
	t.Run("empty address block falls back to the provider display name", func(t *testing.T) {
		result := searchResult{DisplayName: "Somewhere on Earth"}
		if got := displayName(result); got != "Somewhere on Earth" {
			t.Errorf("expected provider display name fallback, got %q", got)
		}
	})
}
