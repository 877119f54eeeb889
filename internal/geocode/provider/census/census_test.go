// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package census

import (
	"context"
	"log/slog"
	stdhttp "net/http"
	"testing"

	"github.com/wneessen/stargazer/internal/geocode"
	"github.com/wneessen/stargazer/internal/http"
	"github.com/wneessen/stargazer/internal/logger"
	"github.com/wneessen/stargazer/internal/testhelper"
)

const matchBody = `{"result":{"addressMatches":[{"matchedAddress":"NAPERVILLE, IL, 60540",
"coordinates":{"x":-88.1535,"y":41.7725},
"addressComponents":{"city":"NAPERVILLE","state":"IL","zip":"60540","county":"DUPAGE"}}]}}`

const emptyBody = `{"result":{"addressMatches":[]}}`

func newTestClient(t *testing.T, fn func(req *stdhttp.Request) (*stdhttp.Response, error)) *http.Client {
	t.Helper()
	client := http.New(logger.New(slog.LevelError))
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	return client
}

func TestCensus_Supports(t *testing.T) {
	coder := New(http.New(logger.New(slog.LevelError)), logger.New(slog.LevelError))
	if !coder.Supports(geocode.KindUSZip) {
		t.Error("expected census resolver to support US ZIP input")
	}
	for _, kind := range []geocode.Kind{geocode.KindGeneral, geocode.KindCAPostal, geocode.KindUKPostcode} {
		if coder.Supports(kind) {
			t.Errorf("expected census resolver to reject %s input", kind)
		}
	}
}

func TestCensus_Resolve(t *testing.T) {
	t.Run("a ZIP code resolves with a city-state display name", func(t *testing.T) {
		client := newTestClient(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if req.URL.Query().Get("benchmark") != benchmark {
				t.Errorf("expected benchmark query parameter, got %q", req.URL.RawQuery)
			}
			return testhelper.JSONResponse(200, matchBody), nil
		})

		coder := New(client, logger.New(slog.LevelError))
		location, err := coder.Resolve(context.Background(), "60540", geocode.KindUSZip)
		if err != nil {
			t.Fatalf("failed to resolve ZIP code: %s", err)
		}
		if location.Latitude != 41.7725 || location.Longitude != -88.1535 {
			t.Errorf("unexpected coordinates: %f, %f", location.Latitude, location.Longitude)
		}
		if want := "NAPERVILLE, IL 60540 (DUPAGE)"; location.DisplayName != want {
			t.Errorf("expected display name %q, got %q", want, location.DisplayName)
		}
	})
	t.Run("an empty result retries with a country suffix", func(t *testing.T) {
		var addresses []string
		client := newTestClient(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			address := req.URL.Query().Get("address")
			addresses = append(addresses, address)
			if address == "60540" {
				return testhelper.JSONResponse(200, emptyBody), nil
			}
			return testhelper.JSONResponse(200, matchBody), nil
		})

		coder := New(client, logger.New(slog.LevelError))
		if _, err := coder.Resolve(context.Background(), "60540", geocode.KindUSZip); err != nil {
			t.Fatalf("failed to resolve ZIP code: %s", err)
		}
		if len(addresses) != 2 || addresses[1] != "60540, USA" {
			t.Errorf("expected a retry with country suffix, got queries: %v", addresses)
		}
	})
	t.Run("no match on both attempts fails", func(t *testing.T) {
		client := newTestClient(t, func(_ *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.JSONResponse(200, emptyBody), nil
		})
		coder := New(client, logger.New(slog.LevelError))
		if _, err := coder.Resolve(context.Background(), "00000", geocode.KindUSZip); err == nil {
			t.Fatal("expected resolution to fail without address matches")
		}
	})
	t.Run("non-200 responses fail", func(t *testing.T) {
		client := newTestClient(t, func(_ *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.JSONResponse(503, `{}`), nil
		})
		coder := New(client, logger.New(slog.LevelError))
		if _, err := coder.Resolve(context.Background(), "60540", geocode.KindUSZip); err == nil {
			t.Fatal("expected resolution to fail on server error")
		}
	})
}

func TestDisplayName(t *testing.T) {
	t.Run("missing components fall back to the matched address", func(t *testing.T) {
		m := match{MatchedAddress: "SOMEWHERE, USA"}
		if got := displayName(m); got != "SOMEWHERE, USA" {
			t.Errorf("expected matched address fallback, got %q", got)
		}
	})
	t.Run("county suffix is omitted when absent", func(t *testing.T) {
		m := match{}
		m.AddressComponents.City = "NAPERVILLE"
		m.AddressComponents.State = "IL"
		if got := displayName(m); got != "NAPERVILLE, IL" {
			t.Errorf("expected display name without suffix, got %q", got)
		}
	})
}
