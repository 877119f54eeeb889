// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/wneessen/stargazer/internal/logger"
)

type mockResolver struct {
	name     string
	supports func(Kind) bool
	resolve  func(context.Context, string, Kind) (Location, error)
	calls    int
}

func (m *mockResolver) Name() string { return m.name }

func (m *mockResolver) Supports(kind Kind) bool {
	if m.supports == nil {
		return true
	}
	return m.supports(kind)
}

func (m *mockResolver) Resolve(ctx context.Context, text string, kind Kind) (Location, error) {
	m.calls++
	return m.resolve(ctx, text, kind)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"60540", KindUSZip},
		{"60540-1234", KindUSZip},
		{" 60540 ", KindUSZip},
		{"K1A 0B1", KindCAPostal},
		{"K1A0B1", KindCAPostal},
		{"SW1A 1AA", KindUKPostcode},
		{"EC1A 1BB", KindUKPostcode},
		{"M1 1AE", KindUKPostcode},
		{"Naperville, IL", KindGeneral},
		{"1600 Pennsylvania Ave", KindGeneral},
		{"123456", KindGeneral},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := Classify(tc.input); got != tc.want {
				t.Errorf("expected %q to classify as %s, got %s", tc.input, tc.want, got)
			}
		})
	}
}

func TestKind_CountryHint(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUSZip, "USA"},
		{KindCAPostal, "Canada"},
		{KindUKPostcode, "United Kingdom"},
		{KindGeneral, ""},
	}
	for _, tc := range tests {
		if got := tc.kind.CountryHint(); got != tc.want {
			t.Errorf("expected country hint %q for %s, got %q", tc.want, tc.kind, got)
		}
	}
}

func TestLocation_Valid(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want bool
	}{
		{"valid", Location{Latitude: 41.77, Longitude: -88.15}, true},
		{"lat out of range", Location{Latitude: 91, Longitude: 0}, false},
		{"lon out of range", Location{Latitude: 0, Longitude: -181}, false},
		{"zero value", Location{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.loc.Valid(); got != tc.want {
				t.Errorf("expected Valid() to return %t", tc.want)
			}
		})
	}
}

func TestChain_Resolve(t *testing.T) {
	t.Run("first supporting provider wins", func(t *testing.T) {
		domestic := &mockResolver{
			name:     "domestic",
			supports: func(kind Kind) bool { return kind == KindUSZip },
			resolve: func(_ context.Context, _ string, _ Kind) (Location, error) {
				return Location{Latitude: 41.77, Longitude: -88.15, DisplayName: "Naperville, IL 60540"}, nil
			},
		}
		global := &mockResolver{
			name: "global",
			resolve: func(_ context.Context, _ string, _ Kind) (Location, error) {
				t.Error("global resolver should not be queried when the domestic one succeeds")
				return Location{}, nil
			},
		}

		chain := NewChain(logger.New(slog.LevelError), domestic, global)
		location, err := chain.Resolve(context.Background(), "60540")
		if err != nil {
			t.Fatalf("failed to resolve location: %s", err)
		}
		if location.DisplayName != "Naperville, IL 60540" {
			t.Errorf("unexpected display name: %q", location.DisplayName)
		}
		if global.calls != 0 {
			t.Errorf("expected global resolver to be skipped, got %d calls", global.calls)
		}
	})
	t.Run("non-supporting providers are skipped", func(t *testing.T) {
		domestic := &mockResolver{
			name:     "domestic",
			supports: func(kind Kind) bool { return kind == KindUSZip },
			resolve: func(_ context.Context, _ string, _ Kind) (Location, error) {
				return Location{}, errors.New("should not be called")
			},
		}
		global := &mockResolver{
			name: "global",
			resolve: func(_ context.Context, text string, kind Kind) (Location, error) {
				if kind != KindUKPostcode {
					t.Errorf("expected UK postcode classification, got %s", kind)
				}
				return Location{Latitude: 51.501, Longitude: -0.142, DisplayName: "Westminster, London"}, nil
			},
		}

		chain := NewChain(logger.New(slog.LevelError), domestic, global)
		if _, err := chain.Resolve(context.Background(), "SW1A 1AA"); err != nil {
			t.Fatalf("failed to resolve location: %s", err)
		}
		if domestic.calls != 0 {
			t.Errorf("expected domestic resolver to be skipped for UK input, got %d calls", domestic.calls)
		}
	})
	t.Run("provider errors fall through to the next provider", func(t *testing.T) {
		failing := &mockResolver{
			name: "failing",
			resolve: func(_ context.Context, _ string, _ Kind) (Location, error) {
				return Location{}, errors.New("lookup intentionally failed")
			},
		}
		working := &mockResolver{
			name: "working",
			resolve: func(_ context.Context, _ string, _ Kind) (Location, error) {
				return Location{Latitude: 1, Longitude: 1, DisplayName: "Somewhere"}, nil
			},
		}

		chain := NewChain(logger.New(slog.LevelError), failing, working)
		location, err := chain.Resolve(context.Background(), "somewhere")
		if err != nil {
			t.Fatalf("failed to resolve location: %s", err)
		}
		if location.DisplayName != "Somewhere" {
			t.Errorf("unexpected display name: %q", location.DisplayName)
		}
	})
	t.Run("invalid coordinates from a provider are rejected", func(t *testing.T) {
		invalid := &mockResolver{
			name: "invalid",
			resolve: func(_ context.Context, _ string, _ Kind) (Location, error) {
				return Location{Latitude: 1234, Longitude: 0, DisplayName: "Nowhere"}, nil
			},
		}
		chain := NewChain(logger.New(slog.LevelError), invalid)
		if _, err := chain.Resolve(context.Background(), "nowhere"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %s", err)
		}
	})
	t.Run("exhausted chain fails with ErrNotFound carrying the input", func(t *testing.T) {
		chain := NewChain(logger.New(slog.LevelError))
		_, err := chain.Resolve(context.Background(), "atlantis")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got: %s", err)
		}
		if !strings.Contains(err.Error(), `"atlantis"`) {
			t.Errorf("expected error to carry the original input, got: %s", err)
		}
	})
}
