// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package scoring turns an hourly forecast into ranked nighttime observation
// windows. Scoring is pure math on already-fetched data, no network access
// happens here.
package scoring

import (
	"time"

	"github.com/wneessen/stargazer/internal/forecast"
)

const (
	// GoodScoreThreshold is the minimum slot score that counts towards an
	// observation window.
	GoodScoreThreshold = 0.6

	// MoonPenalty is subtracted from a slot score when a bright moon stands
	// above the horizon.
	MoonPenalty = 0.2

	// MoonPenaltyIllumination is the illumination percentage at which the
	// moon starts to matter.
	MoonPenaltyIllumination = 60

	nightStartHour = 21
	nightEndHour   = 6
)

// MoonState feeds the moon penalty of ScoreSlot. The zero value is an unknown
// moon and never triggers the penalty, which is what the bulk scoring pass
// uses since sky data is only fetched for the windows that survive grouping.
type MoonState struct {
	Visible      bool
	Illumination int
}

// Slot is a single night hour with its weather and score.
type Slot struct {
	Time        time.Time
	CloudCover  float64
	Temperature float64
	WindSpeed   float64
	Score       float64
}

// IsNightHour reports whether the local hour counts as observation time.
// Nights run from 21:00 through 06:59.
func IsNightHour(hour int) bool {
	return hour >= nightStartHour || hour <= nightEndHour
}

// ScoreSlot rates a single hour in [0, 1]. Cloud cover scales the score down
// linearly; a visible moon at or above the penalty illumination costs a flat
// MoonPenalty.
func ScoreSlot(cloudCover float64, moon MoonState) float64 {
	score := 1 - cloudCover/100
	if moon.Visible && moon.Illumination >= MoonPenaltyIllumination {
		score -= MoonPenalty
	}
	if score < 0 {
		return 0
	}
	return score
}

// BuildSlots converts an hourly forecast into scored night slots in the given
// local timezone. Daytime hours are dropped.
func BuildSlots(series forecast.HourlySeries, loc *time.Location) []Slot {
	slots := make([]Slot, 0, len(series))
	for _, sample := range series {
		local := sample.TimeUTC.In(loc)
		if !IsNightHour(local.Hour()) {
			continue
		}
		slots = append(slots, Slot{
			Time:        local,
			CloudCover:  sample.CloudCover,
			Temperature: sample.Temperature,
			WindSpeed:   sample.WindSpeed,
			Score:       ScoreSlot(sample.CloudCover, MoonState{}),
		})
	}
	return slots
}
