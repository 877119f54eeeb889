// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package scoring

import (
	"math"
	"sort"
	"time"
)

const (
	maxWindows     = 3
	minWindowSlots = 2
	maxGroupGap    = 2 * time.Hour
)

// Window is a contiguous run of good night slots.
type Window struct {
	Start        time.Time
	End          time.Time
	AverageScore float64
	Slots        []Slot
}

// Midpoint returns the instant halfway through the window. Sky data is
// sampled there since conditions barely move within a few hours.
func (w Window) Midpoint() time.Time {
	return w.Start.Add(w.End.Sub(w.Start) / 2)
}

// AverageWeather returns the rounded slot averages for display.
func (w Window) AverageWeather() (cloud, temp, wind int) {
	if len(w.Slots) == 0 {
		return 0, 0, 0
	}
	var sumCloud, sumTemp, sumWind float64
	for _, slot := range w.Slots {
		sumCloud += slot.CloudCover
		sumTemp += slot.Temperature
		sumWind += slot.WindSpeed
	}
	n := float64(len(w.Slots))
	return int(math.Round(sumCloud / n)), int(math.Round(sumTemp / n)), int(math.Round(sumWind / n))
}

// GroupWindows collapses good slots into up to three windows, best first.
// Slots within maxGroupGap of each other share a window; runs shorter than
// minWindowSlots are dropped. A window ends one hour after its last slot.
func GroupWindows(slots []Slot) []Window {
	good := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.Score >= GoodScoreThreshold {
			good = append(good, slot)
		}
	}

	var windows []Window
	var run []Slot
	for _, slot := range good {
		if len(run) > 0 && slot.Time.Sub(run[len(run)-1].Time) > maxGroupGap {
			if window, ok := finalizeRun(run); ok {
				windows = append(windows, window)
			}
			run = nil
		}
		run = append(run, slot)
	}
	if window, ok := finalizeRun(run); ok {
		windows = append(windows, window)
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].AverageScore > windows[j].AverageScore
	})
	if len(windows) > maxWindows {
		windows = windows[:maxWindows]
	}
	return windows
}

func finalizeRun(run []Slot) (Window, bool) {
	if len(run) < minWindowSlots {
		return Window{}, false
	}
	var sum float64
	for _, slot := range run {
		sum += slot.Score
	}
	return Window{
		Start:        run[0].Time,
		End:          run[len(run)-1].Time.Add(time.Hour),
		AverageScore: sum / float64(len(run)),
		Slots:        run,
	}, true
}
