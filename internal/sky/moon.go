// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package sky

import "math"

// phaseNames in synodic order, starting at the new moon.
var phaseNames = []string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// phaseBounds are the half-open upper bucket boundaries in sixteenths of a
// lunation. Everything at or past 13/16 reads as a waning crescent.
var phaseBounds = []float64{
	1.0 / 16, 3.0 / 16, 5.0 / 16, 7.0 / 16, 9.0 / 16, 11.0 / 16, 13.0 / 16,
}

// PhaseName buckets a lunation fraction in [0, 1] into one of the eight
// traditional phase names.
func PhaseName(fraction float64) string {
	for i, bound := range phaseBounds {
		if fraction < bound {
			return phaseNames[i]
		}
	}
	return phaseNames[len(phaseNames)-1]
}

// Illumination maps a lunation fraction to the illuminated share of the moon's
// disc in percent. The full moon at fraction 0.5 reads 100, both ends of the
// cycle read 0.
func Illumination(fraction float64) int {
	return int(math.Round(100 * (1 - 2*math.Abs(0.5-fraction))))
}
