// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package timezone

// region is a coarse geographic bounding box with a representative zone.
type region struct {
	name   string
	minLat float64
	maxLat float64
	minLon float64
	maxLon float64
	zone   string
}

// fallbackRegions is evaluated in order; the first matching box wins. North
// America is split into longitude bands, the remaining continents get one
// representative zone each. The Alaska band sits before the generic Pacific
// band because the two overlap in longitude.
var fallbackRegions = []region{
	{"north-america-alaska", 50, 72, -170, -130, "America/Anchorage"},
	{"north-america-pacific", 24, 72, -130, -115, "America/Los_Angeles"},
	{"north-america-mountain", 24, 72, -115, -102, "America/Denver"},
	{"north-america-central", 24, 72, -102, -85, "America/Chicago"},
	{"north-america-eastern", 24, 72, -85, -52, "America/New_York"},
	{"europe-western", 35, 62, -11, 3, "Europe/London"},
	{"europe-central", 35, 62, 3, 18, "Europe/Berlin"},
	{"europe-eastern", 35, 62, 18, 33, "Europe/Athens"},
	{"asia-pacific", 0, 55, 90, 150, "Asia/Shanghai"},
	{"australia", -45, -10, 110, 155, "Australia/Sydney"},
	{"south-america", -56, 13, -82, -34, "America/Sao_Paulo"},
	{"africa", -35, 37, -18, 52, "Africa/Johannesburg"},
}

// fallbackZone returns the representative zone for the first bounding box
// containing the coordinates, or "UTC" when none matches.
func fallbackZone(lat, lon float64) string {
	for _, r := range fallbackRegions {
		if lat >= r.minLat && lat <= r.maxLat && lon >= r.minLon && lon <= r.maxLon {
			return r.zone
		}
	}
	return "UTC"
}
