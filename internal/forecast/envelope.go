// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// The providers wrap the same inner hourly arrays in different envelopes:
// Open-Meteo returns a flat {"hourly": {...}} object while Astrospheric nests
// it under {"data": {"hourly": {...}}}. ParseHourly discriminates between the
// two shapes and unwraps both into one HourlySeries.

// Placeholder values for per-hour fields a provider omitted. A missing cloud
// cover value maps to 0 as an explicit placeholder policy inherited from the
// fallback path; it must not be read as evidence of clear sky.
const (
	PlaceholderCloudCover  = 0
	PlaceholderTemperature = 70
	PlaceholderWindSpeed   = 5
)

var errUnknownEnvelope = errors.New("unrecognized forecast envelope shape")

type envelopeShape int

const (
	shapeFlat   envelopeShape = iota // {"hourly": {...}}
	shapeNested                      // {"data": {"hourly": {...}}}
)

// hourlyBlock is the canonical inner hourly payload both providers share.
// Metric entries are pointers so that omitted values can be told apart from
// genuine zeroes.
type hourlyBlock struct {
	Time        []string   `json:"time"`
	CloudCover  []*float64 `json:"cloud_cover"`
	Temperature []*float64 `json:"temperature_2m"`
	WindSpeed   []*float64 `json:"wind_speed_10m"`
}

type envelope struct {
	shape  envelopeShape
	hourly hourlyBlock
}

// ParseHourly detects the envelope shape of a raw provider body and unwraps
// it into a normalized HourlySeries.
func ParseHourly(body []byte) (HourlySeries, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	return env.series()
}

func decodeEnvelope(body []byte) (envelope, error) {
	var peek struct {
		Hourly *hourlyBlock `json:"hourly"`
		Data   *struct {
			Hourly *hourlyBlock `json:"hourly"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &peek); err != nil {
		return envelope{}, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	switch {
	case peek.Hourly != nil:
		return envelope{shape: shapeFlat, hourly: *peek.Hourly}, nil
	case peek.Data != nil && peek.Data.Hourly != nil:
		return envelope{shape: shapeNested, hourly: *peek.Data.Hourly}, nil
	default:
		return envelope{}, errUnknownEnvelope
	}
}

func (e envelope) series() (HourlySeries, error) {
	if len(e.hourly.Time) == 0 {
		return nil, errors.New("forecast response contains no hourly samples")
	}

	series := make(HourlySeries, 0, len(e.hourly.Time))
	for i, raw := range e.hourly.Time {
		ts, err := parseHourTime(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse hourly timestamp %q: %w", raw, err)
		}
		sample := HourSample{
			TimeUTC:     ts,
			CloudCover:  PlaceholderCloudCover,
			Temperature: PlaceholderTemperature,
			WindSpeed:   PlaceholderWindSpeed,
		}
		if v := metricAt(e.hourly.CloudCover, i); v != nil {
			sample.CloudCover = *v
		}
		if v := metricAt(e.hourly.Temperature, i); v != nil {
			sample.Temperature = *v
		}
		if v := metricAt(e.hourly.WindSpeed, i); v != nil {
			sample.WindSpeed = *v
		}
		series = append(series, sample)
	}
	return series, nil
}

func metricAt(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

// parseHourTime accepts RFC3339 timestamps as well as the zone-less
// "2006-01-02T15:04" layout both APIs emit when queried in UTC.
func parseHourTime(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.Parse("2006-01-02T15:04", raw)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}
