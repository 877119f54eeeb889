// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package sky

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

//go:embed bright_stars.csv
var brightStarsCSV string

// Star is a single entry of the embedded bright star catalog. Right ascension
// is in hours, declination in degrees.
type Star struct {
	Name      string
	RA        float64
	Dec       float64
	Magnitude float64
}

// LoadCatalog parses the embedded bright star catalog. The catalog is sorted
// by apparent magnitude, brightest first.
func LoadCatalog() ([]Star, error) {
	reader := csv.NewReader(strings.NewReader(brightStarsCSV))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse star catalog: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("star catalog holds no data rows")
	}

	stars := make([]Star, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 4 {
			return nil, fmt.Errorf("star catalog row %d has %d fields, want 4", i+2, len(record))
		}
		ra, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("star catalog row %d has invalid right ascension: %w", i+2, err)
		}
		dec, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("star catalog row %d has invalid declination: %w", i+2, err)
		}
		mag, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("star catalog row %d has invalid magnitude: %w", i+2, err)
		}
		stars = append(stars, Star{Name: record[0], RA: ra, Dec: dec, Magnitude: mag})
	}
	return stars, nil
}

// BrightestNames returns the names of up to limit stars at or below the given
// magnitude, in catalog order.
func BrightestNames(stars []Star, maxMag float64, limit int) []string {
	names := make([]string, 0, limit)
	for _, star := range stars {
		if star.Magnitude > maxMag {
			continue
		}
		names = append(names, star.Name)
		if len(names) == limit {
			break
		}
	}
	return names
}
