// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"regexp"
	"strings"
)

// Kind classifies the free-text location input by postal-code pattern.
type Kind int

const (
	KindGeneral Kind = iota
	KindUSZip
	KindCAPostal
	KindUKPostcode
)

var (
	usZipPattern      = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	caPostalPattern   = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z] ?\d[A-Za-z]\d$`)
	ukPostcodePattern = regexp.MustCompile(`^[A-Za-z]{1,2}\d[A-Za-z\d]? ?\d[A-Za-z]{2}$`)
)

// Classify determines the input kind for the given location text.
func Classify(text string) Kind {
	trimmed := strings.TrimSpace(text)
	switch {
	case usZipPattern.MatchString(trimmed):
		return KindUSZip
	case caPostalPattern.MatchString(trimmed):
		return KindCAPostal
	case ukPostcodePattern.MatchString(trimmed):
		return KindUKPostcode
	default:
		return KindGeneral
	}
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUSZip:
		return "us-zip"
	case KindCAPostal:
		return "ca-postal"
	case KindUKPostcode:
		return "uk-postcode"
	default:
		return "general"
	}
}

// CountryHint returns the country string appended to search queries to
// disambiguate postal-code input. General input gets no hint.
func (k Kind) CountryHint() string {
	switch k {
	case KindUSZip:
		return "USA"
	case KindCAPostal:
		return "Canada"
	case KindUKPostcode:
		return "United Kingdom"
	default:
		return ""
	}
}
