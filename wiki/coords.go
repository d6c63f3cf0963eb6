// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package wiki

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Errors returned by the coordinate parsing functions.
var (
	ErrNoCoordinate = errors.New("no coordinate found in text")
	ErrOutOfRange   = errors.New("coordinate out of range")
)

// Articles encode the same angular marks with a mix of unicode glyphs
// depending on the template and the language edition.
var glyphReplacements = [][2]string{
	{"\u00ba", "\u00b0"},       // masculine ordinal as degree sign
	{"''", "\u2033"},           // doubled apostrophe as double prime
	{"\u2019\u2019", "\u2033"}, // doubled right quote as double prime
	{"\u201d", "\u2033"},       // right double quotation mark
	{"\"", "\u2033"},           // straight double quote
	{"\u2019", "\u2032"},       // right single quotation mark
	{"'", "\u2032"},            // apostrophe
	{"\u00b4", "\u2032"},       // acute accent
	{"\u2212", "-"},            // minus sign
	{"\u00a0", " "},            // no-break space
	{"\u202f", " "},            // narrow no-break space
	{"\u2009", " "},            // thin space
}

// NormalizeCoordinateText maps glyph variants of the degree, minute and
// second marks to canonical forms so that a single grammar can parse
// text coming from any template.
func NormalizeCoordinateText(s string) string {
	for _, r := range glyphReplacements {
		s = strings.ReplaceAll(s, r[0], r[1])
	}

	return strings.TrimSpace(s)
}

var (
	dmsLatRe  = regexp.MustCompile(`(-?\d+°\d+′\d+(?:\.\d+)?″[NS])`)
	dmsLonRe  = regexp.MustCompile(`(-?\d+°\d+′\d+(?:\.\d+)?″[EW])`)
	dmsPartRe = regexp.MustCompile(`(-?\d+)°(\d+)′(\d+(?:\.\d+)?)″([NSEW])`)

	degreePairRe = regexp.MustCompile(`(\d+(?:\.\d+)?)°\s*([NS]).*?(\d+(?:\.\d+)?)°\s*([EW])`)
	numberPairRe = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)\s*[;,]\s*(-?\d+(?:\.\d+)?)$`)
)

// ValidateLatLon checks that a pair lies within the valid geographic
// ranges. Out-of-range values are rejected, never clamped.
func ValidateLatLon(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v outside [-90, 90]: %w", lat, ErrOutOfRange)
	}

	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v outside [-180, 180]: %w", lon, ErrOutOfRange)
	}

	return nil
}

// NewCoordinate builds a validated coordinate. The method tag is
// attached later by whoever selected the representation.
func NewCoordinate(lat, lon float64, format Format, original string) (*Coordinate, error) {
	if err := ValidateLatLon(lat, lon); err != nil {
		return nil, err
	}

	return &Coordinate{Lat: lat, Lon: lon, Format: format, Original: original}, nil
}

// ParseDMS parses a degrees-minutes-seconds pair with hemisphere
// letters, e.g. `60°10′14″N 24°57′07″E`.
func ParseDMS(text string) (*Coordinate, error) {
	norm := NormalizeCoordinateText(text)

	latRaw := dmsLatRe.FindString(norm)
	lonRaw := dmsLonRe.FindString(norm)

	if latRaw == "" || lonRaw == "" {
		return nil, fmt.Errorf("%w: %q", ErrNoCoordinate, text)
	}

	lat, err := dmsToDecimal(latRaw)
	if err != nil {
		return nil, err
	}

	lon, err := dmsToDecimal(lonRaw)
	if err != nil {
		return nil, err
	}

	return NewCoordinate(lat, lon, FormatDMS, latRaw+", "+lonRaw)
}

// dmsToDecimal converts a single DMS axis like `60°09′33.2″N` to
// decimal degrees. decimal = degrees + minutes/60 + seconds/3600, sign
// from the hemisphere letter (S and W negate) or a leading minus.
func dmsToDecimal(dms string) (float64, error) {
	m := dmsPartRe.FindStringSubmatch(dms)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrNoCoordinate, dms)
	}

	deg, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	seconds, _ := strconv.ParseFloat(m[3], 64)

	neg := deg < 0
	decimal := math.Abs(deg) + minutes/60 + seconds/3600

	if m[4] == "S" || m[4] == "W" {
		neg = !neg
	}

	if neg {
		decimal = -decimal
	}

	return decimal, nil
}

// ParseDegreePair parses a decimal-degree pair with hemisphere letters,
// e.g. `60.1706°N 24.9415°E`.
func ParseDegreePair(text string) (*Coordinate, error) {
	norm := NormalizeCoordinateText(text)

	m := degreePairRe.FindStringSubmatch(norm)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoCoordinate, text)
	}

	lat, _ := strconv.ParseFloat(m[1], 64)
	lon, _ := strconv.ParseFloat(m[3], 64)

	if m[2] == "S" {
		lat = -lat
	}

	if m[4] == "W" {
		lon = -lon
	}

	return NewCoordinate(lat, lon, FormatDecimal, m[0])
}

// ParseCoordinateText parses the visible text of a coordinate element,
// accepting both DMS and decimal-degree pairs.
func ParseCoordinateText(text string) (*Coordinate, error) {
	if c, err := ParseDMS(text); err == nil {
		return c, nil
	}

	return ParseDegreePair(text)
}

// ParseDecimalPair parses a bare signed decimal pair such as
// `60.1706; 24.9415`, separated by a semicolon or a comma.
func ParseDecimalPair(text string) (*Coordinate, error) {
	norm := NormalizeCoordinateText(text)

	m := numberPairRe.FindStringSubmatch(norm)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoCoordinate, text)
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, fmt.Errorf("latitude %q: %w", m[1], err)
	}

	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil, fmt.Errorf("longitude %q: %w", m[2], err)
	}

	return NewCoordinate(lat, lon, FormatDecimal, norm)
}

// parseAxis parses one latitude or longitude value that may be either a
// bare decimal or a single DMS expression with its hemisphere letter.
func parseAxis(text string) (float64, error) {
	norm := NormalizeCoordinateText(text)

	if v, err := strconv.ParseFloat(norm, 64); err == nil {
		return v, nil
	}

	return dmsToDecimal(norm)
}

// ParseLatLonFields parses separately-tagged latitude and longitude
// field texts, as found in geo microformat child elements.
func ParseLatLonFields(latText, lonText string) (*Coordinate, error) {
	lat, err := parseAxis(latText)
	if err != nil {
		return nil, err
	}

	lon, err := parseAxis(lonText)
	if err != nil {
		return nil, err
	}

	return NewCoordinate(lat, lon, FormatMicroformat, strings.TrimSpace(latText)+"; "+strings.TrimSpace(lonText))
}

// FormatDMSPair renders a decimal pair in degrees-minutes-seconds
// notation with hemisphere letters.
func FormatDMSPair(lat, lon float64) string {
	return formatDMSAxis(lat, "N", "S") + " " + formatDMSAxis(lon, "E", "W")
}

func formatDMSAxis(v float64, pos, neg string) string {
	hemi := pos
	if v < 0 {
		hemi = neg
		v = -v
	}

	deg := math.Floor(v)
	rem := (v - deg) * 60
	minutes := math.Floor(rem)
	seconds := (rem - minutes) * 60

	// keep rounding from producing 60.00″ or 60′
	if seconds >= 59.995 {
		seconds = 0
		minutes++
	}

	if minutes >= 60 {
		minutes = 0
		deg++
	}

	return fmt.Sprintf("%d°%02d′%05.2f″%s", int(deg), int(minutes), seconds, hemi)
}

// FormatDecimalPair renders a decimal pair as `lat; lon`.
func FormatDecimalPair(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "; " + strconv.FormatFloat(lon, 'f', -1, 64)
}
