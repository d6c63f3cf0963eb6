// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

// Package wiki extracts geographic coordinates for named places from
// their Wikipedia articles.
package wiki

import (
	"errors"

	"github.com/jcodagnone/wikigeo/spatial"
)

// Method records which extraction strategy produced a coordinate.
// The numeric identifiers match the strategy priority order and are
// used as statistics keys; "geocoded" marks coordinates recovered by
// geocoding an extracted address instead of from the page itself.
type Method string

const (
	// MethodCoordSpan is the dedicated inline coordinate element.
	MethodCoordSpan Method = "method_1"
	// MethodIndicator is the page indicator strip coordinate element.
	MethodIndicator Method = "method_2"
	// MethodInfobox is the labeled coordinate row of the infobox table.
	MethodInfobox Method = "method_3"
	// MethodPageConfig is the embedded page configuration script variable.
	MethodPageConfig Method = "method_4"
	// MethodMicroformat is geo metadata in meta tags or geo-classed spans.
	MethodMicroformat Method = "method_5"
	// MethodMapData is map element attributes or embedded map data blocks.
	MethodMapData Method = "method_6"
	// MethodGeocoded marks a coordinate obtained by geocoding an address.
	MethodGeocoded Method = "geocoded"
)

// Format identifies the raw representation family a coordinate was
// parsed from.
type Format string

const (
	FormatDMS          Format = "dms"
	FormatDecimal      Format = "decimal"
	FormatMicroformat  Format = "microformat"
	FormatJSON         Format = "json"
	FormatKartographer Format = "kartographer"
)

// Coordinate is a normalized decimal latitude/longitude pair together
// with its extraction provenance. Lat and Lon are always set together.
type Coordinate struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Format   Format  `json:"format"`
	Original string  `json:"original"`
	Method   Method  `json:"method"`
}

// Point returns the coordinate as a spatial point.
func (c *Coordinate) Point() spatial.Point {
	return spatial.Point{Lat: c.Lat, Lng: c.Lon}
}

// Record is one place to resolve: a name and its Wikipedia article.
// Records are enriched in place; a record that already carries
// coordinates is considered done and is never reprocessed.
type Record struct {
	Name          string      `json:"name"`
	WikipediaLink string      `json:"wikipedia_link"`
	Coordinates   *Coordinate `json:"coordinates,omitempty"`
	Address       string      `json:"address,omitempty"`
}

// Errors returned by Record.Validate.
var (
	ErrMissingName = errors.New("record has no name")
	ErrMissingLink = errors.New("record has no wikipedia_link")
)

// Validate reports whether the record carries the fields required for
// processing.
func (r *Record) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}

	if r.WikipediaLink == "" {
		return ErrMissingLink
	}

	return nil
}

// HasCoordinates reports whether the record is already resolved.
func (r *Record) HasCoordinates() bool {
	return r != nil && r.Coordinates != nil
}
