// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocode resolves textual addresses into geographic
// coordinates through an external lookup service.
package geocode

import (
	"context"
	"errors"
)

// ErrNoResult is returned when the service answers successfully but
// has no candidate for the address.
var ErrNoResult = errors.New("geocoder returned no result")

// Result is the top-ranked candidate returned by a provider.
type Result struct {
	Lat         float64
	Lon         float64
	DisplayName string
	Provider    string
}

// Geocoder resolves one address. The language hint comes from the
// source article and drives the provider's Accept-Language preference.
type Geocoder interface {
	Geocode(ctx context.Context, address, lang string) (*Result, error)
}
