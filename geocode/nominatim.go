// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the public Nominatim instance.
const DefaultEndpoint = "https://nominatim.openstreetmap.org"

// NominatimOptions configuration for the Nominatim geocoder.
type NominatimOptions struct {
	// Endpoint is the base URL of the Nominatim instance.
	Endpoint string

	// UserAgent identifies this tool; the public instance's usage
	// policy requires a descriptive one.
	UserAgent string

	// Timeout for each lookup request.
	Timeout time.Duration

	// MinInterval between successive requests. The public instance
	// allows at most one request per second.
	MinInterval time.Duration

	// Transport overrides the HTTP transport, e.g. for tracing.
	Transport http.RoundTripper
}

// Nominatim geocodes addresses against a Nominatim instance, pacing
// its own requests so that the batch can never exceed the service's
// absolute rate floor regardless of the caller's delays.
type Nominatim struct {
	endpoint  string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewNominatim creates a geocoder from the options, applying the
// documented defaults for any zero field.
func NewNominatim(options *NominatimOptions) *Nominatim {
	if options == nil {
		options = &NominatimOptions{}
	}

	endpoint := options.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	userAgent := options.UserAgent
	if userAgent == "" {
		userAgent = "wikigeo/unknown"
	}

	timeout := options.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	minInterval := options.MinInterval
	if minInterval == 0 {
		minInterval = time.Second
	}

	return &Nominatim{
		endpoint:  endpoint,
		userAgent: userAgent,
		client: &http.Client{
			Timeout:   timeout,
			Transport: options.Transport,
		},
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Nominatim answers lat/lon as JSON strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// AcceptLanguage builds the Accept-Language header value from an
// article language code, falling back to plain English when the code
// is empty or not a well-formed language tag.
func AcceptLanguage(lang string) string {
	if lang == "" || lang == "en" {
		return "en"
	}

	if _, err := language.Parse(lang); err != nil {
		return "en"
	}

	return lang + ",en;q=0.5"
}

// Geocode looks up an address and returns the top-ranked candidate.
// It blocks on the rate limiter before issuing the request.
func (n *Nominatim) Geocode(ctx context.Context, address, lang string) (*Result, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	reqURL := n.endpoint + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building geocoding request: %w", err)
	}

	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept-Language", AcceptLanguage(lang))

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, &Error{Type: ErrorTypeNetwork, Message: "geocoding request failed", Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ClassifyStatus(resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decoding geocoding response: %w", err)
	}

	if len(places) == 0 {
		return nil, fmt.Errorf("%q: %w", address, ErrNoResult)
	}

	place := places[0]

	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude %q: %w", place.Lat, err)
	}

	lon, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude %q: %w", place.Lon, err)
	}

	return &Result{
		Lat:         lat,
		Lon:         lon,
		DisplayName: place.DisplayName,
		Provider:    "nominatim",
	}, nil
}
