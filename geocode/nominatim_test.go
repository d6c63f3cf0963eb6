// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNominatim(t *testing.T, handler http.HandlerFunc) *Nominatim {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewNominatim(&NominatimOptions{
		Endpoint:    server.URL,
		UserAgent:   "wikigeo/test",
		MinInterval: time.Millisecond,
	})
}

func TestNominatimGeocode(t *testing.T) {
	var gotRequest *http.Request

	geocoder := newTestNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lat": "60.1699", "lon": "24.9384", "display_name": "Helsinki, Uusimaa, Finland"},
			{"lat": "0", "lon": "0", "display_name": "should never be picked"}
		]`))
	})

	result, err := geocoder.Geocode(context.Background(), "Senaatintori 1, Helsinki", "fi")
	require.NoError(t, err)

	assert.InDelta(t, 60.1699, result.Lat, 1e-9)
	assert.InDelta(t, 24.9384, result.Lon, 1e-9)
	assert.Equal(t, "Helsinki, Uusimaa, Finland", result.DisplayName)
	assert.Equal(t, "nominatim", result.Provider)

	require.NotNil(t, gotRequest)
	assert.Equal(t, "/search", gotRequest.URL.Path)
	assert.Equal(t, "Senaatintori 1, Helsinki", gotRequest.URL.Query().Get("q"))
	assert.Equal(t, "jsonv2", gotRequest.URL.Query().Get("format"))
	assert.Equal(t, "1", gotRequest.URL.Query().Get("limit"))
	assert.Equal(t, "fi,en;q=0.5", gotRequest.Header.Get("Accept-Language"))
	assert.Equal(t, "wikigeo/test", gotRequest.Header.Get("User-Agent"))
}

func TestNominatimGeocode_EmptyResult(t *testing.T) {
	geocoder := newTestNominatim(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	result, err := geocoder.Geocode(context.Background(), "nowhere at all", "en")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoResult))
	assert.True(t, IsNotFound(err))
}

func TestNominatimGeocode_RateLimited(t *testing.T) {
	geocoder := newTestNominatim(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	result, err := geocoder.Geocode(context.Background(), "Helsinki, Finland", "en")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, IsRateLimit(err))
}

func TestNominatimGeocode_MalformedBody(t *testing.T) {
	geocoder := newTestNominatim(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	})

	result, err := geocoder.Geocode(context.Background(), "Helsinki, Finland", "en")
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestNominatimGeocode_CancelledContext(t *testing.T) {
	geocoder := newTestNominatim(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := geocoder.Geocode(ctx, "Helsinki, Finland", "en")
	assert.Error(t, err)
}

func TestAcceptLanguage(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"", "en"},
		{"en", "en"},
		{"fi", "fi,en;q=0.5"},
		{"pt-BR", "pt-BR,en;q=0.5"},
		{"not a tag!", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, AcceptLanguage(tt.lang))
		})
	}
}

func TestNewNominatimDefaults(t *testing.T) {
	geocoder := NewNominatim(nil)

	assert.Equal(t, DefaultEndpoint, geocoder.endpoint)
	assert.Equal(t, "wikigeo/unknown", geocoder.userAgent)
	assert.NotNil(t, geocoder.client)
	assert.NotNil(t, geocoder.limiter)
}
