// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package wiki

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const coordTolerance = 1e-5

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= coordTolerance
}

func TestParseDMS(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		lat, lon float64
	}{
		{
			name: "helsinki cathedral",
			text: "60°10′14″N 24°57′07″E",
			lat:  60.170555555555556, lon: 24.951944444444443,
		},
		{
			name: "fractional seconds",
			text: "60°09′33.2″N, 024°56′57.6″E",
			lat:  60.15922222222222, lon: 24.949333333333332,
		},
		{
			name: "southern and western hemisphere",
			text: "33°51′54″S 70°39′19″W",
			lat:  -33.865, lon: -70.65527777777778,
		},
		{
			name: "apostrophe and quote glyphs",
			text: "60°10'14\"N 24°57'07\"E",
			lat:  60.170555555555556, lon: 24.951944444444443,
		},
		{
			name: "narrow no-break spaces",
			text: "60°10′14″N\u202f24°57′07″E",
			lat:  60.170555555555556, lon: 24.951944444444443,
		},
		{
			name: "embedded in link text",
			text: "Koordinaatit: 61°29′53″N 23°45′39″E (kartta)",
			lat:  61.498055555555556, lon: 23.760833333333334,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseDMS(tc.text)
			if err != nil {
				t.Fatalf("ParseDMS(%q): %v", tc.text, err)
			}

			if !almostEqual(c.Lat, tc.lat) || !almostEqual(c.Lon, tc.lon) {
				t.Errorf("got (%v, %v), want (%v, %v)", c.Lat, c.Lon, tc.lat, tc.lon)
			}

			if c.Format != FormatDMS {
				t.Errorf("format: got %q, want %q", c.Format, FormatDMS)
			}

			if c.Original == "" {
				t.Error("original text not recorded")
			}
		})
	}
}

func TestParseDMSRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrNoCoordinate},
		{"prose", "no coordinates here", ErrNoCoordinate},
		{"latitude only", "60°10′14″N", ErrNoCoordinate},
		{"missing seconds", "60°10′N 24°57′E", ErrNoCoordinate},
		{"latitude beyond pole", "95°10′14″N 24°57′07″E", ErrOutOfRange},
		{"longitude beyond antimeridian", "60°10′14″N 190°57′07″E", ErrOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseDMS(tc.text); !errors.Is(err, tc.want) {
				t.Errorf("ParseDMS(%q) = %v, want %v", tc.text, err, tc.want)
			}
		})
	}
}

func TestParseDegreePair(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		lat, lon float64
	}{
		{"north east", "60.1706°N 24.9415°E", 60.1706, 24.9415},
		{"south west", "33.8688°S 151.2093°W", -33.8688, -151.2093},
		{"separated by comma", "60.1706°N, 24.9415°E", 60.1706, 24.9415},
		{"integer degrees", "60°N 25°E", 60, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseDegreePair(tc.text)
			if err != nil {
				t.Fatalf("ParseDegreePair(%q): %v", tc.text, err)
			}

			if !almostEqual(c.Lat, tc.lat) || !almostEqual(c.Lon, tc.lon) {
				t.Errorf("got (%v, %v), want (%v, %v)", c.Lat, c.Lon, tc.lat, tc.lon)
			}
		})
	}
}

func TestParseDecimalPair(t *testing.T) {
	c, err := ParseDecimalPair("60.170556; 24.941521")
	if err != nil {
		t.Fatal(err)
	}

	want := &Coordinate{
		Lat:      60.170556,
		Lon:      24.941521,
		Format:   FormatDecimal,
		Original: "60.170556; 24.941521",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("ParseDecimalPair mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name     string
		text     string
		lat, lon float64
		wantErr  error
	}{
		{name: "comma separator", text: "-34.9011, -56.1645", lat: -34.9011, lon: -56.1645},
		{name: "surrounding space", text: "  60.17 ; 24.94  ", lat: 60.17, lon: 24.94},
		{name: "integers", text: "60; 25", lat: 60, lon: 25},
		{name: "not a pair", text: "60.17", wantErr: ErrNoCoordinate},
		{name: "trailing garbage", text: "60.17; 24.94 see map", wantErr: ErrNoCoordinate},
		{name: "latitude out of range", text: "1000.0; 24.0", wantErr: ErrOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseDecimalPair(tc.text)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ParseDecimalPair(%q) = %v, want %v", tc.text, err, tc.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseDecimalPair(%q): %v", tc.text, err)
			}

			if !almostEqual(c.Lat, tc.lat) || !almostEqual(c.Lon, tc.lon) {
				t.Errorf("got (%v, %v), want (%v, %v)", c.Lat, c.Lon, tc.lat, tc.lon)
			}
		})
	}
}

func TestParseLatLonFields(t *testing.T) {
	t.Run("decimal fields", func(t *testing.T) {
		c, err := ParseLatLonFields("60.170556", "24.941521")
		if err != nil {
			t.Fatal(err)
		}

		if !almostEqual(c.Lat, 60.170556) || !almostEqual(c.Lon, 24.941521) {
			t.Errorf("got (%v, %v)", c.Lat, c.Lon)
		}

		if c.Format != FormatMicroformat {
			t.Errorf("format: got %q, want %q", c.Format, FormatMicroformat)
		}
	})

	t.Run("dms fields", func(t *testing.T) {
		c, err := ParseLatLonFields("60°10′14″N", "24°57′07″E")
		if err != nil {
			t.Fatal(err)
		}

		if !almostEqual(c.Lat, 60.170555555555556) || !almostEqual(c.Lon, 24.951944444444443) {
			t.Errorf("got (%v, %v)", c.Lat, c.Lon)
		}
	})

	t.Run("non numeric", func(t *testing.T) {
		if _, err := ParseLatLonFields("unknown", "24.94"); err == nil {
			t.Error("expected error for non-numeric latitude")
		}
	})
}

func TestValidateLatLonNeverClamps(t *testing.T) {
	tests := []struct {
		lat, lon float64
		ok       bool
	}{
		{90, 180, true},
		{-90, -180, true},
		{0, 0, true},
		{90.000001, 0, false},
		{-90.000001, 0, false},
		{0, 180.000001, false},
		{0, -180.000001, false},
	}

	for _, tc := range tests {
		err := ValidateLatLon(tc.lat, tc.lon)
		if tc.ok && err != nil {
			t.Errorf("ValidateLatLon(%v, %v): unexpected %v", tc.lat, tc.lon, err)
		}

		if !tc.ok && !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ValidateLatLon(%v, %v) = %v, want ErrOutOfRange", tc.lat, tc.lon, err)
		}
	}
}

// Formatting a parsed pair back into its family and reparsing must
// reproduce the pair within 1e-5 degrees.
func TestRoundTrip(t *testing.T) {
	pairs := [][2]float64{
		{60.170556, 24.941521},
		{-33.8688, 151.2093},
		{0.000013, -0.000013},
		{89.999986, 179.999986},
		{-89.999986, -179.999986},
		{41.0, -5.0},
	}

	for _, p := range pairs {
		lat, lon := p[0], p[1]

		t.Run(FormatDecimalPair(lat, lon), func(t *testing.T) {
			c, err := ParseDMS(FormatDMSPair(lat, lon))
			if err != nil {
				t.Fatalf("reparsing %q: %v", FormatDMSPair(lat, lon), err)
			}

			if !almostEqual(c.Lat, lat) || !almostEqual(c.Lon, lon) {
				t.Errorf("dms round trip: got (%v, %v), want (%v, %v)", c.Lat, c.Lon, lat, lon)
			}

			c, err = ParseDecimalPair(FormatDecimalPair(lat, lon))
			if err != nil {
				t.Fatalf("reparsing %q: %v", FormatDecimalPair(lat, lon), err)
			}

			if !almostEqual(c.Lat, lat) || !almostEqual(c.Lon, lon) {
				t.Errorf("decimal round trip: got (%v, %v), want (%v, %v)", c.Lat, c.Lon, lat, lon)
			}
		})
	}
}
