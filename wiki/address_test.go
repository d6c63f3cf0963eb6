// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package wiki

import (
	"testing"
)

func TestCleanAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"citations", "Helsinki, Finland[1][2]", "Helsinki, Finland"},
		{"citation mid text", "Mannerheimintie 30[3], Helsinki", "Mannerheimintie 30, Helsinki"},
		{"whitespace runs", "Aleksanterinkatu\n 52,\t Helsinki", "Aleksanterinkatu 52, Helsinki"},
		{"no-break spaces", "Senaatintori\u00a01, Helsinki", "Senaatintori 1, Helsinki"},
		{"already clean", "Tampere, Finland", "Tampere, Finland"},
		{"only citation", "[12]", ""},
		{"empty", "", ""},
		{"non-numeric bracket preserved", "Building [annex], Espoo", "Building [annex], Espoo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanAddress(tc.in)
			if got != tc.want {
				t.Errorf("CleanAddress(%q) = %q, want %q", tc.in, got, tc.want)
			}

			if again := CleanAddress(got); again != got {
				t.Errorf("not idempotent: CleanAddress(%q) = %q", got, again)
			}
		})
	}
}

func TestDetailPolicy(t *testing.T) {
	policy := DefaultDetailPolicy

	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"street and city", "Mannerheimintie 30, Helsinki", true},
		{"city and country", "Tampere, Finland", true},
		{"four tokens no comma", "Mannerheimintie 30 00100 Helsinki", true},
		{"single word", "Helsinki", false},
		{"two words", "Helsinki Finland", false},
		{"empty", "", false},
		{"only citations", "[1][2]", false},
		{"trailing comma only", "Helsinki,", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.DetailedEnough(tc.address); got != tc.want {
				t.Errorf("DetailedEnough(%q) = %v, want %v", tc.address, got, tc.want)
			}
		})
	}

	t.Run("zero value disables geocoding", func(t *testing.T) {
		var off DetailPolicy
		if off.DetailedEnough("Mannerheimintie 30, 00100 Helsinki, Finland") {
			t.Error("zero-value policy should qualify nothing")
		}
	})

	t.Run("stricter parts bar", func(t *testing.T) {
		strict := DetailPolicy{MinParts: 3, MinTokens: 6}
		if strict.DetailedEnough("Tampere, Finland") {
			t.Error("two components should not meet a three-part bar")
		}

		if !strict.DetailedEnough("Mannerheimintie 30, 00100 Helsinki, Finland") {
			t.Error("three components should meet a three-part bar")
		}
	})
}
