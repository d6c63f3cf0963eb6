// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package wiki

import (
	"regexp"
	"strings"
)

var (
	citationRe   = regexp.MustCompile(`\[\d+\]`)
	whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// CleanAddress strips citation markers of the form `[<digits>]` and
// collapses whitespace runs (including unicode spaces) to single
// spaces. It is idempotent and alters nothing else.
func CleanAddress(raw string) string {
	s := citationRe.ReplaceAllString(raw, "")
	s = whitespaceRe.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// DetailPolicy decides whether an extracted address is structured
// enough to be worth a geocoding call. An address qualifies when it is
// non-empty after cleaning and either splits into at least MinParts
// comma-separated components or contains at least MinTokens
// whitespace-separated tokens. The zero value qualifies no address at
// all, which disables geocoding.
type DetailPolicy struct {
	MinParts  int
	MinTokens int
}

// DefaultDetailPolicy requires two comma-separated components (street,
// city) or four tokens. Vague one-word locations never qualify.
var DefaultDetailPolicy = DetailPolicy{MinParts: 2, MinTokens: 4}

// DetailedEnough reports whether the address meets the policy bar.
func (p DetailPolicy) DetailedEnough(address string) bool {
	address = CleanAddress(address)
	if address == "" {
		return false
	}

	if p.MinParts > 0 {
		count := 0

		for _, part := range strings.Split(address, ",") {
			if strings.TrimSpace(part) != "" {
				count++
			}
		}

		if count >= p.MinParts {
			return true
		}
	}

	return p.MinTokens > 0 && len(strings.Fields(address)) >= p.MinTokens
}
