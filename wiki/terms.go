// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package wiki

import (
	"errors"
	"fmt"
	neturl "net/url"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Terms holds the label vocabulary used to locate coordinate and
// address rows in an article's infobox for one Wikipedia language
// edition. Adding a language is a data change in the registry below.
type Terms struct {
	Lang             string   // ISO 639-1 code of the language edition
	CoordinateLabels []string // infobox labels introducing a coordinate row
	AddressLabels    []string // infobox labels introducing an address row
}

// Validate checks that the term list has all required fields.
func (t *Terms) Validate() error {
	if t.Lang == "" {
		return errors.New("term list: language code must not be empty")
	}

	if len(t.CoordinateLabels) == 0 {
		return fmt.Errorf("term list %q: coordinate labels must not be empty", t.Lang)
	}

	if len(t.AddressLabels) == 0 {
		return fmt.Errorf("term list %q: address labels must not be empty", t.Lang)
	}

	return nil
}

// FoldLabel normalizes an infobox label for matching by removing
// accents, lowercasing and trimming surrounding space and colons.
func FoldLabel(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return strings.Trim(s, ": ")
}

// All registered language editions.
var languages = func() []Terms {
	ret := []Terms{
		{
			Lang:             "en",
			CoordinateLabels: []string{"coordinates"},
			AddressLabels:    []string{"location", "address"},
		},
		{
			Lang:             "fi",
			CoordinateLabels: []string{"koordinaatit"},
			AddressLabels:    []string{"sijainti", "osoite"},
		},
	}

	// Fold labels once so lookups only fold the candidate text
	for i := range ret {
		if err := ret[i].Validate(); err != nil {
			panic(err)
		}

		for j := range ret[i].CoordinateLabels {
			ret[i].CoordinateLabels[j] = FoldLabel(ret[i].CoordinateLabels[j])
		}

		for j := range ret[i].AddressLabels {
			ret[i].AddressLabels[j] = FoldLabel(ret[i].AddressLabels[j])
		}
	}

	return ret
}()

// DefaultLanguage is assumed when an article URL carries no usable
// language code, or the code has no registered term list.
const DefaultLanguage = "en"

// TermsFor returns the term list registered for a language code,
// falling back to DefaultLanguage for unknown codes.
func TermsFor(lang string) Terms {
	for i := range languages {
		if languages[i].Lang == lang {
			return languages[i]
		}
	}

	for i := range languages {
		if languages[i].Lang == DefaultLanguage {
			return languages[i]
		}
	}

	// the registry always contains DefaultLanguage
	panic(fmt.Sprintf("no term list for default language %q", DefaultLanguage))
}

// EachLanguage applies the callback to every registered term list. It
// stops iteration and returns the error if the callback returns one.
func EachLanguage(callback func(Terms) error) error {
	for i := range languages {
		if err := callback(languages[i]); err != nil {
			return err
		}
	}

	return nil
}

func matchesAny(text string, labels []string) bool {
	folded := FoldLabel(text)

	for _, l := range labels {
		if strings.Contains(folded, l) {
			return true
		}
	}

	return false
}

// MatchesCoordinateLabel reports whether a cell text names the
// coordinate row of an infobox.
func (t Terms) MatchesCoordinateLabel(text string) bool {
	return matchesAny(text, t.CoordinateLabels)
}

// MatchesAddressLabel reports whether a cell text names the address
// row of an infobox.
func (t Terms) MatchesAddressLabel(text string) bool {
	return matchesAny(text, t.AddressLabels)
}

// LanguageFromURL extracts the language code from a Wikipedia article
// URL such as https://fi.wikipedia.org/wiki/Helsinki. It returns the
// empty string when the URL carries no language subdomain.
func LanguageFromURL(article string) string {
	u, err := neturl.Parse(article)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if !strings.HasSuffix(host, "wikipedia.org") {
		return ""
	}

	label, _, _ := strings.Cut(host, ".")
	if label == "www" || label == "m" || label == "wikipedia" {
		return ""
	}

	return label
}
