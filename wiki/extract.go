// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package wiki

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractionMethod is one strategy for locating a coordinate in an
// article. attempt returns nil when the targeted structure is absent
// or malformed; the pipeline treats both the same way.
type extractionMethod struct {
	method  Method
	attempt func(doc *goquery.Document, terms Terms) *Coordinate
}

// The strategies in priority order. The order is the contract: it
// encodes the empirical reliability of the markup conventions, and the
// pipeline stops at the first success.
var extractionMethods = []extractionMethod{
	{MethodCoordSpan, extractCoordSpan},
	{MethodIndicator, extractIndicator},
	{MethodInfobox, extractInfobox},
	{MethodPageConfig, extractPageConfig},
	{MethodMicroformat, extractMicroformat},
	{MethodMapData, extractMapData},
}

// Pipeline runs the extraction strategies against parsed articles
// using the term vocabulary of one language edition.
type Pipeline struct {
	terms Terms
}

// NewPipeline returns a pipeline using the given term vocabulary.
func NewPipeline(terms Terms) *Pipeline {
	return &Pipeline{terms: terms}
}

// Extraction is the pipeline outcome for one article: a coordinate, an
// address-only fallback, or neither.
type Extraction struct {
	Coordinate *Coordinate `json:"coordinates,omitempty"`
	Address    string      `json:"address,omitempty"`
}

// Extract tries the coordinate strategies strictly in order, stopping
// at the first one whose candidate parses; a candidate that fails to
// parse counts as not found for that strategy and the next one runs.
// When every strategy comes up empty the infobox address row is the
// fallback, cleaned before being returned.
func (p *Pipeline) Extract(doc *goquery.Document) Extraction {
	for _, m := range extractionMethods {
		c := m.attempt(doc, p.terms)
		if c == nil {
			continue
		}

		c.Method = m.method

		return Extraction{Coordinate: c}
	}

	if address := CleanAddress(extractAddress(doc, p.terms)); address != "" {
		return Extraction{Address: address}
	}

	return Extraction{}
}

// Method 1: the dedicated inline coordinate element, anywhere in the
// page.
func extractCoordSpan(doc *goquery.Document, _ Terms) *Coordinate {
	span := doc.Find("span#coordinatespan").First()
	if span.Length() == 0 {
		return nil
	}

	c, err := ParseCoordinateText(span.Text())
	if err != nil {
		return nil
	}

	return c
}

// Method 2: the coordinate element inside the page indicator strip.
func extractIndicator(doc *goquery.Document, _ Terms) *Coordinate {
	span := doc.Find("div#mw-indicator-AA-coordinates span#coordinatespan").First()
	if span.Length() == 0 {
		return nil
	}

	c, err := ParseCoordinateText(span.Text())
	if err != nil {
		return nil
	}

	return c
}

// Method 3: the labeled coordinate row of the first infobox table. The
// label cell is matched against the language's coordinate vocabulary;
// the value is the dedicated span when present, the cell text
// otherwise.
func extractInfobox(doc *goquery.Document, terms Terms) *Coordinate {
	infobox := doc.Find("table.infobox").First()
	if infobox.Length() == 0 {
		return nil
	}

	var coord *Coordinate

	infobox.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		th := row.Find("th").First()
		if th.Length() == 0 || !terms.MatchesCoordinateLabel(th.Text()) {
			return true
		}

		cell := row.ChildrenFiltered("td").First()
		if cell.Length() == 0 {
			return true
		}

		text := cell.Find("span#coordinatespan").First().Text()
		if text == "" {
			text = cell.Text()
		}

		if c, err := ParseCoordinateText(text); err == nil {
			coord = c
		}

		// the first labeled row decides, parsed or not
		return false
	})

	return coord
}

var wgCoordinatesRe = regexp.MustCompile(`"wgCoordinates"\s*:\s*\{\s*"lat"\s*:\s*(-?[\d.]+)\s*,\s*"lon"\s*:\s*(-?[\d.]+)\s*\}`)

// Method 4: the embedded page configuration script exposing a named
// coordinate object with numeric fields.
func extractPageConfig(doc *goquery.Document, _ Terms) *Coordinate {
	var coord *Coordinate

	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		m := wgCoordinatesRe.FindStringSubmatch(s.Text())
		if m == nil {
			return true
		}

		lat, errLat := strconv.ParseFloat(m[1], 64)
		lon, errLon := strconv.ParseFloat(m[2], 64)

		if errLat != nil || errLon != nil {
			return true
		}

		c, err := NewCoordinate(lat, lon, FormatJSON, m[0])
		if err != nil {
			return true
		}

		coord = c

		return false
	})

	return coord
}

// Method 5: geo metadata, in preference order: the geo.position meta
// tag, the geo microformat span, separately-tagged latitude and
// longitude elements.
func extractMicroformat(doc *goquery.Document, _ Terms) *Coordinate {
	if content, ok := doc.Find(`meta[name="geo.position"]`).First().Attr("content"); ok {
		if c, err := ParseDecimalPair(content); err == nil {
			c.Format = FormatMicroformat

			return c
		}
	}

	if geo := doc.Find("span.geo").First(); geo.Length() > 0 {
		if c, err := ParseDecimalPair(geo.Text()); err == nil {
			c.Format = FormatMicroformat

			return c
		}
	}

	latText := doc.Find(".latitude").First().Text()
	lonText := doc.Find(".longitude").First().Text()

	if latText != "" && lonText != "" {
		if c, err := ParseLatLonFields(latText, lonText); err == nil {
			return c
		}
	}

	return nil
}

var kartographerRe = regexp.MustCompile(`"coordinates"\s*:\s*\[\s*(-?[\d.]+)\s*,\s*(-?[\d.]+)\s*\]`)

// Method 6: map elements carrying coordinate data attributes, then the
// embedded interactive-map data block.
func extractMapData(doc *goquery.Document, _ Terms) *Coordinate {
	if sel := doc.Find("[data-lat][data-lon]").First(); sel.Length() > 0 {
		latText, _ := sel.Attr("data-lat")
		lonText, _ := sel.Attr("data-lon")

		lat, errLat := strconv.ParseFloat(strings.TrimSpace(latText), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(lonText), 64)

		if errLat == nil && errLon == nil {
			if c, err := NewCoordinate(lat, lon, FormatKartographer, "data-lat="+latText+" data-lon="+lonText); err == nil {
				return c
			}
		}
	}

	var coord *Coordinate

	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "wgKartographerLiveData") {
			return true
		}

		m := kartographerRe.FindStringSubmatch(text)
		if m == nil {
			return true
		}

		// the map data block follows GeoJSON order: [lon, lat]
		lon, errLon := strconv.ParseFloat(m[1], 64)
		lat, errLat := strconv.ParseFloat(m[2], 64)

		if errLon != nil || errLat != nil {
			return true
		}

		c, err := NewCoordinate(lat, lon, FormatKartographer, m[0])
		if err != nil {
			return true
		}

		coord = c

		return false
	})

	return coord
}

// extractAddress returns the raw text of the infobox address row, or
// empty when the first infobox has no such row. Depending on the
// infobox template the label lives in a th cell or in a bold-styled
// td followed by the value cell.
func extractAddress(doc *goquery.Document, terms Terms) string {
	infobox := doc.Find("table.infobox").First()
	if infobox.Length() == 0 {
		return ""
	}

	var address string

	infobox.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		th := row.Find("th").First()
		if th.Length() == 0 || !terms.MatchesAddressLabel(th.Text()) {
			return true
		}

		if td := row.ChildrenFiltered("td").First(); td.Length() > 0 {
			address = td.Text()

			return false
		}

		return true
	})

	if address != "" {
		return address
	}

	infobox.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		row.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
			style, _ := td.Attr("style")
			if !strings.Contains(style, "font-weight:bold") || !terms.MatchesAddressLabel(td.Text()) {
				return true
			}

			if value := td.NextFiltered("td"); value.Length() > 0 {
				address = value.Text()
			}

			return false
		})

		return address == ""
	})

	return address
}
