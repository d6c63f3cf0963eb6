// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/jcodagnone/wikigeo/geocode"
	"github.com/jcodagnone/wikigeo/wiki"
	"github.com/spf13/cobra"
)

type urlOptions struct {
	Geocode             bool
	GeocoderEndpoint    string
	Language            string
	EnableHTTPTrace     bool
	EnableHTTPBodyTrace bool
}

var urlOpts = &urlOptions{}

var urlCmd = &cobra.Command{
	Use:   "url <wikipedia_url>",
	Short: "Run the extraction pipeline against a single article",
	Long: `
Fetches one Wikipedia article, runs the extraction pipeline against it and
prints the outcome as JSON on stdout. Useful to debug why a particular page
does or doesn't yield a coordinate.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link := args[0]

		fetcher := wiki.NewClient(&wiki.ClientOptions{
			UserAgent:           userAgent(),
			EnableHTTPTrace:     urlOpts.EnableHTTPTrace,
			EnableHTTPBodyTrace: urlOpts.EnableHTTPBodyTrace,
		})

		doc, err := fetcher.Fetch(cmd.Context(), link)
		if err != nil {
			return err
		}

		lang := urlOpts.Language
		if lang == "" {
			lang = wiki.LanguageFromURL(link)
		}

		terms := wiki.TermsFor(lang)
		extraction := wiki.NewPipeline(terms).Extract(doc)

		if urlOpts.Geocode && extraction.Coordinate == nil && extraction.Address != "" {
			geocoder := geocode.NewNominatim(&geocode.NominatimOptions{
				Endpoint:  urlOpts.GeocoderEndpoint,
				UserAgent: userAgent(),
			})

			result, err := geocoder.Geocode(cmd.Context(), extraction.Address, terms.Lang)
			if err != nil {
				log.Printf("Geocoding %q: %s", extraction.Address, err)
			} else {
				extraction.Coordinate = &wiki.Coordinate{
					Lat:      result.Lat,
					Lon:      result.Lon,
					Format:   wiki.FormatDecimal,
					Original: result.DisplayName,
					Method:   wiki.MethodGeocoded,
				}
			}
		}

		output, err := json.MarshalIndent(extraction, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}

		fmt.Println(string(output))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)

	urlCmd.PersistentFlags().BoolVar(
		&urlOpts.Geocode,
		"geocode",
		false,
		"Also geocode an address-only outcome",
	)
	urlCmd.PersistentFlags().StringVar(
		&urlOpts.GeocoderEndpoint,
		"geocoder-endpoint",
		geocode.DefaultEndpoint,
		"Base URL of the Nominatim instance used for address geocoding",
	)
	urlCmd.PersistentFlags().StringVar(
		&urlOpts.Language,
		"language",
		"",
		"Force one infobox term list ("+registeredLanguages()+") instead of deriving it from the article URL",
	)
	urlCmd.PersistentFlags().BoolVar(
		&urlOpts.EnableHTTPTrace,
		"trace-http",
		false,
		"Display HTTP requests-responses",
	)
	urlCmd.PersistentFlags().BoolVar(
		&urlOpts.EnableHTTPBodyTrace,
		"trace-http-body",
		false,
		"Display HTTP requests-responses bodies",
	)
}
