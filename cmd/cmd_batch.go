// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcodagnone/wikigeo/config"
	"github.com/jcodagnone/wikigeo/geocode"
	"github.com/jcodagnone/wikigeo/wiki"
	"github.com/spf13/cobra"
)

type batchOptions struct {
	FetchDelayMin   time.Duration
	FetchDelayMax   time.Duration
	GeocodeDelayMin time.Duration
	GeocodeDelayMax time.Duration

	CheckpointEvery  int
	GeocoderEndpoint string
	UserAgent        string
	Language         string

	MinAddressParts  int
	MinAddressTokens int

	EnableHTTPTrace     bool
	EnableHTTPBodyTrace bool
}

var batchOpts = &batchOptions{}

var batchCmd = &cobra.Command{
	Use:   "batch <input.json> <output.json>",
	Short: "Resolve coordinates for every record of an input file",
	Long: `
Reads an ordered JSON array of {name, wikipedia_link} records, resolves a
coordinate for each one and writes the enriched array to the output file.

Records that already carry coordinates are skipped, so re-running against a
partially processed output resumes where the previous run stopped. Progress is
checkpointed to the output file periodically; an interrupted run loses at most
one checkpoint interval of work.
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]

		records, err := wiki.LoadRecords(input)
		if err != nil {
			return err
		}

		checkpointer := &wiki.FileCheckpointer{Path: output}

		// An unwritable output must abort before the first fetch,
		// not after an hour of processing.
		if err := checkpointer.Save(records); err != nil {
			return fmt.Errorf("probing output file: %w", err)
		}

		agent := batchOpts.UserAgent
		if agent == "" {
			agent = userAgent()
		}

		fetcher := wiki.NewClient(&wiki.ClientOptions{
			UserAgent:           agent,
			EnableHTTPTrace:     batchOpts.EnableHTTPTrace,
			EnableHTTPBodyTrace: batchOpts.EnableHTTPBodyTrace,
		})

		geocoder := geocode.NewNominatim(&geocode.NominatimOptions{
			Endpoint:  batchOpts.GeocoderEndpoint,
			UserAgent: agent,
		})

		runner := wiki.NewRunner(&wiki.RunnerOptions{
			Fetcher:         fetcher,
			Geocoder:        geocoder,
			Checkpointer:    checkpointer,
			CheckpointEvery: batchOpts.CheckpointEvery,
			FetchDelay: wiki.DelayRange{
				Min: batchOpts.FetchDelayMin,
				Max: batchOpts.FetchDelayMax,
			},
			GeocodeDelay: wiki.DelayRange{
				Min: batchOpts.GeocodeDelayMin,
				Max: batchOpts.GeocodeDelayMax,
			},
			DetailPolicy: wiki.DetailPolicy{
				MinParts:  batchOpts.MinAddressParts,
				MinTokens: batchOpts.MinAddressTokens,
			},
			Language: batchOpts.Language,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Printf("Processing %d records from %s", len(records), input)

		stats, err := runner.Run(ctx, records)
		stats.LogSummary()

		if errors.Is(err, context.Canceled) {
			log.Printf("Run interrupted; progress up to the last checkpoint is saved in %s", output)

			return nil
		}

		return err
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Environment variables supply the defaults; explicit flags win.
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Ignoring environment configuration: %s", err)

		cfg = config.Default()
	}

	batchCmd.PersistentFlags().DurationVar(
		&batchOpts.FetchDelayMin,
		"fetch-delay-min",
		cfg.FetchDelayMin,
		"Minimum politeness delay before each page fetch",
	)
	batchCmd.PersistentFlags().DurationVar(
		&batchOpts.FetchDelayMax,
		"fetch-delay-max",
		cfg.FetchDelayMax,
		"Maximum politeness delay before each page fetch",
	)
	batchCmd.PersistentFlags().DurationVar(
		&batchOpts.GeocodeDelayMin,
		"geocode-delay-min",
		cfg.GeocodeDelayMin,
		"Minimum politeness delay before each geocoding call",
	)
	batchCmd.PersistentFlags().DurationVar(
		&batchOpts.GeocodeDelayMax,
		"geocode-delay-max",
		cfg.GeocodeDelayMax,
		"Maximum politeness delay before each geocoding call",
	)
	batchCmd.PersistentFlags().IntVar(
		&batchOpts.CheckpointEvery,
		"checkpoint-every",
		10,
		"Number of processed records between checkpoint writes",
	)
	batchCmd.PersistentFlags().StringVar(
		&batchOpts.GeocoderEndpoint,
		"geocoder-endpoint",
		cfg.GeocoderEndpoint,
		"Base URL of the Nominatim instance used for address geocoding",
	)
	batchCmd.PersistentFlags().StringVar(
		&batchOpts.UserAgent,
		"user-agent",
		"",
		"Override the User-Agent header sent to external services",
	)
	batchCmd.PersistentFlags().StringVar(
		&batchOpts.Language,
		"language",
		"",
		"Force one infobox term list ("+registeredLanguages()+") instead of deriving it from each article URL",
	)
	batchCmd.PersistentFlags().IntVar(
		&batchOpts.MinAddressParts,
		"min-address-parts",
		wiki.DefaultDetailPolicy.MinParts,
		"Comma-separated components an address needs to qualify for geocoding",
	)
	batchCmd.PersistentFlags().IntVar(
		&batchOpts.MinAddressTokens,
		"min-address-tokens",
		wiki.DefaultDetailPolicy.MinTokens,
		"Tokens an address needs to qualify for geocoding when it has too few components",
	)
	batchCmd.PersistentFlags().BoolVar(
		&batchOpts.EnableHTTPTrace,
		"trace-http",
		false,
		"Display HTTP requests-responses",
	)
	batchCmd.PersistentFlags().BoolVar(
		&batchOpts.EnableHTTPBodyTrace,
		"trace-http-body",
		false,
		"Display HTTP requests-responses bodies",
	)
}
