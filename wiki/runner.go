// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package wiki

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jcodagnone/wikigeo/geocode"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// RunStats accumulates per-method success counters and batch outcome
// counters across one run. It is owned by the runner and returned to
// the caller; there is no global state.
type RunStats struct {
	// Methods counts coordinates per extraction method, including
	// MethodGeocoded.
	Methods map[Method]int

	// AddressOnly counts records that ended with an address but no
	// coordinate and no geocoding attempt.
	AddressOnly int

	// Failed counts records where fetching, extraction and geocoding
	// all came up empty or errored.
	Failed int

	// Skipped counts records that already carried coordinates.
	Skipped int

	// Malformed counts records missing required input fields.
	Malformed int

	// Processed counts records that went through the pipeline,
	// successfully or not. Skipped and malformed records don't count.
	Processed int
}

func (s *RunStats) countMethod(m Method) {
	if s.Methods == nil {
		s.Methods = make(map[Method]int)
	}

	s.Methods[m]++
}

// Merge combines the stats from another run into this one.
func (s *RunStats) Merge(other *RunStats) *RunStats {
	if other == nil {
		return s
	}

	for m, n := range other.Methods {
		if s.Methods == nil {
			s.Methods = make(map[Method]int)
		}

		s.Methods[m] += n
	}

	s.AddressOnly += other.AddressOnly
	s.Failed += other.Failed
	s.Skipped += other.Skipped
	s.Malformed += other.Malformed
	s.Processed += other.Processed

	return s
}

// Coordinates returns the total number of coordinates attached during
// the run, whatever their provenance.
func (s *RunStats) Coordinates() int {
	var n int
	for _, c := range s.Methods {
		n += c
	}

	return n
}

// LogSummary prints the end-of-run statistics block.
func (s *RunStats) LogSummary() {
	log.Printf(
		"Run completed - %d processed, %d with coordinates, %d address only, %d failed, %d skipped, %d malformed",
		s.Processed,
		s.Coordinates(),
		s.AddressOnly,
		s.Failed,
		s.Skipped,
		s.Malformed,
	)

	for _, m := range []Method{
		MethodCoordSpan, MethodIndicator, MethodInfobox,
		MethodPageConfig, MethodMicroformat, MethodMapData,
		MethodGeocoded,
	} {
		if n := s.Methods[m]; n > 0 {
			log.Printf("  %-12s %d", m, n)
		}
	}
}

// DelayRange is a politeness delay drawn uniformly from [Min, Max].
// The zero value disables the delay.
type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

func (d DelayRange) random() time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}

	return d.Min + time.Duration(rand.Int63n(int64(d.Max-d.Min)))
}

// Sleep blocks for a random duration within the range, waking up early
// if the context is cancelled.
func (d DelayRange) Sleep(ctx context.Context) error {
	duration := d.random()
	if duration <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RunnerOptions configuration for the batch runner.
type RunnerOptions struct {
	// Fetcher retrieves article documents. Required.
	Fetcher Fetcher

	// Geocoder resolves extracted addresses. Optional: when nil,
	// address-only outcomes stay address-only.
	Geocoder geocode.Geocoder

	// Checkpointer persists partial progress. Optional.
	Checkpointer Checkpointer

	// CheckpointEvery is the number of processed records between
	// checkpoints.
	CheckpointEvery int

	// FetchDelay is the politeness delay before each page fetch.
	FetchDelay DelayRange

	// GeocodeDelay is the politeness delay before each geocoding call.
	GeocodeDelay DelayRange

	// DetailPolicy decides which addresses are worth geocoding.
	DetailPolicy DetailPolicy

	// Language forces one term list for the whole batch instead of
	// deriving it per record from the article URL.
	Language string
}

// Runner processes record batches sequentially: fetch, extract,
// optionally geocode, checkpoint. Sequential by design: external
// services see at most one request at a time, with enforced spacing.
type Runner struct {
	options *RunnerOptions
}

// NewRunner creates a batch runner. The checkpoint interval defaults
// to 10 and the detail policy to DefaultDetailPolicy when unset.
func NewRunner(options *RunnerOptions) *Runner {
	if options == nil {
		options = &RunnerOptions{}
	}

	if options.CheckpointEvery <= 0 {
		options.CheckpointEvery = 10
	}

	if options.DetailPolicy == (DetailPolicy{}) {
		options.DetailPolicy = DefaultDetailPolicy
	}

	return &Runner{options: options}
}

func (r *Runner) terms(link string) Terms {
	lang := r.options.Language
	if lang == "" {
		lang = LanguageFromURL(link)
	}

	return TermsFor(lang)
}

// countPending returns how many records still need processing.
func countPending(records []Record) int {
	var n int

	for i := range records {
		if !records[i].HasCoordinates() && records[i].Validate() == nil {
			n++
		}
	}

	return n
}

// Run processes every record in order, enriching them in place, and
// returns the accumulated statistics. Per-record failures are absorbed
// and counted; the only errors returned are context cancellation and
// checkpoint write failures.
func (r *Runner) Run(ctx context.Context, records []Record) (*RunStats, error) {
	stats := &RunStats{}
	pending := countPending(records)
	start := time.Now()

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(pending,
			progressbar.OptionSetDescription("Resolving coordinates"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for i := range records {
		record := &records[i]

		if record.HasCoordinates() {
			stats.Skipped++

			continue
		}

		if err := record.Validate(); err != nil {
			log.Printf("[%d/%d] Skipping malformed record: %s", i+1, len(records), err)
			stats.Malformed++

			continue
		}

		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if err := r.process(ctx, record, stats); err != nil {
			return stats, err
		}

		stats.Processed++
		if bar != nil {
			_ = bar.Add(1)
		}

		log.Printf(
			"[%d/%d] %s: %s (ETA %s)",
			i+1,
			len(records),
			record.Name,
			outcome(record),
			eta(start, stats.Processed, pending),
		)

		if r.options.Checkpointer != nil && stats.Processed%r.options.CheckpointEvery == 0 {
			if err := r.options.Checkpointer.Save(records); err != nil {
				return stats, fmt.Errorf("checkpointing after %d records: %w", stats.Processed, err)
			}
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	if r.options.Checkpointer != nil {
		if err := r.options.Checkpointer.Save(records); err != nil {
			return stats, fmt.Errorf("writing final output: %w", err)
		}
	}

	return stats, nil
}

// process runs one record through fetch, extract and the geocoding
// fallback, mutating the record and the counters. Network failures are
// absorbed here; a context cancellation is returned instead, because
// an interrupted record is not a failed one — it will be reprocessed
// on resume.
func (r *Runner) process(ctx context.Context, record *Record, stats *RunStats) error {
	if err := r.options.FetchDelay.Sleep(ctx); err != nil {
		return err
	}

	doc, err := r.options.Fetcher.Fetch(ctx, record.WikipediaLink)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Printf("Fetching %q: %s", record.WikipediaLink, err)
		stats.Failed++

		return nil
	}

	terms := r.terms(record.WikipediaLink)
	extraction := NewPipeline(terms).Extract(doc)

	if extraction.Coordinate != nil {
		record.Coordinates = extraction.Coordinate
		stats.countMethod(extraction.Coordinate.Method)

		return nil
	}

	if extraction.Address == "" {
		stats.Failed++

		return nil
	}

	record.Address = extraction.Address

	if r.options.Geocoder == nil || !r.options.DetailPolicy.DetailedEnough(extraction.Address) {
		stats.AddressOnly++

		return nil
	}

	if err := r.options.GeocodeDelay.Sleep(ctx); err != nil {
		return err
	}

	result, err := r.options.Geocoder.Geocode(ctx, extraction.Address, terms.Lang)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Printf("Geocoding %q: %s", extraction.Address, err)
		stats.Failed++

		return nil
	}

	record.Coordinates = &Coordinate{
		Lat:      result.Lat,
		Lon:      result.Lon,
		Format:   FormatDecimal,
		Original: result.DisplayName,
		Method:   MethodGeocoded,
	}
	stats.countMethod(MethodGeocoded)

	return nil
}

func outcome(record *Record) string {
	switch {
	case record.Coordinates != nil:
		return fmt.Sprintf("%s (%.5f, %.5f)", record.Coordinates.Method, record.Coordinates.Lat, record.Coordinates.Lon)
	case record.Address != "":
		return "address only"
	default:
		return "not found"
	}
}

// eta extrapolates the remaining time linearly from the average
// per-record processing time so far.
func eta(start time.Time, processed, pending int) time.Duration {
	if processed == 0 {
		return 0
	}

	avg := time.Since(start) / time.Duration(processed)

	return (avg * time.Duration(pending-processed)).Round(time.Second)
}
