// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"sort"

	"github.com/jcodagnone/wikigeo/spatial"
	"github.com/jcodagnone/wikigeo/wiki"
	"github.com/spf13/cobra"
)

type statsOptions struct {
	H3Resolution int
}

var statsOpts = &statsOptions{}

var statsCmd = &cobra.Command{
	Use:   "stats <output.json>",
	Short: "Report outcomes and nearby duplicates for a processed file",
	Long: `
Prints a histogram of extraction outcomes for a processed records file and
lists records whose coordinates fall in the same H3 cell. Duplicate clusters
usually mean the geocoder answered with a city centroid for several vague
addresses, which is worth reviewing by hand.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		records, err := wiki.LoadRecords(args[0])
		if err != nil {
			return err
		}

		printHistogram(records)
		printDuplicates(records, statsOpts.H3Resolution)

		return nil
	},
}

func printHistogram(records []wiki.Record) {
	methods := make(map[wiki.Method]int)

	var addressOnly, unresolved int

	for i := range records {
		switch {
		case records[i].Coordinates != nil:
			methods[records[i].Coordinates.Method]++
		case records[i].Address != "":
			addressOnly++
		default:
			unresolved++
		}
	}

	fmt.Printf("%d records\n", len(records))

	for _, m := range []wiki.Method{
		wiki.MethodCoordSpan, wiki.MethodIndicator, wiki.MethodInfobox,
		wiki.MethodPageConfig, wiki.MethodMicroformat, wiki.MethodMapData,
		wiki.MethodGeocoded,
	} {
		if n := methods[m]; n > 0 {
			fmt.Printf("  %-12s %d\n", m, n)
		}
	}

	if addressOnly > 0 {
		fmt.Printf("  %-12s %d\n", "address_only", addressOnly)
	}

	if unresolved > 0 {
		fmt.Printf("  %-12s %d\n", "unresolved", unresolved)
	}
}

func printDuplicates(records []wiki.Record, resolution int) {
	// indexes of coordinated records, parallel to their points
	var indexes []int

	var points []spatial.Point

	for i := range records {
		if records[i].Coordinates == nil {
			continue
		}

		indexes = append(indexes, i)
		points = append(points, records[i].Coordinates.Point())
	}

	groups := spatial.GroupByCell(points, resolution)

	var cells []string

	clusters := make(map[string][]int)

	for cell, members := range groups {
		if len(members) < 2 {
			continue
		}

		key := cell.String()
		cells = append(cells, key)

		for _, m := range members {
			clusters[key] = append(clusters[key], indexes[m])
		}
	}

	if len(cells) == 0 {
		return
	}

	sort.Strings(cells)

	fmt.Printf("\n%d cells with more than one record (H3 resolution %d):\n", len(cells), resolution)

	for _, key := range cells {
		members := clusters[key]

		fmt.Printf("  cell %s:\n", key)

		for i, idx := range members {
			record := &records[idx]
			fmt.Printf("    %s (%s)", record.Name, record.Coordinates.Method)

			if i > 0 {
				first := records[members[0]].Coordinates.Point()
				point := record.Coordinates.Point()
				fmt.Printf(" - %.0f m from %s", first.HaversineDistance(&point), records[members[0]].Name)
			}

			fmt.Println()
		}
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.PersistentFlags().IntVar(
		&statsOpts.H3Resolution,
		"h3-res",
		8,
		"H3 resolution used to bucket nearby coordinates",
	)
}
