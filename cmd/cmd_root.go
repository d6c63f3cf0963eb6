// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jcodagnone/wikigeo/wiki"
	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "wikigeo",
	Short: "resolve place coordinates from Wikipedia articles",
	Long: `
wikigeo extracts geographic coordinates for named places from their Wikipedia
articles, trying the page's coordinate markup first and falling back to
geocoding the infobox address when the page carries none.
`,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func userAgent() string {
	return fmt.Sprintf("wikigeo/%s (+https://github.com/jcodagnone/wikigeo)", Version)
}

// registeredLanguages lists the language editions with a term list,
// for flag help texts.
func registeredLanguages() string {
	var langs []string

	_ = wiki.EachLanguage(func(terms wiki.Terms) error {
		langs = append(langs, terms.Lang)

		return nil
	})

	return strings.Join(langs, ", ")
}
