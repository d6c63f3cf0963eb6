// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

// Package config supplies environment-variable overrides for the
// delay ranges and the geocoder endpoint. Everything else is flags.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the environment-overridable settings. Values feed the
// CLI flag defaults, so explicit flags always win.
type Config struct {
	FetchDelayMin    time.Duration `mapstructure:"fetch_delay_min"`
	FetchDelayMax    time.Duration `mapstructure:"fetch_delay_max"`
	GeocodeDelayMin  time.Duration `mapstructure:"geocode_delay_min"`
	GeocodeDelayMax  time.Duration `mapstructure:"geocode_delay_max"`
	GeocoderEndpoint string        `mapstructure:"geocoder_endpoint"`
}

// Default returns the built-in configuration, used when the
// environment supplies nothing.
func Default() *Config {
	return &Config{
		FetchDelayMin:    time.Second,
		FetchDelayMax:    3 * time.Second,
		GeocodeDelayMin:  time.Second,
		GeocodeDelayMax:  2 * time.Second,
		GeocoderEndpoint: "https://nominatim.openstreetmap.org",
	}
}

// Load reads the configuration from WIKIGEO_-prefixed environment
// variables, e.g. WIKIGEO_FETCH_DELAY_MIN=500ms, falling back to the
// defaults for anything unset.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("WIKIGEO")
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("fetch_delay_min", defaults.FetchDelayMin)
	v.SetDefault("fetch_delay_max", defaults.FetchDelayMax)
	v.SetDefault("geocode_delay_min", defaults.GeocodeDelayMin)
	v.SetDefault("geocode_delay_max", defaults.GeocodeDelayMax)
	v.SetDefault("geocoder_endpoint", defaults.GeocoderEndpoint)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects inverted delay ranges and an empty endpoint.
func (c *Config) Validate() error {
	if c.FetchDelayMin < 0 || c.FetchDelayMax < c.FetchDelayMin {
		return fmt.Errorf("invalid fetch delay range [%s, %s]", c.FetchDelayMin, c.FetchDelayMax)
	}

	if c.GeocodeDelayMin < 0 || c.GeocodeDelayMax < c.GeocodeDelayMin {
		return fmt.Errorf("invalid geocode delay range [%s, %s]", c.GeocodeDelayMin, c.GeocodeDelayMax)
	}

	if c.GeocoderEndpoint == "" {
		return fmt.Errorf("geocoder endpoint must not be empty")
	}

	return nil
}
