// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

// Package config holds the settings of the mvx-abi command line tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	mvxabi "github.com/pk910/mvx-abi"
	"github.com/pk910/mvx-abi/address"
)

const (
	DefaultAPIURL     = "https://devnet-api.multiversx.com"
	DefaultContract   = "erd1qqqqqqqqqqqqqpgq7kpf8d4eyy6umdgeug8la0ss64uxeg4cn2jsuxvsq2"
	DefaultFestivalID = 8
	DefaultTimeout    = 10 * time.Second
	DefaultCacheTTL   = 30 * time.Second
)

// Config is the tool configuration.
type Config struct {
	APIURL      string        `yaml:"api_url"`
	Contract    string        `yaml:"contract"`
	FestivalID  uint64        `yaml:"festival_id"`
	TicketToken string        `yaml:"ticket_token"`
	Timeout     time.Duration `yaml:"timeout"`
	Probe       ProbeConfig   `yaml:"probe"`
	Cache       CacheConfig   `yaml:"cache"`
	MetricsAddr string        `yaml:"metrics_addr"`
	Decoder     DecoderConfig `yaml:"decoder"`
}

// ProbeConfig is the festival id range scanned when listing festivals.
type ProbeConfig struct {
	From uint64 `yaml:"from"`
	To   uint64 `yaml:"to"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// DecoderConfig configures response decoding.
type DecoderConfig struct {
	Strict                 bool           `yaml:"strict"`
	RequireFullConsumption bool           `yaml:"require_full_consumption"`
	SchemaFiles            []string       `yaml:"schema_files"`
	SpecValues             map[string]any `yaml:"spec_values"`
}

// Default returns the devnet configuration.
func Default() *Config {
	return &Config{
		APIURL:     DefaultAPIURL,
		Contract:   DefaultContract,
		FestivalID: DefaultFestivalID,
		Timeout:    DefaultTimeout,
		Probe: ProbeConfig{
			From: 1,
			To:   10,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     DefaultCacheTTL,
		},
		Decoder: DecoderConfig{
			SpecValues: map[string]any{},
		},
	}
}

// Load reads a yaml config file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading config: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	return config, nil
}

// Parse decodes a yaml config on top of the defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	config := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed parsing config: %w", err)
	}

	if config.Decoder.SpecValues == nil {
		config.Decoder.SpecValues = map[string]any{}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api_url %q is not a http url", c.APIURL)
	}
	if _, err := address.FromBech32(c.Contract); err != nil {
		return fmt.Errorf("invalid contract address: %w", err)
	}
	if c.Probe.From > c.Probe.To {
		return fmt.Errorf("probe range %d..%d is empty", c.Probe.From, c.Probe.To)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive")
	}

	return nil
}

// CallOptions returns the decode options selected by the decoder section.
func (c *Config) CallOptions() []mvxabi.CallOption {
	opts := []mvxabi.CallOption{}
	if c.Decoder.Strict {
		opts = append(opts, mvxabi.WithStrict())
	}
	if c.Decoder.RequireFullConsumption {
		opts = append(opts, mvxabi.WithRequireFullConsumption())
	}
	return opts
}

// SchemaRegistry returns the builtin schemas extended by the configured
// schema files.
func (c *Config) SchemaRegistry() (*mvxabi.SchemaRegistry, error) {
	registry := mvxabi.DefaultSchemaRegistry()

	for _, path := range c.Decoder.SchemaFiles {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed opening schema file: %w", err)
		}

		err = registry.LoadFrom(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("%v: %w", path, err)
		}
	}

	return registry, nil
}
