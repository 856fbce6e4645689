// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

// Package mvxabi decodes MultiversX smart contract responses in nested encoding.
package mvxabi

type MvxAbiOption func(*MvxAbiOptions)

type MvxAbiOptions struct {
	Verbose bool
	LogCb   func(format string, args ...any)
}

func WithVerbose() MvxAbiOption {
	return func(opts *MvxAbiOptions) {
		opts.Verbose = true
	}
}

func WithLogCb(logCb func(format string, args ...any)) MvxAbiOption {
	return func(opts *MvxAbiOptions) {
		opts.LogCb = logCb
	}
}

// CallOption is a functional option for per-call configuration of
// UnmarshalNested and the functions built on top of it.
type CallOption func(*callConfig)

// callConfig holds per-call decoding configuration.
type callConfig struct {
	// strict turns short reads into errors instead of zero values.
	strict bool

	// missingFields receives the paths of all fields that were left at their
	// zero value because the buffer ran out.
	missingFields *[]string

	// requireFullConsumption rejects buffers with trailing bytes.
	requireFullConsumption bool
}

// applyCallOptions applies all provided CallOptions to a callConfig and returns it.
func applyCallOptions(opts []CallOption) *callConfig {
	cfg := &callConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithStrict makes a short read fail the whole decoding with an error wrapping
// abiutils.ErrUnexpectedEOF that names the affected field.
//
// Without this option decoding is best-effort: a field that does not fit into
// the remaining bytes gets its zero value and the read position stays where it
// was, so the following fields are read from the same position.
func WithStrict() CallOption {
	return func(cfg *callConfig) {
		cfg.strict = true
	}
}

// StrictMode reports whether the given call options enable strict decoding.
func StrictMode(opts ...CallOption) bool {
	return applyCallOptions(opts).strict
}

// WithMissingFields reports the fields that were defaulted during a
// best-effort decoding. The slice is reset at the start of each call.
//
// Example usage:
//
//	var missing []string
//	err := abi.UnmarshalNested(&record, data, mvxabi.WithMissingFields(&missing))
//	if len(missing) > 0 {
//	    log.Printf("response was truncated, defaulted: %v", missing)
//	}
func WithMissingFields(missing *[]string) CallOption {
	return func(cfg *callConfig) {
		cfg.missingFields = missing
	}
}

// WithRequireFullConsumption rejects buffers that still contain bytes after
// the last field was decoded.
func WithRequireFullConsumption() CallOption {
	return func(cfg *callConfig) {
		cfg.requireFullConsumption = true
	}
}
