// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	mvxabi "github.com/pk910/mvx-abi"
	"github.com/pk910/mvx-abi/config"
	"github.com/pk910/mvx-abi/festival"
	"github.com/pk910/mvx-abi/query"
)

var (
	configPath   string
	apiURL       string
	contractAddr string
	verbose      bool
	jsonOutput   bool
)

var rootCmd = &cobra.Command{
	Use:           "mvx-abi",
	Short:         "decode MultiversX contract responses",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		bailf("error: %v", err)
	}
}

func bailf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// app bundles the components shared by all commands.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	abi      *mvxabi.MvxAbi
	registry *prometheus.Registry
	cache    *query.Cache
	client   *query.Client
	service  *festival.Service
}

func newLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(level))

	return zap.New(core)
}

// loadApp reads the config, applies the global flags and builds the
// decoder and the query stack.
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("contract") {
		cfg.Contract = contractAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		log:      newLogger(verbose),
		registry: prometheus.NewRegistry(),
	}

	abiOpts := []mvxabi.MvxAbiOption{
		mvxabi.WithLogCb(a.log.Sugar().Debugf),
	}
	if verbose {
		abiOpts = append(abiOpts, mvxabi.WithVerbose())
	}
	a.abi = mvxabi.NewMvxAbi(cfg.Decoder.SpecValues, abiOpts...)

	clientOpts := []query.ClientOption{
		query.WithLogger(a.log.Named("query")),
		query.WithMetrics(query.NewMetrics(a.registry)),
	}
	if cfg.Cache.Enabled {
		a.cache, err = query.NewCache(cmd.Context(), cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, query.WithCache(a.cache))
	}
	a.client = query.NewClient(cfg.APIURL, cfg.Timeout, clientOpts...)

	a.service = festival.NewService(a.client, a.abi, cfg.Contract,
		festival.WithServiceLogger(a.log.Named("festival")),
		festival.WithDecodeOptions(cfg.CallOptions()...),
		festival.WithProbeRange(cfg.Probe.From, cfg.Probe.To),
	)

	return a, nil
}

func (a *app) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("failed closing cache", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// runApp wraps a command body with app setup and teardown.
func runApp(fn func(ctx context.Context, a *app, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return fn(cmd.Context(), a, args)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a yaml config file")
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "", config.DefaultAPIURL, "MultiversX api url")
	rootCmd.PersistentFlags().StringVarP(&contractAddr, "contract", "", config.DefaultContract, "festival contract address")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decoding steps and queries")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "", false, "output in JSON format")
}
