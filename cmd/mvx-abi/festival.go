// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pk910/mvx-abi/festival"
)

var (
	watchInterval    time.Duration
	watchMetricsAddr string
)

var festivalCmd = &cobra.Command{
	Use:   "festival",
	Short: "query the festival contract",
}

// festivalID returns the id argument or the configured festival.
func festivalID(a *app, args []string) (uint64, error) {
	if len(args) == 0 {
		return a.cfg.FestivalID, nil
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid festival id %q", args[0])
	}
	return id, nil
}

func festivalStatus(record *festival.FestivalData, now time.Time) string {
	switch {
	case record.HasEnded(now):
		return badColor.Sprint("ended")
	case record.IsActive(now):
		return goodColor.Sprint("active")
	}
	return "upcoming"
}

func printFestival(w io.Writer, record *festival.FestivalData, now time.Time) {
	printTitle(w, "%s (#%d)", record.Name, record.ID)
	printRow(w, "start", "%s", formatTime(record.StartTime))
	printRow(w, "end", "%s", formatTime(record.EndTime))
	printRow(w, "status", "%s", festivalStatus(record, now))
	printRow(w, "tickets", "%d / %d sold, %.1f%% available", record.SoldTickets, record.MaxTickets, record.AvailabilityPercent())
	printRow(w, "sold out", "%s", yesNo(record.IsSoldOut()))
	printRow(w, "inside", "%d", record.InsideCount)
}

var festivalGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "show one festival",
	Args:  cobra.MaximumNArgs(1),
	RunE: runApp(func(ctx context.Context, a *app, args []string) error {
		id, err := festivalID(a, args)
		if err != nil {
			return err
		}

		record, err := a.service.Festival(ctx, id)
		if err != nil {
			return err
		}

		return output(record, func(w io.Writer) {
			printFestival(w, record, time.Now())
		})
	}),
}

var festivalListCmd = &cobra.Command{
	Use:   "list",
	Short: "probe the configured id range for festivals",
	Args:  cobra.NoArgs,
	RunE: runApp(func(ctx context.Context, a *app, args []string) error {
		records, err := a.service.AllFestivals(ctx)
		if err != nil {
			return err
		}

		now := time.Now()
		return output(records, func(w io.Writer) {
			if len(records) == 0 {
				fmt.Fprintf(w, "no festivals in ids %d..%d\n", a.cfg.Probe.From, a.cfg.Probe.To)
			}
			for _, record := range records {
				printFestival(w, record, now)
			}
		})
	}),
}

var festivalPricesCmd = &cobra.Command{
	Use:   "prices [id]",
	Short: "list the ticket prices of a festival",
	Args:  cobra.MaximumNArgs(1),
	RunE: runApp(func(ctx context.Context, a *app, args []string) error {
		id, err := festivalID(a, args)
		if err != nil {
			return err
		}

		prices, err := a.service.TicketPrices(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now()
		return output(prices, func(w io.Writer) {
			for _, price := range prices {
				printTitle(w, "%s", price.Name)
				printRow(w, "type", "%s", price.TicketType)
				printRow(w, "phase", "%s", price.Phase)
				printRow(w, "price", "%s EGLD", price.PriceDisplay())
				printRow(w, "sale", "%s - %s", formatTime(price.SaleStart), formatTime(price.SaleEnd))
				printRow(w, "on sale", "%s", yesNo(price.IsOnSale(now)))
			}
		})
	}),
}

var festivalEventsCmd = &cobra.Command{
	Use:   "events [id]",
	Short: "list the events of a festival",
	Args:  cobra.MaximumNArgs(1),
	RunE: runApp(func(ctx context.Context, a *app, args []string) error {
		id, err := festivalID(a, args)
		if err != nil {
			return err
		}

		events, err := a.service.Events(ctx, id)
		if err != nil {
			return err
		}

		return output(events, func(w io.Writer) {
			for _, event := range events {
				printTitle(w, "%s", event.Name)
				printRow(w, "location", "%s", event.Location)
				printRow(w, "time", "%s - %s", formatTime(event.StartTime), formatTime(event.EndTime))
			}
		})
	}),
}

var festivalProductsCmd = &cobra.Command{
	Use:   "products [id]",
	Short: "list the shop products of a festival",
	Args:  cobra.MaximumNArgs(1),
	RunE: runApp(func(ctx context.Context, a *app, args []string) error {
		id, err := festivalID(a, args)
		if err != nil {
			return err
		}

		products, err := a.service.Products(ctx, id)
		if err != nil {
			return err
		}

		return output(products, func(w io.Writer) {
			for _, product := range products {
				printTitle(w, "%s (#%d)", product.Name, product.ProductID)
				printRow(w, "price", "%s EGLD", product.PriceDisplay())
				printRow(w, "description", "%s", product.Description)
				if product.ImageURL != "" {
					printRow(w, "image", "%s", product.ImageURL)
				}
			}
		})
	}),
}

type resaleOutput struct {
	*festival.ResaleListing
	Fees *festival.ResaleFees `json:"fees"`
}

var resaleCmd = &cobra.Command{
	Use:   "resale [id]",
	Short: "list the resale market of a festival",
	Args:  cobra.MaximumNArgs(1),
	RunE: runApp(func(ctx context.Context, a *app, args []string) error {
		id, err := festivalID(a, args)
		if err != nil {
			return err
		}

		listings, err := a.service.ResaleListings(ctx, id)
		if err != nil {
			return err
		}

		results := make([]*resaleOutput, 0, len(listings))
		for _, listing := range listings {
			results = append(results, &resaleOutput{
				ResaleListing: listing,
				Fees:          listing.Fees(),
			})
		}

		return output(results, func(w io.Writer) {
			if len(results) == 0 {
				fmt.Fprintln(w, "no resale listings")
			}
			for _, result := range results {
				printTitle(w, "ticket #%d", result.TicketNonce)
				printRow(w, "seller", "%s", result.Seller.Short())
				printRow(w, "price", "%s EGLD", festival.WeiToEgld(result.Price))
				printRow(w, "original", "%s EGLD (%+.1f%%)", festival.WeiToEgld(result.OriginalPrice), result.Markup())
				printRow(w, "fees", "%s EGLD", festival.WeiToEgld(result.Fees.TotalFees))
				printRow(w, "seller receives", "%s EGLD", festival.WeiToEgld(result.Fees.SellerReceives))
			}
		})
	}),
}

var festivalWatchCmd = &cobra.Command{
	Use:   "watch [id]",
	Short: "poll a festival and log ticket and attendance changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: runApp(func(ctx context.Context, a *app, args []string) error {
		id, err := festivalID(a, args)
		if err != nil {
			return err
		}
		if watchInterval <= 0 {
			return fmt.Errorf("interval must be positive")
		}

		metricsAddr := a.cfg.MetricsAddr
		if watchMetricsAddr != "" {
			metricsAddr = watchMetricsAddr
		}
		if metricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
			server := &http.Server{
				Addr:              metricsAddr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.log.Error("metrics server failed", zap.Error(err))
				}
			}()
			defer server.Close()
			a.log.Info("serving metrics", zap.String("addr", metricsAddr))
		}

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		var last *festival.FestivalData
		for {
			record, err := a.service.Festival(ctx, id)
			switch {
			case err != nil:
				a.log.Warn("failed loading festival", zap.Uint64("id", id), zap.Error(err))
			case last == nil || *last != *record:
				a.log.Info("festival state",
					zap.Uint64("id", record.ID),
					zap.String("name", record.Name),
					zap.Uint64("sold", record.SoldTickets),
					zap.Uint64("max", record.MaxTickets),
					zap.Uint64("inside", record.InsideCount),
				)
				last = record
			}

			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	}),
}

func init() {
	rootCmd.AddCommand(festivalCmd)
	festivalCmd.AddCommand(festivalGetCmd, festivalListCmd, festivalPricesCmd, festivalEventsCmd, festivalProductsCmd, festivalWatchCmd)
	rootCmd.AddCommand(resaleCmd)

	festivalWatchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 15*time.Second, "poll interval")
	festivalWatchCmd.Flags().StringVarP(&watchMetricsAddr, "metrics-addr", "", "", "serve prometheus metrics on this address")
}
