// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pk910/mvx-abi/address"
)

var ticketsToken string

var ticketsCmd = &cobra.Command{
	Use:   "tickets <bech32>",
	Short: "list the festival tickets held by an account",
	Args:  cobra.ExactArgs(1),
	RunE: runApp(func(ctx context.Context, a *app, args []string) error {
		owner, err := address.FromBech32(args[0])
		if err != nil {
			return fmt.Errorf("invalid account: %w", err)
		}

		token := a.cfg.TicketToken
		if ticketsToken != "" {
			token = ticketsToken
		}

		tickets, err := a.service.UserTickets(ctx, owner.Bech32(), token)
		if err != nil {
			return err
		}

		return output(tickets, func(w io.Writer) {
			if len(tickets) == 0 {
				fmt.Fprintf(w, "no tickets held by %s\n", owner.Short())
			}
			for _, ticket := range tickets {
				printTitle(w, "%s", ticket.Name)
				printRow(w, "token", "%s", ticket.TokenID)
				printRow(w, "nonce", "%d", ticket.Nonce)
				printRow(w, "balance", "%s", ticket.Balance)
				printRow(w, "uris", "%s", joinOr(ticket.URIs, "-"))
			}
		})
	}),
}

type addressOutput struct {
	Bech32        string `json:"bech32"`
	Hex           string `json:"hex"`
	SmartContract bool   `json:"smartContract"`
}

var addressCmd = &cobra.Command{
	Use:   "address <bech32|hex>",
	Short: "convert an address between bech32 and hex",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := address.Parse(args[0])
		if err != nil {
			return err
		}

		result := &addressOutput{
			Bech32:        addr.Bech32(),
			Hex:           addr.Hex(),
			SmartContract: addr.IsSmartContract(),
		}

		return output(result, func(w io.Writer) {
			printTitle(w, "%s", addr.Short())
			printRow(w, "bech32", "%s", result.Bech32)
			printRow(w, "hex", "%s", result.Hex)
			printRow(w, "contract", "%s", yesNo(result.SmartContract))
		})
	},
}

func init() {
	rootCmd.AddCommand(ticketsCmd)
	ticketsCmd.Flags().StringVarP(&ticketsToken, "token", "t", "", "ticket collection, defaults to the configured ticket_token")

	rootCmd.AddCommand(addressCmd)
}
