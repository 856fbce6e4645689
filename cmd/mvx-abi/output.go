// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
)

var (
	titleColor   = color.New(color.FgHiCyan, color.Bold)
	labelColor   = color.New(color.FgBlue)
	missingColor = color.New(color.FgYellow)
	goodColor    = color.New(color.FgGreen)
	badColor     = color.New(color.FgRed)
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// output prints v as JSON when --json is set and calls human otherwise.
func output(v any, human func(w io.Writer)) error {
	if jsonOutput {
		return printJSON(os.Stdout, v)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	human(tw)
	return tw.Flush()
}

func printTitle(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, titleColor.Sprintf(format, args...))
}

func printRow(w io.Writer, label string, format string, args ...any) {
	fmt.Fprintf(w, "  %s\t%s\n", labelColor.Sprint(label), fmt.Sprintf(format, args...))
}

func formatTime(ts uint64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(int64(ts), 0).UTC().Format("2006-01-02 15:04 UTC")
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case *big.Int:
		if v == nil {
			return "0"
		}
		return v.String()
	case []byte:
		return "0x" + hex.EncodeToString(v)
	case string:
		return fmt.Sprintf("%q", v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", value)
}

func yesNo(v bool) string {
	if v {
		return goodColor.Sprint("yes")
	}
	return badColor.Sprint("no")
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
