// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	mvxabi "github.com/pk910/mvx-abi"
	"github.com/pk910/mvx-abi/query"
)

var (
	decodeSchema     string
	decodeFile       string
	decodeStrict     bool
	decodeKeepAbsent bool
)

type decodeResult struct {
	Index   int          `json:"index"`
	Absent  bool         `json:"absent,omitempty"`
	Missing []string     `json:"missing,omitempty"`
	Fields  mvxabi.Tuple `json:"fields"`
}

var decodeCmd = &cobra.Command{
	Use:   "decode --schema NAME [base64...]",
	Short: "decode returnData items with a schema",
	Long: `Decodes base64 returnData items with a registered schema.

Items are read from the arguments or from --file. A file may hold a raw query
response, a JSON array of items or whitespace separated items. Use "-" to read
from stdin.`,
	RunE: runApp(runDecode),
}

func runDecode(ctx context.Context, a *app, args []string) error {
	registry, err := a.cfg.SchemaRegistry()
	if err != nil {
		return err
	}

	schema, ok := registry.Get(decodeSchema)
	if !ok {
		schema, ok = registry.ByFunction(decodeSchema)
	}
	if !ok {
		return fmt.Errorf("unknown schema %q, known schemas: %v", decodeSchema, strings.Join(registry.Names(), ", "))
	}

	items := args
	if decodeFile != "" {
		items, err = readReturnData(decodeFile)
		if err != nil {
			return err
		}
	}
	if len(items) == 0 {
		return fmt.Errorf("no items to decode")
	}

	opts := a.cfg.CallOptions()
	if decodeStrict {
		opts = append(opts, mvxabi.WithStrict())
	}

	results := []*decodeResult{}
	for idx, item := range items {
		tuple, err := schema.DecodeBase64(item, opts...)
		if err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}

		result := &decodeResult{
			Index:   idx,
			Absent:  schema.IsAbsent(tuple),
			Missing: tuple.MissingFields(),
			Fields:  tuple,
		}
		if result.Absent && !decodeKeepAbsent {
			continue
		}
		results = append(results, result)
	}

	return output(results, func(w io.Writer) {
		for _, result := range results {
			title := fmt.Sprintf("%s #%d", schema.Name, result.Index)
			if result.Absent {
				title += " (absent)"
			}
			printTitle(w, "%s", title)

			for _, field := range result.Fields {
				value := formatValue(field.Value)
				if field.Missing {
					value = missingColor.Sprintf("%s (missing)", value)
				}
				printRow(w, field.Name, "%s\t%s", field.Kind, value)
			}
		}
	})
}

// readReturnData reads returnData items from a file.
func readReturnData(path string) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return nil, nil
	case data[0] == '{':
		response, err := query.ParseResponse(data)
		if err != nil {
			return nil, fmt.Errorf("invalid query response: %w", err)
		}
		return response.ReturnData, nil
	case data[0] == '[':
		items := []string{}
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("invalid item list: %w", err)
		}
		return items, nil
	}

	return strings.Fields(string(data)), nil
}

var schemasFile string

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "list the registered schemas",
	RunE: runApp(func(ctx context.Context, a *app, args []string) error {
		if schemasFile != "" {
			a.cfg.Decoder.SchemaFiles = append(a.cfg.Decoder.SchemaFiles, schemasFile)
		}

		registry, err := a.cfg.SchemaRegistry()
		if err != nil {
			return err
		}

		schemas := []*mvxabi.Schema{}
		for _, name := range registry.Names() {
			schema, _ := registry.Get(name)
			schemas = append(schemas, schema)
		}

		return output(schemas, func(w io.Writer) {
			for _, schema := range schemas {
				printTitle(w, "%s\t%s", schema.Name, schema.Function)
				for _, field := range schema.Fields {
					required := ""
					if field.Required {
						required = "required"
					}
					printRow(w, field.Name, "%s\t%s", field.Kind, required)
				}
			}
		})
	}),
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeSchema, "schema", "s", "", "schema name or contract function")
	decodeCmd.Flags().StringVarP(&decodeFile, "file", "f", "", "read items from a file")
	decodeCmd.Flags().BoolVarP(&decodeStrict, "strict", "", false, "fail on short or oversized fields")
	decodeCmd.Flags().BoolVarP(&decodeKeepAbsent, "keep-absent", "", false, "print absent records")
	_ = decodeCmd.MarkFlagRequired("schema")

	rootCmd.AddCommand(schemasCmd)
	schemasCmd.Flags().StringVarP(&schemasFile, "file", "f", "", "additional schema file")
}
