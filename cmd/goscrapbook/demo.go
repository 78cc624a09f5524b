/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/seed"
)

func newDemoCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print the demo scrapbook",
		Long:  "Print a summary of the demo scrapbook, or the whole document with --json. Ids and timestamps are fresh on every run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			book, err := seed.Demo(time.Now().UTC())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(book)
			}
			fmt.Fprintf(out, "Title: %s\n", book.Title)
			fmt.Fprintf(out, "Pages: %d\n", len(book.Pages))
			for i, p := range book.Pages {
				fmt.Fprintf(out, "  %d. %s [%s] %s\n", i+1, p.Title, p.Background, kindSummary(p.Elements))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the scrapbook as JSON")
	return cmd
}

// kindSummary counts elements per kind in first-seen order, e.g. "1 text, 2 image".
func kindSummary(elems []domain.Element) string {
	if len(elems) == 0 {
		return "empty"
	}
	counts := map[domain.Kind]int{}
	var order []domain.Kind
	for _, el := range elems {
		k := el.Kind()
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}
	parts := make([]string, 0, len(order))
	for _, k := range order {
		parts = append(parts, fmt.Sprintf("%d %s", counts[k], k))
	}
	return strings.Join(parts, ", ")
}
