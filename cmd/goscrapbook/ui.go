/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/seed"
	"goscrapbook/internal/ui"
)

func newUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "ui [scrapbook.json]",
		Short: "Open the editor (build with -tags fyne for the desktop UI)",
		Long:  "Open the editor on a scrapbook JSON file, or on the demo scrapbook when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			book, err := openScrapbook(path, time.Now())
			if err != nil {
				return err
			}
			return ui.Run(ui.Options{Book: book, Config: g.cfg, ConfigPath: g.configPath})
		},
	}
}

// openScrapbook reads a scrapbook file, or returns a fresh demo when path is empty.
func openScrapbook(path string, now time.Time) (domain.Scrapbook, error) {
	if path == "" {
		return seed.Demo(now)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Scrapbook{}, err
	}
	book, err := seed.Decode(data)
	if err != nil {
		return domain.Scrapbook{}, fmt.Errorf("%s: %w", path, err)
	}
	return book, nil
}
