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
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"goscrapbook/internal/assets"
	"goscrapbook/internal/export"
	applog "goscrapbook/internal/log"
	"goscrapbook/internal/render"
	"goscrapbook/internal/textlayout"
	"goscrapbook/internal/vector"
)

func newExportCmd(g *globals) *cobra.Command {
	var (
		out     string
		format  string
		preset  string
		scale   float64
		pages   []int
		offline bool
	)
	cmd := &cobra.Command{
		Use:   "export [scrapbook.json]",
		Short: "Export pages as PNG, PDF or CBZ",
		Long: `Export the pages of a scrapbook file, or of the demo scrapbook when no file is given.
With --preset, every format of the preset is written under <out>/<preset>/.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			book, err := openScrapbook(path, time.Now())
			if err != nil {
				return err
			}
			l := applog.WithOperation(applog.WithComponent("cli"), "export")

			var images render.ImageSource
			if !offline {
				srcs := export.Sources(book)
				cache := assets.New(assets.Options{MaxEntries: len(srcs)})
				defer cache.Close()
				for _, src := range srcs {
					cache.Image(src)
				}
				cache.Wait()
				images = cache
			}

			idx := make([]int, 0, len(pages))
			for _, p := range pages {
				idx = append(idx, p-1)
			}
			opt := export.Options{
				Page:   vector.Size{W: g.cfg.Canvas.Width, H: g.cfg.Canvas.Height},
				Scale:  scale,
				Pages:  idx,
				Fonts:  textlayout.OTProvider{Lib: textlayout.DefaultLibrary()},
				Images: images,
			}
			if preset != "" {
				l.Info("batch export", slog.String("preset", preset), slog.String("out", out))
				if err := export.BatchExport(book, export.BatchOptions{Preset: export.PresetName(preset), OutDir: out, Options: opt}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s preset to %s\n", preset, out)
				return nil
			}

			l.Info("export", slog.String("format", format), slog.String("out", out))
			switch strings.ToLower(format) {
			case "png":
				written, err := export.ExportPNGPages(book, out, opt)
				if err != nil {
					return err
				}
				for _, w := range written {
					fmt.Fprintln(cmd.OutOrStdout(), w)
				}
				return nil
			case "pdf":
				err = export.ExportPDF(book, out, opt)
			case "cbz":
				err = export.ExportCBZ(book, out, opt)
			default:
				return fmt.Errorf("unknown format %q (want png, pdf or cbz)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "export", "output directory (png, presets) or file (pdf, cbz)")
	f.StringVarP(&format, "format", "f", "png", "png, pdf or cbz")
	f.StringVar(&preset, "preset", "", "export preset: web or print")
	f.Float64Var(&scale, "scale", 0, "output pixels per canvas pixel (default 1, or the preset's)")
	f.IntSliceVar(&pages, "page", nil, "1-based page to export; repeatable (default all)")
	f.BoolVar(&offline, "offline", false, "do not download remote images; draw placeholders")
	return cmd
}
