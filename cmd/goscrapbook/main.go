/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"goscrapbook/internal/config"
	applog "goscrapbook/internal/log"
	"goscrapbook/internal/version"
)

// globals carries what the root command resolves for its subcommands.
type globals struct {
	configFlag string
	configPath string
	cfg        config.AppConfig
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "goscrapbook",
		Short: "A desktop scrapbook page editor",
		Long: `goscrapbook lays out text, photos and stickers on scrapbook pages.
Elements can be dragged, rotated and scaled directly on the canvas.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&g.configFlag, "config", "", "config file (default $"+config.EnvConfigPath+" or the user config directory)")
	root.AddCommand(newUICmd(g), newDemoCmd(), newValidateCmd(), newExportCmd(g), newTokenCmd(), newVersionCmd())
	return root
}

// load reads the config and initializes logging from it. A broken config
// file is logged and the defaults are used.
func (g *globals) load(cmd *cobra.Command) error {
	path := g.configFlag
	var pathErr error
	if path == "" {
		path, pathErr = config.ConfigPath()
	}
	var loadErr error
	if pathErr == nil {
		g.cfg, loadErr = config.LoadFrom(path)
		g.configPath = path
	} else {
		g.cfg, loadErr = config.Load()
	}
	lc := g.cfg.Logging
	applog.Init(applog.Options{Level: lc.Level, Format: lc.Format, AddSource: lc.Source, File: lc.File, Writer: cmd.ErrOrStderr()})
	l := applog.WithComponent("cli")
	if err := errors.Join(pathErr, loadErr); err != nil {
		l.Warn("using default config", slog.Any("err", err))
	}
	l.Debug("start", slog.String("cmd", cmd.Name()), slog.String("config", g.configPath))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
