//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"goscrapbook/internal/assets"
	"goscrapbook/internal/config"
	"goscrapbook/internal/crash"
	applog "goscrapbook/internal/log"
	"goscrapbook/internal/telemetry"
	"goscrapbook/internal/textlayout"
)

// Run opens the scrapbook editor window and blocks until it is closed.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("scrapbook", opts.Book.Title), slog.Int("pages", len(opts.Book.Pages)))
	cfg := opts.Config

	fyneApp := app.NewWithID("goscrapbook")
	applyTheme(fyneApp.Settings(), cfg.General.Theme)
	w := fyneApp.NewWindow("Scrapbook")
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1100), 800)
	winH := max(prefs.IntWithFallback("window.height", 820), 600)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	var ws *workspace
	images := assets.New(assets.Options{OnLoad: func(src string) {
		fyne.Do(func() {
			if ws != nil {
				ws.canvas.Refresh()
			}
		})
	}})
	defer images.Close()

	tc := telemetry.New(telemetry.FromAppConfig(cfg))
	telemetry.SetDefault(tc)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		tc.Flush(ctx)
	}()

	ws = newWorkspace(workspaceDeps{
		Book:      opts.Book,
		Config:    cfg,
		Window:    w,
		Images:    images,
		Fonts:     textlayout.OTProvider{Lib: textlayout.DefaultLibrary()},
		Telemetry: tc,
		Logger:    l,
	})
	defer crash.Recover(ws.session)
	w.SetContent(ws.content)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.ConfigPath != "" {
		go func() {
			err := config.Watch(ctx, opts.ConfigPath, 300*time.Millisecond, func(c config.AppConfig) {
				applog.SetLevel(c.Logging.Level)
				fyne.Do(func() { applyTheme(fyneApp.Settings(), c.General.Theme) })
			})
			if err != nil {
				l.Warn("config watch stopped", slog.Any("err", err))
			}
		}()
	}

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		w.Close()
	})

	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}
