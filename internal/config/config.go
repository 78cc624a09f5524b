/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	applog "goscrapbook/internal/log"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Logging       LoggingConfig `yaml:"logging"`
}

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark"
}

// CanvasConfig sizes the page canvas and tunes gesture quantization.
type CanvasConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	SnapStep      float64 `yaml:"snap_step"`
	DragFootprint float64 `yaml:"drag_footprint"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Canvas:        CanvasConfig{Width: 800, Height: 600, SnapStep: 15, DragFootprint: 100},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath     = "SCB_CONFIG"
	EnvTelemetryOptIn = "SCB_TELEMETRY_OPT_IN"
	EnvTheme          = "SCB_THEME"
	EnvCanvasWidth    = "SCB_CANVAS_WIDTH"
	EnvCanvasHeight   = "SCB_CANVAS_HEIGHT"
	EnvLogLevel       = "SCB_LOG_LEVEL"
	EnvLogFormat      = "SCB_LOG_FORMAT"
	EnvLogSource      = "SCB_LOG_SOURCE"
	EnvLogFile        = "SCB_LOG_FILE"
)

// ConfigPath returns the per-user config file path. SCB_CONFIG takes precedence.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoScrapbook")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoScrapbook")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "goscrapbook")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "goscrapbook")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit file path. A missing file yields defaults;
// a malformed one is reported but defaults (plus env) are still returned.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	var loadErr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			loadErr = fmt.Errorf("parse config %s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		loadErr = fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, loadErr
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg as YAML to path, creating the parent directory.
func SaveTo(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if s := strings.ToLower(strings.TrimSpace(src.General.Theme)); s != "" {
		dst.General.Theme = s
	}
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if src.Canvas.Width > 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height > 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if src.Canvas.SnapStep > 0 {
		dst.Canvas.SnapStep = src.Canvas.SnapStep
	}
	if src.Canvas.DragFootprint > 0 {
		dst.Canvas.DragFootprint = src.Canvas.DragFootprint
	}
	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = strings.ToLower(s)
	}
	dst.Logging.Source = src.Logging.Source
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.General.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasWidth)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Canvas.Width = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasHeight)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Canvas.Height = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var name string
	switch key {
	case "general.telemetry_opt_in":
		name = EnvTelemetryOptIn
	case "general.theme":
		name = EnvTheme
	case "canvas.width":
		name = EnvCanvasWidth
	case "canvas.height":
		name = EnvCanvasHeight
	case "logging.level":
		name = EnvLogLevel
	case "logging.format":
		name = EnvLogFormat
	case "logging.source":
		name = EnvLogSource
	case "logging.file":
		name = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(name) != "" {
		return name, true
	}
	return "", false
}

// Watch reloads the config at path whenever it is written and passes the result to fn.
// The parent directory is watched so editors that replace the file atomically still trigger.
// Bursts of events within debounce are collapsed. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, fn func(AppConfig)) error {
	l := applog.WithOperation(applog.WithComponent("config"), "watch").With(slog.String("path", path))
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	var timer *time.Timer
	var fire <-chan time.Time
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cfg, err := LoadFrom(path)
			if err != nil {
				l.Warn("config reload failed", slog.Any("err", err))
				continue
			}
			l.Info("config reloaded", slog.String("theme", cfg.General.Theme), slog.String("log_level", cfg.Logging.Level))
			fn(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Warn("watcher error", slog.Any("err", err))
		}
	}
}
