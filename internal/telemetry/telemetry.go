/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package telemetry provides a tiny, privacy‑respecting, opt‑in event sender
// for anonymous usage metrics and optional crash uploads.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"goscrapbook/internal/config"
	applog "goscrapbook/internal/log"
	"goscrapbook/internal/version"
)

// Usage events recorded by the editor session.
const (
	EventElementAdded      = "element_added"
	EventElementRemoved    = "element_removed"
	EventPageAdded         = "page_added"
	EventBackgroundChanged = "background_changed"
)

// Environment variables read by FromEnv.
const (
	EnvURL       = "SCB_TELEMETRY_URL"
	EnvCrashURL  = "SCB_CRASH_UPLOAD_URL"
	EnvTimeoutMS = "SCB_TELEMETRY_TIMEOUT_MS"
	EnvDebug     = "SCB_TELEMETRY_DEBUG"
)

// Config holds runtime configuration for telemetry and crash uploads.
// All telemetry is strictly opt‑in and disabled by default. If no URLs are
// set, events are dropped even when opt‑in is true.
type Config struct {
	OptIn        bool
	EventsURL    string
	CrashURL     string
	Timeout      time.Duration
	DebugLogging bool
	QueueSize    int
	// Token is sent as a bearer token when set.
	Token string
}

// FromEnv builds a Config from SCB_* variables. Opt‑in follows
// config.EnvTelemetryOptIn.
func FromEnv() Config {
	cfg := Config{
		OptIn:        parseBool(os.Getenv(config.EnvTelemetryOptIn)),
		EventsURL:    strings.TrimSpace(os.Getenv(EnvURL)),
		CrashURL:     strings.TrimSpace(os.Getenv(EnvCrashURL)),
		Timeout:      1500 * time.Millisecond,
		DebugLogging: os.Getenv(EnvDebug) != "",
		QueueSize:    64,
	}
	if ms := strings.TrimSpace(os.Getenv(EnvTimeoutMS)); ms != "" {
		if v, err := time.ParseDuration(ms + "ms"); err == nil && v > 0 {
			cfg.Timeout = v
		}
	}
	return cfg
}

func parseBool(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// FromAppConfig is FromEnv with the opt‑in taken from the loaded app config,
// which already has env overrides applied.
func FromAppConfig(app config.AppConfig) Config {
	cfg := FromEnv()
	cfg.OptIn = app.General.TelemetryOptIn
	if cfg.OptIn {
		tok, err := config.TelemetryToken()
		if err != nil {
			applog.WithComponent("telemetry").Debug("no telemetry token", slog.Any("err", err))
		}
		cfg.Token = tok
	}
	return cfg
}

// Sink receives usage events. The editor session depends on this rather
// than on Client so tests can record events.
type Sink interface {
	Event(name string, props map[string]any)
}

// Nop drops everything.
type Nop struct{}

func (Nop) Event(string, map[string]any) {}

type event struct {
	Name    string         `json:"name"`
	TS      string         `json:"ts"`
	Version string         `json:"version"`
	OS      string         `json:"os"`
	Arch    string         `json:"arch"`
	Props   map[string]any `json:"props,omitempty"`
}

// Client is a minimal async sender; it drops events silently on errors.
// It never blocks the caller; the queue is bounded and full queues drop.
type Client struct {
	cfg     Config
	log     *slog.Logger
	cli     *http.Client
	q       chan event
	once    sync.Once
	closed  chan struct{}
	dropped sync.Map // event name -> struct{}, logged once per name
}

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// Default returns the package‑level client, creating it from env on first use.
func Default() *Client {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient == nil {
		defaultClient = New(FromEnv())
	}
	return defaultClient
}

// SetDefault replaces the package‑level client and closes the previous one.
func SetDefault(c *Client) {
	defaultMu.Lock()
	old := defaultClient
	defaultClient = c
	defaultMu.Unlock()
	if old != nil && old != c {
		old.Close()
	}
}

// New constructs a client and starts its sender goroutine.
func New(cfg Config) *Client {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 1500 * time.Millisecond
	}
	c := &Client{
		cfg:    cfg,
		log:    applog.WithComponent("telemetry"),
		cli:    &http.Client{Timeout: cfg.Timeout},
		q:      make(chan event, cfg.QueueSize),
		closed: make(chan struct{}),
	}
	go c.loop()
	return c
}

// Enabled reports whether anonymous telemetry is enabled and an endpoint is configured.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Event queues a small JSON event if enabled. Props must not carry user
// content; ids and kinds only.
func (c *Client) Event(name string, props map[string]any) {
	if !c.Enabled() || name == "" {
		return
	}
	ev := event{
		Name:    name,
		TS:      time.Now().UTC().Format(time.RFC3339Nano),
		Version: version.String(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	if len(props) > 0 {
		ev.Props = make(map[string]any, len(props))
		for k, v := range props {
			ev.Props[k] = v
		}
	}
	select {
	case <-c.closed:
	case c.q <- ev:
	default:
		if _, seen := c.dropped.LoadOrStore(name, struct{}{}); !seen && c.cfg.DebugLogging {
			c.log.Debug("telemetry queue full, dropping", slog.String("event", name))
		}
	}
}

// Flush waits briefly for the queue to drain.
func (c *Client) Flush(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	deadline := time.Now().Add(500 * time.Millisecond)
	for len(c.q) > 0 && time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return
		case <-time.After(25 * time.Millisecond):
		}
	}
}

// Close stops the background goroutine. Queued events are abandoned.
func (c *Client) Close() { c.once.Do(func() { close(c.closed) }) }

func (c *Client) loop() {
	for {
		select {
		case <-c.closed:
			return
		case ev := <-c.q:
			c.post(c.cfg.EventsURL, "application/json", mustJSON(ev), "event")
		}
	}
}

func mustJSON(ev event) []byte {
	b, err := json.Marshal(ev)
	if err != nil {
		// props with unsupported values; keep the name at least
		ev.Props = nil
		b, _ = json.Marshal(ev)
	}
	return b
}

func (c *Client) post(url, contentType string, body []byte, what string) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", contentType)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	resp, err := c.cli.Do(req)
	if err != nil {
		if c.cfg.DebugLogging {
			c.log.Debug("telemetry send failed", slog.String("what", what), slog.Any("err", err))
		}
		return
	}
	_ = resp.Body.Close()
	if c.cfg.DebugLogging {
		c.log.Debug("telemetry sent", slog.String("what", what), slog.Int("status", resp.StatusCode))
	}
}

// UploadCrash posts an already‑serialized crash report to the configured crash URL if opt‑in.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	go c.post(c.cfg.CrashURL, "text/plain; charset=utf-8", append([]byte(nil), report...), "crash")
}

// UploadCrash using the default client.
func UploadCrash(report []byte) { Default().UploadCrash(report) }
