/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zalando/go-keyring"

	"goscrapbook/internal/config"
)

type capture struct {
	mu      sync.Mutex
	events  [][]byte
	crashes [][]byte
	auth    []string
}

func (c *capture) server(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.events = append(c.events, b)
		c.auth = append(c.auth, r.Header.Get("Authorization"))
		c.mu.Unlock()
	})
	mux.HandleFunc("/crash", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.crashes = append(c.crashes, b)
		c.mu.Unlock()
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (c *capture) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events), len(c.crashes)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestClient_EventAndUploadCrash(t *testing.T) {
	var cap capture
	srv := cap.server(t)

	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", CrashURL: srv.URL + "/crash", Timeout: 2 * time.Second})
	defer c.Close()
	if !c.Enabled() {
		t.Fatalf("expected client to be enabled")
	}

	c.Event(EventElementAdded, map[string]any{"kind": "text"})
	c.Flush(context.Background())
	waitFor(t, func() bool { n, _ := cap.counts(); return n == 1 })

	var got event
	cap.mu.Lock()
	err := json.Unmarshal(cap.events[0], &got)
	cap.mu.Unlock()
	if err != nil {
		t.Fatalf("bad event json: %v", err)
	}
	if got.Name != EventElementAdded || got.TS == "" || got.Props["kind"] != "text" {
		t.Fatalf("unexpected event: %+v", got)
	}

	c.UploadCrash([]byte("STACKTRACE"))
	waitFor(t, func() bool { _, n := cap.counts(); return n == 1 })
}

func TestClient_SendsBearerToken(t *testing.T) {
	var cap capture
	srv := cap.server(t)
	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", Token: "abc"})
	defer c.Close()
	c.Event(EventPageAdded, nil)
	c.Flush(context.Background())
	waitFor(t, func() bool { n, _ := cap.counts(); return n == 1 })
	cap.mu.Lock()
	defer cap.mu.Unlock()
	if cap.auth[0] != "Bearer abc" {
		t.Fatalf("authorization = %q", cap.auth[0])
	}
}

func TestFromAppConfigReadsTokenWhenOptedIn(t *testing.T) {
	keyring.MockInit()
	if err := config.SetTelemetryToken("tok"); err != nil {
		t.Fatal(err)
	}
	app := config.Defaults()
	if FromAppConfig(app).Token != "" {
		t.Fatal("token read without opt-in")
	}
	app.General.TelemetryOptIn = true
	if got := FromAppConfig(app).Token; got != "tok" {
		t.Fatalf("token = %q", got)
	}
}

func TestClient_DisabledAndEmptyEventName(t *testing.T) {
	var cap capture
	srv := cap.server(t)

	c := New(Config{OptIn: false, EventsURL: srv.URL + "/events", CrashURL: srv.URL + "/crash"})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("expected disabled client")
	}
	c.Event("ignored", nil)
	c.UploadCrash([]byte("ignored"))

	c2 := New(Config{OptIn: true, EventsURL: srv.URL + "/events"})
	defer c2.Close()
	c2.Event("", nil)
	c2.Flush(nil)

	time.Sleep(50 * time.Millisecond)
	if e, cr := cap.counts(); e != 0 || cr != 0 {
		t.Fatalf("expected no requests, got %d events %d crashes", e, cr)
	}
}

func TestClient_SendErrorsAreSwallowed(t *testing.T) {
	c := New(Config{
		OptIn:        true,
		EventsURL:    "http://127.0.0.1:1/events",
		CrashURL:     "http://127.0.0.1:1/crash",
		Timeout:      50 * time.Millisecond,
		DebugLogging: true,
	})
	defer c.Close()
	c.Event(EventPageAdded, map[string]any{"bad": func() {}})
	c.Flush(context.Background())
	c.UploadCrash([]byte("oops"))
	time.Sleep(50 * time.Millisecond)
}

func TestClient_FullQueueDrops(t *testing.T) {
	var hits atomic.Int32
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := New(Config{OptIn: true, EventsURL: srv.URL, QueueSize: 1, Timeout: 5 * time.Second})
	defer c.Close()
	for i := 0; i < 50; i++ {
		c.Event(EventBackgroundChanged, nil)
	}
	if len(c.q) > 1 {
		t.Fatalf("queue grew beyond its bound: %d", len(c.q))
	}
}

func TestFromEnvAndAppConfig(t *testing.T) {
	t.Setenv(config.EnvTelemetryOptIn, "yes")
	t.Setenv(EnvURL, "http://127.0.0.1:0")
	t.Setenv(EnvCrashURL, "")
	t.Setenv(EnvTimeoutMS, "100")

	cfg := FromEnv()
	if !cfg.OptIn || cfg.EventsURL == "" || cfg.Timeout != 100*time.Millisecond {
		t.Fatalf("FromEnv did not parse correctly: %+v", cfg)
	}

	app := config.Defaults()
	app.General.TelemetryOptIn = false
	if FromAppConfig(app).OptIn {
		t.Fatalf("app config opt-in should win")
	}

	c := New(cfg)
	SetDefault(c)
	t.Cleanup(func() { SetDefault(nil) })
	if Default() != c || !Default().Enabled() {
		t.Fatalf("default client not installed")
	}
}

func TestNopSink(t *testing.T) {
	var s Sink = Nop{}
	s.Event(EventElementRemoved, nil)
	var _ Sink = (*Client)(nil)
}
