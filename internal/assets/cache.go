/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package assets resolves element image sources to decoded pictures.
// Data URIs decode inline; http(s) URLs are fetched in the background and
// announced through OnLoad once they arrive.
package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	applog "goscrapbook/internal/log"
)

// ErrUnsupported is returned for sources the cache cannot turn into pixels,
// e.g. SVG or site-relative paths.
var ErrUnsupported = errors.New("unsupported image source")

const (
	maxFetchBytes     = 20 << 20
	defaultMaxEntries = 128
)

type state int

const (
	pending state = iota
	ready
	failed
)

type entry struct {
	state state
	img   image.Image
	err   error
	used  uint64
}

// Options configures a Cache.
type Options struct {
	Client  *http.Client
	Timeout time.Duration
	// MaxEntries bounds the number of remembered sources; the least recently
	// requested settled ones are dropped first. Defaults to 128.
	MaxEntries int
	// OnLoad fires on the fetch goroutine after a remote source resolves,
	// successfully or not.
	OnLoad func(src string)
}

// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	idle     *sync.Cond // signalled when inflight drops to zero
	entries  map[string]*entry
	tick     uint64
	max      int
	inflight int
	closed   bool
	client   *http.Client
	timeout  time.Duration
	onLoad   func(string)
	ctx      context.Context
	cancel   context.CancelFunc
	log      *slog.Logger
}

func New(opts Options) *Cache {
	c := &Cache{
		entries: map[string]*entry{},
		client:  opts.Client,
		timeout: opts.Timeout,
		onLoad:  opts.OnLoad,
		max:     opts.MaxEntries,
		log:     applog.WithComponent("assets"),
	}
	c.idle = sync.NewCond(&c.mu)
	if c.max <= 0 {
		c.max = defaultMaxEntries
	}
	if c.client == nil {
		c.client = http.DefaultClient
	}
	if c.timeout <= 0 {
		c.timeout = 15 * time.Second
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

// Image returns the decoded picture for src when it is available. The first
// request for a remote src starts its download and reports false. After Close
// no new downloads start.
func (c *Cache) Image(src string) (image.Image, bool) {
	c.mu.Lock()
	e, ok := c.entries[src]
	if !ok {
		e = &entry{state: pending}
		c.entries[src] = e
		c.evict()
	}
	c.tick++
	e.used = c.tick
	if !ok {
		c.resolve(src, e)
	}
	return e.img, e.state == ready
}

// Err reports why src failed to load, if it did.
func (c *Cache) Err(src string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[src]; ok && e.state == failed {
		return e.err
	}
	return nil
}

// Len reports how many sources the cache remembers.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Wait blocks until every download started so far has settled.
func (c *Cache) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.inflight > 0 {
		c.idle.Wait()
	}
}

// Close cancels outstanding downloads and waits for them to stop.
func (c *Cache) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.Wait()
}

// resolve runs with c.mu held.
func (c *Cache) resolve(src string, e *entry) {
	switch {
	case strings.HasPrefix(src, "data:"):
		img, err := decodeDataURI(src)
		c.settle(e, img, err)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		if c.closed {
			c.settle(e, nil, fmt.Errorf("fetch %s: %w", src, context.Canceled))
			return
		}
		c.inflight++
		go c.download(src, e)
	default:
		c.settle(e, nil, fmt.Errorf("%q: %w", src, ErrUnsupported))
	}
}

func (c *Cache) download(src string, e *entry) {
	img, err := c.fetch(src)
	c.mu.Lock()
	c.settle(e, img, err)
	c.mu.Unlock()
	if err != nil && !errors.Is(err, context.Canceled) {
		c.log.Warn("image fetch failed", slog.String("src", src), slog.Any("err", err))
	}
	if c.onLoad != nil {
		c.onLoad(src)
	}
	c.mu.Lock()
	c.inflight--
	if c.inflight == 0 {
		c.idle.Broadcast()
	}
	c.mu.Unlock()
}

// evict drops least recently used settled entries beyond the limit. Pending
// entries stay so their downloads have somewhere to land. Runs with c.mu held.
func (c *Cache) evict() {
	for len(c.entries) > c.max {
		var victim string
		var oldest uint64
		found := false
		for src, e := range c.entries {
			if e.state == pending {
				continue
			}
			if !found || e.used < oldest {
				victim, oldest, found = src, e.used, true
			}
		}
		if !found {
			return
		}
		delete(c.entries, victim)
	}
}

// settle runs with c.mu held.
func (c *Cache) settle(e *entry, img image.Image, err error) {
	if err != nil {
		e.state, e.err = failed, err
		return
	}
	e.state, e.img = ready, img
}

func (c *Cache) fetch(src string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	return decode(data)
}

func decodeDataURI(src string) (image.Image, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI: %w", ErrUnsupported)
	}
	if strings.Contains(meta, "svg") {
		return nil, fmt.Errorf("svg data URI: %w", ErrUnsupported)
	}
	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		data = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		data = []byte(s)
	}
	return decode(data)
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
