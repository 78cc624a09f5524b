/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package notify delivers user-facing notices ("Text element added", "Page
// saved") after commands succeed. A failing sink never fails the command.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	applog "goscrapbook/internal/log"
)

// Level grades a notice.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "info"
}

// Notice is one message for the user.
type Notice struct {
	Level   Level
	Message string
}

// Notifier receives notices.
type Notifier interface {
	Notify(Notice)
}

// Func adapts a function to Notifier.
type Func func(Notice)

func (f Func) Notify(n Notice) { f(n) }

// Safe wraps n so a panic inside it is logged and swallowed.
func Safe(n Notifier) Notifier {
	if n == nil {
		return Discard
	}
	return safe{n: n}
}

type safe struct{ n Notifier }

func (s safe) Notify(msg Notice) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponent("notify").Warn("notifier panicked", slog.String("message", msg.Message), slog.String("panic", fmt.Sprint(r)))
		}
	}()
	s.n.Notify(msg)
}

// Multi fans a notice out to every notifier; each is isolated by Safe.
func Multi(ns ...Notifier) Notifier {
	out := make(multi, 0, len(ns))
	for _, n := range ns {
		if n != nil {
			out = append(out, Safe(n))
		}
	}
	return out
}

type multi []Notifier

func (m multi) Notify(n Notice) {
	for _, x := range m {
		x.Notify(n)
	}
}

// Discard drops every notice.
var Discard Notifier = Func(func(Notice) {})

// LogNotifier writes notices to a structured logger.
type LogNotifier struct{ Logger *slog.Logger }

func (l LogNotifier) Notify(n Notice) {
	lg := l.Logger
	if lg == nil {
		lg = applog.WithComponent("notify")
	}
	lvl := slog.LevelInfo
	switch n.Level {
	case Warning:
		lvl = slog.LevelWarn
	case Error:
		lvl = slog.LevelError
	}
	lg.Log(context.Background(), lvl, n.Message, slog.String("level", n.Level.String()))
}

// Recorder keeps every notice; tests and the status line read it back.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Convenience constructors.
func Infof(format string, args ...any) Notice {
	return Notice{Level: Info, Message: fmt.Sprintf(format, args...)}
}
func Successf(format string, args ...any) Notice {
	return Notice{Level: Success, Message: fmt.Sprintf(format, args...)}
}
func Warningf(format string, args ...any) Notice {
	return Notice{Level: Warning, Message: fmt.Sprintf(format, args...)}
}
