// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Handler is a [slog.Handler] that prints compact, level-colored
// output suitable for a terminal.
type Handler struct {
	mu    sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string
}

// NewHandler makes a new [Handler] writing to the given writer.
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w}
}

var profile = termenv.ColorProfile()

// levelColor returns the level label styled for the terminal.
func levelColor(level slog.Level) string {
	s := termenv.String(level.String())
	switch {
	case level >= slog.LevelError:
		s = s.Foreground(profile.Color("1")) // red
	case level >= slog.LevelWarn:
		s = s.Foreground(profile.Color("3")) // yellow
	case level >= slog.LevelInfo:
		s = s.Foreground(profile.Color("4")) // blue
	default:
		s = s.Foreground(profile.Color("8")) // gray
	}
	return s.String()
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= UserLevel
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	b := &strings.Builder{}
	b.WriteString(r.Time.Format(time.DateTime))
	b.WriteString(" ")
	b.WriteString(levelColor(r.Level))
	b.WriteString(" ")
	b.WriteString(r.Message)
	prefix := ""
	if h.group != "" {
		prefix = h.group + "."
	}
	for _, a := range h.attrs {
		fmt.Fprintf(b, " %s%s=%v", prefix, a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(b, " %s%s=%v", prefix, a.Key, a.Value)
		return true
	})
	b.WriteString("\n")
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := &Handler{w: h.w, group: h.group}
	nh.attrs = append(append(nh.attrs, h.attrs...), attrs...)
	return nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	nh := &Handler{w: h.w, attrs: h.attrs}
	if h.group != "" {
		nh.group = h.group + "." + name
	} else {
		nh.group = name
	}
	return nh
}
