// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"sort"
	"strings"
	"sync"

	"github.com/gomedia/glsurface/logx"
)

// BackendFunc constructs a window for a registered backend. It
// returns an error if the backend cannot be used in the current
// environment (e.g. no display); the factory then moves on to the
// next candidate.
type BackendFunc func(opts *Options) (Window, error)

type backend struct {
	name     string
	priority int
	fn       BackendFunc
}

var (
	backendsMu sync.Mutex
	backends   []backend
)

// RegisterBackend registers a window backend under the given name.
// Higher priority backends are tried first during automatic
// selection. Platform driver packages call this from their init.
func RegisterBackend(name string, priority int, fn BackendFunc) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends = append(backends, backend{name: name, priority: priority, fn: fn})
	sort.SliceStable(backends, func(i, j int) bool {
		return backends[i].priority > backends[j].priority
	})
}

// New creates a window per the given options (nil means defaults),
// starts its event loop, and starts its navigation runloop. It never
// fails: if the requested backend does not match or no platform
// backend can be opened, the headless [Dummy] is returned, so the
// result is always a usable window.
func New(opts *Options) Window {
	if opts == nil {
		opts = DefaultOptions()
	}
	win := newBackendWindow(opts)
	if win == nil {
		if opts.Backend != "" && !strings.Contains("dummy", opts.Backend) {
			logx.PrintlnWarn("window: no backend matching", opts.Backend, "- falling back to dummy")
		}
		win = NewDummy()
		win.SetPreferredSize(opts.Width, opts.Height)
		if err := win.Start(); err != nil {
			// the dummy cannot fail to start; keep the window anyway
			logx.PrintlnError("window: dummy start:", err)
		}
	}
	win.HandleEvents(!opts.DisableEvents)
	win.StartNavigation()
	return win
}

func newBackendWindow(opts *Options) Window {
	backendsMu.Lock()
	cands := make([]backend, len(backends))
	copy(cands, backends)
	backendsMu.Unlock()

	for _, b := range cands {
		if opts.Backend != "" && !strings.Contains(b.name, opts.Backend) {
			continue
		}
		win, err := b.fn(opts)
		if err != nil {
			logx.PrintlnInfo("window: backend", b.name, "unavailable:", err)
			continue
		}
		win.SetPreferredSize(opts.Width, opts.Height)
		if err := win.Start(); err != nil {
			logx.PrintlnWarn("window: backend", b.name, "failed to start:", err)
			win.Destroy()
			continue
		}
		return win
	}
	return nil
}
