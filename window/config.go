// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Options configures window creation. The zero value selects the
// highest-priority available backend with default geometry; use
// [DefaultOptions] as a starting point for explicit configuration.
type Options struct {

	// Backend requests a specific backend by name. The match is a
	// substring match against registered backend names, so "glfw"
	// and "glf" both select the glfw backend. Empty means automatic
	// selection by priority.
	Backend string `toml:"backend"`

	// Title is the window title, where the backend supports one.
	Title string `toml:"title"`

	// Width and Height are the preferred surface size in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// DisableEvents turns off the relaying of platform input events
	// through the navigation runloop.
	DisableEvents bool `toml:"disable-events"`
}

// DefaultOptions returns the default window options.
func DefaultOptions() *Options {
	return &Options{
		Title:  "gomedia",
		Width:  640,
		Height: 480,
	}
}

// LoadOptions reads window options from the TOML file at the given
// path, on top of the defaults.
func LoadOptions(path string) (*Options, error) {
	opts := DefaultOptions()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("window: options: %w", err)
	}
	if err := toml.Unmarshal(b, opts); err != nil {
		return nil, fmt.Errorf("window: options %q: %w", path, err)
	}
	return opts, nil
}

// SaveOptions writes the options as TOML to the given path.
func SaveOptions(opts *Options, path string) error {
	b, err := toml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("window: options: %w", err)
	}
	if err := os.WriteFile(path, b, 0o666); err != nil {
		return fmt.Errorf("window: options: %w", err)
	}
	return nil
}
