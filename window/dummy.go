// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

// Dummy is the headless window backend: a full event loop and
// callback machinery with no platform surface behind it. It is
// always available and serves as the fallback when no platform
// backend can be opened, and as the backend for offscreen rendering
// and tests.
type Dummy struct {
	Base
}

// NewDummy returns a new headless window. The window is not yet
// running; call [Window.Start] (or Open+Run) to bring its loop up.
func NewDummy() *Dummy {
	w := &Dummy{}
	w.This = w
	w.Init("dummy")
	return w
}
