// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin || linux || windows) && !headless

package driver

import (
	_ "github.com/gomedia/glsurface/window/driver/desktop"
)
