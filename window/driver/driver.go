// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver links in the platform window backends appropriate
// for the build target. Importing it (usually blank) registers the
// backends with the window factory:
//
//	import _ "github.com/gomedia/glsurface/window/driver"
//
// On desktop platforms the glfw backend is registered unless the
// headless build tag is set. The dummy backend is part of package
// window itself and needs no registration; it is the factory's
// fallback when nothing else is available.
package driver
