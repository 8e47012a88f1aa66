// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"time"
)

// Buttons is a mouse button.
type Buttons int32

const (
	NoButton Buttons = iota
	Left
	Middle
	Right
)

var buttonNames = map[Buttons]string{
	NoButton: "NoButton",
	Left:     "Left",
	Middle:   "Middle",
	Right:    "Right",
}

func (b Buttons) String() string {
	if nm, ok := buttonNames[b]; ok {
		return nm
	}
	return "NoButton"
}

// Mouse is a mouse button or motion event. Positions are in surface
// coordinates and kept as float64 because some backends report
// subpixel positions.
type Mouse struct {
	Base

	// Button is the button involved, NoButton for pure motion.
	Button Buttons

	// X and Y are the pointer position within the surface.
	X, Y float64
}

// NewMouse makes a new mouse event of the given type.
func NewMouse(typ Types, but Buttons, x, y float64) *Mouse {
	ev := &Mouse{}
	ev.Typ = typ
	ev.Tm = time.Now()
	ev.Button = but
	ev.X = x
	ev.Y = y
	return ev
}

func (ev *Mouse) String() string {
	return fmt.Sprintf("%v{Button: %v, Pos: (%g, %g)}", ev.Typ, ev.Button, ev.X, ev.Y)
}

// MouseScroll is a scroll event, recording the scroll delta.
type MouseScroll struct {
	Mouse

	// DeltaX and DeltaY are the amount of scrolling in each axis.
	DeltaX, DeltaY float32
}

// NewScroll makes a new scroll event at the given position.
func NewScroll(x, y float64, dx, dy float32) *MouseScroll {
	ev := &MouseScroll{}
	ev.Typ = Scroll
	ev.Tm = time.Now()
	ev.X = x
	ev.Y = y
	ev.DeltaX = dx
	ev.DeltaY = dy
	return ev
}

func (ev *MouseScroll) String() string {
	return fmt.Sprintf("%v{Delta: (%g, %g), Pos: (%g, %g)}", ev.Typ, ev.DeltaX, ev.DeltaY, ev.X, ev.Y)
}
