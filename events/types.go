// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Types determines the type of window input event. The set is
// deliberately small: a rendering surface only relays raw key and
// mouse activity; gesture synthesis belongs to whoever listens.
type Types int32

const (
	// UnknownType is the zero value, an unknown event type.
	UnknownType Types = iota

	// MouseDown happens when a mouse button is pressed down.
	// See [Mouse.Button] for which.
	MouseDown

	// MouseUp happens when a mouse button is released.
	MouseUp

	// MouseMove is sent whenever the pointer moves over the surface,
	// with or without a button held.
	MouseMove

	// Scroll is for scroll wheel or gesture scrolling events.
	Scroll

	// KeyDown is when a key is pressed down.
	KeyDown

	// KeyUp is when a key is released.
	KeyUp
)

var typeNames = map[Types]string{
	UnknownType: "Unknown",
	MouseDown:   "MouseDown",
	MouseUp:     "MouseUp",
	MouseMove:   "MouseMove",
	Scroll:      "Scroll",
	KeyDown:     "KeyDown",
	KeyUp:       "KeyUp",
}

func (t Types) String() string {
	if nm, ok := typeNames[t]; ok {
		return nm
	}
	return "Unknown"
}

// IsKey returns whether the type is a key event.
func (t Types) IsKey() bool {
	return t == KeyDown || t == KeyUp
}

// IsMouse returns whether the type is a mouse event,
// including scrolling.
func (t Types) IsMouse() bool {
	return t == MouseDown || t == MouseUp || t == MouseMove || t == Scroll
}
