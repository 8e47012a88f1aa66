// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the abstract input events that a rendering
// surface relays to its listeners, decoupled from any windowing
// backend, along with listener registration and a lock-free queue
// used by the navigation runloop.
package events

import (
	"fmt"
	"time"
)

// Event is the interface for all input events.
type Event interface {
	fmt.Stringer

	// Type returns the type of the event.
	Type() Types

	// Time returns the time at which the event was generated.
	Time() time.Time

	// IsHandled returns whether the event has been marked as handled
	// by a listener, which stops propagation to earlier listeners.
	IsHandled() bool

	// SetHandled marks the event as handled.
	SetHandled()
}

// Base is the base implementation shared by all event types.
type Base struct {
	Typ     Types
	Tm      time.Time
	Handled bool
}

func (ev *Base) Type() Types     { return ev.Typ }
func (ev *Base) Time() time.Time { return ev.Tm }
func (ev *Base) IsHandled() bool { return ev.Handled }
func (ev *Base) SetHandled()     { ev.Handled = true }

func (ev *Base) String() string {
	return fmt.Sprintf("%v{Time: %v}", ev.Typ, ev.Tm.Format("04:05"))
}
