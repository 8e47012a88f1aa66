// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "sync"

// Listeners registers lists of event listener functions to receive
// different event types. Unlike the single-slot window callbacks,
// any number of listeners can be connected per type; each connection
// gets an id that can be used to disconnect it again. Listeners is
// goroutine-safe: connections can be made and removed while the
// navigation runloop is calling out.
type Listeners struct {
	mu    sync.Mutex
	next  int
	funcs map[Types][]listener
}

type listener struct {
	id  int
	fun func(ev Event)
}

// Add adds a function listening to the given type,
// returning the connection id.
func (ls *Listeners) Add(typ Types, fun func(ev Event)) int {
	return ls.AddTypes([]Types{typ}, fun)
}

// AddTypes adds a function listening to all of the given types,
// returning a single connection id covering every one of them.
func (ls *Listeners) AddTypes(typs []Types, fun func(ev Event)) int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.funcs == nil {
		ls.funcs = map[Types][]listener{}
	}
	ls.next++
	for _, typ := range typs {
		ls.funcs[typ] = append(ls.funcs[typ], listener{id: ls.next, fun: fun})
	}
	return ls.next
}

// Delete removes the listener with the given connection id, from
// every type it was registered for. It is a no-op if no such
// listener is connected.
func (ls *Listeners) Delete(id int) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	for typ, lfs := range ls.funcs {
		for i := len(lfs) - 1; i >= 0; i-- {
			if lfs[i].id == id {
				lfs = append(lfs[:i:i], lfs[i+1:]...)
			}
		}
		ls.funcs[typ] = lfs
	}
}

// Call calls all functions registered for the given event.
// It goes in reverse order so the last listeners added are the first
// called, and it stops when the event is marked as handled. This
// allows a natural override behavior without explicit priorities.
// The listener list is snapshotted before calling out, so listeners
// may connect and disconnect from within a call.
func (ls *Listeners) Call(ev Event) {
	if ev.IsHandled() {
		return
	}
	ls.mu.Lock()
	lfs := make([]listener, len(ls.funcs[ev.Type()]))
	copy(lfs, ls.funcs[ev.Type()])
	ls.mu.Unlock()
	for i := len(lfs) - 1; i >= 0; i-- {
		lfs[i].fun(ev)
		if ev.IsHandled() {
			break
		}
	}
}
