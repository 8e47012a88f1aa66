// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package window provides the rendering-surface abstraction used by
// the video sink and source elements: a window with a dedicated GL
// thread running its event loop, cross-thread message dispatch onto
// that thread, single-slot draw/resize/close callbacks, and a separate
// navigation runloop relaying key/mouse events.
//
// Concrete backends implement [Window], typically by embedding [Base],
// which carries the whole dispatch and callback machinery; a backend
// only contributes platform event sourcing and draw specifics. The
// always-available headless [Dummy] backend is the fallback when no
// platform backend can be used.
package window

import "github.com/gomedia/glsurface/events"

// Window is a surface that elements can render into. A window can be
// a user-visible platform window or the hidden headless [Dummy].
//
// Every window has exactly one GL thread: the thread on which [Window.Run]
// is executing. All draw, resize, and close callbacks run only on that
// thread for the window's lifetime, and all GL work must be funneled
// onto it with [Window.SendMessage] or [Window.SendMessageAsync].
type Window interface {

	// Backend returns the name of the backend implementing this
	// window, e.g. "glfw" or "dummy".
	Backend() string

	// Open allocates the event loop resources for the window.
	// It is idempotent, and returns a descriptive error if the
	// underlying platform resource cannot be acquired.
	Open() error

	// Run marks the window as running and blocks the calling
	// goroutine in the window's event loop until [Window.Quit].
	// The calling goroutine becomes the window's GL thread, so Run
	// must be invoked from the thread meant to own all callback
	// invocations. Most callers use [Window.Start] instead.
	Run()

	// Quit stops the event loop, causing Run to return as soon as
	// the loop observes it. It may be called from any goroutine and
	// is idempotent. The running state is cleared under the window
	// lock before the loop is signaled, so a concurrent [Window.Draw]
	// observes the updated state.
	Quit()

	// Close releases the event loop resources. It must only be
	// called after Run has returned. Destroy notifiers of messages
	// still queued at this point run exactly once here.
	Close()

	// Start opens the window and spawns a goroutine locked to an OS
	// thread that runs the event loop, returning once the loop is
	// live. It is the owned-thread convenience over Open+Run.
	Start() error

	// Destroy tears the window down completely: the navigation
	// runloop is stopped and joined, the event loop is quit and
	// joined if this window was started with [Window.Start], callback
	// registrations are cleared (invoking their destroy notifiers),
	// and the loop resources are released, in that order.
	Destroy()

	// IsRunning returns whether the event loop is currently running.
	IsRunning() bool

	// Draw asks the window to redraw its contents by invoking the
	// draw callback on the GL thread. It is dropped, not queued, if
	// a draw is already in progress on this window.
	Draw()

	// DrawUnlocked invokes the draw callback directly. It must only
	// be called from the GL thread, typically from inside a backend's
	// own event dispatch.
	DrawUnlocked()

	// IsDrawing returns whether a draw is currently in progress.
	IsDrawing() bool

	// SetDrawing marks a draw as in progress, suppressing reentrant
	// [Window.Draw] requests. The draw callback consumer sets it for
	// the duration of its drawing work.
	SetDrawing(on bool)

	// SendMessage invokes f on the window's GL thread and blocks the
	// caller until f has completed. If called from the GL thread
	// itself it invokes f directly.
	SendMessage(f func())

	// SendMessageAsync enqueues f for later execution on the window's
	// GL thread and returns immediately. Messages execute in enqueue
	// order. If destroy is non-nil it runs after f on the GL thread,
	// exactly once, even if the window is closed before f is
	// dequeued.
	SendMessageAsync(f func(), destroy func())

	// SetDrawCallback sets the callback invoked every time the window
	// contents need redrawing. A previous registration's destroy
	// notifier is invoked before the new callback is installed.
	SetDrawCallback(fn func(), destroy func())

	// SetResizeCallback sets the callback invoked with the new
	// surface size whenever the window is resized, with the same
	// replacement semantics as SetDrawCallback.
	SetResizeCallback(fn func(width, height int), destroy func())

	// SetCloseCallback sets the callback invoked when the window is
	// about to close, with the same replacement semantics as
	// SetDrawCallback.
	SetCloseCallback(fn func(), destroy func())

	// SetContext sets the GL context this window renders through.
	// The reference is non-owning: the context's lifetime is governed
	// by its creator, which must clear it with SetContext(nil) before
	// the context goes away.
	SetContext(ctx Context)

	// Context returns the GL context this window renders through,
	// or nil if none is set.
	Context() Context

	// SetHandle sets the native window or surface this window should
	// render into, for embedding into a host-provided surface.
	SetHandle(handle uintptr)

	// Handle returns the native window handle currently rendered
	// into, as an opaque integer, 0 if none.
	Handle() uintptr

	// Display returns the windowing system display handle, as an
	// opaque integer, 0 if none.
	Display() uintptr

	// SurfaceSize returns the current window surface dimensions.
	SurfaceSize() (width, height int)

	// SetPreferredSize sets the preferred width and height of the
	// window. Backends are free to ignore it.
	SetPreferredSize(width, height int)

	// HandleEvents sets whether platform input events are relayed as
	// navigation events. Disabling it drops events at the relay.
	HandleEvents(on bool)

	// Events returns the listener registry for the navigation
	// events (key/mouse) relayed by this window.
	Events() *events.Listeners

	// PostEvent posts an input event onto the navigation runloop,
	// from which it is re-emitted to listeners. Backends call this
	// from their platform event handlers; it never blocks.
	PostEvent(ev events.Event)

	// StartNavigation starts the navigation runloop goroutine,
	// blocking until the loop is live so that listeners registered
	// immediately after construction cannot miss events. The factory
	// calls it once per window; further calls are no-ops.
	StartNavigation()

	// StopNavigation quits the navigation runloop and waits for it
	// to exit. It is idempotent.
	StopNavigation()
}

// Context is the GL context a window renders through. The context
// layer itself (creation, extension loading, current-thread binding)
// is outside this package; windows only need to swap through it.
type Context interface {

	// SwapBuffers swaps the front and back buffers of the surface
	// this context renders into. Called on the window's GL thread.
	SwapBuffers()
}
