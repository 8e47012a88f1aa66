// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gomedia/glsurface/events"
	"github.com/petermattis/goid"
)

// message is a one-shot unit of work executed exactly once on the
// window's GL thread: a callback plus an optional destroy notifier.
// The destroy notifier also runs, without the callback, for messages
// still queued when the window is closed.
type message struct {
	run     func()
	destroy func()
}

// Base contains the data and logic common to all [Window]
// implementations: the message queue and its dispatch, the callback
// registry, the draw-suppression flag, and the navigation runloop.
// Backends embed Base and must set [Base.This] to themselves so that
// Base can dispatch through overridden methods.
type Base struct {

	// This is the Window as the true underlying type.
	This Window

	// Nm is the backend name reported by [Base.Backend].
	Nm string

	// Mu is the window lock, protecting the callback slots, the
	// running state, and the drawing flag. It is distinct from any
	// lock the draw callback consumer uses for its own state.
	Mu sync.Mutex

	alive   bool
	drawing bool

	drawCB   func()
	drawDtr  func()
	resizeCB func(width, height int)
	resizeDtr func()
	closeCB  func()
	closeDtr func()

	ctx    Context
	handle uintptr

	width, height int
	prefW, prefH  int

	// Wake, if non-nil, is called to wake the event loop when a
	// message is enqueued or quit is requested. Backends whose loop
	// blocks in a platform call (e.g. glfw WaitEvents) set it; the
	// default loop uses an internal channel.
	Wake func()

	queue      events.Queue[message]
	wake       chan struct{}
	quitCh     chan struct{}
	quitOnce   sync.Once
	runGID     atomic.Int64
	runStarted atomic.Bool
	runDone    chan struct{}
	runDoneOnce sync.Once

	// navigation runloop state
	navMu       sync.Mutex
	navCreated  bool
	navAlive    bool
	navQueue    events.Queue[events.Event]
	navWake     chan struct{}
	navQuit     chan struct{}
	navQuitOnce sync.Once
	navDone     chan struct{}
	listeners   events.Listeners
	noEvents    atomic.Bool
}

// Init initializes the dispatch machinery. Backends call it once
// from their constructor, before the window is returned to callers.
func (w *Base) Init(backend string) {
	w.Nm = backend
	w.queue.Init()
	w.wake = make(chan struct{}, 1)
	w.quitCh = make(chan struct{})
	w.runDone = make(chan struct{})
}

func (w *Base) Backend() string { return w.Nm }

// Open allocates the loop resources. The base implementation has
// nothing to acquire; platform backends acquire their native window
// here.
func (w *Base) Open() error {
	return nil
}

// RunBegin binds the event loop to the calling goroutine: it locks
// the goroutine to its OS thread, records it as the window's GL
// thread, and marks the window running. Backends call it at the top
// of their Run.
func (w *Base) RunBegin() {
	runtime.LockOSThread()
	w.runGID.Store(goid.Get())
	w.Mu.Lock()
	w.alive = true
	w.Mu.Unlock()
}

// RunEnd unwinds RunBegin after the event loop has exited.
// Backends defer it inside their Run.
func (w *Base) RunEnd() {
	w.runGID.Store(0)
	w.runDoneOnce.Do(func() { close(w.runDone) })
	runtime.UnlockOSThread()
}

// Run runs the default event loop: dispatch queued messages, then
// block until woken or quit. Backends with a platform event loop
// override it (calling RunBegin/RunEnd and DispatchMessages
// themselves).
func (w *Base) Run() {
	w.RunBegin()
	defer w.RunEnd()
	for {
		w.DispatchMessages()
		select {
		case <-w.wake:
		case <-w.quitCh:
			return
		}
	}
}

// DispatchMessages runs all currently queued messages in enqueue
// order. It must only be called from the GL thread.
func (w *Base) DispatchMessages() {
	for {
		m, ok := w.queue.Next()
		if !ok {
			return
		}
		if m.run != nil {
			m.run()
		}
		if m.destroy != nil {
			m.destroy()
		}
	}
}

// drainMessages runs the destroy notifiers, but not the callbacks,
// of all messages still queued. Called from Close after the loop has
// exited so that no enqueued closure leaks.
func (w *Base) drainMessages() {
	for {
		m, ok := w.queue.Next()
		if !ok {
			return
		}
		if m.destroy != nil {
			m.destroy()
		}
	}
}

func (w *Base) Quit() {
	w.Mu.Lock()
	w.alive = false
	w.Mu.Unlock()
	w.quitOnce.Do(func() { close(w.quitCh) })
	w.wakeLoop()
}

func (w *Base) Close() {
	w.drainMessages()
}

// Start opens the window and runs its event loop on a new goroutine
// locked to its own OS thread, returning once the loop is live. Open
// runs on that thread too, since some platform layers require window
// creation on the thread that will pump events.
func (w *Base) Start() error {
	errc := make(chan error)
	go func() {
		runtime.LockOSThread()
		err := w.This.Open()
		errc <- err
		if err != nil {
			return
		}
		w.This.Run()
	}()
	if err := <-errc; err != nil {
		return err
	}
	w.runStarted.Store(true)
	// make sure the loop is actually dispatching before we return
	w.This.SendMessage(func() {})
	return nil
}

// Destroy tears the window down in the required order: navigation
// stopped and joined first, then the event loop quit and joined,
// then callbacks cleared, then loop resources released.
func (w *Base) Destroy() {
	w.StopNavigation()
	w.This.Quit()
	if w.runStarted.Load() {
		<-w.runDone
	}
	w.This.SetDrawCallback(nil, nil)
	w.This.SetResizeCallback(nil, nil)
	w.This.SetCloseCallback(nil, nil)
	w.SetContext(nil)
	w.This.Close()
}

func (w *Base) IsRunning() bool {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	return w.alive
}

func (w *Base) wakeLoop() {
	if w.Wake != nil {
		w.Wake()
		return
	}
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// onGLThread returns whether the caller is the window's GL thread.
func (w *Base) onGLThread() bool {
	gid := w.runGID.Load()
	return gid != 0 && gid == goid.Get()
}

func (w *Base) SendMessageAsync(f func(), destroy func()) {
	w.queue.Send(message{run: f, destroy: destroy})
	w.wakeLoop()
}

// SendMessage is the generic synchronous dispatch, built on the
// asynchronous primitive: enqueue a message that runs f and then
// fires a condition, and wait for it. The destroy notifier fires the
// condition too, so a waiter is released even if the window is closed
// before the message runs. Calls from the GL thread itself run f
// directly, since blocking there would deadlock the loop.
func (w *Base) SendMessage(f func()) {
	if w.onGLThread() {
		f()
		return
	}
	var mu sync.Mutex
	cond := sync.NewCond(&mu)
	fired := false
	w.This.SendMessageAsync(f, func() {
		mu.Lock()
		fired = true
		cond.Signal()
		mu.Unlock()
	})
	mu.Lock()
	for !fired {
		cond.Wait()
	}
	mu.Unlock()
}

// Draw asks for a redraw unless one is already in progress; excess
// requests are dropped, not queued.
func (w *Base) Draw() {
	w.Mu.Lock()
	if !w.alive || w.drawing {
		w.Mu.Unlock()
		return
	}
	w.Mu.Unlock()
	w.This.SendMessage(w.This.DrawUnlocked)
}

// DrawUnlocked runs the draw callback and swaps buffers through the
// owning context, directly on the calling (GL) thread.
func (w *Base) DrawUnlocked() {
	w.DrawNoSwap()
	if ctx := w.Context(); ctx != nil {
		ctx.SwapBuffers()
	}
}

// DrawNoSwap runs the draw callback without swapping buffers, for
// backends that swap through their own surface.
func (w *Base) DrawNoSwap() {
	w.Mu.Lock()
	fn := w.drawCB
	w.Mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (w *Base) IsDrawing() bool {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	return w.drawing
}

func (w *Base) SetDrawing(on bool) {
	w.Mu.Lock()
	w.drawing = on
	w.Mu.Unlock()
}

func (w *Base) SetDrawCallback(fn func(), destroy func()) {
	w.Mu.Lock()
	if w.drawDtr != nil {
		w.drawDtr()
	}
	w.drawCB = fn
	w.drawDtr = destroy
	w.Mu.Unlock()
}

func (w *Base) SetResizeCallback(fn func(width, height int), destroy func()) {
	w.Mu.Lock()
	if w.resizeDtr != nil {
		w.resizeDtr()
	}
	w.resizeCB = fn
	w.resizeDtr = destroy
	w.Mu.Unlock()
}

func (w *Base) SetCloseCallback(fn func(), destroy func()) {
	w.Mu.Lock()
	if w.closeDtr != nil {
		w.closeDtr()
	}
	w.closeCB = fn
	w.closeDtr = destroy
	w.Mu.Unlock()
}

// Resized records the new surface size and invokes the resize
// callback. Backends call it from their platform resize handling,
// on the GL thread.
func (w *Base) Resized(width, height int) {
	w.Mu.Lock()
	w.width = width
	w.height = height
	fn := w.resizeCB
	w.Mu.Unlock()
	if fn != nil {
		fn(width, height)
	}
}

// CloseReq invokes the close callback. Backends call it on the GL
// thread when the platform surface is being closed.
func (w *Base) CloseReq() {
	w.Mu.Lock()
	fn := w.closeCB
	w.Mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (w *Base) SetContext(ctx Context) {
	w.Mu.Lock()
	w.ctx = ctx
	w.Mu.Unlock()
}

func (w *Base) Context() Context {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	return w.ctx
}

func (w *Base) SetHandle(handle uintptr) {
	w.Mu.Lock()
	w.handle = handle
	w.Mu.Unlock()
}

func (w *Base) Handle() uintptr {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	return w.handle
}

func (w *Base) Display() uintptr { return 0 }

func (w *Base) SurfaceSize() (width, height int) {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	return w.width, w.height
}

func (w *Base) SetPreferredSize(width, height int) {
	w.Mu.Lock()
	w.prefW = width
	w.prefH = height
	w.Mu.Unlock()
}

// PreferredSize returns the last size hint set with SetPreferredSize.
func (w *Base) PreferredSize() (width, height int) {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	return w.prefW, w.prefH
}

func (w *Base) HandleEvents(on bool) {
	w.noEvents.Store(!on)
}

func (w *Base) Events() *events.Listeners {
	return &w.listeners
}

// PostEvent posts an input event onto the navigation runloop.
// Events are dropped when event handling is disabled or the
// navigation loop is not running.
func (w *Base) PostEvent(ev events.Event) {
	if w.noEvents.Load() {
		return
	}
	w.navMu.Lock()
	alive := w.navAlive
	w.navMu.Unlock()
	if !alive {
		return
	}
	w.navQueue.Send(ev)
	select {
	case w.navWake <- struct{}{}:
	default:
	}
}

// StartNavigation starts the navigation runloop goroutine and blocks
// until it is live, so listeners registered right after window
// construction are guaranteed to observe subsequent events.
func (w *Base) StartNavigation() {
	w.navMu.Lock()
	defer w.navMu.Unlock()
	if w.navCreated {
		return
	}
	w.navQueue.Init()
	w.navWake = make(chan struct{}, 1)
	w.navQuit = make(chan struct{})
	w.navDone = make(chan struct{})
	started := make(chan struct{})
	go w.navigationLoop(started)
	<-started
	w.navCreated = true
	w.navAlive = true
}

// StopNavigation quits the navigation runloop and joins it.
func (w *Base) StopNavigation() {
	w.navMu.Lock()
	if !w.navAlive {
		w.navMu.Unlock()
		return
	}
	w.navAlive = false
	w.navMu.Unlock()
	w.navQuitOnce.Do(func() { close(w.navQuit) })
	<-w.navDone
}

func (w *Base) navigationLoop(started chan struct{}) {
	defer close(w.navDone)
	close(started)
	for {
		for {
			ev, ok := w.navQueue.Next()
			if !ok {
				break
			}
			w.listeners.Call(ev)
		}
		select {
		case <-w.navWake:
		case <-w.navQuit:
			return
		}
	}
}
