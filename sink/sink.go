// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sink implements the GL video sink: it owns a rendering
// window, keeps the most recent frame alive for redisplay, and draws
// frames letterboxed into the window on the window's GL thread.
//
// The sink's drawing lock guards the pair of redisplay texture and
// stored buffer, so an exposed redraw always sees a texture whose
// backing frame is still referenced, no matter how presents, resizes
// and exposes interleave.
package sink

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gomedia/glsurface/base/errors"
	"github.com/gomedia/glsurface/events"
	"github.com/gomedia/glsurface/logx"
	"github.com/gomedia/glsurface/window"
)

// ErrWindowClosed is returned by Prepare and ShowFrame after the user
// has closed the window.
var ErrWindowClosed = errors.New("sink: output window was closed")

// ErrRenderDisabled is returned by ShowFrame and Expose when the
// frame cannot actually be shown: the default draw path is unusable
// (no renderer, or its setup or drawing failed) and no client draw
// override is set.
var ErrRenderDisabled = errors.New("sink: default draw path is disabled")

// Format describes the negotiated video format.
type Format struct {

	// Width and Height are the frame size in pixels.
	Width, Height int

	// ParN and ParD are the pixel aspect ratio (0/0 means square).
	ParN, ParD int

	// FPSN and FPSD are the framerate (0/1 means variable).
	FPSN, FPSD int
}

// Renderer draws a texture into the current viewport. Implementations
// run entirely on the window's GL thread: Init lazily, once, right
// before the first default draw, Cleanup once at teardown. A failed
// Init or Draw permanently disables default drawing, which frame
// presentation reports as [ErrRenderDisabled]; client draw overrides
// still run.
type Renderer interface {

	// Init compiles and allocates the GL resources.
	Init() error

	// Viewport sets the rectangle Draw renders into.
	Viewport(r Rect)

	// Draw renders the given texture.
	Draw(tex uint32) error

	// Cleanup releases the GL resources.
	Cleanup()
}

// ClientDrawFunc overrides the default drawing. It runs on the GL
// thread with the current redisplay texture and its frame size, and
// returns whether it handled the draw.
type ClientDrawFunc func(tex uint32, width, height int) bool

// ClientReshapeFunc overrides the default viewport computation. It
// runs on the GL thread with the new window size, and returns whether
// it handled the reshape.
type ClientReshapeFunc func(width, height int) bool

// Sink presents video frames into a window. Attach it to a window
// with [Sink.Start], feed it frames with [Sink.Prepare] and
// [Sink.ShowFrame], and tear it down with [Sink.Stop].
type Sink struct {

	// mu is the drawing lock. It guards the redisplay texture, the
	// stored buffer, the display geometry, and the client callbacks,
	// and it is held for the whole of a draw dispatch. It is never
	// held across a blocking call into the window.
	mu sync.Mutex

	win      window.Window
	renderer Renderer

	rendererUp   bool
	renderFailed bool

	keepAspect bool
	dparN      int
	dparD      int

	format             Format
	displayW, displayH int
	capsChange         bool

	winW, winH int
	viewport   Rect

	redisplayTex uint32
	stored       *Buffer

	handle        uintptr
	newHandle     uintptr
	haveNewHandle bool

	clientDraw    ClientDrawFunc
	clientReshape ClientReshapeFunc

	nav   func(ev events.Event)
	navID int

	toQuit  atomic.Bool
	started bool
}

// NewSink returns a sink with default settings: aspect ratio kept,
// square display pixels, no renderer.
func NewSink() *Sink {
	return &Sink{keepAspect: true, dparN: 1, dparD: 1}
}

// SetRenderer sets the renderer used for default drawing. It must be
// set before [Sink.Start]; a sink without a renderer only draws
// through a client draw override.
func (s *Sink) SetRenderer(r Renderer) {
	s.mu.Lock()
	s.renderer = r
	s.mu.Unlock()
}

// SetForceAspectRatio sets whether frames are letterboxed to preserve
// their display aspect ratio (the default) or stretched to the window.
func (s *Sink) SetForceAspectRatio(on bool) {
	s.mu.Lock()
	s.keepAspect = on
	s.capsChange = true
	s.mu.Unlock()
}

// SetPixelAspectRatio sets the pixel aspect ratio of the display the
// window lives on. The default is square pixels.
func (s *Sink) SetPixelAspectRatio(n, d int) error {
	if n <= 0 || d <= 0 {
		return errors.New("sink: pixel aspect ratio must be positive")
	}
	s.mu.Lock()
	s.dparN = n
	s.dparD = d
	s.capsChange = true
	s.mu.Unlock()
	return nil
}

// SetHandleEvents sets whether the window relays input events.
func (s *Sink) SetHandleEvents(on bool) {
	s.mu.Lock()
	win := s.win
	s.mu.Unlock()
	if win != nil {
		win.HandleEvents(on)
	}
}

// SetClientDraw sets the draw override.
func (s *Sink) SetClientDraw(fn ClientDrawFunc) {
	s.mu.Lock()
	s.clientDraw = fn
	s.mu.Unlock()
}

// SetClientReshape sets the reshape override.
func (s *Sink) SetClientReshape(fn ClientReshapeFunc) {
	s.mu.Lock()
	s.clientReshape = fn
	s.mu.Unlock()
}

// SetNavigationHandler sets the function receiving the window's
// relayed key and mouse events. It runs on the navigation runloop.
func (s *Sink) SetNavigationHandler(fn func(ev events.Event)) {
	s.mu.Lock()
	s.nav = fn
	s.mu.Unlock()
}

// SetWindowHandle requests rendering into the given native surface.
// The swap to the new handle happens on the GL thread at the next
// draw, never mid-frame.
func (s *Sink) SetWindowHandle(handle uintptr) {
	s.mu.Lock()
	s.newHandle = handle
	s.haveNewHandle = true
	s.mu.Unlock()
}

// Start attaches the sink to the given window, which must already be
// running (the factory [window.New] returns running windows). The
// sink owns the window from here on; [Sink.Stop] destroys it.
func (s *Sink) Start(win window.Window) error {
	if win == nil {
		return errors.New("sink: nil window")
	}
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("sink: already started")
	}
	s.win = win
	s.started = true
	s.toQuit.Store(false)
	s.mu.Unlock()

	win.SetDrawCallback(s.onDraw, nil)
	win.SetResizeCallback(s.onResize, nil)
	win.SetCloseCallback(s.onClose, nil)
	id := win.Events().AddTypes([]events.Types{
		events.KeyDown, events.KeyUp,
		events.MouseDown, events.MouseUp, events.MouseMove, events.Scroll,
	}, s.onNavigation)
	s.mu.Lock()
	s.navID = id
	s.mu.Unlock()

	return nil
}

// Stop tears the sink down: the navigation relay is stopped first,
// GL resources are released with a synchronous message while the
// window is still running, callbacks are cleared, and finally the
// window itself is destroyed.
func (s *Sink) Stop() {
	s.mu.Lock()
	win := s.win
	if win == nil {
		s.mu.Unlock()
		return
	}
	s.win = nil
	s.started = false
	r := s.renderer
	up := s.rendererUp
	s.rendererUp = false
	s.mu.Unlock()

	win.Events().Delete(s.navID)
	win.StopNavigation()
	if up && r != nil && win.IsRunning() {
		win.SendMessage(r.Cleanup)
	}
	win.SetDrawCallback(nil, nil)
	win.SetResizeCallback(nil, nil)
	win.SetCloseCallback(nil, nil)
	s.Drain()
	win.Destroy()
}

// Prepare readies a frame for display. It currently only validates
// sink state; upload is the producer's concern since frames arrive
// as textures.
func (s *Sink) Prepare(buf *Buffer) error {
	if buf == nil {
		return errors.New("sink: nil buffer")
	}
	if s.toQuit.Load() {
		return ErrWindowClosed
	}
	return nil
}

// ShowFrame makes buf the current frame and asks the window to
// redraw. The previous frame's reference is dropped only after the
// drawing lock is released, so a concurrent expose never observes a
// texture without a live backing buffer. It reports failure when the
// frame cannot be shown: window closed or stopped, or the default
// draw path disabled with no client draw override to take over.
func (s *Sink) ShowFrame(buf *Buffer) error {
	if buf == nil {
		return errors.New("sink: nil buffer")
	}
	if s.toQuit.Load() {
		return ErrWindowClosed
	}
	s.mu.Lock()
	win := s.win
	if win == nil {
		s.mu.Unlock()
		return errors.New("sink: not started")
	}
	old := s.stored
	s.stored = buf.Ref()
	s.redisplayTex = buf.Texture()
	s.mu.Unlock()
	if old != nil {
		old.Unref()
	}
	if err := s.redisplay(win); err != nil {
		return err
	}
	if s.toQuit.Load() {
		return ErrWindowClosed
	}
	return nil
}

// Expose redraws the current frame; without a stored frame it is a
// no-op draw. Like ShowFrame it reports failure when nothing can be
// shown.
func (s *Sink) Expose() error {
	s.mu.Lock()
	win := s.win
	s.mu.Unlock()
	if win == nil {
		return errors.New("sink: not started")
	}
	return s.redisplay(win)
}

// redisplay forwards the negotiated display geometry as the window
// size hint, dispatches a draw, and reports whether the frame could
// actually be shown: a window that is no longer running, or a
// disabled default draw path with no client override, is a failure
// the caller must see.
func (s *Sink) redisplay(win window.Window) error {
	s.mu.Lock()
	dw, dh := s.displayW, s.displayH
	s.mu.Unlock()
	if !win.IsRunning() {
		return ErrWindowClosed
	}
	if dw > 0 && dh > 0 {
		win.SetPreferredSize(dw, dh)
	}
	win.Draw()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clientDraw == nil && (s.renderer == nil || s.renderFailed) {
		return ErrRenderDisabled
	}
	return nil
}

// Drain drops the stored frame and clears the redisplay texture
// together, so post-drain redraws show nothing rather than a stale
// texture. Upstream calls it on flush and on state shutdown.
func (s *Sink) Drain() {
	s.mu.Lock()
	old := s.stored
	s.stored = nil
	s.redisplayTex = 0
	s.mu.Unlock()
	if old != nil {
		old.Unref()
	}
}

// SetFormat negotiates the frame format, computing the display
// geometry from the frame and display pixel aspect ratios. The
// viewport is recomputed at the next draw.
func (s *Sink) SetFormat(f Format) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dw, dh, err := displaySize(f.Width, f.Height, f.ParN, f.ParD, s.dparN, s.dparD)
	if err != nil {
		return err
	}
	s.format = f
	s.displayW = dw
	s.displayH = dh
	s.capsChange = true
	logx.PrintlnDebug("sink: format", f.Width, "x", f.Height, "display", dw, "x", dh)
	return nil
}

// Times returns the presentation interval of buf per the negotiated
// framerate: the buffer duration when it carries one, else one frame
// interval, else an open end.
func (s *Sink) Times(buf *Buffer) (start, end time.Duration) {
	start = buf.PTS
	if buf.Duration > 0 {
		return start, start + buf.Duration
	}
	s.mu.Lock()
	fn, fd := s.format.FPSN, s.format.FPSD
	s.mu.Unlock()
	if fn > 0 && fd > 0 {
		return start, start + time.Duration(uint64(time.Second)*uint64(fd)/uint64(fn))
	}
	return start, start
}

// onDraw runs on the GL thread for every redraw. It applies a
// pending handle swap, consumes a pending format change by reshaping,
// and draws the redisplay texture, through the client override when
// one is set.
func (s *Sink) onDraw() {
	s.mu.Lock()
	win := s.win
	if win == nil {
		s.mu.Unlock()
		return
	}
	if s.haveNewHandle {
		win.SetHandle(s.newHandle)
		s.handle = s.newHandle
		s.haveNewHandle = false
	}
	if s.capsChange {
		s.capsChange = false
		w, h := s.winW, s.winH
		s.mu.Unlock()
		s.reshape(w, h)
		s.mu.Lock()
	}
	// the renderer sets up lazily, on the GL thread right before the
	// first default draw; a failed setup permanently disables the
	// default path
	if s.renderer != nil && !s.rendererUp && !s.renderFailed {
		if err := s.renderer.Init(); err != nil {
			logx.PrintlnError("sink: renderer init:", err)
			s.renderFailed = true
		} else {
			s.rendererUp = true
			s.renderer.Viewport(s.viewport)
		}
	}
	// the drawing lock stays held across the actual draw, so the
	// stored buffer backing the redisplay texture cannot be swapped
	// out and released mid-frame; the drawing flag suppresses
	// reentrant draw requests from inside the callbacks
	win.SetDrawing(true)
	defer func() {
		s.mu.Unlock()
		win.SetDrawing(false)
	}()
	tex := s.redisplayTex
	if tex == 0 {
		return
	}
	if s.clientDraw != nil && s.clientDraw(tex, s.format.Width, s.format.Height) {
		return
	}
	if s.renderer == nil || !s.rendererUp || s.renderFailed {
		return
	}
	if err := s.renderer.Draw(tex); err != nil {
		logx.PrintlnError("sink: draw:", err)
		s.renderFailed = true
	}
}

// onResize runs on the GL thread whenever the window surface size
// changes.
func (s *Sink) onResize(width, height int) {
	s.mu.Lock()
	s.winW = width
	s.winH = height
	s.mu.Unlock()
	s.reshape(width, height)
}

// reshape recomputes the viewport for the given window size and
// pushes it to the renderer. A client reshape override that reports
// handled suppresses the default.
func (s *Sink) reshape(width, height int) {
	s.mu.Lock()
	cr := s.clientReshape
	s.mu.Unlock()
	if cr != nil && cr(width, height) {
		return
	}
	s.mu.Lock()
	var vp Rect
	if s.keepAspect && s.displayW > 0 && s.displayH > 0 {
		vp = centerRect(s.displayW, s.displayH, width, height)
	} else {
		vp = Rect{Width: width, Height: height}
	}
	s.viewport = vp
	r := s.renderer
	up := s.rendererUp
	s.mu.Unlock()
	if r != nil && up {
		r.Viewport(vp)
	}
}

// onClose runs on the GL thread when the user closes the window.
// The sink goes into the closed state: input listeners are
// disconnected, and the next Prepare or ShowFrame reports
// ErrWindowClosed so upstream can stop the stream.
func (s *Sink) onClose() {
	logx.PrintlnInfo("sink: output window was closed")
	s.toQuit.Store(true)
	s.mu.Lock()
	win := s.win
	id := s.navID
	s.mu.Unlock()
	if win != nil {
		win.Events().Delete(id)
	}
}

// onNavigation runs on the navigation runloop for every relayed
// input event.
func (s *Sink) onNavigation(ev events.Event) {
	s.mu.Lock()
	fn := s.nav
	s.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

// Viewport returns the current letterbox viewport.
func (s *Sink) Viewport() Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// CurrentTexture returns the current redisplay texture, 0 when none.
func (s *Sink) CurrentTexture() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redisplayTex
}
