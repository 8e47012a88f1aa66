// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sink

import (
	"sync"
	"testing"
	"time"

	"github.com/gomedia/glsurface/base/errors"
	"github.com/gomedia/glsurface/events"
	"github.com/gomedia/glsurface/window"
	"github.com/stretchr/testify/assert"
)

type fakeRenderer struct {
	mu      sync.Mutex
	initErr error
	drawErr error
	cleaned bool
	inits   int
	draws   []uint32
	vps     []Rect
}

func (r *fakeRenderer) Init() error {
	r.mu.Lock()
	r.inits++
	r.mu.Unlock()
	return r.initErr
}

func (r *fakeRenderer) initCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inits
}

func (r *fakeRenderer) Viewport(vp Rect) {
	r.mu.Lock()
	r.vps = append(r.vps, vp)
	r.mu.Unlock()
}

func (r *fakeRenderer) Draw(tex uint32) error {
	r.mu.Lock()
	r.draws = append(r.draws, tex)
	r.mu.Unlock()
	return r.drawErr
}

func (r *fakeRenderer) Cleanup() {
	r.mu.Lock()
	r.cleaned = true
	r.mu.Unlock()
}

func (r *fakeRenderer) drawn() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint32{}, r.draws...)
}

func startSink(t *testing.T, r Renderer) (*Sink, *window.Dummy) {
	t.Helper()
	w := window.NewDummy()
	assert.NoError(t, w.Start())
	w.StartNavigation()
	s := NewSink()
	if r != nil {
		s.SetRenderer(r)
	}
	assert.NoError(t, s.Start(w))
	return s, w
}

func TestShowFrameDraws(t *testing.T) {
	r := &fakeRenderer{}
	s, _ := startSink(t, r)
	defer s.Stop()

	buf := NewBuffer(7, nil)
	assert.NoError(t, s.Prepare(buf))
	assert.NoError(t, s.ShowFrame(buf))
	assert.Equal(t, []uint32{7}, r.drawn())
	assert.Equal(t, uint32(7), s.CurrentTexture())
	// the sink holds its own reference while the frame is current
	assert.Equal(t, int32(2), buf.Refs())
	buf.Unref()
	assert.Equal(t, int32(1), buf.Refs())
}

func TestShowFrameReleasesPrevious(t *testing.T) {
	r := &fakeRenderer{}
	s, _ := startSink(t, r)
	defer s.Stop()

	freed1, freed2 := false, false
	b1 := NewBuffer(1, func() { freed1 = true })
	b2 := NewBuffer(2, func() { freed2 = true })
	assert.NoError(t, s.ShowFrame(b1))
	b1.Unref()
	assert.False(t, freed1)
	assert.NoError(t, s.ShowFrame(b2))
	b2.Unref()
	// replaced frame released, current one kept
	assert.True(t, freed1)
	assert.False(t, freed2)
	assert.Equal(t, []uint32{1, 2}, r.drawn())
}

func TestDrainClears(t *testing.T) {
	r := &fakeRenderer{}
	s, w := startSink(t, r)
	defer s.Stop()

	freed := false
	buf := NewBuffer(3, func() { freed = true })
	assert.NoError(t, s.ShowFrame(buf))
	buf.Unref()
	s.Drain()
	assert.True(t, freed)
	assert.Equal(t, uint32(0), s.CurrentTexture())
	// a post-drain expose draws nothing
	assert.NoError(t, s.Expose())
	assert.Equal(t, []uint32{3}, r.drawn())
	assert.True(t, w.IsRunning())
}

func TestWindowCloseStopsStream(t *testing.T) {
	s, w := startSink(t, &fakeRenderer{})
	defer s.Stop()

	buf := NewBuffer(1, nil)
	defer buf.Unref()
	assert.NoError(t, s.ShowFrame(buf))
	w.CloseReq()
	assert.ErrorIs(t, s.ShowFrame(buf), ErrWindowClosed)
	assert.ErrorIs(t, s.Prepare(buf), ErrWindowClosed)
}

func TestQuitWindowFailsShowFrame(t *testing.T) {
	s, w := startSink(t, &fakeRenderer{})
	defer s.Stop()

	buf := NewBuffer(1, nil)
	defer buf.Unref()
	assert.NoError(t, s.ShowFrame(buf))
	w.Quit()
	assert.ErrorIs(t, s.ShowFrame(buf), ErrWindowClosed)
	assert.ErrorIs(t, s.Expose(), ErrWindowClosed)
}

func TestRendererInitLazy(t *testing.T) {
	r := &fakeRenderer{}
	s, _ := startSink(t, r)
	defer s.Stop()
	// nothing to set up until the first draw needs it
	assert.Equal(t, 0, r.initCount())

	buf := NewBuffer(1, nil)
	defer buf.Unref()
	assert.NoError(t, s.ShowFrame(buf))
	assert.NoError(t, s.ShowFrame(buf))
	assert.Equal(t, 1, r.initCount())
}

func TestRendererInitFailureFailsShowFrame(t *testing.T) {
	r := &fakeRenderer{initErr: errors.New("no shaders")}
	s, _ := startSink(t, r)
	defer s.Stop()

	buf := NewBuffer(1, nil)
	defer buf.Unref()
	// the failed setup disables the default path, and the
	// presentation must report that
	assert.ErrorIs(t, s.ShowFrame(buf), ErrRenderDisabled)
	assert.ErrorIs(t, s.Expose(), ErrRenderDisabled)
	assert.Empty(t, r.drawn())
	assert.Equal(t, 1, r.initCount())

	// a client draw override takes over and restores presentability
	s.SetClientDraw(func(tex uint32, width, height int) bool { return true })
	assert.NoError(t, s.ShowFrame(buf))
}

func TestDrawFailureDisablesDraw(t *testing.T) {
	r := &fakeRenderer{drawErr: errors.New("bad texture")}
	s, _ := startSink(t, r)
	defer s.Stop()

	buf := NewBuffer(1, nil)
	defer buf.Unref()
	assert.ErrorIs(t, s.ShowFrame(buf), ErrRenderDisabled)
	assert.ErrorIs(t, s.ShowFrame(buf), ErrRenderDisabled)
	// the failed first draw permanently disables the default path
	assert.Equal(t, []uint32{1}, r.drawn())
}

func TestClientDrawOverride(t *testing.T) {
	r := &fakeRenderer{}
	s, _ := startSink(t, r)
	defer s.Stop()
	assert.NoError(t, s.SetFormat(Format{Width: 320, Height: 240, ParN: 1, ParD: 1}))

	var gotTex uint32
	var gotW, gotH int
	s.SetClientDraw(func(tex uint32, width, height int) bool {
		gotTex, gotW, gotH = tex, width, height
		return true
	})
	buf := NewBuffer(9, nil)
	defer buf.Unref()
	assert.NoError(t, s.ShowFrame(buf))
	assert.Equal(t, uint32(9), gotTex)
	assert.Equal(t, 320, gotW)
	assert.Equal(t, 240, gotH)
	assert.Empty(t, r.drawn())
}

func TestClientReshapeOverride(t *testing.T) {
	r := &fakeRenderer{}
	s, w := startSink(t, r)
	defer s.Stop()
	assert.NoError(t, s.SetFormat(Format{Width: 320, Height: 240}))

	var gotW, gotH int
	s.SetClientReshape(func(width, height int) bool {
		gotW, gotH = width, height
		return true
	})
	w.Resized(800, 400)
	assert.Equal(t, 800, gotW)
	assert.Equal(t, 400, gotH)
	// default viewport computation suppressed
	assert.Equal(t, Rect{}, s.Viewport())
}

func TestLetterboxViewport(t *testing.T) {
	r := &fakeRenderer{}
	s, w := startSink(t, r)
	defer s.Stop()
	assert.NoError(t, s.SetFormat(Format{Width: 320, Height: 240, ParN: 1, ParD: 1}))
	w.Resized(800, 400)
	assert.Equal(t, Rect{133, 0, 533, 400}, s.Viewport())

	// the first draw brings the renderer up and hands it the
	// current viewport
	buf := NewBuffer(1, nil)
	defer buf.Unref()
	assert.NoError(t, s.ShowFrame(buf))
	r.mu.Lock()
	last := r.vps[len(r.vps)-1]
	r.mu.Unlock()
	assert.Equal(t, Rect{133, 0, 533, 400}, last)
}

func TestStretchViewport(t *testing.T) {
	s, w := startSink(t, nil)
	defer s.Stop()
	assert.NoError(t, s.SetFormat(Format{Width: 320, Height: 240}))
	s.SetForceAspectRatio(false)
	w.Resized(800, 400)
	assert.Equal(t, Rect{0, 0, 800, 400}, s.Viewport())
}

func TestFormatChangeAppliedAtDraw(t *testing.T) {
	s, w := startSink(t, &fakeRenderer{})
	defer s.Stop()
	w.Resized(800, 400)
	assert.Equal(t, Rect{0, 0, 800, 400}, s.Viewport())

	// the new format reshapes at the next draw, not immediately
	assert.NoError(t, s.SetFormat(Format{Width: 320, Height: 240}))
	assert.Equal(t, Rect{0, 0, 800, 400}, s.Viewport())
	buf := NewBuffer(1, nil)
	defer buf.Unref()
	assert.NoError(t, s.ShowFrame(buf))
	assert.Equal(t, Rect{133, 0, 533, 400}, s.Viewport())
}

func TestSetWindowHandleDeferred(t *testing.T) {
	s, w := startSink(t, &fakeRenderer{})
	defer s.Stop()
	s.SetWindowHandle(42)
	assert.Equal(t, uintptr(0), w.Handle())
	buf := NewBuffer(1, nil)
	defer buf.Unref()
	assert.NoError(t, s.ShowFrame(buf))
	assert.Equal(t, uintptr(42), w.Handle())
}

func TestTimes(t *testing.T) {
	s := NewSink()
	buf := NewBuffer(1, nil)
	defer buf.Unref()
	buf.PTS = time.Second
	buf.Duration = 40 * time.Millisecond
	start, end := s.Times(buf)
	assert.Equal(t, time.Second, start)
	assert.Equal(t, time.Second+40*time.Millisecond, end)

	buf.Duration = 0
	assert.NoError(t, s.SetFormat(Format{Width: 1, Height: 1, FPSN: 25, FPSD: 1}))
	start, end = s.Times(buf)
	assert.Equal(t, time.Second, start)
	assert.Equal(t, time.Second+40*time.Millisecond, end)

	s2 := NewSink()
	start, end = s2.Times(buf)
	assert.Equal(t, start, end)
}

func TestSetPixelAspectRatio(t *testing.T) {
	s := NewSink()
	assert.Error(t, s.SetPixelAspectRatio(0, 1))
	assert.NoError(t, s.SetPixelAspectRatio(2, 1))
	assert.NoError(t, s.SetFormat(Format{Width: 640, Height: 480}))
	s.mu.Lock()
	dw, dh := s.displayW, s.displayH
	s.mu.Unlock()
	assert.Equal(t, 320, dw)
	assert.Equal(t, 480, dh)
}

func TestNavigationHandler(t *testing.T) {
	s, w := startSink(t, nil)
	defer s.Stop()

	got := make(chan events.Event, 10)
	s.SetNavigationHandler(func(ev events.Event) { got <- ev })
	w.PostEvent(events.NewKey(events.KeyDown, "space"))
	select {
	case ev := <-got:
		assert.Equal(t, "space", ev.(*events.Key).Key)
	case <-time.After(time.Second):
		t.Fatal("navigation event not delivered")
	}
}

func TestCloseUnregistersNavigation(t *testing.T) {
	s, w := startSink(t, &fakeRenderer{})
	defer s.Stop()

	got := make(chan events.Event, 10)
	s.SetNavigationHandler(func(ev events.Event) { got <- ev })
	barrier := make(chan struct{}, 10)
	w.Events().Add(events.MouseMove, func(ev events.Event) { barrier <- struct{}{} })

	w.CloseReq()
	w.PostEvent(events.NewKey(events.KeyDown, "a"))
	w.PostEvent(events.NewMouse(events.MouseMove, events.NoButton, 0, 0))
	// the runloop is FIFO: once the barrier event arrives, the key
	// event has already been dispatched
	select {
	case <-barrier:
	case <-time.After(time.Second):
		t.Fatal("barrier event not relayed")
	}
	assert.Equal(t, 0, len(got))
}

func TestRedisplayForwardsPreferredSize(t *testing.T) {
	s, w := startSink(t, &fakeRenderer{})
	defer s.Stop()
	pw, ph := w.PreferredSize()
	assert.Equal(t, 0, pw)
	assert.Equal(t, 0, ph)

	assert.NoError(t, s.SetFormat(Format{Width: 320, Height: 240, ParN: 1, ParD: 1}))
	buf := NewBuffer(1, nil)
	defer buf.Unref()
	assert.NoError(t, s.ShowFrame(buf))
	// the negotiated display geometry reaches the backend as the
	// window size hint
	pw, ph = w.PreferredSize()
	assert.Equal(t, 320, pw)
	assert.Equal(t, 240, ph)
}

func TestStopTearsDown(t *testing.T) {
	r := &fakeRenderer{}
	s, w := startSink(t, r)
	freed := false
	buf := NewBuffer(1, func() { freed = true })
	assert.NoError(t, s.ShowFrame(buf))
	buf.Unref()
	s.Stop()
	assert.True(t, freed)
	r.mu.Lock()
	cleaned := r.cleaned
	r.mu.Unlock()
	assert.True(t, cleaned)
	assert.False(t, w.IsRunning())
	s.Stop() // idempotent
}

func TestStartErrors(t *testing.T) {
	s := NewSink()
	assert.Error(t, s.Start(nil))
	w := window.NewDummy()
	assert.NoError(t, w.Start())
	assert.NoError(t, s.Start(w))
	assert.Error(t, s.Start(w))
	s.Stop()
}

func TestPrepareErrors(t *testing.T) {
	s, _ := startSink(t, nil)
	defer s.Stop()
	assert.Error(t, s.Prepare(nil))
	assert.Error(t, s.ShowFrame(nil))
}

func TestInterleavedPresents(t *testing.T) {
	// a redisplayed texture must always have a live backing buffer,
	// no matter how presents and exposes interleave
	var mu sync.Mutex
	freed := map[uint32]bool{}
	bad := 0
	r := &checkRenderer{check: func(tex uint32) {
		mu.Lock()
		if freed[tex] {
			bad++
		}
		mu.Unlock()
	}}
	s, _ := startSink(t, r)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				s.Expose()
			}
		}
	}()
	for i := 1; i <= 50; i++ {
		tex := uint32(i)
		buf := NewBuffer(tex, func() {
			mu.Lock()
			freed[tex] = true
			mu.Unlock()
		})
		assert.NoError(t, s.ShowFrame(buf))
		buf.Unref()
	}
	close(done)
	s.Stop()
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, bad)
}

type checkRenderer struct {
	check func(tex uint32)
}

func (r *checkRenderer) Init() error      { return nil }
func (r *checkRenderer) Viewport(vp Rect) {}
func (r *checkRenderer) Cleanup()         {}

func (r *checkRenderer) Draw(tex uint32) error {
	r.check(tex)
	return nil
}
