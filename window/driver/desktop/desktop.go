// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package desktop implements the glfw window backend for desktop
// platforms (macOS, Linux, Windows).
package desktop

import (
	"fmt"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gomedia/glsurface/window"
)

func init() {
	window.RegisterBackend("glfw", 50, func(opts *window.Options) (window.Window, error) {
		return NewWindow(opts), nil
	})
}

// Window is the glfw-backed desktop window.
type Window struct {
	window.Base

	// Glw is the underlying glfw window.
	Glw *glfw.Window

	title         string
	width, height int
	glfwUp        atomic.Bool
}

// NewWindow returns a new desktop window for the given options. The
// platform window does not exist until [window.Window.Start] opens it
// on the event loop thread.
func NewWindow(opts *window.Options) *Window {
	w := &Window{title: opts.Title, width: opts.Width, height: opts.Height}
	w.This = w
	w.Init("glfw")
	w.Wake = w.wakeEvents
	return w
}

// Open initializes glfw and creates the platform window. It must run
// on the goroutine that will run the event loop; [window.Base.Start]
// arranges that.
func (w *Window) Open() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("desktop: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glw, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("desktop: create window: %w", err)
	}
	w.Glw = glw
	w.glfwUp.Store(true)
	glw.MakeContextCurrent()
	glw.SetFramebufferSizeCallback(w.fbResized)
	glw.SetCloseCallback(w.winClosed)
	glw.SetKeyCallback(w.keyEvent)
	glw.SetMouseButtonCallback(w.mouseButtonEvent)
	glw.SetCursorPosCallback(w.cursorPosEvent)
	glw.SetScrollCallback(w.scrollEvent)
	fw, fh := glw.GetFramebufferSize()
	w.Resized(fw, fh)
	return nil
}

// Run pumps glfw events on the calling goroutine, interleaved with
// dispatch of queued messages, until [window.Window.Quit]. Platform
// teardown happens here too, on the same thread that created the
// window.
func (w *Window) Run() {
	w.RunBegin()
	defer w.RunEnd()
	for {
		w.DispatchMessages()
		if !w.IsRunning() {
			break
		}
		glfw.WaitEvents()
	}
	w.glfwUp.Store(false)
	if w.Glw != nil {
		w.Glw.Destroy()
		w.Glw = nil
	}
	glfw.Terminate()
}

// wakeEvents wakes a loop blocked in glfw.WaitEvents. Posted events
// are queued, so a wake that arrives before the loop blocks is not
// lost.
func (w *Window) wakeEvents() {
	if w.glfwUp.Load() {
		glfw.PostEmptyEvent()
	}
}

// DrawUnlocked runs the draw callback and swaps through the set
// context, falling back to the glfw window's own buffer swap when no
// context has been attached.
func (w *Window) DrawUnlocked() {
	if w.Context() != nil {
		w.Base.DrawUnlocked()
		return
	}
	w.Base.DrawNoSwap()
	if w.Glw != nil {
		w.Glw.SwapBuffers()
	}
}

func (w *Window) SetPreferredSize(width, height int) {
	w.Base.SetPreferredSize(width, height)
	w.SendMessageAsync(func() {
		if w.Glw != nil {
			w.Glw.SetSize(width, height)
		}
	}, nil)
}
