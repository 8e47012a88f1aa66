// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gomedia/glsurface/events"
)

func (w *Window) fbResized(glw *glfw.Window, width, height int) {
	w.Resized(width, height)
}

func (w *Window) winClosed(glw *glfw.Window) {
	w.CloseReq()
}

func (w *Window) keyEvent(glw *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	var typ events.Types
	switch action {
	case glfw.Press, glfw.Repeat:
		typ = events.KeyDown
	case glfw.Release:
		typ = events.KeyUp
	default:
		return
	}
	w.PostEvent(events.NewKey(typ, keyName(key, scancode)))
}

func (w *Window) mouseButtonEvent(glw *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var typ events.Types
	switch action {
	case glfw.Press:
		typ = events.MouseDown
	case glfw.Release:
		typ = events.MouseUp
	default:
		return
	}
	x, y := glw.GetCursorPos()
	w.PostEvent(events.NewMouse(typ, mouseButton(button), x, y))
}

func (w *Window) cursorPosEvent(glw *glfw.Window, x, y float64) {
	w.PostEvent(events.NewMouse(events.MouseMove, events.NoButton, x, y))
}

func (w *Window) scrollEvent(glw *glfw.Window, xoff, yoff float64) {
	x, y := glw.GetCursorPos()
	w.PostEvent(events.NewScroll(x, y, float32(xoff), float32(yoff)))
}

func mouseButton(button glfw.MouseButton) events.Buttons {
	switch button {
	case glfw.MouseButtonLeft:
		return events.Left
	case glfw.MouseButtonMiddle:
		return events.Middle
	case glfw.MouseButtonRight:
		return events.Right
	}
	return events.NoButton
}

// glfwKeyNames maps the non-printable glfw keys to stable
// platform-independent names. Printable keys come from
// glfw.GetKeyName, which resolves the current keyboard layout.
var glfwKeyNames = map[glfw.Key]string{
	glfw.KeySpace:        "space",
	glfw.KeyEscape:       "Escape",
	glfw.KeyEnter:        "Return",
	glfw.KeyTab:          "Tab",
	glfw.KeyBackspace:    "BackSpace",
	glfw.KeyInsert:       "Insert",
	glfw.KeyDelete:       "Delete",
	glfw.KeyRight:        "Right",
	glfw.KeyLeft:         "Left",
	glfw.KeyDown:         "Down",
	glfw.KeyUp:           "Up",
	glfw.KeyPageUp:       "Page_Up",
	glfw.KeyPageDown:     "Page_Down",
	glfw.KeyHome:         "Home",
	glfw.KeyEnd:          "End",
	glfw.KeyCapsLock:     "Caps_Lock",
	glfw.KeyScrollLock:   "Scroll_Lock",
	glfw.KeyNumLock:      "Num_Lock",
	glfw.KeyPrintScreen:  "Print",
	glfw.KeyPause:        "Pause",
	glfw.KeyF1:           "F1",
	glfw.KeyF2:           "F2",
	glfw.KeyF3:           "F3",
	glfw.KeyF4:           "F4",
	glfw.KeyF5:           "F5",
	glfw.KeyF6:           "F6",
	glfw.KeyF7:           "F7",
	glfw.KeyF8:           "F8",
	glfw.KeyF9:           "F9",
	glfw.KeyF10:          "F10",
	glfw.KeyF11:          "F11",
	glfw.KeyF12:          "F12",
	glfw.KeyKPEnter:      "KP_Enter",
	glfw.KeyLeftShift:    "Shift_L",
	glfw.KeyLeftControl:  "Control_L",
	glfw.KeyLeftAlt:      "Alt_L",
	glfw.KeyLeftSuper:    "Super_L",
	glfw.KeyRightShift:   "Shift_R",
	glfw.KeyRightControl: "Control_R",
	glfw.KeyRightAlt:     "Alt_R",
	glfw.KeyRightSuper:   "Super_R",
	glfw.KeyMenu:         "Menu",
}

func keyName(key glfw.Key, scancode int) string {
	if nm, ok := glfwKeyNames[key]; ok {
		return nm
	}
	if nm := glfw.GetKeyName(key, scancode); nm != "" {
		return nm
	}
	return "Unknown"
}
