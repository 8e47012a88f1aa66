// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sink

import (
	"sync/atomic"
	"time"
)

// Buffer is a reference-counted video frame backed by a GL texture.
// The texture stays valid as long as at least one reference is held;
// dropping the last reference runs the release function the producer
// supplied, on whatever goroutine dropped it.
type Buffer struct {
	tex  uint32
	refs atomic.Int32
	free func()

	// PTS is the presentation timestamp of the frame.
	PTS time.Duration

	// Duration is how long the frame should be displayed,
	// 0 if unknown.
	Duration time.Duration
}

// NewBuffer returns a buffer wrapping the given texture with one
// reference held. free, which may be nil, is called when the last
// reference is dropped.
func NewBuffer(tex uint32, free func()) *Buffer {
	b := &Buffer{tex: tex, free: free}
	b.refs.Store(1)
	return b
}

// Texture returns the GL texture id holding the frame contents.
func (b *Buffer) Texture() uint32 { return b.tex }

// Ref takes an additional reference and returns the buffer.
func (b *Buffer) Ref() *Buffer {
	b.refs.Add(1)
	return b
}

// Unref drops a reference, releasing the buffer when it was the last
// one.
func (b *Buffer) Unref() {
	if b.refs.Add(-1) == 0 && b.free != nil {
		b.free()
	}
}

// Refs returns the current reference count.
func (b *Buffer) Refs() int32 { return b.refs.Load() }
