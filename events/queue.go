// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"sync/atomic"
)

// Queue is a lock-free FIFO freelist-based queue. It must be
// initialized using [Queue.Init] before use. It is based on
// https://github.com/fyne-io/fyne/blob/master/internal/async/queue_canvasobject.go
// and serves as the unbounded mailbox behind the window and
// navigation runloops: senders never block, the loop drains.
type Queue[T any] struct {
	head atomic.Pointer[queueItem[T]]
	tail atomic.Pointer[queueItem[T]]
	len  atomic.Uint64
	pool sync.Pool
}

// Init initializes the queue.
func (q *Queue[T]) Init() {
	head := &queueItem[T]{}
	q.head.Store(head)
	q.tail.Store(head)
	q.pool.New = func() any { return &queueItem[T]{} }
}

type queueItem[T any] struct {
	next atomic.Pointer[queueItem[T]]
	v    T
}

// Next removes and returns the next value in the queue.
// The second return is false if the queue is empty.
func (q *Queue[T]) Next() (T, bool) {
	var zero T
	for {
		first := q.head.Load()
		last := q.tail.Load()
		firstnext := first.next.Load()
		if first != q.head.Load() {
			continue
		}
		if first == last {
			if firstnext == nil {
				return zero, false
			}
			q.tail.CompareAndSwap(last, firstnext)
			continue
		}
		v := firstnext.v
		if q.head.CompareAndSwap(first, firstnext) {
			q.len.Add(^uint64(0))
			first.next.Store(nil)
			first.v = zero
			q.pool.Put(first)
			return v, true
		}
	}
}

// Send adds a value to the end of the queue.
func (q *Queue[T]) Send(v T) {
	i := q.pool.Get().(*queueItem[T])
	i.next.Store(nil)
	i.v = v

	for {
		last := q.tail.Load()
		lastnext := last.next.Load()
		if q.tail.Load() != last {
			continue
		}
		if lastnext != nil {
			q.tail.CompareAndSwap(last, lastnext)
			continue
		}
		if last.next.CompareAndSwap(lastnext, i) {
			q.tail.CompareAndSwap(last, i)
			q.len.Add(1)
			return
		}
	}
}

// Len returns the length of the queue.
func (q *Queue[T]) Len() uint64 {
	return q.len.Load()
}
