// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"time"
)

// Key is a keyboard event.
type Key struct {
	Base

	// Key is the platform-independent name of the key,
	// e.g. "a", "space", "Left".
	Key string
}

// NewKey makes a new key event of the given type.
func NewKey(typ Types, key string) *Key {
	ev := &Key{}
	ev.Typ = typ
	ev.Tm = time.Now()
	ev.Key = key
	return ev
}

func (ev *Key) String() string {
	return fmt.Sprintf("%v{Key: %q}", ev.Typ, ev.Key)
}
