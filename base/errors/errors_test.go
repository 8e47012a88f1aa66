// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	err := New("oops")
	assert.Equal(t, err, Log(err))
	assert.NoError(t, Log(nil))
	assert.Equal(t, 3, Log1(3, err))
}

func TestMust(t *testing.T) {
	Must(nil)
	assert.Equal(t, "ok", Must1("ok", nil))
	assert.Panics(t, func() { Must(New("oops")) })
	assert.Panics(t, func() { Must1(0, New("oops")) })
}

func TestWrap(t *testing.T) {
	base := New("base")
	wrapped := Errorf("context: %w", base)
	assert.True(t, Is(wrapped, base))
	assert.Equal(t, base, Unwrap(wrapped))
}
