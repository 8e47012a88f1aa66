// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sink

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gomedia/glsurface/base/errors"
)

// Rect is a viewport rectangle in surface pixels, origin bottom-left.
type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

// displaySize computes the display geometry for a frame of the given
// pixel size and pixel aspect ratio, shown on a display with the
// given pixel aspect ratio. The dimension that survives unscaled is
// chosen so the other scales by a whole ratio where possible: keep
// the height if it divides evenly, else keep the width, else scale
// the width off the kept height.
func displaySize(width, height, parN, parD, dparN, dparD int) (int, int, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, errors.New("sink: zero frame size")
	}
	if parN <= 0 || parD <= 0 {
		parN, parD = 1, 1
	}
	if dparN <= 0 || dparD <= 0 {
		dparN, dparD = 1, 1
	}
	num := uint64(width) * uint64(parN) * uint64(dparD)
	den := uint64(height) * uint64(parD) * uint64(dparN)
	if den == 0 {
		return 0, 0, errors.New("sink: zero display ratio")
	}
	g := gcd(num, den)
	num /= g
	den /= g

	switch {
	case uint64(height)%den == 0:
		return int(uint64(height) * num / den), height, nil
	case uint64(width)%num == 0:
		return width, int(uint64(width) * den / num), nil
	default:
		return int(uint64(height) * num / den), height, nil
	}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// centerRect letterboxes the src geometry into dst, preserving the
// src aspect ratio and centering the result.
func centerRect(srcW, srcH, dstW, dstH int) Rect {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return Rect{Width: dstW, Height: dstH}
	}
	var r Rect
	if srcW*dstH > dstW*srcH {
		r.Width = dstW
		r.Height = int(math32.Round(float32(srcH) * float32(dstW) / float32(srcW)))
	} else {
		r.Width = int(math32.Round(float32(srcW) * float32(dstH) / float32(srcH)))
		r.Height = dstH
	}
	r.X = (dstW - r.Width) / 2
	r.Y = (dstH - r.Height) / 2
	return r
}
