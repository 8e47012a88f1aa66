// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a logging and wrapping layer on top of the
// standard library errors package, which it also re-exports.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// Aliases of the standard library errors functions, so that this
// package can be imported in its place.
var (
	As     = errors.As
	Is     = errors.Is
	Join   = errors.Join
	New    = errors.New
	Unwrap = errors.Unwrap
)

// Errorf is an alias of [fmt.Errorf].
var Errorf = fmt.Errorf

// Log takes the given error and logs it if it is non-nil,
// returning it either way. The logged message includes the
// caller's location.
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 takes the given value and error and logs the error if it is
// non-nil, returning the value either way. It is useful for wrapping
// two-return calls whose error can only be reported, not handled.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must panics if the given error is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns the given value and panics if the error is non-nil.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Ignore1 returns the given value, ignoring any error.
func Ignore1[T any](v T, err error) T {
	return v
}

// CallerInfo returns the file and line of the second caller up
// in the stack (the caller of the function calling CallerInfo).
func CallerInfo() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s:%d", file, line)
}
