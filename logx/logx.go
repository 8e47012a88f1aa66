// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides leveled, optionally colored logging on top of
// log/slog, with simple Println-style helpers gated by a user-settable
// verbosity level.
package logx

import (
	"fmt"
	"log/slog"
	"os"
)

// UserLevel is the verbosity level that the user has selected for
// this program. Messages below this level are not printed. It defaults
// to [slog.LevelInfo] and is typically set from a -v / -q style flag.
var UserLevel = defaultUserLevel

func init() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

// PrintlnDebug prints the given arguments with [fmt.Println]
// if [UserLevel] is at or below [slog.LevelDebug].
func PrintlnDebug(a ...any) {
	if UserLevel <= slog.LevelDebug {
		fmt.Println(a...)
	}
}

// PrintlnInfo prints the given arguments with [fmt.Println]
// if [UserLevel] is at or below [slog.LevelInfo].
func PrintlnInfo(a ...any) {
	if UserLevel <= slog.LevelInfo {
		fmt.Println(a...)
	}
}

// PrintlnWarn prints the given arguments with [fmt.Println]
// if [UserLevel] is at or below [slog.LevelWarn].
func PrintlnWarn(a ...any) {
	if UserLevel <= slog.LevelWarn {
		fmt.Println(a...)
	}
}

// PrintlnError prints the given arguments with [fmt.Println]
// if [UserLevel] is at or below [slog.LevelError].
func PrintlnError(a ...any) {
	if UserLevel <= slog.LevelError {
		fmt.Println(a...)
	}
}
