// Copyright 2025 The julia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64 && !arm64

// Disabled unwind backend.
//
// On architectures without a dependable frame-pointer chain there is no
// reliable way to walk a stack from raw register state. Rather than walk
// wrong and crash, the backend reports failure up front: context-based
// captures return zero frames and callers carry on. Self-capture through
// the runtime's own walker still works everywhere.

package unwind

// BackendName identifies the unwind backend compiled into this binary.
const BackendName = "disabled"

// Available reports whether context-based unwinding works on this build
// target.
const Available = false

// InitCursor always fails on this build target.
func InitCursor(c *Cursor, ctx *Context) bool {
	return false
}

// Step always reports an exhausted walk on this build target.
func (c *Cursor) Step(ip, sp *uintptr) (wrote, more bool) {
	return false, false
}
