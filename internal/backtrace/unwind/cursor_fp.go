// Copyright 2025 The julia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (amd64 && !windows) || arm64

// Frame-pointer unwind backend.
//
// On amd64 and arm64 the Go toolchain maintains frame pointers, and the
// platform ABIs save the caller's frame pointer and return address as an
// adjacent pair, so the saved-frame-pointer chain is a reliable way to
// walk a stack given nothing but register state. This is the native
// backend used everywhere a chain is guaranteed to exist.

package unwind

// BackendName identifies the unwind backend compiled into this binary.
const BackendName = "framepointer"

// Available reports whether context-based unwinding works on this build
// target.
const Available = true

// InitCursor points c at the innermost frame described by ctx and reports
// whether the backend could start a walk. It fails (returns false, not an
// error) when ctx carries no instruction pointer.
func InitCursor(c *Cursor, ctx *Context) bool {
	if ctx.IP == 0 {
		return false
	}
	c.ip, c.sp, c.fp = ctx.IP, ctx.SP, ctx.FP
	c.have = true
	return true
}

// Step writes the current frame's instruction and stack pointers and
// advances the cursor to the caller frame. An exhausted walk is the
// normal end-of-stack condition, not an error.
func (c *Cursor) Step(ip, sp *uintptr) (wrote, more bool) {
	if !c.have {
		return false, false
	}
	*ip = c.ip
	*sp = c.sp
	c.advance()
	return true, c.have
}
