// Copyright 2025 The julia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows && amd64

// Debug-help unwind backend.
//
// Windows conventionally routes stack walks through the debug-help
// machinery: before a frame is unwound, its instruction pointer is
// resolved to an owning module through a function-table lookup, and a
// frame that no module claims ends the walk. The lookup service is not
// reentrant, so all resolution goes through the shared Resolver and its
// busy guard (see functab.go).
//
// Frames that resolve are then unwound by the saved-frame-pointer chain,
// the same as the native backend; functions on this target keep frame
// pointers, and the chain walk needs no per-frame unwind metadata.

package unwind

// BackendName identifies the unwind backend compiled into this binary.
const BackendName = "debughelp"

// Available reports whether context-based unwinding works on this build
// target.
const Available = true

// InitCursor points c at the innermost frame described by ctx and reports
// whether the backend could start a walk.
//
// Might be called from a thread the runtime does not manage: if another
// walk is mid-resolution, initialization fails and the caller degrades to
// an empty backtrace rather than re-entering the lookup service.
func InitCursor(c *Cursor, ctx *Context) bool {
	if ctx.IP == 0 {
		return false
	}
	if _, ok := sharedResolver.ModuleBase(ctx.IP); !ok {
		return false
	}
	c.ip, c.sp, c.fp = ctx.IP, ctx.SP, ctx.FP
	c.have = true
	return true
}

// Step writes the current frame's instruction and stack pointers and
// advances the cursor to the caller frame. A frame whose instruction
// pointer no module claims terminates the walk.
func (c *Cursor) Step(ip, sp *uintptr) (wrote, more bool) {
	if !c.have {
		return false, false
	}
	*ip = c.ip
	*sp = c.sp
	c.advance()
	if c.have {
		if _, ok := sharedResolver.ModuleBase(c.ip); !ok {
			c.have = false
		}
	}
	return true, c.have
}
