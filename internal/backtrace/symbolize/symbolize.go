// Package symbolize maps raw instruction pointers back to function, file
// and line information.
//
// The actual debug-info reading is behind the Service interface; this
// package's added value is normalization. Callers of Lookup always get
// at least one descriptor, and never an absent name or file: unknowns
// come back as the "???" placeholder with the raw address standing in
// for the line number, so downstream formatting code has no nil cases.
//
// One instruction pointer can map to several logical frames when the
// compiler inlined calls; descriptors come back innermost inlined frame
// first, physical frame last.
package symbolize

import (
	"github.com/AlinaChi/julia/internal/backtrace/safepoint"
)

// unknownName is the placeholder for absent function and file names.
const unknownName = "???"

// Frame describes one logical stack frame resolved from an instruction
// pointer.
type Frame struct {
	// Func is the function name, or "???" after normalization when the
	// service had no answer.
	Func string

	// File is the source file, or "???" after normalization.
	File string

	// Line is the source line. After normalization of a nameless frame
	// it holds the raw instruction pointer instead.
	Line int

	// Entry is the entry address of the owning function, zero when
	// unknown.
	Entry uintptr

	// FromRuntime marks frames belonging to the runtime rather than
	// managed user code.
	FromRuntime bool

	// Inlined marks logical frames the compiler merged into a caller.
	Inlined bool

	// PC is the instruction pointer this frame was resolved from.
	PC uintptr
}

// Service is the external code-info lookup. FrameInfo returns zero or
// more descriptors for pc, innermost first; expandInline controls
// whether inlined logical frames are expanded or only the physical frame
// is reported. Implementations are pure functions of pc and must be safe
// for concurrent use.
type Service interface {
	FrameInfo(pc uintptr, expandInline bool) []Frame
}

// svc is the active code-info service.
var svc Service = runtimeService{}

// SetService replaces the active code-info service and returns the
// previous one. Meant for startup wiring and tests; not synchronized
// against in-flight lookups.
func SetService(s Service) Service {
	old := svc
	svc = s
	return old
}

// Lookup resolves pc to its logical frames, inlined frames expanded,
// innermost first. Every returned descriptor has a non-empty Func and
// File; an address the service knows nothing about yields exactly one
// placeholder descriptor whose Line is the raw address. When skipNative
// is set, frames from non-managed code are dropped, which can make the
// result empty.
//
// The service call is bracketed in a safe region so a concurrently
// running collector is not blocked behind slow debug-info reads.
func Lookup(pc uintptr, skipNative bool) []Frame {
	safepoint.Enter()
	frames := svc.FrameInfo(pc, true)
	safepoint.Leave()

	if len(frames) == 0 {
		return []Frame{{
			Func: unknownName,
			File: unknownName,
			Line: int(pc),
			PC:   pc,
		}}
	}
	out := make([]Frame, 0, len(frames))
	for _, f := range frames {
		if skipNative && f.FromRuntime {
			continue
		}
		if f.PC == 0 {
			f.PC = pc
		}
		if f.Func == "" {
			f.Func = unknownName
			f.Line = int(f.PC)
		}
		if f.File == "" {
			f.File = unknownName
		}
		out = append(out, f)
	}
	return out
}

// LookupInlined is the best-effort variant for debug-time output: raw
// service results with inline expansion forced on, no normalization and
// no filtering. It may return nothing at all; callers own the "unknown
// function" presentation. Used by the diagnostic printer, which must
// stay out of the safepoint machinery.
func LookupInlined(pc uintptr) []Frame {
	return svc.FrameInfo(pc, true)
}
