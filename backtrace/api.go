// Package backtrace provides the public API for stack capture and
// symbolication.
//
// See doc.go for detailed documentation and examples.
package backtrace

import (
	"github.com/AlinaChi/julia/internal/backtrace/capture"
	"github.com/AlinaChi/julia/internal/backtrace/printer"
	"github.com/AlinaChi/julia/internal/backtrace/symbolize"
	"github.com/AlinaChi/julia/internal/backtrace/unwind"
)

// Context is a minimal execution context to start an unwind from:
// instruction pointer, stack pointer and frame pointer of a suspended
// thread, typically captured by a signal handler.
type Context = unwind.Context

// Frame is one symbolicated logical stack frame.
type Frame = symbolize.Frame

// Snapshot is a recorded backtrace held in durable storage.
type Snapshot = capture.Snapshot

// Service is a pluggable code-info source for symbolication.
type Service = symbolize.Service

// Capture fills ip (and sp, when non-nil) with the calling goroutine's
// stack, innermost call first, and returns the frame count.
//
// The capacity is len(ip) (or len(sp) when that is shorter). A deeper
// stack is truncated and reported as capacity+1, so callers can
// distinguish "exactly filled" from "there was more":
//
//	ip := make([]uintptr, 32)
//	n := backtrace.Capture(ip, nil)
//	if n > len(ip) {
//		n = len(ip) // truncated; the sentinel is not a valid index
//	}
//
// Stack pointers are zero on the self-capture path; they are only
// recoverable when unwinding from an explicit Context.
func Capture(ip, sp []uintptr) int {
	return capture.Here(ip, sp, 1)
}

// CaptureAll captures the calling goroutine's entire stack with no depth
// limit, growing storage as needed, and returns exactly as many entries
// as there are frames. When wantSP is true a parallel stack-pointer
// slice of identical length is returned as well (zero-filled on the
// self-capture path).
func CaptureAll(wantSP bool) (ip, sp []uintptr) {
	return capture.Grow(wantSP, 1)
}

// CaptureContext unwinds from an explicit execution context instead of
// the caller's own stack. Semantics match Capture, including the
// truncation sentinel. On platforms without a context-unwind backend, or
// when the context cannot seed a walk, the count is zero, never an
// error: a fault-reporting path must not itself fail.
func CaptureContext(ctx *Context, ip, sp []uintptr) int {
	return capture.FromContext(ctx, ip, sp)
}

// Record captures the calling goroutine's full stack and publishes it as
// the process-wide "most recent backtrace", retrievable with Last. The
// published snapshot is immutable; readers holding it are unaffected by
// later Record calls.
func Record() *Snapshot {
	return capture.Record(1)
}

// RecordContext is Record from an explicit execution context. On a
// platform without a context backend the published snapshot is empty,
// not nil.
func RecordContext(ctx *Context) *Snapshot {
	return capture.RecordContext(ctx)
}

// Last returns the most recently recorded snapshot, or nil if nothing
// has been recorded yet.
func Last() *Snapshot {
	return capture.Last()
}

// Symbolicate resolves one instruction pointer to its logical frames,
// inlined calls expanded, innermost first. The result always carries at
// least one descriptor; an address with no debug info comes back as a
// single "???" placeholder whose Line holds the raw address. With
// skipRuntime set, frames belonging to the runtime are dropped, which
// can leave the result empty.
func Symbolicate(pc uintptr, skipRuntime bool) []Frame {
	return symbolize.Lookup(pc, skipRuntime)
}

// SetService replaces the code-info source used for symbolication and
// returns the previous one. Intended for startup wiring; not
// synchronized against in-flight lookups.
func SetService(s Service) Service {
	return symbolize.SetService(s)
}

// NewTableService returns a Service resolving against the symbol tables
// of the Go ELF binary at path, for symbolicating address dumps from
// another process.
func NewTableService(path string) (Service, error) {
	return symbolize.OpenTable(path)
}

// Print writes snap to standard error, one line per logical frame,
// innermost first. The formatting path allocates nothing, so it is safe
// from crash handlers.
func Print(snap *Snapshot) {
	printer.Print(snap)
}

// PrintLast prints the most recently recorded snapshot, if any.
func PrintLast() {
	printer.PrintLast()
}

// PrintAddress writes the symbolication of a single instruction pointer
// to standard error.
func PrintAddress(ip uintptr) {
	printer.PrintAddress(ip)
}
