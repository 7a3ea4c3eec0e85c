// Package backtrace provides stack capture and code-address
// symbolication for a managed runtime, without CGO dependency.
//
// The package walks call stacks into raw address buffers, resolves
// addresses back to function/file/line descriptors (inlined frames
// included), keeps a process-wide "most recent backtrace" snapshot for
// later reporting, and renders backtraces to standard error from paths
// that must not allocate.
//
// # Quick Start
//
// Capture and print the current goroutine's stack:
//
//	package main
//
//	import "github.com/AlinaChi/julia/backtrace"
//
//	func main() {
//		backtrace.Print(backtrace.Record())
//	}
//
// Bounded capture into a caller-owned buffer:
//
//	ip := make([]uintptr, 64)
//	n := backtrace.Capture(ip, nil)
//	if n > len(ip) {
//		n = len(ip) // deeper stack was truncated
//	}
//	for _, pc := range ip[:n] {
//		for _, f := range backtrace.Symbolicate(pc, false) {
//			fmt.Printf("%s at %s:%d\n", f.Func, f.File, f.Line)
//		}
//	}
//
// # API Overview
//
// The package provides functions for:
//   - Stack capture: [Capture], [CaptureAll], [CaptureContext]
//   - Durable snapshots: [Record], [RecordContext], [Last]
//   - Symbolication: [Symbolicate], [SetService], [NewTableService]
//   - Diagnostic output: [Print], [PrintLast], [PrintAddress]
//   - Version information: [GetInfo], [Version]
//
// # Capture Modes
//
// Bounded capture ([Capture], [CaptureContext]) fills a caller-owned
// buffer and reports truncation through a sentinel count of capacity+1,
// so "buffer exactly filled" and "stack was deeper" stay
// distinguishable. Growable capture ([CaptureAll]) extends storage until
// the whole stack fits and returns exactly one entry per frame.
//
// Two walk sources feed both modes. Self-capture walks the calling
// goroutine through the runtime's own stack walker and works on every
// platform. Context capture starts from an explicit [Context] (typically
// recorded by a signal handler) and uses a platform backend: a frame
// pointer chain walker on amd64 and arm64, a symbol-table-gated variant
// on Windows, and a stub returning zero frames elsewhere. A capture that
// cannot proceed reports fewer frames, never an error; a fault while
// walking a damaged stack is contained and yields the frames collected
// up to that point.
//
// # Symbolication
//
// [Symbolicate] maps one instruction pointer to one or more logical
// frames; compiler-inlined calls expand innermost first, physical frame
// last. Descriptors are normalized: an address with no debug info yields
// exactly one placeholder frame named "???" whose Line holds the raw
// address. The code-info source is pluggable through [Service]; the
// default reads the running process's own runtime tables, and
// [NewTableService] resolves against another Go binary on disk.
//
// # Concurrency
//
// All capture and symbolication entry points are safe for concurrent
// use. [Record] publishes immutable snapshots with a single atomic
// swap, so readers never observe a partially repopulated backtrace.
//
// # Compatibility
//
// Platform support:
//   - Operating systems: Linux, macOS, Windows
//   - CGO requirement: None (works with CGO_ENABLED=0)
//   - Context unwinding: amd64, arm64 (self-capture on all architectures)
package backtrace
