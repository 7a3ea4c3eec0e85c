// Package unwind implements stack unwinding over raw register state.
//
// The package exposes one backend contract and three interchangeable
// backends selected at build time:
//
//  1. Frame-pointer backend (amd64, arm64): walks the saved-frame-pointer
//     chain directly, the way a DWARF-less native unwinder does.
//  2. Debug-help backend (windows/amd64): same chain walk, but every frame
//     is first resolved through a function-table Resolver with a one-entry
//     module cache and a re-entrancy guard.
//  3. Disabled backend (everything else): initialization always fails, so
//     context-based backtraces degrade to zero frames without crashing.
//
// On top of the backends sits Stepn, the fault-tolerant stepping loop. The
// loop runs with runtime/debug.SetPanicOnFault installed so that a wild
// read during unwinding (corrupt frame chain, foreign stack memory) turns
// into a recoverable panic instead of killing the process. On recovery the
// last, likely-corrupt frame is discarded.
//
// Nothing in this package allocates or blocks. It is safe to call from a
// signal handler goroutine and from goroutines the runtime did not start.
package unwind
