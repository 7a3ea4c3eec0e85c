// Package safepoint is the minimal coordination contract between the
// backtrace machinery and a garbage collector.
//
// Symbolication can be slow (debug-info parsing, symbol table searches),
// and a collector must not stall behind it. Code about to enter such a
// region brackets it with Enter and Leave, declaring "this goroutine
// will not touch managed memory until further notice"; a collector may
// treat goroutines inside safe regions as already stopped.
//
// The package tracks only the process-wide count of active safe regions.
// That is deliberately all of the contract this core consumes; the
// collector side lives elsewhere.
package safepoint

import "sync/atomic"

// active is the number of safe regions currently entered, across all
// goroutines. Nesting is counted, not flattened.
var active atomic.Int32

// Enter marks the start of a safe region. Safe to call from any
// goroutine, nests freely, never blocks.
func Enter() {
	active.Add(1)
}

// Leave marks the end of the most recent safe region entered by the
// caller. Every Enter must be paired with exactly one Leave.
func Leave() {
	active.Add(-1)
}

// Active returns the current number of entered safe regions. Intended
// for a collector deciding whether a stop-the-world can proceed, and for
// tests.
func Active() int32 {
	return active.Load()
}
