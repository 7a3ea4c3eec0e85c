// Package capture records backtraces as raw frame address pairs.
//
// Two capture shapes are provided on top of the unwind package:
//
//   - Bounded: the caller owns a fixed buffer; the count comes back with
//     the unwind package's one-past-capacity truncation sentinel.
//   - Growable: the buffer is extended in fixed increments until the walk
//     completes, then trimmed to the exact count. Call-stack depth is
//     unbounded, and a fixed cap would silently lose deep recursion.
//
// Capture sources are an explicit execution context (register state from
// a signal handler or crash path) or the calling goroutine itself. Self
// capture streams the Go runtime's own stack walker through the same
// fault-tolerant stepping loop the register backends use; it works on
// every platform, including ones where the context backend is compiled
// out. The runtime walker does not expose stack pointers, so self-capture
// stack pointer buffers are zero-filled.
//
// The package also owns Snapshot State: the most recently recorded
// backtrace, kept for later reporting. Only Record and RecordContext
// touch it; the plain capture entry points never do, so a live capture
// buffer and the durable snapshot cannot be confused.
package capture
