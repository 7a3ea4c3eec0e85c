package capture

import (
	"sync/atomic"

	"github.com/AlinaChi/julia/internal/backtrace/unwind"
)

// Snapshot is one recorded backtrace: raw frame address pairs, innermost
// call first, held in durable storage for later reporting. A Snapshot is
// immutable after publication; readers can hold one across an arbitrary
// number of later Record calls.
type Snapshot struct {
	ip []uintptr
	sp []uintptr
}

// NewSnapshot builds a snapshot from externally supplied frame
// addresses, for example an address dump from another process. Both
// slices are copied; sp may be nil. When sp is shorter than ip the
// missing stack pointers read as zero.
func NewSnapshot(ip, sp []uintptr) *Snapshot {
	s := &Snapshot{ip: append([]uintptr(nil), ip...)}
	if sp != nil {
		s.sp = make([]uintptr, len(s.ip))
		copy(s.sp, sp)
	}
	return s
}

// Len returns the number of frames in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ip)
}

// IP returns the instruction pointer of frame i.
func (s *Snapshot) IP(i int) uintptr { return s.ip[i] }

// SP returns the stack pointer of frame i, or zero when the capture
// backend could not provide one.
func (s *Snapshot) SP(i int) uintptr {
	if s.sp == nil {
		return 0
	}
	return s.sp[i]
}

// Frames returns a copy of the instruction pointers so callers cannot
// alias the stored buffer.
func (s *Snapshot) Frames() []uintptr {
	if s == nil {
		return nil
	}
	out := make([]uintptr, len(s.ip))
	copy(out, s.ip)
	return out
}

// last is the process-wide "most recently recorded backtrace".
//
// Publication is a single atomic pointer swap of an immutable value:
// a reader sees either the previous snapshot or the new one, never a
// partially written mix of the two. Repopulation is last-writer-wins and
// is not reentrant-aware beyond that; the usual writer is a fault or
// signal path recording state for a report printed later.
var last atomic.Pointer[Snapshot]

// Record captures the calling goroutine's stack (growable, with stack
// pointers) and publishes it as the current snapshot. skip=0 starts at
// Record's caller. The published snapshot is returned.
func Record(skip int) *Snapshot {
	var c callersCursor
	// One frame deeper than Here: growAll sits between Stepn and Record.
	c.init(skip + 6)
	ip, sp := growAll(&c, true, growIncrement)
	s := &Snapshot{ip: ip, sp: sp}
	last.Store(s)
	return s
}

// RecordContext captures from an explicit execution context and publishes
// the result as the current snapshot. On a platform where the context
// backend is disabled the published snapshot is empty, not nil, so "a
// record happened but produced nothing" stays observable.
func RecordContext(ctx *unwind.Context) *Snapshot {
	var c unwind.Cursor
	s := &Snapshot{}
	if unwind.InitCursor(&c, ctx) {
		s.ip, s.sp = growAll(&c, true, growIncrement)
	}
	last.Store(s)
	return s
}

// Last returns the current snapshot, or nil if nothing was recorded yet.
func Last() *Snapshot {
	return last.Load()
}

// Reset clears the stored snapshot (for testing).
func Reset() {
	last.Store(nil)
}
