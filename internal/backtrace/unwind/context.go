package unwind

import "unsafe"

// ptrSize is the machine word size. Frame chains are walked in word units.
const ptrSize = unsafe.Sizeof(uintptr(0))

// Context is an architecture-defined snapshot of the registers needed to
// resume unwinding from an arbitrary point: the instruction pointer, the
// stack pointer and the frame pointer of the innermost frame.
//
// A Context is immutable once captured and is owned by the caller for its
// whole lifetime; the package never retains a reference to it. The usual
// producers are signal handlers and crash paths that receive register
// state from the operating system.
type Context struct {
	// IP is the instruction pointer of the innermost frame.
	IP uintptr

	// SP is the stack pointer of the innermost frame.
	SP uintptr

	// FP is the frame pointer heading the saved-frame-pointer chain.
	// A zero FP limits the walk to the innermost frame.
	FP uintptr
}

// Stepper is the single-walk view of an unwind backend.
//
// Step writes the current frame's instruction pointer and stack pointer,
// advances toward the caller frame, and reports what happened: wrote says
// whether a frame was produced, more whether the walk can continue.
// (wrote, !more) is the normal end-of-stack condition and the frame
// written by that final call is still valid; (!wrote, !more) is an
// exhausted or empty walk. Neither is an error.
//
// A Step implementation may fault while reading stack memory; Stepn is
// the only sanctioned caller and runs every walk inside a
// recoverable-fault boundary.
//
// A Stepper is owned by exactly one walk. Two concurrent walks must use
// two cursors.
type Stepper interface {
	Step(ip, sp *uintptr) (wrote, more bool)
}

// Cursor is the mutable per-walk state threading one unwind step to the
// next. A zero Cursor is invalid; InitCursor must succeed before the
// first Step. Cursors are never shared across concurrent walks.
type Cursor struct {
	ip, sp, fp uintptr

	// have reports whether the cursor currently points at a frame.
	// Cleared when the chain ends or stops being trustworthy.
	have bool
}

// advance moves the cursor from the current frame to its caller by
// following the saved-frame-pointer chain:
//
//	0(FP):       caller's saved frame pointer
//	ptrSize(FP): return address in the caller
//
// The loads below are the only place the walk touches stack memory. They
// run under the Stepn fault boundary, so a frame pointer into unmapped or
// foreign memory ends the walk instead of the process.
func (c *Cursor) advance() {
	fp := c.fp
	if fp == 0 || fp&(ptrSize-1) != 0 || fp < c.sp {
		// No chain, misaligned chain, or a chain pointing below the
		// current frame. All three mean the metadata cannot be trusted.
		c.have = false
		return
	}
	newfp := *(*uintptr)(unsafe.Pointer(fp))
	ret := *(*uintptr)(unsafe.Pointer(fp + ptrSize))
	if ret == 0 {
		c.have = false
		return
	}
	c.ip = ret
	c.sp = fp + 2*ptrSize
	if newfp <= fp {
		// The chain must move strictly toward older frames. Anything
		// else would loop; stop after the frame just produced.
		newfp = 0
	}
	c.fp = newfp
}
