package capture

import (
	"runtime"

	"github.com/AlinaChi/julia/internal/backtrace/unwind"
)

// growIncrement is the growable-capture extension step, in frames.
const growIncrement = 1000

// callersChunk is how many program counters one refill of the streaming
// self-walk cursor requests from the runtime.
const callersChunk = 64

// callersCursor adapts the Go runtime's own stack walker to the unwind
// step contract, consuming runtime.Callers in fixed chunks so the walk
// streams instead of demanding one huge up-front buffer.
//
// Fills are depth-sensitive: the accumulated skip count is only
// consistent if every runtime.Callers call happens at the same stack
// depth, so all fills, the first included, run from inside Step (Stepn's
// loop calling Step calling fill). init deliberately does not prefill.
type callersCursor struct {
	skip int
	buf  [callersChunk]uintptr
	n    int // frames in buf; -1 before the first fill
	i    int // next frame to hand out
}

func (c *callersCursor) init(skip int) {
	c.skip = skip
	c.n = -1
}

func (c *callersCursor) fill() {
	c.n = runtime.Callers(c.skip, c.buf[:])
	c.skip += c.n
	c.i = 0
}

// Step hands out the next program counter from the runtime walker. Stack
// pointers are not recoverable from this backend and come back zero.
// When a chunk is drained a refill happens eagerly, right here, to keep
// the fill depth constant.
func (c *callersCursor) Step(ip, sp *uintptr) (wrote, more bool) {
	if c.n < 0 {
		c.fill()
	}
	if c.i >= c.n {
		return false, false
	}
	*ip = c.buf[c.i]
	*sp = 0
	c.i++
	if c.i >= c.n {
		if c.n < len(c.buf) {
			return true, false
		}
		c.fill()
		return true, c.n > 0
	}
	return true, true
}

// FromContext is the bounded capture from an explicit execution context.
// Capacity is len(ip); sp may be nil or a buffer of the same length. The
// count comes back with Stepn's truncation sentinel (len(ip)+1) when the
// stack is deeper than the buffer. A context the backend cannot start
// from yields zero frames, never an error.
func FromContext(ctx *unwind.Context, ip, sp []uintptr) int {
	var c unwind.Cursor
	if !unwind.InitCursor(&c, ctx) {
		return 0
	}
	n := len(ip)
	if sp != nil && len(sp) < n {
		n = len(sp)
	}
	return unwind.Stepn(&c, ip, sp, n)
}

// Here is the bounded capture of the calling goroutine's own stack.
// skip=0 starts at Here's caller. Semantics otherwise match FromContext.
func Here(ip, sp []uintptr, skip int) int {
	var c callersCursor
	// Skip runtime.Callers, fill, Step, Stepn and Here itself, so that
	// skip=0 lands on Here's caller.
	c.init(skip + 5)
	n := len(ip)
	if sp != nil && len(sp) < n {
		n = len(sp)
	}
	return unwind.Stepn(&c, ip, sp, n)
}

// Grow is the growable capture of the calling goroutine's own stack.
// skip=0 starts at Grow's caller. When wantSP is true a parallel
// stack-pointer slice of identical length is returned (zero-filled for
// this backend; see the package comment).
func Grow(wantSP bool, skip int) (ip, sp []uintptr) {
	var c callersCursor
	// One frame deeper than Here: growAll sits between Stepn and Grow.
	c.init(skip + 6)
	return growAll(&c, wantSP, growIncrement)
}

// growAll repeatedly extends the buffers by incr frames and re-steps the
// same cursor until a round comes back holding fewer frames than the
// increment, then trims to the exact count. The exact trim is a hard
// invariant: callers compare lengths, not counts.
func growAll(s unwind.Stepper, wantSP bool, incr int) (ip, sp []uintptr) {
	offset := 0
	for {
		ip = append(ip, make([]uintptr, incr)...)
		spChunk := []uintptr(nil)
		if wantSP {
			sp = append(sp, make([]uintptr, incr)...)
			spChunk = sp[offset:]
		}
		n := unwind.Stepn(s, ip[offset:], spChunk, incr)
		if n <= incr {
			offset += n
			break
		}
		offset += incr
	}
	ip = ip[:offset]
	if wantSP {
		sp = sp[:offset]
	}
	return ip, sp
}
