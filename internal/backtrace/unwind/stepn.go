package unwind

import "runtime/debug"

// Stepn drives one unwind walk, collecting at most maxsize frames into ip
// and, when sp is non-nil, the matching stack pointers into sp. Both
// slices must hold at least maxsize entries. The cursor must have been
// initialized successfully; a failed InitCursor means zero frames and no
// Stepn call.
//
// Return value:
//
//   - the exact frame count when the walk ends within capacity,
//   - maxsize+1 when the walk ran out of space (the buffer holds maxsize
//     valid frames and the one-past-capacity value is the truncation
//     sentinel; the cursor still holds the next frame, so a later Stepn
//     on the same cursor resumes where this one stopped),
//   - the count collected before the faulting step when the walk faulted.
//
// The whole loop runs inside a recoverable-fault boundary: stepping walks
// raw stack memory, and a corrupt frame chain can point anywhere, so for
// the duration of the walk faults at unexpected addresses are converted
// to panics and recovered here. The frame that was mid-step when the
// fault hit is discarded as likely invalid. The boundary is restored on
// every exit path, including the fault path.
//
// Stepn allocates nothing and acquires no locks, so it is safe to invoke
// from a signal handler and from threads the runtime does not manage.
func Stepn(c Stepper, ip, sp []uintptr, maxsize int) (n int) {
	var nullsp uintptr
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if recover() != nil {
			// The unwind failed, most likely on an invalid memory read.
			// The faulting step may have written a frame at index n but
			// never got counted; leaving n as-is backs off that one,
			// likely-invalid frame.
		}
	}()
	for {
		if n >= maxsize {
			n = maxsize + 1 // ran out of space
			break
		}
		spn := &nullsp
		if sp != nil {
			spn = &sp[n]
		}
		wrote, more := c.Step(&ip[n], spn)
		if wrote {
			n++
		}
		if !more {
			break
		}
	}
	return n
}
