package unwind

import (
	"runtime"
	"sync/atomic"
)

// DebugHelp is the slow path behind the Resolver: a service that can map
// an instruction pointer to its owning function entry and module image
// base. The underlying service is assumed non-reentrant; callers go
// through a Resolver, never through a DebugHelp directly.
type DebugHelp interface {
	// FunctionEntry returns the entry address of the function containing
	// ip, or ok=false if no function table covers it.
	FunctionEntry(ip uintptr) (entry uintptr, ok bool)

	// ModuleBase returns the image base of the module containing ip, or
	// ok=false if no loaded module claims it.
	ModuleBase(ip uintptr) (base uintptr, ok bool)
}

// Resolver resolves instruction pointers to function entries and module
// bases on behalf of a stack walk. It is the capability object guarding
// the non-reentrant debug-help service with an explicit busy state:
// resolution requested while another resolution is in flight (a nested
// symbol fault, or a second thread's walk) answers "not found" instead of
// re-entering the service. The walk that gets the refusal simply ends
// early; that is the documented failure direction, fewer frames rather
// than corrupted service state.
//
// A one-entry cache in front of the service answers repeat lookups for
// the same address without taking the busy flag at all, the common case
// when a walk resolves the same ip for base and entry back to back.
//
// Thread Safety: the busy flag is a CAS, never a blocking lock, so the
// Resolver is safe to use from signal handlers and unmanaged threads.
type Resolver struct {
	busy  atomic.Int32
	cache atomic.Pointer[moduleCacheEntry]
	svc   DebugHelp
}

// moduleCacheEntry is the last successful ip-to-base resolution.
type moduleCacheEntry struct {
	addr uintptr
	base uintptr
}

// NewResolver returns a Resolver over svc.
func NewResolver(svc DebugHelp) *Resolver {
	return &Resolver{svc: svc}
}

// ModuleBase resolves the image base owning ip. It returns ok=false when
// no module claims ip or when the service is busy with another
// resolution.
func (r *Resolver) ModuleBase(ip uintptr) (uintptr, bool) {
	if e := r.cache.Load(); e != nil && e.addr == ip {
		return e.base, true
	}
	if !r.busy.CompareAndSwap(0, 1) {
		// Already inside a resolution; do not recurse into the service.
		return 0, false
	}
	base, ok := r.svc.ModuleBase(ip)
	r.busy.Store(0)
	if ok {
		r.cache.Store(&moduleCacheEntry{addr: ip, base: base})
	}
	return base, ok
}

// FunctionEntry resolves the entry address of the function containing ip.
// It returns ok=false when ip is not covered by any function table or
// when the service is busy with another resolution.
func (r *Resolver) FunctionEntry(ip uintptr) (uintptr, bool) {
	if !r.busy.CompareAndSwap(0, 1) {
		return 0, false
	}
	entry, ok := r.svc.FunctionEntry(ip)
	r.busy.Store(0)
	return entry, ok
}

// Invalidate drops the cached resolution. Called after module load or
// unload events, when a cached base may be stale.
func (r *Resolver) Invalidate() {
	r.cache.Store(nil)
}

// runtimeHelp backs the shared Resolver with the Go runtime's own
// function tables. The runtime does not expose image bases, so the entry
// of the containing function stands in for the base; the walk only needs
// the known/unknown distinction.
type runtimeHelp struct{}

func (runtimeHelp) FunctionEntry(ip uintptr) (uintptr, bool) {
	f := runtime.FuncForPC(ip)
	if f == nil {
		return 0, false
	}
	return f.Entry(), true
}

func (runtimeHelp) ModuleBase(ip uintptr) (uintptr, bool) {
	f := runtime.FuncForPC(ip)
	if f == nil {
		return 0, false
	}
	return f.Entry(), true
}

// sharedResolver is the process-wide resolver used by the debug-help
// backend. Process-wide because the service caches behind it are
// process-wide; see the Resolver doc for the concurrency contract.
var sharedResolver = NewResolver(runtimeHelp{})
