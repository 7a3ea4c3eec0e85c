package backtrace

import "github.com/AlinaChi/julia/internal/backtrace/unwind"

// Version information for the backtrace runtime.
const (
	// Version is the current version of the backtrace runtime.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the backtrace machinery.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Backend names the context-unwind backend compiled in for this
	// platform ("framepointer", "debughelp" or "disabled").
	Backend string

	// ContextUnwind indicates whether unwinding from an explicit
	// execution context is available. Self-capture always works.
	ContextUnwind bool
}

// GetInfo returns information about the backtrace runtime.
//
// Example:
//
//	info := backtrace.GetInfo()
//	fmt.Printf("backtrace %s (backend: %s)\n", info.Version, info.Backend)
func GetInfo() Info {
	return Info{
		Version:       Version,
		Backend:       unwind.BackendName,
		ContextUnwind: unwind.Available,
	}
}
