package symbolize

import (
	"runtime"
	"strings"

	"github.com/ianlancetaylor/demangle"
)

// runtimeService is the default code-info service, backed by the Go
// runtime's own tables. runtime.CallersFrames performs inline expansion
// natively and reports logical frames innermost first, which is exactly
// the order the bridge promises.
type runtimeService struct{}

func (runtimeService) FrameInfo(pc uintptr, expandInline bool) []Frame {
	if pc == 0 {
		return nil
	}
	if !expandInline {
		f := runtime.FuncForPC(pc)
		if f == nil {
			return nil
		}
		file, line := f.FileLine(pc)
		name := cleanName(f.Name())
		return []Frame{{
			Func:        name,
			File:        file,
			Line:        line,
			Entry:       f.Entry(),
			FromRuntime: isRuntimeName(name),
			PC:          pc,
		}}
	}
	var out []Frame
	frames := runtime.CallersFrames([]uintptr{pc})
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			name := cleanName(fr.Function)
			out = append(out, Frame{
				Func:        name,
				File:        fr.File,
				Line:        fr.Line,
				Entry:       fr.Entry,
				FromRuntime: isRuntimeName(name),
				// Inlined logical frames carry no *runtime.Func; the
				// physical frame at the end of the expansion does.
				Inlined: fr.Func == nil,
				PC:      fr.PC,
			})
		}
		if !more {
			break
		}
	}
	return out
}

// isRuntimeName reports whether a function name belongs to the runtime
// side of the world rather than managed user code.
func isRuntimeName(name string) bool {
	return strings.HasPrefix(name, "runtime.")
}

// cleanName demangles symbol names that came from native code. Go
// symbols pass through untouched; Itanium-mangled names picked up
// through cgo frames are rewritten to something readable.
func cleanName(name string) string {
	if strings.HasPrefix(name, "_Z") || strings.HasPrefix(name, "__Z") {
		return demangle.Filter(name)
	}
	return name
}
