package printer

import (
	"strings"
	"testing"

	"github.com/AlinaChi/julia/internal/backtrace/capture"
	"github.com/AlinaChi/julia/internal/backtrace/symbolize"
)

type mapService struct {
	frames map[uintptr][]symbolize.Frame
}

func (m *mapService) FrameInfo(pc uintptr, expandInline bool) []symbolize.Frame {
	return m.frames[pc]
}

func withService(t *testing.T, s symbolize.Service) {
	t.Helper()
	old := symbolize.SetService(s)
	t.Cleanup(func() { symbolize.SetService(old) })
}

// collect gathers formatted lines instead of writing to stderr.
func collect(lines *[]string) func([]byte) {
	return func(b []byte) {
		*lines = append(*lines, string(b))
	}
}

func TestPrintAddressKnown(t *testing.T) {
	withService(t, &mapService{frames: map[uintptr][]symbolize.Frame{
		0x40: {{Func: "main.work", File: "main.go", Line: 7}},
	}})
	var lines []string
	printAddress(0x40, collect(&lines))
	if len(lines) != 1 || lines[0] != "main.work at main.go:7\n" {
		t.Fatalf("lines = %q, want one 'main.work at main.go:7'", lines)
	}
}

func TestPrintAddressUnknown(t *testing.T) {
	withService(t, &mapService{})
	var lines []string
	printAddress(0x1234abc, collect(&lines))
	if len(lines) != 1 || lines[0] != "unknown function (ip: 0x1234abc)\n" {
		t.Fatalf("lines = %q, want unknown-function form", lines)
	}
}

func TestPrintAddressUnknownLine(t *testing.T) {
	withService(t, &mapService{frames: map[uintptr][]symbolize.Frame{
		0x40: {{Func: "main.work", File: "main.go", Line: 0}},
	}})
	var lines []string
	printAddress(0x40, collect(&lines))
	if len(lines) != 1 || lines[0] != "main.work at main.go (unknown line)\n" {
		t.Fatalf("lines = %q, want unknown-line form", lines)
	}
}

func TestPrintAddressInlined(t *testing.T) {
	withService(t, &mapService{frames: map[uintptr][]symbolize.Frame{
		0x40: {
			{Func: "inner", File: "a.go", Line: 3, Inlined: true},
			{Func: "outer", File: "a.go", Line: 9},
		},
	}})
	var lines []string
	printAddress(0x40, collect(&lines))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 for an inlined pair", len(lines))
	}
	if lines[0] != "inner at a.go:3\n" || lines[1] != "outer at a.go:9\n" {
		t.Errorf("lines = %q, want innermost first", lines)
	}
}

func TestPrintSnapshotAdjustsReturnAddress(t *testing.T) {
	// Snapshots hold return addresses; the printer must look up one byte
	// back so the call site itself is reported.
	withService(t, &mapService{frames: map[uintptr][]symbolize.Frame{
		0x3f: {{Func: "main.callee", File: "main.go", Line: 4}},
	}})
	snap := capture.NewSnapshot([]uintptr{0x40}, nil)
	var lines []string
	print(snap, collect(&lines))
	if len(lines) != 1 || lines[0] != "main.callee at main.go:4\n" {
		t.Fatalf("lines = %q, want lookup at ip-1", lines)
	}
}

func TestPrintNilSnapshot(t *testing.T) {
	var lines []string
	print(nil, collect(&lines))
	if len(lines) != 0 {
		t.Fatalf("nil snapshot printed %d lines, want 0", len(lines))
	}
}

func TestPrintTruncatesLongNames(t *testing.T) {
	withService(t, &mapService{frames: map[uintptr][]symbolize.Frame{
		0x40: {{Func: strings.Repeat("x", 4096), File: "main.go", Line: 1}},
	}})
	var lines []string
	printAddress(0x40, collect(&lines))
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if len(lines[0]) > lineBufSize {
		t.Errorf("line length %d exceeds buffer size %d", len(lines[0]), lineBufSize)
	}
}

func TestAppendHelpers(t *testing.T) {
	buf := make([]byte, 0, 32)
	b := appendUint(buf, 0)
	if string(b) != "0" {
		t.Errorf("appendUint(0) = %q", b)
	}
	b = appendHex(buf, 0xdeadbeef)
	if string(b) != "deadbeef" {
		t.Errorf("appendHex = %q", b)
	}
	b = appendStr(make([]byte, 0, 4), "longer than four")
	if string(b) != "long" {
		t.Errorf("appendStr over capacity = %q", b)
	}
}
