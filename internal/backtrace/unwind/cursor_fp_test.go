//go:build (amd64 && !windows) || arm64

package unwind

import (
	"runtime"
	"testing"
	"unsafe"
)

// fakeStack fabricates a saved-frame-pointer chain inside a slice so the
// cursor can be exercised against known memory. Layout per frame: the
// word at the frame pointer holds the caller's frame pointer, the next
// word holds the return address.
type fakeStack struct {
	words []uintptr
}

func newFakeStack(n int) *fakeStack {
	return &fakeStack{words: make([]uintptr, n)}
}

func (s *fakeStack) addr(i int) uintptr {
	return uintptr(unsafe.Pointer(&s.words[i]))
}

func TestCursorWalk(t *testing.T) {
	// Three frames: ip 0x100 at the context, callers at 0x200 and 0x300.
	s := newFakeStack(32)
	s.words[2] = s.addr(10) // innermost frame: saved caller FP
	s.words[3] = 0x200      // return address into middle frame
	s.words[10] = s.addr(20)
	s.words[11] = 0x300
	s.words[20] = 0 // outer frame: chain ends
	s.words[21] = 0 // zero return address terminates

	ctx := Context{IP: 0x100, SP: s.addr(0), FP: s.addr(2)}
	var c Cursor
	if !InitCursor(&c, &ctx) {
		t.Fatal("InitCursor failed")
	}
	ip := make([]uintptr, 8)
	sp := make([]uintptr, 8)
	n := Stepn(&c, ip, sp, 8)
	runtime.KeepAlive(s)

	if n != 3 {
		t.Fatalf("Stepn = %d frames, want 3", n)
	}
	wantIP := []uintptr{0x100, 0x200, 0x300}
	wantSP := []uintptr{s.addr(0), s.addr(4), s.addr(12)}
	for i := 0; i < 3; i++ {
		if ip[i] != wantIP[i] {
			t.Errorf("ip[%d] = %#x, want %#x", i, ip[i], wantIP[i])
		}
		if sp[i] != wantSP[i] {
			t.Errorf("sp[%d] = %#x, want %#x", i, sp[i], wantSP[i])
		}
	}
}

func TestCursorMisalignedChain(t *testing.T) {
	// A misaligned saved frame pointer ends the walk cleanly after the
	// frames already produced.
	s := newFakeStack(16)
	s.words[2] = s.addr(10) + 1 // misaligned caller FP
	s.words[3] = 0x200

	ctx := Context{IP: 0x100, SP: s.addr(0), FP: s.addr(2)}
	var c Cursor
	if !InitCursor(&c, &ctx) {
		t.Fatal("InitCursor failed")
	}
	ip := make([]uintptr, 8)
	n := Stepn(&c, ip, nil, 8)
	runtime.KeepAlive(s)
	if n != 2 {
		t.Fatalf("Stepn = %d frames, want 2 (stop at misaligned chain)", n)
	}
}

func TestCursorDownwardChain(t *testing.T) {
	// A chain that moves toward newer frames would loop; the walk must
	// refuse to follow it.
	s := newFakeStack(16)
	s.words[10] = s.addr(2) // points backwards
	s.words[11] = 0x200

	ctx := Context{IP: 0x100, SP: s.addr(0), FP: s.addr(10)}
	var c Cursor
	if !InitCursor(&c, &ctx) {
		t.Fatal("InitCursor failed")
	}
	ip := make([]uintptr, 8)
	n := Stepn(&c, ip, nil, 8)
	runtime.KeepAlive(s)
	if n != 2 {
		t.Fatalf("Stepn = %d frames, want 2 (refuse downward chain)", n)
	}
}

func TestInitCursorNoIP(t *testing.T) {
	var c Cursor
	if InitCursor(&c, &Context{}) {
		t.Error("InitCursor succeeded on an empty context")
	}
}

func TestCursorZeroFP(t *testing.T) {
	// No frame pointer limits the walk to the innermost frame.
	var c Cursor
	if !InitCursor(&c, &Context{IP: 0x100, SP: 0x2000}) {
		t.Fatal("InitCursor failed")
	}
	ip := make([]uintptr, 4)
	n := Stepn(&c, ip, nil, 4)
	if n != 1 {
		t.Fatalf("Stepn = %d frames, want 1", n)
	}
	if ip[0] != 0x100 {
		t.Errorf("ip[0] = %#x, want 0x100", ip[0])
	}
}
