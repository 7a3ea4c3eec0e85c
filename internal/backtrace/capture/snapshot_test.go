package capture

import (
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/AlinaChi/julia/internal/backtrace/unwind"
)

func TestRecordAndLast(t *testing.T) {
	Reset()
	if Last() != nil {
		t.Fatal("Last() after Reset should be nil")
	}
	s := Record(0)
	if s == nil || s.Len() == 0 {
		t.Fatal("Record captured nothing")
	}
	if Last() != s {
		t.Error("Last() should return the snapshot Record published")
	}
	if got := frameFunc(s.IP(0)); !strings.Contains(got, "TestRecordAndLast") {
		t.Errorf("first recorded frame = %q, want within TestRecordAndLast", got)
	}
	if len(s.Frames()) != s.Len() {
		t.Errorf("Frames() length = %d, want %d", len(s.Frames()), s.Len())
	}
	// Frames returns a copy, not the stored buffer.
	f := s.Frames()
	f[0] = 0xdead
	if s.IP(0) == 0xdead {
		t.Error("Frames() aliases the stored buffer")
	}
}

func TestRecordContextDisabledOrEmpty(t *testing.T) {
	Reset()
	s := RecordContext(&unwind.Context{})
	if s == nil {
		t.Fatal("RecordContext returned nil")
	}
	if s.Len() != 0 {
		t.Fatalf("RecordContext(zero ctx) recorded %d frames, want 0", s.Len())
	}
	if Last() != s {
		t.Error("an empty record must still publish")
	}
}

func TestNewSnapshotCopies(t *testing.T) {
	ip := []uintptr{1, 2, 3}
	sp := []uintptr{4, 5}
	s := NewSnapshot(ip, sp)
	ip[0] = 99
	sp[0] = 99
	if s.IP(0) != 1 || s.SP(0) != 4 {
		t.Error("NewSnapshot must copy its inputs")
	}
	if s.SP(2) != 0 {
		t.Errorf("short sp should pad with zero, got %#x", s.SP(2))
	}
	if s := NewSnapshot(nil, nil); s.Len() != 0 {
		t.Errorf("empty NewSnapshot Len = %d, want 0", s.Len())
	}
}

func TestSnapshotNilSafe(t *testing.T) {
	var s *Snapshot
	if s.Len() != 0 {
		t.Error("nil snapshot Len should be 0")
	}
	if s.Frames() != nil {
		t.Error("nil snapshot Frames should be nil")
	}
}

func TestConcurrentRecordAndRead(t *testing.T) {
	// Repopulating while readers iterate the previous snapshot must never
	// expose a mixed-length or mixed-content buffer. Every snapshot a
	// reader holds is internally consistent: equal ip/sp lengths and
	// resolvable leading frame.
	Reset()
	const writers = 4
	const readers = 4
	const rounds = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				Record(0)
			}
		}()
	}
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				s := Last()
				if s == nil {
					continue
				}
				n := s.Len()
				for j := 0; j < n; j++ {
					if s.IP(j) == 0 {
						t.Errorf("snapshot frame %d/%d is zero", j, n)
						return
					}
					_ = s.SP(j)
				}
				runtime.Gosched()
			}
		}()
	}
	wg.Wait()
}
