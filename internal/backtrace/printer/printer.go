// Package printer renders captured backtraces to standard error in a
// crash-safe way.
//
// This is last-resort diagnostic output: it may run while the process is
// dying, so the formatting path allocates nothing, uses a fixed on-stack
// buffer, and writes with a raw system call where the platform allows.
// Lines that would overflow the buffer are truncated, never dropped.
package printer

import (
	"github.com/AlinaChi/julia/internal/backtrace/capture"
	"github.com/AlinaChi/julia/internal/backtrace/symbolize"
)

// lineBuf holds one formatted output line. Large enough for any sane
// symbol name; pathological ones get truncated.
const lineBufSize = 512

// Print writes every frame of snap to standard error, one line per
// logical frame, innermost first. Inlined frames are expanded. Safe to
// call with a nil or empty snapshot.
func Print(snap *capture.Snapshot) {
	print(snap, write)
}

// PrintLast prints the most recently recorded snapshot, if any.
func PrintLast() {
	print(capture.Last(), write)
}

// PrintAddress writes the symbolication of a single instruction pointer
// to standard error.
func PrintAddress(ip uintptr) {
	printAddress(ip, write)
}

// print is the testable core; out receives each formatted line
// including its trailing newline.
func print(snap *capture.Snapshot, out func([]byte)) {
	n := snap.Len()
	for i := 0; i < n; i++ {
		// Stored values are return addresses; step back one byte so the
		// lookup lands inside the calling instruction, not the next one.
		printAddress(snap.IP(i)-1, out)
	}
}

func printAddress(ip uintptr, out func([]byte)) {
	var buf [lineBufSize]byte
	frames := symbolize.LookupInlined(ip)
	if len(frames) == 0 {
		b := buf[:0]
		b = appendStr(b, "unknown function (ip: 0x")
		b = appendHex(b, uint64(ip))
		b = appendStr(b, ")\n")
		out(b)
		return
	}
	for _, f := range frames {
		b := buf[:0]
		name := f.Func
		if name == "" {
			name = "???"
		}
		b = appendStr(b, name)
		b = appendStr(b, " at ")
		if f.File == "" {
			b = appendStr(b, "???")
		} else {
			b = appendStr(b, f.File)
		}
		if f.Line > 0 {
			b = appendStr(b, ":")
			b = appendUint(b, uint64(f.Line))
		} else {
			b = appendStr(b, " (unknown line)")
		}
		b = appendStr(b, "\n")
		out(b)
	}
}

// appendStr appends s to b, clamped to the line buffer capacity.
func appendStr(b []byte, s string) []byte {
	room := cap(b) - len(b)
	if room <= 0 {
		return b
	}
	if len(s) > room {
		s = s[:room]
	}
	return append(b, s...)
}

// appendUint appends the decimal form of v.
func appendUint(b []byte, v uint64) []byte {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	return appendStr(b, string(tmp[i:]))
}

// appendHex appends the lowercase hexadecimal form of v, no prefix.
func appendHex(b []byte, v uint64) []byte {
	const digits = "0123456789abcdef"
	var tmp [16]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = digits[v&0xf]
		v >>= 4
		if v == 0 {
			break
		}
	}
	return appendStr(b, string(tmp[i:]))
}
