//go:build unix

package printer

import "golang.org/x/sys/unix"

// write sends b to standard error with a raw write(2), bypassing any
// buffering above the file descriptor. Retries on EINTR; other errors
// are swallowed, there is nowhere left to report them.
func write(b []byte) {
	for len(b) > 0 {
		n, err := unix.Write(2, b)
		if n > 0 {
			b = b[n:]
			continue
		}
		if err != unix.EINTR {
			return
		}
	}
}
