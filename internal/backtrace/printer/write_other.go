//go:build !unix

package printer

import "os"

func write(b []byte) {
	os.Stderr.Write(b)
}
