//go:build unix

package fs

import (
	"golang.org/x/sys/unix"
)

// FDWriter writes to a raw file descriptor.
// Calls interrupted by a signal are restarted.
type FDWriter struct {
	fd int
}

// NewFDWriter creates an FDWriter for fd. The descriptor is not owned.
func NewFDWriter(fd int) *FDWriter {
	return &FDWriter{fd: fd}
}

func (w *FDWriter) Write(p []byte) (int, error) {
	for {
		n, err := unix.Write(w.fd, p)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}
