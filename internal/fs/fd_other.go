//go:build !unix

package fs

import (
	"os"
)

// FDWriter writes to a raw file descriptor.
type FDWriter struct {
	f *os.File
}

// NewFDWriter creates an FDWriter for fd. The descriptor is not owned.
func NewFDWriter(fd int) *FDWriter {
	return &FDWriter{f: os.NewFile(uintptr(fd), "fd")}
}

func (w *FDWriter) Write(p []byte) (int, error) {
	return w.f.Write(p)
}
