package fs

import (
	"fmt"
	"io"
)

// MaxWriteChunk is the largest buffer handed to a single Write call.
const MaxWriteChunk = 100 * 1024 * 1024

// WriteError reports a write that could not be completed.
//
// The underlying error can be accessed via errors.Unwrap.
type WriteError struct {
	Written int // Written bytes accepted before the failure
	Total   int // Total bytes requested
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failed after %d of %d bytes: %v", e.Written, e.Total, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteFull writes all of p to w.
//
// Partial writes without an error are continued. A write that makes no
// progress fails with io.ErrShortWrite instead of spinning.
func WriteFull(w io.Writer, p []byte) error {
	total := len(p)
	written := 0
	for written < total {
		end := min(total, written+MaxWriteChunk)
		n, err := w.Write(p[written:end])
		if n < 0 || n > end-written {
			return &WriteError{Written: written, Total: total, Err: fmt.Errorf("invalid write count %d", n)}
		}
		written += n
		if err != nil {
			return &WriteError{Written: written, Total: total, Err: err}
		}
		if n == 0 {
			return &WriteError{Written: written, Total: total, Err: io.ErrShortWrite}
		}
	}
	return nil
}

// ReliableWriter adapts an io.Writer so that every Write goes through WriteFull.
type ReliableWriter struct {
	w io.Writer
	n int64
}

// NewReliableWriter creates a ReliableWriter writing to w.
func NewReliableWriter(w io.Writer) *ReliableWriter {
	return &ReliableWriter{w: w}
}

// Written returns the total number of bytes written so far.
func (rw *ReliableWriter) Written() int64 { return rw.n }

func (rw *ReliableWriter) Write(p []byte) (int, error) {
	err := WriteFull(rw.w, p)
	if err != nil {
		we := err.(*WriteError)
		rw.n += int64(we.Written)
		return we.Written, err
	}
	rw.n += int64(len(p))
	return len(p), nil
}
