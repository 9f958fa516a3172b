// Package fs provides the reliable-write primitive used to flush dumps, plus
// filesystem abstractions for testability and fault injection.
//
// # Reliable Writes
//
// [WriteFull] either writes every byte of a buffer or reports a [*WriteError].
// It splits large buffers into chunks of at most [MaxWriteChunk] bytes and
// keeps writing after partial writes that carry no error:
//
//	if err := fs.WriteFull(w, buf); err != nil {
//	    return err // *fs.WriteError, cause via errors.Unwrap
//	}
//
// [FDWriter] writes to a raw file descriptor and restarts interrupted calls.
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility that injects write, sync, close and rename failures
//   - [FaultyWriter]: Test utility that injects faults into any io.Writer
//
// Tests can inject faults to exercise the failure paths:
//
//	fault := fs.NoFault
//	fault.FailAfterBytes = 1024 // Fail after 1KB written
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp", fault)
package fs
