// Package export publishes index dumps as files.
//
// A dump is written to "<path>.tmp" and only renamed to path by Commit, so
// readers never observe a partially written dump:
//
//	f, err := export.Create("nodes.bin", export.WithCompression(export.CompressionZSTD))
//	if err != nil {
//	    return err
//	}
//	if err := m.DumpAsList(f); err != nil {
//	    _ = f.Abort()
//	    return err
//	}
//	return f.Commit()
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/bvbever/osm2pgsql/internal/fs"
)

// bufferSize batches small record writes before they reach the file.
const bufferSize = 256 * 1024

type options struct {
	fs          fs.FileSystem
	compression Compression
	sync        bool
}

// Option configures Create.
type Option func(*options)

// WithFileSystem sets the file system used to create and rename the file.
// If nil is passed, fs.Default is used.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fs = fsys
	}
}

// WithCompression sets the stream compression. Default: CompressionNone.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithSync controls whether Commit fsyncs the file before the rename.
// Default: true.
func WithSync(sync bool) Option {
	return func(o *options) {
		o.sync = sync
	}
}

// File is a dump being written. It implements io.Writer.
type File struct {
	path   string
	tmp    string
	fsys   fs.FileSystem
	file   fs.File
	disk   *fs.ReliableWriter
	buf    *bufio.Writer
	enc    io.WriteCloser
	sync   bool
	closed bool
}

// Create opens a temporary file next to path for writing a dump.
func Create(path string, optFns ...Option) (*File, error) {
	opts := options{fs: fs.Default, sync: true}
	for _, fn := range optFns {
		fn(&opts)
	}

	tmp := path + ".tmp"
	file, err := opts.fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("export: failed to create %s: %w", tmp, err)
	}

	f := &File{
		path: path,
		tmp:  tmp,
		fsys: opts.fs,
		file: file,
		disk: fs.NewReliableWriter(file),
		sync: opts.sync,
	}
	f.buf = bufio.NewWriterSize(f.disk, bufferSize)

	enc, err := NewWriter(f.buf, opts.compression)
	if err != nil {
		_ = f.Abort()
		return nil, fmt.Errorf("export: %w", err)
	}
	f.enc = enc
	return f, nil
}

// Path returns the final path of the dump.
func (f *File) Path() string { return f.path }

// Written returns the number of bytes that reached the file so far.
func (f *File) Written() int64 { return f.disk.Written() }

func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	return f.enc.Write(p)
}

// Commit flushes all buffered data, syncs and closes the file and renames
// it to its final path. On failure the temporary file is removed.
func (f *File) Commit() error {
	if f.closed {
		return os.ErrClosed
	}

	if err := f.finish(); err != nil {
		_ = f.Abort()
		return err
	}
	f.closed = true

	if err := f.fsys.Rename(f.tmp, f.path); err != nil {
		_ = f.fsys.Remove(f.tmp)
		return fmt.Errorf("export: failed to rename %s: %w", f.tmp, err)
	}
	return nil
}

func (f *File) finish() error {
	if err := f.enc.Close(); err != nil {
		return fmt.Errorf("export: failed to finish %s stream: %w", f.path, err)
	}
	if err := f.buf.Flush(); err != nil {
		return fmt.Errorf("export: failed to write %s: %w", f.path, err)
	}
	if f.sync {
		if err := f.file.Sync(); err != nil {
			return fmt.Errorf("export: failed to sync %s: %w", f.path, err)
		}
	}
	if err := f.file.Close(); err != nil {
		return fmt.Errorf("export: failed to close %s: %w", f.path, err)
	}
	return nil
}

// Abort discards the dump. It is a no-op after a successful Commit.
func (f *File) Abort() error {
	if f.closed {
		return nil
	}
	f.closed = true
	_ = f.file.Close() // Intentionally ignore: the file is removed anyway
	return f.fsys.Remove(f.tmp)
}
