package fs

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the error returned by injected faults without an explicit Err.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior.
type Fault struct {
	FailAfterBytes int64 // Fail writes that would pass this many bytes. -1 to disable.
	MaxWrite       int   // Accept at most this many bytes per Write call, without error. 0 to disable.
	StallAfter     int64 // Report 0 bytes and no error once this many bytes are written. -1 to disable.
	FailOnSync     bool
	FailOnClose    bool
	Err            error
}

// NoFault is a Fault that never triggers.
var NoFault = Fault{FailAfterBytes: -1, StallAfter: -1}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// FaultyWriter wraps an io.Writer and injects the faults described by Fault.
type FaultyWriter struct {
	w       io.Writer
	fault   Fault
	written int64
	calls   int
}

// NewFaultyWriter creates a FaultyWriter writing to w.
func NewFaultyWriter(w io.Writer, fault Fault) *FaultyWriter {
	return &FaultyWriter{w: w, fault: fault}
}

// Written returns the number of bytes passed to the underlying writer.
func (fw *FaultyWriter) Written() int64 { return fw.written }

// Calls returns the number of Write calls received.
func (fw *FaultyWriter) Calls() int { return fw.calls }

func (fw *FaultyWriter) Write(p []byte) (int, error) {
	fw.calls++

	if fw.fault.StallAfter >= 0 && fw.written >= fw.fault.StallAfter {
		return 0, nil
	}

	if fw.fault.MaxWrite > 0 && len(p) > fw.fault.MaxWrite {
		p = p[:fw.fault.MaxWrite]
	}

	var err error
	if fw.fault.FailAfterBytes >= 0 && fw.written+int64(len(p)) > fw.fault.FailAfterBytes {
		// Deliver what fits, then fail.
		p = p[:fw.fault.FailAfterBytes-fw.written]
		err = fw.fault.err()
	}

	n, werr := fw.w.Write(p)
	fw.written += int64(n)
	if werr != nil {
		return n, werr
	}
	return n, err
}

// FaultyFS is a FileSystem wrapper that can inject errors.
type FaultyFS struct {
	FS           FileSystem
	mu           sync.Mutex
	rules        map[string]Fault // Filename pattern -> Fault
	Default      Fault            // Fallback
	FailOnRename bool
}

// NewFaultyFS creates a new FaultyFS wrapping the provided FS (or Default if nil).
func NewFaultyFS(fs FileSystem) *FaultyFS {
	if fs == nil {
		fs = Default
	}
	return &FaultyFS{
		FS:      fs,
		rules:   make(map[string]Fault),
		Default: NoFault,
	}
}

// AddRule adds a fault injection rule for file names containing pattern.
// Unset limits in fault are not disabled automatically; start from NoFault.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	fault := f.Default
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			fault = rule
		}
	}
	f.mu.Unlock()

	return &faultyFile{File: file, fw: NewFaultyWriter(file, fault), fault: fault}, nil
}

func (f *FaultyFS) Remove(name string) error {
	return f.FS.Remove(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if f.FailOnRename {
		return ErrInjected
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	return f.FS.Stat(name)
}

type faultyFile struct {
	File
	fw    *FaultyWriter
	fault Fault
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	return ff.fw.Write(p)
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return ff.fault.err()
	}
	return ff.File.Close()
}
