package index

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrWriteFailure is matched by every *DumpError.
	ErrWriteFailure = errors.New("write failure")

	// ErrEmptyMapType is returned by Registry.Create for an empty type name.
	ErrEmptyMapType = errors.New("need non-empty map type name")

	// ErrUnknownMapType is matched by every *UnknownMapTypeError.
	ErrUnknownMapType = errors.New("unknown map type")
)

// NotFoundError is returned by Map.Get when the id has no entry.
type NotFoundError struct {
	ID uint64 // ID is the id that was looked up
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("id %d not found", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DumpError indicates that a dump could not be written completely.
//
// The underlying sink error can be accessed via errors.Unwrap.
type DumpError struct {
	Map string
	Err error
}

func (e *DumpError) Error() string {
	return fmt.Sprintf("%s: dump failed: %v", e.Map, e.Err)
}

func (e *DumpError) Unwrap() error { return e.Err }

// Is reports whether target is ErrWriteFailure.
func (e *DumpError) Is(target error) bool { return target == ErrWriteFailure }

// UnknownMapTypeError is returned by Registry.Create for unregistered names.
type UnknownMapTypeError struct {
	Name string
}

func (e *UnknownMapTypeError) Error() string {
	return fmt.Sprintf("support for map type %q not compiled into this binary", e.Name)
}

// Is reports whether target is ErrUnknownMapType.
func (e *UnknownMapTypeError) Is(target error) bool { return target == ErrUnknownMapType }
