// Package index defines the contract shared by id -> value map implementations.
package index

import (
	"io"
)

// Identifier is the key type of a Map. Keys are ordered numerically.
type Identifier interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Map associates unique identifiers with fixed-size values.
//
// Implementations are not safe for concurrent use. A caller that shares a
// Map between goroutines must serialize all access itself.
type Map[K Identifier, V any] interface {
	// Set inserts or overwrites the value for id.
	Set(id K, value V)

	// Get returns the value for id, or a *NotFoundError if there is none.
	Get(id K) (V, error)

	// GetNoErr returns the value for id, or EmptyValue[V]() if there is none.
	GetNoErr(id K) V

	// Len returns the number of entries.
	Len() int

	// UsedMemory returns an estimate of the memory held by the entries in bytes.
	UsedMemory() int

	// Clear removes all entries.
	Clear()

	// DumpAsList writes all entries as fixed-width records in ascending id
	// order. See AppendRecord for the record layout.
	DumpAsList(w io.Writer) error

	// Name returns the registered type name of the implementation.
	Name() string
}

// Emptier is implemented by value types that define their own "no value"
// marker, for example a location whose zero value is a valid coordinate.
type Emptier[V any] interface {
	Empty() V
}

// EmptyValue returns the value reported for missing ids: V's Empty() result
// if V implements Emptier, the zero value otherwise.
func EmptyValue[V any]() V {
	var zero V
	if e, ok := any(zero).(Emptier[V]); ok {
		return e.Empty()
	}
	return zero
}
