// Package index provides the contract for id -> value maps and a registry
// that selects an implementation by name.
//
// A map resolves an identifier (e.g. a node id) to a fixed-size value (e.g. a
// location). Implementations differ in how they store entries:
//
//   - sparse_mem_map: ordered tree in memory (package index/sparse)
//
// # Lookups
//
// Two accessors exist over the same data. Get reports a missing id as an
// error, GetNoErr returns the value type's empty marker instead:
//
//	loc, err := m.Get(id)
//	if errors.Is(err, index.ErrNotFound) {
//	    // skip the way
//	}
//
//	loc = m.GetNoErr(id) // model.UndefinedLocation if missing
//
// # Dump Format
//
// DumpAsList writes a flat array of records in ascending id order with no
// header, trailer or length prefix. Each record is RecordSize[K, V]() bytes:
// the little-endian id followed by the little-endian value. Readers must know
// both sizes out of band.
//
// # Selecting an Implementation
//
//	m, err := index.NodeLocations.Create("sparse_mem_map")
//
// Implementations register themselves from init(), so the package providing
// them must be imported (usually for side effects).
package index
