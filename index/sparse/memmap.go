// Package sparse provides an ordered in-memory map from ids to fixed-size values.
//
// MemMap keeps its entries in a B-tree. It uses a lot of memory per entry
// compared to array-backed maps, but makes sense for small or very sparse
// id sets. It is registered in index.NodeLocations as "sparse_mem_map".
package sparse

import (
	"fmt"
	"io"
	"iter"
	"unsafe"

	"github.com/bvbever/osm2pgsql/index"
	"github.com/bvbever/osm2pgsql/internal/fs"
	"github.com/google/btree"
)

// Name is the registered type name of MemMap.
const Name = "sparse_mem_map"

// NodeOverhead is the assumed bookkeeping per entry: pointers to the left
// child, right child and parent plus one word for the balance colour.
const NodeOverhead = 4 * int(unsafe.Sizeof(uintptr(0)))

// dumpChunkRecords is the number of records buffered between writes.
const dumpChunkRecords = 4096

// ElementSize returns the estimated memory per entry of a MemMap[K, V]:
// the in-memory sizes of K and V plus NodeOverhead.
func ElementSize[K index.Identifier, V any]() int {
	var id K
	var v V
	return int(unsafe.Sizeof(id)+unsafe.Sizeof(v)) + NodeOverhead
}

type entry[K index.Identifier, V any] struct {
	id    K
	value V
}

func less[K index.Identifier, V any](a, b entry[K, V]) bool {
	return a.id < b.id
}

// MemMap is an ordered map implementing index.Map.
//
// It is not safe for concurrent use.
type MemMap[K index.Identifier, V any] struct {
	tree        *btree.BTreeG[entry[K, V]]
	empty       V
	elementSize int
	recordSize  int
}

var _ index.Map[uint64, uint64] = (*MemMap[uint64, uint64])(nil)

// New creates an empty MemMap.
//
// It panics if V has no fixed binary size, since such values cannot be
// dumped as fixed-width records.
func New[K index.Identifier, V any](optFns ...Option) *MemMap[K, V] {
	if index.ValueSize[V]() <= 0 {
		var v V
		panic(fmt.Sprintf("sparse: value type %T has no fixed size", v))
	}

	opts := options{degree: DefaultDegree}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &MemMap[K, V]{
		tree:        btree.NewG(opts.degree, less[K, V]),
		empty:       index.EmptyValue[V](),
		elementSize: ElementSize[K, V](),
		recordSize:  index.RecordSize[K, V](),
	}
}

// Set inserts or overwrites the value for id.
func (m *MemMap[K, V]) Set(id K, value V) {
	m.tree.ReplaceOrInsert(entry[K, V]{id: id, value: value})
}

// Get returns the value for id. If id has no entry it returns the empty
// value and a *index.NotFoundError.
func (m *MemMap[K, V]) Get(id K) (V, error) {
	e, ok := m.tree.Get(entry[K, V]{id: id})
	if !ok {
		return m.empty, &index.NotFoundError{ID: uint64(id)}
	}
	return e.value, nil
}

// GetNoErr returns the value for id, or the empty value if id has no entry.
func (m *MemMap[K, V]) GetNoErr(id K) V {
	e, ok := m.tree.Get(entry[K, V]{id: id})
	if !ok {
		return m.empty
	}
	return e.value
}

// Len returns the number of entries.
func (m *MemMap[K, V]) Len() int {
	return m.tree.Len()
}

// UsedMemory returns Len() * ElementSize[K, V]().
//
// This is a rough estimate based on the shape of a binary tree node. It does
// not measure the B-tree's real allocations or allocator fragmentation.
func (m *MemMap[K, V]) UsedMemory() int {
	return m.elementSize * m.tree.Len()
}

// Clear removes all entries.
func (m *MemMap[K, V]) Clear() {
	m.tree.Clear(false)
}

// Name returns "sparse_mem_map".
func (m *MemMap[K, V]) Name() string {
	return Name
}

// All returns an iterator over all entries in ascending id order.
// The map must not be modified during iteration.
func (m *MemMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.tree.Ascend(func(e entry[K, V]) bool {
			return yield(e.id, e.value)
		})
	}
}

// DumpAsList writes all entries to w as fixed-width records in ascending id
// order (see index.AppendRecord). Any failure of w is returned as an
// *index.DumpError; the dump is then incomplete and must be discarded.
func (m *MemMap[K, V]) DumpAsList(w io.Writer) error {
	buf := make([]byte, 0, dumpChunkRecords*m.recordSize)

	var encErr, writeErr error
	m.tree.Ascend(func(e entry[K, V]) bool {
		buf, encErr = index.AppendRecord(buf, e.id, e.value)
		if encErr != nil {
			return false
		}
		if len(buf)+m.recordSize > cap(buf) {
			if writeErr = fs.WriteFull(w, buf); writeErr != nil {
				return false
			}
			buf = buf[:0]
		}
		return true
	})

	if encErr != nil {
		return fmt.Errorf("sparse: %w", encErr)
	}
	if writeErr == nil && len(buf) > 0 {
		writeErr = fs.WriteFull(w, buf)
	}
	if writeErr != nil {
		return &index.DumpError{Map: Name, Err: writeErr}
	}
	return nil
}
