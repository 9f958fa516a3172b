package index

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"reflect"
	"unsafe"
)

// IDSize returns the encoded size of K in bytes.
func IDSize[K Identifier]() int {
	var id K
	return int(unsafe.Sizeof(id))
}

// ValueSize returns the encoded size of V in bytes, or -1 if V has no fixed
// size (slices, strings, maps, pointers...).
func ValueSize[V any]() int {
	if reflect.TypeFor[V]().Kind() == reflect.Slice {
		return -1
	}
	var v V
	return binary.Size(v)
}

// RecordSize returns the width of one dump record for (K, V).
func RecordSize[K Identifier, V any]() int {
	return IDSize[K]() + ValueSize[V]()
}

// AppendRecord appends one dump record to b.
//
// Layout: the id as a little-endian unsigned integer of IDSize[K]() bytes,
// immediately followed by the value. Values implementing
// encoding.BinaryAppender encode themselves; all others use the
// little-endian encoding/binary layout. There is no padding between fields.
func AppendRecord[K Identifier, V any](b []byte, id K, v V) ([]byte, error) {
	switch IDSize[K]() {
	case 1:
		b = append(b, byte(id))
	case 2:
		b = binary.LittleEndian.AppendUint16(b, uint16(id))
	case 4:
		b = binary.LittleEndian.AppendUint32(b, uint32(id))
	default:
		b = binary.LittleEndian.AppendUint64(b, uint64(id))
	}

	if ba, ok := any(v).(encoding.BinaryAppender); ok {
		return ba.AppendBinary(b)
	}

	out, err := binary.Append(b, binary.LittleEndian, v)
	if err != nil {
		return b, fmt.Errorf("index: encode value %T: %w", v, err)
	}
	return out, nil
}
