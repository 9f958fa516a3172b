package model

import (
	"encoding/binary"
	"fmt"
	"math"
)

// NodeID is the identifier of an OSM node.
// Negative ids from editors are stored in their two's complement form.
type NodeID uint64

// CoordinatePrecision is the number of fixed-point units per degree.
const CoordinatePrecision = 10_000_000

// UndefinedCoordinate marks a coordinate that was never set.
const UndefinedCoordinate = math.MaxInt32

// LocationSize is the encoded size of a Location in bytes.
const LocationSize = 8

// UndefinedLocation is the "no value" marker for Location.
var UndefinedLocation = Location{X: UndefinedCoordinate, Y: UndefinedCoordinate}

// Location is a WGS84 coordinate stored as fixed-point integers.
// X is the longitude and Y the latitude, both in 1e-7 degrees.
type Location struct {
	X int32
	Y int32
}

// NewLocation creates a Location from degrees, rounding to the nearest unit.
func NewLocation(lon, lat float64) Location {
	return Location{X: toFixed(lon), Y: toFixed(lat)}
}

func toFixed(deg float64) int32 {
	return int32(math.Round(deg * CoordinatePrecision))
}

// Lon returns the longitude in degrees.
func (l Location) Lon() float64 {
	return float64(l.X) / CoordinatePrecision
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return float64(l.Y) / CoordinatePrecision
}

// IsDefined reports whether at least one coordinate has been set.
func (l Location) IsDefined() bool {
	return l.X != UndefinedCoordinate || l.Y != UndefinedCoordinate
}

// Valid reports whether the location lies within the WGS84 bounds.
func (l Location) Valid() bool {
	return l.X >= -180*CoordinatePrecision && l.X <= 180*CoordinatePrecision &&
		l.Y >= -90*CoordinatePrecision && l.Y <= 90*CoordinatePrecision
}

// Empty returns UndefinedLocation. Indexes use it as the value for missing ids.
func (Location) Empty() Location {
	return UndefinedLocation
}

// AppendBinary appends the little-endian encoding (X, then Y) to b.
func (l Location) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint32(b, uint32(l.X))
	b = binary.LittleEndian.AppendUint32(b, uint32(l.Y))
	return b, nil
}

// String returns a string representation of the Location.
func (l Location) String() string {
	if !l.IsDefined() {
		return "undefined"
	}
	return fmt.Sprintf("(%.7f,%.7f)", l.Lon(), l.Lat())
}
