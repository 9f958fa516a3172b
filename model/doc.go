// Package model defines the value types stored in node location indexes.
//
// # Identity Types
//
//   - NodeID: OSM node identifier, the key of a location index (uint64)
//
// # Value Types
//
//   - Location: Fixed-point coordinate (1e-7 degree units) with an
//     undefined marker used as the "no value" sentinel
//
// # Binary Layout
//
// Location encodes to 8 bytes (X then Y, little-endian int32). A
// (NodeID, Location) record in a dump is therefore 16 bytes:
//
//	loc := model.NewLocation(13.3777, 52.5163)
//	b, _ := loc.AppendBinary(nil) // len(b) == 8
package model
