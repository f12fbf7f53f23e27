// Package serializer reads and writes collection documents. A document is the
// ordered snapshot (store.Snapshot) of a collection, so any container can be
// written with ToSnapshot and restored with containers.From.
//
// Key Components:
//
//   - ISerializer: Core interface that all serializer implementations must satisfy.
//
//   - jsonSerializerImpl: Human readable format. Sequential snapshots (keys 0..n-1)
//     become json arrays, everything else a json object that keeps the entry order.
//     Object keys that are canonical integers ("42") are decoded as integer keys and
//     numbers as int (integral) or float64.
//
//   - binarySerializerImpl: Custom binary format with type tags, the most compact
//     choice. Decoded values use the same types as the json format, byte slices
//     are kept as []byte.
//
//   - gobSerializerImpl: Go's gob encoding. Preserves the concrete Go types of
//     values, but only for types registered with gob.Register.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	s, err := serializer.New("json")
//	data, err := s.Serialize(coll.ToSnapshot())
//	// ... write data ...
//	var snap store.Snapshot
//	err = s.Deserialize(data, &snap)
package serializer
