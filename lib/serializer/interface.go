package serializer

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/dColl/lib/store"
	"github.com/lni/dragonboat/v4/logger"
)

var plog = logger.GetLogger("serializer")

// ISerializer is the interface for all document serializers. A document is the
// ordered snapshot of a collection.
type ISerializer interface {
	// Serialize serializes a snapshot into a byte array
	// It returns the serialized byte array and an error if any
	Serialize(snap store.Snapshot) ([]byte, error)
	// Deserialize deserializes a byte array into a snapshot
	// It takes a byte array and a pointer to a Snapshot as parameters
	// It returns an error if any
	Deserialize(b []byte, snap *store.Snapshot) error
}

// New returns the serializer for a format name (json, gob or binary)
func New(format string) (ISerializer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return NewJSONSerializer(), nil
	case "gob":
		return NewGOBSerializer(), nil
	case "binary":
		return NewBinarySerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer format %q (expected one of json, gob, binary)", format)
	}
}
