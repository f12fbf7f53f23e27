package serializer

import (
	"bytes"
	"encoding/gob"

	"github.com/ValentinKolb/dColl/lib/store"
)

func init() {
	// concrete types that may appear behind an interface value
	gob.Register([]any{})
	gob.Register(map[string]any{})
}

// NewGOBSerializer creates a new serializer using Go's binary gob format
func NewGOBSerializer() ISerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the ISerializer interface using gob encoding
type gobSerializerImpl struct {
}

// gobEntry is the wire representation of a store.Entry (Key has no exported fields)
type gobEntry struct {
	Num   int
	Str   string
	IsStr bool
	Value any
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) Serialize(snap store.Snapshot) ([]byte, error) {
	entries := make([]gobEntry, len(snap))
	for i, e := range snap {
		if s, ok := e.Key.Str(); ok {
			entries[i] = gobEntry{Str: s, IsStr: true, Value: e.Value}
		} else {
			n, _ := e.Key.Int()
			entries[i] = gobEntry{Num: n, Value: e.Value}
		}
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) Deserialize(b []byte, snap *store.Snapshot) error {
	var entries []gobEntry
	buf := bytes.NewBuffer(b)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(&entries); err != nil {
		return err
	}

	result := make(store.Snapshot, len(entries))
	for i, e := range entries {
		key := store.IntKey(e.Num)
		if e.IsStr {
			key = store.StrKey(e.Str)
		}
		result[i] = store.Entry{Key: key, Value: e.Value}
	}
	*snap = result
	return nil
}
