package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ValentinKolb/dColl/lib/store"
)

// NewJSONSerializer creates a new serializer using json encoding.
// Sequential snapshots (keys 0..n-1) are written as json arrays, all others as
// json objects with the keys in snapshot order.
func NewJSONSerializer() ISerializer {
	return &jsonSerializerImpl{}
}

// WithStringKeys returns a serializer that decodes every json object key as string
// key, for collections that do not accept integer keys. By default canonical integer
// object keys ("1", "-3") become integer keys. Other formats keep the key types of the
// encoded snapshot and are returned unchanged.
func WithStringKeys(s ISerializer) ISerializer {
	if _, ok := s.(*jsonSerializerImpl); ok {
		return &jsonSerializerImpl{stringKeys: true}
	}
	return s
}

// jsonSerializerImpl implements the ISerializer interface using json encoding
type jsonSerializerImpl struct {
	stringKeys bool
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(snap store.Snapshot) ([]byte, error) {
	if snap.IsSequential() {
		values := snap.Values()
		return json.Marshal(values)
	}

	// encoding/json sorts map keys, so objects are written by hand to keep the order
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range snap {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key.String())
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode value of key %s: %w", e.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (j jsonSerializerImpl) Deserialize(b []byte, snap *store.Snapshot) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read json document: %w", err)
	}

	var result store.Snapshot
	switch tok {
	case json.Delim('['):
		for i := 0; dec.More(); i++ {
			var v any
			if err := dec.Decode(&v); err != nil {
				return fmt.Errorf("failed to decode element %d: %w", i, err)
			}
			result = append(result, store.Entry{Key: store.IntKey(i), Value: normalizeJSON(v)})
		}
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("failed to read object key: %w", err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return fmt.Errorf("unexpected object key %v", keyTok)
			}
			var v any
			if err := dec.Decode(&v); err != nil {
				return fmt.Errorf("failed to decode value of key %q: %w", key, err)
			}
			k := store.ParseKey(key)
			if j.stringKeys {
				k = store.StrKey(key)
			}
			result = append(result, store.Entry{Key: k, Value: normalizeJSON(v)})
		}
	default:
		return fmt.Errorf("json document must be an array or an object, got %v", tok)
	}

	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read end of json document: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		plog.Debugf("trailing data after json document")
		return fmt.Errorf("unexpected data after json document")
	}

	*snap = result
	return nil
}

// normalizeJSON converts json.Number to int (if integral) or float64, recursively
func normalizeJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	case []any:
		for i := range t {
			t[i] = normalizeJSON(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = normalizeJSON(t[k])
		}
		return t
	default:
		return v
	}
}
