package serializer

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/ValentinKolb/dColl/lib/store"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and size. Supported values are nil, booleans, numbers,
// strings, byte slices, slices/arrays and maps with string keys (nested).
// Numbers are decoded as int or float64, lists as []any and maps as map[string]any.
func NewBinarySerializer() ISerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements ISerializer using a custom binary format:
//
//	header:  magic (1 byte) | entry count (uint32)
//	entry:   key | value
//	key:     keyInt (1 byte) int64  or  keyStr (1 byte) length (uint32) bytes
//	value:   type tag (1 byte) followed by the payload of the type
type binarySerializerImpl struct {
}

const binaryMagic byte = 0xDC

// key tags
const (
	keyInt byte = 1 << 0
	keyStr byte = 1 << 1
)

// value tags
const (
	tagNil byte = iota
	tagFalse
	tagTrue
	tagInt
	tagFloat
	tagString
	tagBytes
	tagList
	tagMap
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(snap store.Snapshot) ([]byte, error) {
	result := make([]byte, 0, 5+len(snap)*16)
	result = append(result, binaryMagic)
	result = binary.BigEndian.AppendUint32(result, uint32(len(snap)))

	for _, e := range snap {
		if s, ok := e.Key.Str(); ok {
			result = append(result, keyStr)
			result = appendString(result, s)
		} else {
			n, _ := e.Key.Int()
			result = append(result, keyInt)
			result = binary.BigEndian.AppendUint64(result, uint64(int64(n)))
		}

		var err error
		if result, err = appendValue(result, reflect.ValueOf(e.Value)); err != nil {
			return nil, fmt.Errorf("failed to encode value of key %s: %w", e.Key, err)
		}
	}
	return result, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, snap *store.Snapshot) error {
	// Check minimum size (magic + count)
	if len(data) < 5 {
		return fmt.Errorf("data too short for header")
	}
	if data[0] != binaryMagic {
		return fmt.Errorf("invalid header byte 0x%x", data[0])
	}

	r := &reader{data: data, pos: 1}
	count, err := r.readUint32()
	if err != nil {
		return err
	}

	// every entry needs at least 2 bytes (key tag + value tag)
	if int(count) > len(data)/2 {
		return fmt.Errorf("entry count %d exceeds data size", count)
	}

	result := make(store.Snapshot, 0, count)
	for i := 0; i < int(count); i++ {
		tag, err := r.readByte()
		if err != nil {
			return err
		}

		var key store.Key
		switch tag {
		case keyInt:
			n, err := r.readUint64()
			if err != nil {
				return err
			}
			key = store.IntKey(int(int64(n)))
		case keyStr:
			s, err := r.readString()
			if err != nil {
				return err
			}
			key = store.StrKey(s)
		default:
			return fmt.Errorf("invalid key tag 0x%x at entry %d", tag, i)
		}

		value, err := r.readValue(0)
		if err != nil {
			return fmt.Errorf("failed to decode value of key %s: %w", key, err)
		}
		result = append(result, store.Entry{Key: key, Value: value})
	}

	if r.pos != len(data) {
		plog.Debugf("%d trailing bytes after binary document", len(data)-r.pos)
		return fmt.Errorf("unexpected data after binary document")
	}

	*snap = result
	return nil
}

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

func appendString(buf []byte, s string) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

func appendValue(buf []byte, v reflect.Value) ([]byte, error) {
	if !v.IsValid() {
		return append(buf, tagNil), nil
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return append(buf, tagNil), nil
		}
		if v.Kind() == reflect.Pointer {
			return nil, fmt.Errorf("unsupported type %s", v.Type())
		}
		return appendValue(buf, v.Elem())
	case reflect.Bool:
		if v.Bool() {
			return append(buf, tagTrue), nil
		}
		return append(buf, tagFalse), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf = append(buf, tagInt)
		return binary.BigEndian.AppendUint64(buf, uint64(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if v.Uint() > math.MaxInt64 {
			return nil, fmt.Errorf("unsigned value %d overflows int64", v.Uint())
		}
		buf = append(buf, tagInt)
		return binary.BigEndian.AppendUint64(buf, v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		buf = append(buf, tagFloat)
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(v.Float())), nil
	case reflect.String:
		buf = append(buf, tagString)
		return appendString(buf, v.String()), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			buf = append(buf, tagBytes)
			buf = binary.BigEndian.AppendUint32(buf, uint32(v.Len()))
			return append(buf, v.Bytes()...), nil
		}
		buf = append(buf, tagList)
		buf = binary.BigEndian.AppendUint32(buf, uint32(v.Len()))
		var err error
		for i := 0; i < v.Len(); i++ {
			if buf, err = appendValue(buf, v.Index(i)); err != nil {
				return nil, err
			}
		}
		return buf, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type %s", v.Type().Key())
		}
		// sorted keys make the encoding deterministic
		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			default:
				return 0
			}
		})
		buf = append(buf, tagMap)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(keys)))
		var err error
		for _, k := range keys {
			buf = appendString(buf, k.String())
			if buf, err = appendValue(buf, v.MapIndex(k)); err != nil {
				return nil, err
			}
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", v.Type())
	}
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

// maxDepth limits the nesting of lists and maps
const maxDepth = 256

type reader struct {
	data []byte
	pos  int
}

func (r *reader) need(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return fmt.Errorf("data too short at offset %d (need %d bytes)", r.pos, n)
	}
	return nil
}

func (r *reader) readByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	n := binary.BigEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return n, nil
}

func (r *reader) readUint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	n := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return n, nil
}

func (r *reader) readBytes() ([]byte, error) {
	n, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	if err := r.need(int(n)); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

func (r *reader) readString() (string, error) {
	b, err := r.readBytes()
	return string(b), err
}

func (r *reader) readValue(depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("maximum nesting depth %d exceeded", maxDepth)
	}
	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagNil:
		return nil, nil
	case tagFalse:
		return false, nil
	case tagTrue:
		return true, nil
	case tagInt:
		n, err := r.readUint64()
		return int(int64(n)), err
	case tagFloat:
		n, err := r.readUint64()
		return math.Float64frombits(n), err
	case tagString:
		return r.readString()
	case tagBytes:
		b, err := r.readBytes()
		if err != nil {
			return nil, err
		}
		return slices.Clone(b), nil
	case tagList:
		n, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		if err := r.need(int(n)); err != nil {
			return nil, err
		}
		list := make([]any, n)
		for i := range list {
			if list[i], err = r.readValue(depth + 1); err != nil {
				return nil, err
			}
		}
		return list, nil
	case tagMap:
		n, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		if err := r.need(int(n) * 5); err != nil {
			return nil, err
		}
		m := make(map[string]any, n)
		for i := 0; i < int(n); i++ {
			k, err := r.readString()
			if err != nil {
				return nil, err
			}
			if m[k], err = r.readValue(depth + 1); err != nil {
				return nil, err
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("invalid value tag 0x%x at offset %d", tag, r.pos-1)
	}
}
