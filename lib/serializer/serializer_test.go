package serializer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ValentinKolb/dColl/lib/store"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() ISerializer{
	"JSON":   NewJSONSerializer,
	"GOB":    NewGOBSerializer,
	"Binary": NewBinarySerializer,
}

// testSnapshots creates a set of documents using only types every format
// decodes to the same Go types (int, float64, string, bool, []any, map[string]any)
func testSnapshots() []store.Snapshot {
	return []store.Snapshot{
		// Empty document
		{},

		// Sequential list
		store.SnapshotOf("a", "b", "c"),

		// Mixed keys in non-sorted order
		{
			{Key: store.StrKey("name"), Value: "dcoll"},
			{Key: store.IntKey(7), Value: 42},
			{Key: store.StrKey("ratio"), Value: 0.5},
			{Key: store.IntKey(-1), Value: true},
		},

		// Nested values
		{
			{Key: store.StrKey("b"), Value: []any{1, "two", []any{3.5}}},
			{Key: store.StrKey("a"), Value: map[string]any{"weight": 10, "tags": []any{"x"}}},
		},

		// Sequential list with gaps is written as object
		{
			{Key: store.IntKey(0), Value: "zero"},
			{Key: store.IntKey(2), Value: "two"},
		},
	}
}

// TestSerializerRoundTrip tests that documents can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, snap := range testSnapshots() {
				data, err := serializer.Serialize(snap)
				if err != nil {
					t.Errorf("Failed to serialize document %d: %v", i, err)
					continue
				}

				var result store.Snapshot
				if err := serializer.Deserialize(data, &result); err != nil {
					t.Errorf("Failed to deserialize document %d: %v", i, err)
					continue
				}

				if len(result) != len(snap) {
					t.Errorf("Document %d: expected %d entries, got %d", i, len(snap), len(result))
					continue
				}
				for j := range snap {
					if result[j].Key != snap[j].Key || !reflect.DeepEqual(result[j].Value, snap[j].Value) {
						t.Errorf("Document %d entry %d: expected %v, got %v", i, j, snap[j], result[j])
					}
				}
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	s := NewJSONSerializer()

	data, err := s.Serialize(store.SnapshotOf(1, "a"))
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}
	if string(data) != `[1,"a"]` {
		t.Errorf("Expected json array, got %s", data)
	}

	data, err = s.Serialize(store.Snapshot{
		{Key: store.StrKey("z"), Value: 1},
		{Key: store.StrKey("a"), Value: 2},
		{Key: store.IntKey(3), Value: nil},
	})
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}
	if string(data) != `{"z":1,"a":2,"3":null}` {
		t.Errorf("Expected ordered json object, got %s", data)
	}
}

func TestJSONDecodesKeysAndNumbers(t *testing.T) {
	var snap store.Snapshot
	err := NewJSONSerializer().Deserialize([]byte(`{"10": 1, "007": 2.5, "x": 1e2}`), &snap)
	if err != nil {
		t.Fatalf("Failed to deserialize: %v", err)
	}

	want := store.Snapshot{
		{Key: store.IntKey(10), Value: 1},
		{Key: store.StrKey("007"), Value: 2.5},
		{Key: store.StrKey("x"), Value: 100.0},
	}
	if !reflect.DeepEqual(snap, want) {
		t.Errorf("Expected %v, got %v", want, snap)
	}
}

func TestJSONWithStringKeys(t *testing.T) {
	doc := []byte(`{"1": "a", "b": 2}`)

	var snap store.Snapshot
	if err := WithStringKeys(NewJSONSerializer()).Deserialize(doc, &snap); err != nil {
		t.Fatalf("Failed to deserialize: %v", err)
	}
	want := store.Snapshot{
		{Key: store.StrKey("1"), Value: "a"},
		{Key: store.StrKey("b"), Value: 2},
	}
	if !reflect.DeepEqual(snap, want) {
		t.Errorf("Expected %v, got %v", want, snap)
	}

	// a map written with the string key "1" reads back unchanged
	data, err := NewJSONSerializer().Serialize(want)
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}
	var back store.Snapshot
	if err := WithStringKeys(NewJSONSerializer()).Deserialize(data, &back); err != nil {
		t.Fatalf("Failed to deserialize: %v", err)
	}
	if !reflect.DeepEqual(back, want) {
		t.Errorf("Expected %v, got %v", want, back)
	}

	// other formats keep their key types
	gob := NewGOBSerializer()
	if WithStringKeys(gob) != gob {
		t.Errorf("Expected the gob serializer to be returned unchanged")
	}
}

func TestDeserializeRejectsInvalidInput(t *testing.T) {
	inputs := map[string][][]byte{
		"JSON":   {[]byte(``), []byte(`42`), []byte(`[1,2`), []byte(`[1] [2]`)},
		"GOB":    {[]byte(``), []byte(`garbage`)},
		"Binary": {[]byte(``), []byte{0x00, 0, 0, 0, 0}, {binaryMagic, 0, 0, 0, 1, keyInt}, {binaryMagic, 0, 0, 0, 0, 0xff}},
	}

	for name, factory := range testSerializers {
		for i, in := range inputs[name] {
			var snap store.Snapshot
			if err := factory().Deserialize(in, &snap); err == nil {
				t.Errorf("%s input %d: expected error, got %v", name, i, snap)
			}
		}
	}
}

func TestBinaryTypes(t *testing.T) {
	s := NewBinarySerializer()
	snap := store.SnapshotOf(int8(-3), uint16(9), float32(1.5), []byte("raw"), []string{"a"}, map[string]int{"n": 1})

	data, err := s.Serialize(snap)
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}
	var result store.Snapshot
	if err := s.Deserialize(data, &result); err != nil {
		t.Fatalf("Failed to deserialize: %v", err)
	}

	want := []any{-3, 9, 1.5, []byte("raw"), []any{"a"}, map[string]any{"n": 1}}
	if !reflect.DeepEqual(result.Values(), want) {
		t.Errorf("Expected %v, got %v", want, result.Values())
	}

	if _, err := s.Serialize(store.SnapshotOf(make(chan int))); err == nil {
		t.Error("Expected error for unsupported type")
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "GOB", " binary "} {
		if _, err := New(format); err != nil {
			t.Errorf("Expected serializer for %q, got %v", format, err)
		}
	}
	if _, err := New("xml"); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("Expected error for unknown format, got %v", err)
	}
}
