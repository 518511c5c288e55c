package book

import (
	"bytes"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedMap is a string-keyed map that remembers insertion order. Decoding a
// JSON object keeps the order the keys appear in the document. The zero value
// is an empty map ready to use.
type OrderedMap[V any] struct {
	om *orderedmap.OrderedMap[string, V]
}

// Set adds or replaces a value. A replaced key keeps its original place.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.om == nil {
		m.om = orderedmap.New[string, V]()
	}
	m.om.Set(key, v)
}

// Get returns the value stored under key.
func (m OrderedMap[V]) Get(key string) (V, bool) {
	if m.om == nil {
		var zero V
		return zero, false
	}
	return m.om.Get(key)
}

// Has reports whether key is present.
func (m OrderedMap[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m OrderedMap[V]) Keys() []string {
	if m.om == nil {
		return nil
	}
	out := make([]string, 0, m.om.Len())
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Len returns the number of entries.
func (m OrderedMap[V]) Len() int {
	if m.om == nil {
		return 0
	}
	return m.om.Len()
}

// UnmarshalJSON decodes a JSON object in document order. null gives an empty
// map.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, V]()
	if !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		if err := om.UnmarshalJSON(data); err != nil {
			return err
		}
	}
	m.om = om
	return nil
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	if m.om == nil {
		return []byte("{}"), nil
	}
	return m.om.MarshalJSON()
}
