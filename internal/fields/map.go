package fields

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNotObject is returned when a JSON document expected to be a mapping
// is some other JSON value.
var ErrNotObject = errors.New("fields: expected a JSON object")

// Map is an unordered mapping from field name to dynamic value. Keys are
// unique; iteration order carries no meaning.
type Map map[string]Value

// Merge returns a new Map holding every key of m, with each key present in
// partial overwritten by partial's value. Neither input is modified.
func (m Map) Merge(partial Map) Map {
	out := make(Map, len(m)+len(partial))
	for k, v := range m {
		out[k] = v.Clone()
	}
	for k, v := range partial {
		out[k] = v.Clone()
	}
	return out
}

// Clone returns a deep copy. The clone of a nil Map is an empty Map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// Equal reports whether both maps hold the same keys with equal values.
// A nil Map equals an empty one.
func (m Map) Equal(o Map) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Keys returns the field names in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]Value(m))
}

// UnmarshalJSON accepts a JSON object; null decodes to an empty Map.
func (m *Map) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	switch v.Kind() {
	case KindNull:
		*m = Map{}
	case KindMap:
		*m, _ = v.AsMap()
	default:
		return ErrNotObject
	}
	return nil
}

// Value stores the Map as a JSON document (a JSONB column).
func (m Map) Value() (driver.Value, error) {
	b, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a JSON document column. SQL NULL scans to an empty Map.
func (m *Map) Scan(src any) error {
	switch t := src.(type) {
	case nil:
		*m = Map{}
		return nil
	case []byte:
		return m.UnmarshalJSON(t)
	case string:
		return m.UnmarshalJSON([]byte(t))
	default:
		return fmt.Errorf("fields: cannot scan %T into Map", src)
	}
}
