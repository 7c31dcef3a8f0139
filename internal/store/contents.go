package store

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Entry is a single key-value pair inside a Contents mapping.
type Entry struct {
	Key   string
	Value any
}

// Contents is an insertion-ordered string-to-value mapping. Keys are unique;
// setting an existing key updates it in place without moving it. A nil value
// is the absent signal: setting a key to nil removes it, and JSON null in a
// persisted document is treated as unset on load.
type Contents struct {
	keys   []string
	values map[string]any
}

// NewContents returns an empty ordered mapping.
func NewContents() *Contents {
	return &Contents{values: make(map[string]any)}
}

// Len returns the number of entries.
func (c *Contents) Len() int {
	return len(c.keys)
}

// Get returns the value for key and whether it exists.
func (c *Contents) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key exists.
func (c *Contents) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Set stores value under key, preserving the key's position if it already
// exists. A nil value removes the key instead of storing a null marker.
func (c *Contents) Set(key string, value any) {
	if value == nil {
		c.Delete(key)
		return
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Delete removes key and reports whether it was present.
func (c *Contents) Delete(key string) bool {
	if _, ok := c.values[key]; !ok {
		return false
	}
	delete(c.values, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (c *Contents) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Values returns the values in insertion order.
func (c *Contents) Values() []any {
	out := make([]any, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.values[k])
	}
	return out
}

// Entries returns the key-value pairs in insertion order.
func (c *Contents) Entries() []Entry {
	out := make([]Entry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, Entry{Key: k, Value: c.values[k]})
	}
	return out
}

// ToMap converts the mapping (recursively) into plain Go maps, suitable for
// direct JSON or YAML encoding and for handing to callers as ordinary data.
// Key order is not observable through the result.
func (c *Contents) ToMap() map[string]any {
	out := make(map[string]any, len(c.keys))
	for _, k := range c.keys {
		out[k] = plainValue(c.values[k])
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Contents:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the mapping as a JSON object with keys emitted in
// insertion order. Nested Contents values encode the same way, so a document
// round-trips through disk with its ordering intact.
func (c *Contents) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(c.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeDocument parses raw JSON into an ordered mapping, preserving the
// document's key order at every level. path is used only for error context.
func DecodeDocument(data []byte, path string) (*Contents, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewContents(), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, NewError(KindParseError, path)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, NewError(KindParseError, path)
	}
	return decodeObject(root), nil
}

func decodeObject(obj gjson.Result) *Contents {
	c := NewContents()
	obj.ForEach(func(key, value gjson.Result) bool {
		if v := decodeValue(value); v != nil {
			c.Set(key.String(), v)
		}
		return true
	})
	return c
}

func decodeValue(r gjson.Result) any {
	switch {
	case r.IsObject():
		return decodeObject(r)
	case r.IsArray():
		items := r.Array()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, decodeValue(item))
		}
		return out
	default:
		return r.Value()
	}
}
