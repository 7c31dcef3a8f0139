package store

import "sort"

// DefaultGroupName is the group unqualified operations address until
// SetDefaultGroup is called.
const DefaultGroupName = "default"

// Group is a two-level store: a named group maps to a flat key-value
// mapping. It owns a Flat store whose values are themselves Contents and
// routes unqualified operations through a default group, which is a
// runtime-only pointer and is never persisted.
type Group struct {
	flat         *Flat
	defaultGroup string
}

// NewGroup creates a grouped store backed by the JSON file at path. Options
// are forwarded to the underlying flat store.
func NewGroup(path string, opts ...FlatOption) *Group {
	return &Group{
		flat:         NewFlat(path, opts...),
		defaultGroup: DefaultGroupName,
	}
}

// File returns the underlying persisted file.
func (g *Group) File() *File {
	return g.flat.File()
}

// SetDefaultGroup changes which group unqualified operations address.
// An empty name fails with a MissingGroupName error.
func (g *Group) SetDefaultGroup(name string) error {
	if name == "" {
		return NewError(KindMissingGroupName)
	}
	g.defaultGroup = name
	return nil
}

// DefaultGroup returns the group unqualified operations currently address.
func (g *Group) DefaultGroup() string {
	return g.defaultGroup
}

// Read loads the grouped contents (on first call) and validates the
// two-level shape: every top-level value must itself be a mapping.
func (g *Group) Read() (*Contents, error) {
	contents, err := g.flat.Read()
	if err != nil {
		return nil, err
	}
	for _, e := range contents.Entries() {
		if _, ok := e.Value.(*Contents); !ok {
			return nil, NewError(KindInvalidGroupShape, e.Key, g.File().Path())
		}
	}
	return contents, nil
}

// Reload discards cached state so the next Read sees the latest on-disk
// document.
func (g *Group) Reload() {
	g.flat.Reload()
}

// Write flushes the full grouped contents to disk, overwriting the document.
func (g *Group) Write() error {
	return g.flat.Write(nil)
}

// resolve maps the empty group name to the default group.
func (g *Group) resolve(group string) string {
	if group == "" {
		return g.defaultGroup
	}
	return group
}

// GetGroup returns the flat mapping for the named group (the default group
// when name is empty), or false if that group has never been created.
func (g *Group) GetGroup(name string) (*Contents, bool) {
	v, ok := g.flat.Get(g.resolve(name))
	if !ok {
		return nil, false
	}
	gc, ok := v.(*Contents)
	return gc, ok
}

// GetInGroup returns the value for key inside the named group.
func (g *Group) GetInGroup(key, group string) (any, bool) {
	gc, ok := g.GetGroup(group)
	if !ok {
		return nil, false
	}
	return gc.Get(key)
}

// SetInGroup stores value under key inside the named group, creating the
// group's mapping on first write. A nil value removes the key; a group left
// empty by a removal is retained, not pruned. The group's mapping is
// returned.
func (g *Group) SetInGroup(key string, value any, group string) *Contents {
	gc := g.ensureGroup(g.resolve(group))
	gc.Set(key, value)
	return gc
}

func (g *Group) ensureGroup(name string) *Contents {
	if v, ok := g.flat.Get(name); ok {
		if gc, ok := v.(*Contents); ok {
			return gc
		}
	}
	gc := NewContents()
	g.flat.Set(name, gc)
	return gc
}

// Get returns the value for key in the default group.
func (g *Group) Get(key string) (any, bool) {
	return g.GetInGroup(key, "")
}

// Set stores value under key in the default group; nil removes the key.
func (g *Group) Set(key string, value any) {
	g.SetInGroup(key, value, "")
}

// Has reports whether key exists in the default group.
func (g *Group) Has(key string) bool {
	_, ok := g.GetInGroup(key, "")
	return ok
}

// Unset removes key from the default group and reports whether it was
// present.
func (g *Group) Unset(key string) bool {
	gc, ok := g.GetGroup("")
	if !ok {
		return false
	}
	return gc.Delete(key)
}

// Keys returns the default group's keys in insertion order.
func (g *Group) Keys() []string {
	gc, ok := g.GetGroup("")
	if !ok {
		return nil
	}
	return gc.Keys()
}

// Values returns the default group's values in insertion order.
func (g *Group) Values() []any {
	gc, ok := g.GetGroup("")
	if !ok {
		return nil
	}
	return gc.Values()
}

// Entries returns the default group's key-value pairs in insertion order.
func (g *Group) Entries() []Entry {
	gc, ok := g.GetGroup("")
	if !ok {
		return nil
	}
	return gc.Entries()
}

// Clear removes the default group's entire mapping, not just its keys.
func (g *Group) Clear() {
	g.flat.Unset(g.defaultGroup)
}

// UpdateValue sets key to value in the named group as a full
// read-modify-write cycle: latest on-disk state is loaded, the mutation is
// applied, and the whole document is flushed back.
func (g *Group) UpdateValue(key string, value any, group string) error {
	if _, err := g.Read(); err != nil {
		return err
	}
	g.SetInGroup(key, value, group)
	return g.Write()
}

// UpdateValues applies a batch of entries to the named group in one
// read-modify-write cycle. New keys are applied in sorted order so the
// persisted document is deterministic. The applied entries are returned.
func (g *Group) UpdateValues(entries map[string]any, group string) (map[string]any, error) {
	if _, err := g.Read(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		g.SetInGroup(k, entries[k], group)
	}
	if err := g.Write(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ToObject flattens the grouped contents into the persisted-document shape:
// plain nested maps, suitable for JSON or YAML encoding and display.
func (g *Group) ToObject() map[string]map[string]any {
	out := make(map[string]map[string]any)
	for _, e := range g.flat.Entries() {
		gc, ok := e.Value.(*Contents)
		if !ok {
			continue
		}
		out[e.Key] = gc.ToMap()
	}
	return out
}

// SetContentsFromObject replaces the grouped contents with the given
// persisted-document object. Every top-level value must itself be a mapping;
// anything else fails with an InvalidGroupShape error and leaves the store
// unchanged. Groups and keys are applied in sorted order since plain maps
// carry no ordering.
func (g *Group) SetContentsFromObject(obj map[string]any) error {
	groups := make([]string, 0, len(obj))
	for name := range obj {
		if _, ok := obj[name].(map[string]any); !ok {
			return NewError(KindInvalidGroupShape, name, g.File().Path())
		}
		groups = append(groups, name)
	}
	sort.Strings(groups)

	contents := NewContents()
	for _, name := range groups {
		inner := obj[name].(map[string]any)
		keys := make([]string, 0, len(inner))
		for k := range inner {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		gc := NewContents()
		for _, k := range keys {
			gc.Set(k, inner[k])
		}
		contents.Set(name, gc)
	}

	g.flat.SetContents(contents)
	return nil
}
