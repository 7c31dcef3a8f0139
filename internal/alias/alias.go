// Package alias is a fixed-purpose convenience layer over the grouped config
// store, used for managing connection aliases. Every mutating operation is a
// full read-modify-write cycle against the backing file.
package alias

import (
	"reflect"
	"strings"

	"github.com/stanza-tools/cli/internal/store"
)

// DefaultGroup is the group alias operations address when none is given.
const DefaultGroup = "orgs"

// Facade-level failure kinds, rendered by the messages package.
const (
	// KindEmptyInput indicates a batch update was given no pairs at all.
	KindEmptyInput store.Kind = "EmptyInput"

	// KindInvalidFormat indicates a raw entry that does not split into one
	// key and one value on its first "=".
	KindInvalidFormat store.Kind = "InvalidFormat"

	// KindNoAliasesFound indicates a lookup over a group that holds no
	// aliases.
	KindNoAliasesFound store.Kind = "NoAliasesFound"
)

// Store is the alias facade. It holds an explicit grouped store instance;
// there is no process-wide shared default.
type Store struct {
	group *store.Group
}

// NewStore wraps an existing grouped store.
func NewStore(g *store.Group) *Store {
	return &Store{group: g}
}

// Open creates an alias store over the JSON file at path, initializing an
// empty document if the file does not exist yet.
func Open(path string) *Store {
	return NewStore(store.NewGroup(path, store.WithCreateIfMissing()))
}

// Group returns the underlying grouped store.
func (s *Store) Group() *store.Group {
	return s.group
}

func (s *Store) resolve(group string) string {
	if group == "" {
		return DefaultGroup
	}
	return group
}

// ParseAndUpdate parses raw "name=value" pairs and applies them to the named
// group in a single read-modify-write cycle. A bare "name=" removes the
// alias. Validation runs before any mutation, so a rejected batch leaves the
// store untouched. The applied entries are returned; removals carry an empty
// value.
func (s *Store) ParseAndUpdate(pairs []string, group string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, store.NewError(KindEmptyInput)
	}

	type parsed struct {
		key   string
		value string
	}
	entries := make([]parsed, 0, len(pairs))
	for _, raw := range pairs {
		key, value, found := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, store.NewError(KindInvalidFormat, raw)
		}
		entries = append(entries, parsed{key: key, value: strings.TrimSpace(value)})
	}

	if _, err := s.group.Read(); err != nil {
		return nil, err
	}

	applied := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.value == "" {
			s.group.SetInGroup(e.key, nil, s.resolve(group))
		} else {
			s.group.SetInGroup(e.key, e.value, s.resolve(group))
		}
		applied[e.key] = e.value
	}

	if err := s.group.Write(); err != nil {
		return nil, err
	}
	return applied, nil
}

// Update sets a single alias in the named group, persisting immediately.
func (s *Store) Update(key string, value any, group string) error {
	return s.group.UpdateValue(key, value, s.resolve(group))
}

// Remove deletes a single alias from the named group, persisting
// immediately.
func (s *Store) Remove(key, group string) error {
	return s.group.UpdateValue(key, nil, s.resolve(group))
}

// Unset deletes several aliases from the named group in one
// read-modify-write cycle.
func (s *Store) Unset(keys []string, group string) error {
	if _, err := s.group.Read(); err != nil {
		return err
	}
	for _, key := range keys {
		s.group.SetInGroup(key, nil, s.resolve(group))
	}
	return s.group.Write()
}

// Fetch returns the value an alias points at, or false if the alias does not
// exist in the named group.
func (s *Store) Fetch(key, group string) (any, bool, error) {
	if _, err := s.group.Read(); err != nil {
		return nil, false, err
	}
	v, ok := s.group.GetInGroup(key, s.resolve(group))
	return v, ok, nil
}

// List returns all aliases in the named group as plain data. A group that
// has never been created lists as empty.
func (s *Store) List(group string) (map[string]any, error) {
	if _, err := s.group.Read(); err != nil {
		return nil, err
	}
	gc, ok := s.group.GetGroup(s.resolve(group))
	if !ok {
		return map[string]any{}, nil
	}
	return gc.ToMap(), nil
}

// Entries returns the named group's aliases in insertion order.
func (s *Store) Entries(group string) ([]store.Entry, error) {
	if _, err := s.group.Read(); err != nil {
		return nil, err
	}
	gc, ok := s.group.GetGroup(s.resolve(group))
	if !ok {
		return nil, nil
	}
	return gc.Entries(), nil
}

// ByValue scans the named group in insertion order and returns the first
// alias whose value matches exactly, or false when none does.
func (s *Store) ByValue(value any, group string) (string, bool, error) {
	entries, err := s.Entries(group)
	if err != nil {
		return "", false, err
	}
	for _, e := range entries {
		if reflect.DeepEqual(e.Value, value) {
			return e.Key, true, nil
		}
	}
	return "", false, nil
}
