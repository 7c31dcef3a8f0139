package store

import "encoding/json"

// Flat is a single-level key-value store over a lazily loaded document.
// Accessors work purely on the in-memory mapping and never fail; only Read
// and Write touch the filesystem.
type Flat struct {
	file            *File
	contents        *Contents
	loaded          bool
	createIfMissing bool
}

// FlatOption configures a Flat store.
type FlatOption func(*Flat)

// WithCreateIfMissing makes Read initialize an empty mapping instead of
// failing when the backing file does not exist.
func WithCreateIfMissing() FlatOption {
	return func(f *Flat) {
		f.createIfMissing = true
	}
}

// NewFlat creates a Flat store backed by the JSON file at path. Nothing is
// read from disk until the first Read call.
func NewFlat(path string, opts ...FlatOption) *Flat {
	f := &Flat{file: NewFile(path)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// File returns the underlying persisted file.
func (f *Flat) File() *File {
	return f.file
}

// Contents returns the in-memory mapping, initializing it empty if nothing
// has been loaded or set yet. It never reads from disk.
func (f *Flat) Contents() *Contents {
	if f.contents == nil {
		f.contents = NewContents()
	}
	return f.contents
}

// SetContents replaces the in-memory mapping wholesale.
func (f *Flat) SetContents(c *Contents) {
	if c == nil {
		c = NewContents()
	}
	f.contents = c
}

// Read returns the contents, loading and caching them from the backing file
// on first call. A mapping initialized by an accessor before the first Read
// is replaced by the on-disk state. A missing file yields an empty mapping
// when the store was created with WithCreateIfMissing, and a NotFound error
// otherwise.
func (f *Flat) Read() (*Contents, error) {
	if f.loaded {
		return f.Contents(), nil
	}

	data, err := f.file.Read()
	if err != nil {
		if f.createIfMissing && IsKind(err, KindNotFound) {
			f.contents = NewContents()
			f.loaded = true
			return f.contents, nil
		}
		return nil, err
	}

	contents, err := DecodeDocument(data, f.file.Path())
	if err != nil {
		return nil, err
	}
	f.contents = contents
	f.loaded = true
	return f.contents, nil
}

// Reload discards the cached mapping so the next Read loads fresh state from
// disk.
func (f *Flat) Reload() {
	f.contents = nil
	f.loaded = false
}

// Write flushes the in-memory mapping to the backing file. If contents is
// non-nil it replaces the mapping first. The whole document is overwritten,
// and the mapping becomes the authoritative cached state.
func (f *Flat) Write(contents *Contents) error {
	if contents != nil {
		f.contents = contents
	}

	data, err := json.Marshal(f.Contents())
	if err != nil {
		return err
	}
	if err := f.file.Write(append(data, '\n')); err != nil {
		return err
	}
	f.loaded = true
	return nil
}

// Get returns the value for key and whether it exists.
func (f *Flat) Get(key string) (any, bool) {
	return f.Contents().Get(key)
}

// Set stores value under key; a nil value removes the key.
func (f *Flat) Set(key string, value any) {
	f.Contents().Set(key, value)
}

// Has reports whether key exists.
func (f *Flat) Has(key string) bool {
	return f.Contents().Has(key)
}

// Unset removes key and reports whether it was present.
func (f *Flat) Unset(key string) bool {
	return f.Contents().Delete(key)
}

// Keys returns all keys in insertion order.
func (f *Flat) Keys() []string {
	return f.Contents().Keys()
}

// Values returns all values in insertion order.
func (f *Flat) Values() []any {
	return f.Contents().Values()
}

// Entries returns all key-value pairs in insertion order.
func (f *Flat) Entries() []Entry {
	return f.Contents().Entries()
}
