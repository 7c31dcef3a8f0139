package store

import (
	"os"
	"path/filepath"
)

// File is the durable backing of a config store: a single JSON document at a
// fixed path. It does no caching; every operation touches the filesystem.
type File struct {
	path            string
	defaultContents []byte
}

// FileOption configures a File.
type FileOption func(*File)

// WithDefaultContents supplies the document returned by Read when the backing
// path does not exist yet.
func WithDefaultContents(data []byte) FileOption {
	return func(f *File) {
		f.defaultContents = data
	}
}

// NewFile creates a File backed by path.
func NewFile(path string, opts ...FileOption) *File {
	f := &File{path: path}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Exists reports whether the backing file exists. It never fails; any stat
// error is reported as absence.
func (f *File) Exists() bool {
	info, err := os.Stat(f.path)
	return err == nil && !info.IsDir()
}

// Read returns the raw document bytes. If the file is missing it returns the
// default contents supplied at construction, or a NotFound error when none
// were.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if f.defaultContents != nil {
				return f.defaultContents, nil
			}
			return nil, WrapError(err, KindNotFound, f.path)
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the document. Parent directories are created as needed and
// the data lands via a temp file plus rename, so a crash mid-write leaves the
// previous version intact.
func (f *File) Write(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(0600); err != nil {
		return err
	}

	if _, err := tmpFile.Write(data); err != nil {
		return err
	}

	if err := tmpFile.Sync(); err != nil {
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		return err
	}

	success = true
	return nil
}
