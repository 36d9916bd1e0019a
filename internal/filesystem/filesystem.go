// Package filesystem abstracts the host filesystem so that source lookup can be tested
// without touching the disk.
package filesystem

import (
	"io/fs"
	"os"
)

// Filesystem is the subset of file operations source lookup needs.
type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// DefaultFS implements the Filesystem interface using the standard `os` package.
// It represents the real, underlying filesystem of the host operating system.
type DefaultFS struct{}

func (DefaultFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (DefaultFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// MapFS is an in-memory Filesystem keyed by path. File modes and times are not modelled.
type MapFS map[string]string

func (m MapFS) Stat(name string) (fs.FileInfo, error) {
	if _, ok := m[name]; !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fileInfo{name: name, size: int64(len(m[name]))}, nil
}

func (m MapFS) ReadFile(name string) ([]byte, error) {
	content, ok := m[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return []byte(content), nil
}
