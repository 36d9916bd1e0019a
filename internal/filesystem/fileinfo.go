package filesystem

import (
	"io/fs"
	"path/filepath"
	"time"
)

type fileInfo struct {
	name string
	size int64
}

func (f fileInfo) Name() string       { return filepath.Base(f.name) }
func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() fs.FileMode  { return 0o444 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }
