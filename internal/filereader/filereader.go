// Package filereader loads script sources the way Node.js sees them: decoded to UTF-8 with
// any byte order mark removed.
package filereader

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/utils"
)

// SourceReader resolves script paths against the configured source directories and reads
// their text.
type SourceReader struct {
	fs         filesystem.Filesystem
	sourceDirs []string
}

// NewSourceReader creates a reader on top of fsys.
func NewSourceReader(fsys filesystem.Filesystem, sourceDirs []string) *SourceReader {
	return &SourceReader{fs: fsys, sourceDirs: sourceDirs}
}

// ReadSource locates the script and returns the path it was found at together with its text.
func (r *SourceReader) ReadSource(scriptPath string) (string, string, error) {
	resolved, err := utils.FindFileInSourceDirs(r.fs, scriptPath, r.sourceDirs)
	if err != nil {
		return "", "", err
	}
	data, err := r.fs.ReadFile(resolved)
	if err != nil {
		return "", "", err
	}
	text, err := DecodeSource(data)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode %s: %w", resolved, err)
	}
	return resolved, text, nil
}

// DecodeSource converts raw file content to UTF-8 text. A UTF-8 or UTF-16 byte order mark
// selects the encoding and is dropped, since Node.js strips it before compiling. Content
// without a BOM is treated as UTF-8.
func DecodeSource(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
