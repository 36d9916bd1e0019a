package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/filesystem"
)

// FindFileInSourceDirs locates a script's source file. An existing absolute path is used as
// is. Otherwise the path is joined to each source directory, and then every suffix of the
// path is tried, so a script recorded as /ci/build/app/src/a.js is found as src/a.js under a
// local checkout passed as source directory.
func FindFileInSourceDirs(fsys filesystem.Filesystem, scriptPath string, sourceDirs []string) (string, error) {
	if filepath.IsAbs(scriptPath) {
		if _, err := fsys.Stat(scriptPath); err == nil {
			return scriptPath, nil
		}
	} else if len(sourceDirs) == 0 {
		if _, err := fsys.Stat(scriptPath); err == nil {
			return scriptPath, nil
		}
	}

	cleaned := filepath.Clean(scriptPath)
	parts := strings.Split(filepath.ToSlash(cleaned), "/")
	for _, dir := range sourceDirs {
		dir = filepath.Clean(dir)
		for i := range parts {
			candidate := filepath.Join(dir, filepath.FromSlash(strings.Join(parts[i:], "/")))
			if _, err := fsys.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("file %q not found in any source directory (%v) or as absolute path", scriptPath, sourceDirs)
}
