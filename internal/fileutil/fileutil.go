// Package fileutil provides file and path helpers for config lookup.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a
// config name. A string containing a path separator is a path, and so is a
// name that already carries one of the given extensions.
//
// Examples, with exts = [".yaml", ".json"]:
//   - "work" -> false (name)
//   - "./work.yaml" -> true
//   - "work.yaml" -> true (explicit extension)
//   - "work.v2" -> false (dots but no known extension)
//   - "C:\ci\grep.json" -> true
func IsFilePath(s string, exts ...string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Candidates expands name into one path per directory and extension, in
// directory-major order.
func Candidates(dirs []string, name string, exts []string) []string {
	paths := make([]string, 0, len(dirs)*len(exts))
	for _, dir := range dirs {
		for _, ext := range exts {
			if dir == "" {
				paths = append(paths, name+ext)
				continue
			}
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// FirstExisting returns the first path in paths that names a regular file.
func FirstExisting(paths []string) (string, bool) {
	for _, p := range paths {
		if FileExists(p) {
			return p, true
		}
	}
	return "", false
}
