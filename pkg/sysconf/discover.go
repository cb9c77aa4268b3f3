package sysconf

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// rootMarker is the version-control entry whose presence marks a project root.
const rootMarker = ".git"

// FindProjectRoot walks upward from startDir looking for a version-control
// root marker. It returns the first ancestor (startDir included) containing
// the marker as an absolute path. When the filesystem root is reached with
// no marker found it returns ("", false); the caller decides the fallback.
func FindProjectRoot(fsys afero.Fs, startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		if ok, _ := afero.Exists(fsys, filepath.Join(dir, rootMarker)); ok {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Filesystem root reached.
			return "", false
		}
		dir = parent
	}
}
