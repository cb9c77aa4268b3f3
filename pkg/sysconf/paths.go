package sysconf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tsellens/dockit/pkg/systype"
)

// Path looks up keys inside the merged config and resolves the string value
// to an absolute filesystem path. A leading "~" expands to the user's home
// directory; an already-absolute value is returned verbatim; anything else
// resolves relative to the project root. A missing key yields a
// *MissingKeyError.
func (res *Result) Path(keys ...string) (string, error) {
	raw, err := res.Lookup(keys...)
	if err != nil {
		return "", err
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("sysconf: config key %q is not a string (got %T)",
			strings.Join(keys, "."), raw)
	}
	return res.resolvePath(s), nil
}

// Lookup walks the nested config mapping and returns the raw value at the
// given key path, or a *MissingKeyError.
func (res *Result) Lookup(keys ...string) (any, error) {
	var cur any = res.Config
	for i, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, &MissingKeyError{KeyPath: keys[:i+1]}
		}
		cur, ok = m[k]
		if !ok {
			return nil, &MissingKeyError{KeyPath: keys[:i+1]}
		}
	}
	return cur, nil
}

func (res *Result) resolvePath(s string) string {
	if s == "~" {
		return res.homeDir
	}
	if strings.HasPrefix(s, "~/") {
		return filepath.Join(res.homeDir, s[2:])
	}
	if filepath.IsAbs(s) {
		return filepath.Clean(s)
	}
	return filepath.Join(res.ProjectRoot, s)
}

// TemplatePath resolves the well-known "template" key under the system's
// root config key.
func (res *Result) TemplatePath() (string, error) {
	return res.Path(systype.Paths(res.System).RootKey, "template")
}

// ArtifactDir resolves the well-known "path" key under the system's root
// config key: the directory holding the system's documents.
func (res *Result) ArtifactDir() (string, error) {
	return res.Path(systype.Paths(res.System).RootKey, "path")
}
