package sysconf

import (
	"fmt"
	"strings"
)

// ParseError reports a config file that exists but is not valid YAML. It is
// fatal to the resolution that encountered it; callers are expected to
// surface it and exit rather than fall back to defaults.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sysconf: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingKeyError reports a logical path lookup whose key is absent from the
// merged config.
type MissingKeyError struct {
	KeyPath []string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("sysconf: config key %q not set", strings.Join(e.KeyPath, "."))
}
