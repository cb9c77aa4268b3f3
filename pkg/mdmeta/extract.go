// Package mdmeta extracts and validates the structured metadata block that
// dockit documents embed in a tagged fenced code region, and migrates the
// older blockquote-style headers to that format.
package mdmeta

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// The reserved opening fence for a metadata block. Documents may contain any
// number of ordinary code fences; only this exact info string marks metadata.
const (
	metaFenceOpen = "```yaml docmeta"
	fenceClose    = "```"
)

// ParseError reports a metadata block that was found but failed to parse.
// Unlike config parse failures this is recoverable: batch scans report the
// document and continue.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mdmeta: parse metadata block: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Extract scans markdown text for the first metadata block. The second
// return value reports whether a block was found at all: documents without
// one are common and not an error. A found-but-malformed block yields
// (nil, true, *ParseError).
func Extract(text string) (map[string]any, bool, error) {
	body, found := extractBlockBody(text)
	if !found {
		return nil, false, nil
	}
	var m map[string]any
	if err := yaml.Unmarshal([]byte(body), &m); err != nil {
		return nil, true, &ParseError{Err: err}
	}
	return m, true, nil
}

// extractBlockBody returns the raw body of the first tagged fence.
func extractBlockBody(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimRight(line, " \t\r") != metaFenceOpen {
			continue
		}
		var body []string
		for _, inner := range lines[i+1:] {
			if strings.TrimRight(inner, " \t\r") == fenceClose {
				return strings.Join(body, "\n"), true
			}
			body = append(body, inner)
		}
		// Unterminated fence: treat the rest of the document as the body and
		// let the YAML parser complain if it is malformed.
		return strings.Join(body, "\n"), true
	}
	return "", false
}
