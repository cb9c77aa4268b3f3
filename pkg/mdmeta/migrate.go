package mdmeta

import (
	"regexp"
	"strconv"
	"strings"
)

// legacyLineRe matches one line of the old blockquote-style header, for
// example: > **Status:** accepted
var legacyLineRe = regexp.MustCompile(`^>\s*\*\*([A-Za-z][A-Za-z ]*?):\*\*\s*(.*?)\s*$`)

// Label translations from the legacy headers to metadata block keys.
var (
	adrLabels = map[string]string{
		"status":    "status",
		"date":      "date",
		"updated":   "updated",
		"tags":      "tags",
		"runnotes":  "runnotes",
		"run notes": "runnotes",
	}
	runNoteLabels = map[string]string{
		"phase":         "phase",
		"status":        "status",
		"date":          "date",
		"tags":          "tags",
		"thinking mode": "thinking_mode",
		"complexity":    "complexity",
	}
	listFields = map[string]bool{"tags": true, "runnotes": true}
)

// MigrateADR rewrites an ADR document's legacy blockquote header into a
// metadata block, returning the new text and whether anything changed. The
// transform is best-effort and performs no schema validation; downstream
// Validate catches malformed results.
func MigrateADR(text string) (string, bool) {
	return migrate(text, adrLabels)
}

// MigrateRunNote is the runnote counterpart of MigrateADR.
func MigrateRunNote(text string) (string, bool) {
	return migrate(text, runNoteLabels)
}

type legacyField struct {
	key   string
	value string
}

func migrate(text string, labels map[string]string) (string, bool) {
	lines := strings.Split(text, "\n")

	start, fields := findLegacyHeader(lines, labels)
	if fields == nil {
		return text, false
	}

	remaining := removeRun(lines, start, len(fields))
	block := renderBlock(fields)

	// Insert after the first heading line, or prepend when there is none.
	for i, line := range remaining {
		if strings.HasPrefix(line, "# ") {
			out := make([]string, 0, len(remaining)+len(block)+1)
			out = append(out, remaining[:i+1]...)
			out = append(out, "")
			out = append(out, block...)
			out = append(out, remaining[i+1:]...)
			return strings.Join(out, "\n"), true
		}
	}
	out := make([]string, 0, len(remaining)+len(block)+1)
	out = append(out, block...)
	out = append(out, "")
	out = append(out, remaining...)
	return strings.Join(out, "\n"), true
}

// findLegacyHeader locates the first consecutive run of legacy header lines
// and translates them to metadata fields, preserving header order.
func findLegacyHeader(lines []string, labels map[string]string) (int, []legacyField) {
	for i := 0; i < len(lines); i++ {
		m := legacyLineRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		var fields []legacyField
		for j := i; j < len(lines); j++ {
			mm := legacyLineRe.FindStringSubmatch(lines[j])
			if mm == nil {
				break
			}
			fields = append(fields, legacyField{
				key:   translateLabel(mm[1], labels),
				value: mm[2],
			})
		}
		return i, fields
	}
	return 0, nil
}

// translateLabel maps a known header label to its block key; unknown labels
// pass through lowercased with spaces as underscores for Validate to flag.
func translateLabel(label string, labels map[string]string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	if key, ok := labels[lower]; ok {
		return key
	}
	return strings.ReplaceAll(lower, " ", "_")
}

// removeRun drops the header run and collapses a blank line it leaves behind.
func removeRun(lines []string, start, n int) []string {
	out := make([]string, 0, len(lines)-n)
	out = append(out, lines[:start]...)
	out = append(out, lines[start+n:]...)
	switch {
	case start == 0:
		// A header at the top leaves its trailing blank as the first line.
		if len(out) > 0 && strings.TrimSpace(out[0]) == "" {
			out = out[1:]
		}
	case start < len(out) &&
		strings.TrimSpace(out[start-1]) == "" && strings.TrimSpace(out[start]) == "":
		out = append(out[:start], out[start+1:]...)
	}
	return out
}

func renderBlock(fields []legacyField) []string {
	block := []string{metaFenceOpen}
	for _, f := range fields {
		if listFields[f.key] {
			block = append(block, f.key+": "+renderList(f.value))
		} else {
			block = append(block, f.key+": "+renderScalar(f.value))
		}
	}
	return append(block, fenceClose)
}

// renderList turns a comma-separated legacy value into a YAML flow sequence,
// stripping any leading # the old headers used on tags.
func renderList(value string) string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		item := strings.TrimPrefix(strings.TrimSpace(part), "#")
		if item != "" {
			items = append(items, renderScalar(item))
		}
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// renderScalar quotes values YAML would otherwise read as something other
// than a string (pure digits, colons, leading indicators).
func renderScalar(value string) string {
	if value == "" {
		return `""`
	}
	allDigits := true
	for _, r := range value {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}
	if allDigits || strings.ContainsAny(value, ":#{}[]") {
		return strconv.Quote(value)
	}
	return value
}
