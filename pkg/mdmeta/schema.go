package mdmeta

import (
	"fmt"
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DocType selects which fixed metadata schema applies to a document.
type DocType int

const (
	// DocADR is an Architecture Decision Record document.
	DocADR DocType = iota
	// DocRunNote is a RunNotes development-log document.
	DocRunNote
)

// String returns the lowercase document type name.
func (d DocType) String() string {
	switch d {
	case DocADR:
		return "adr"
	case DocRunNote:
		return "runnote"
	}
	panic(fmt.Sprintf("mdmeta: unknown DocType(%d)", int(d)))
}

var (
	dateRe        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	compactDateRe = regexp.MustCompile(`^\d{8}$`)
	tagRe         = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	runNoteFileRe = regexp.MustCompile(`^\d{8}-[a-z0-9][a-z0-9-]*\.md$`)
)

// Enumerated field values.
var (
	adrStatuses     = []any{"proposed", "accepted", "deprecated", "superseded"}
	runNoteStatuses = []any{"active", "paused", "complete", "abandoned"}
	runNotePhases   = []any{
		"planning", "research", "design", "implementation", "testing",
		"debugging", "refactoring", "review", "documentation", "release",
	}
	thinkingModes = []any{"think", "think-hard", "think-harder", "ultrathink"}
	complexities  = []any{"trivial", "simple", "moderate", "complex"}
)

// fieldSpec describes one base-schema field: whether it must be present and
// how its value is checked.
type fieldSpec struct {
	required bool
	check    func(any) error
}

// schemaFor returns the fixed base schema for the document type.
func schemaFor(doc DocType) map[string]fieldSpec {
	switch doc {
	case DocADR:
		return map[string]fieldSpec{
			"date":   {required: true, check: checkDate},
			"status": {required: true, check: enumField(adrStatuses...)},
			"tags":   {required: true, check: setField(tagRe, "a lowercase tag identifier")},
			"runnotes": {check: setField(runNoteFileRe,
				"a runnote filename like 20250101-topic.md")},
			"updated": {check: checkDate},
		}
	case DocRunNote:
		return map[string]fieldSpec{
			"phase":         {required: true, check: enumField(runNotePhases...)},
			"tags":          {required: true, check: setField(tagRe, "a lowercase tag identifier")},
			"status":        {check: enumField(runNoteStatuses...)},
			"thinking_mode": {check: enumField(thinkingModes...)},
			"date":          {check: checkRunNoteDate},
			"complexity":    {check: enumField(complexities...)},
		}
	}
	panic(fmt.Sprintf("mdmeta: unknown DocType(%d)", int(doc)))
}

// checkDate validates a YYYY-MM-DD date string.
func checkDate(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("must be a YYYY-MM-DD string (got %T)", v)
	}
	return validation.Validate(s,
		validation.Required,
		validation.Match(dateRe).Error("must match YYYY-MM-DD"),
	)
}

// checkRunNoteDate validates the runnote date field: either a compact
// YYYYMMDD string (matching runnote filename prefixes) or a nested mapping
// with created/modified YYYY-MM-DD entries.
func checkRunNoteDate(v any) error {
	switch d := v.(type) {
	case string:
		return validation.Validate(d,
			validation.Required,
			validation.Match(compactDateRe).Error("must match YYYYMMDD"),
		)
	case map[string]any:
		created, ok := d["created"]
		if !ok {
			return fmt.Errorf("date mapping must have a created entry")
		}
		if err := checkDate(created); err != nil {
			return fmt.Errorf("created: %v", err)
		}
		if modified, ok := d["modified"]; ok {
			if err := checkDate(modified); err != nil {
				return fmt.Errorf("modified: %v", err)
			}
		}
		for k := range d {
			if k != "created" && k != "modified" {
				return fmt.Errorf("date mapping has unexpected entry %q", k)
			}
		}
		return nil
	}
	return fmt.Errorf("must be a YYYYMMDD string or a created/modified mapping (got %T)", v)
}

// enumField returns a check requiring a string drawn from the given values.
func enumField(values ...any) func(any) error {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("must be a string (got %T)", v)
		}
		return validation.Validate(s, validation.Required, validation.In(values...))
	}
}

// setField returns a check for a non-empty set of strings, each matching re.
// A single string is accepted as a one-element set; duplicates collapse.
func setField(re *regexp.Regexp, desc string) func(any) error {
	return func(v any) error {
		items, err := stringSet(v)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("must not be empty")
		}
		for _, item := range items {
			if err := validation.Validate(item,
				validation.Required,
				validation.Match(re).Error("must be "+desc),
			); err != nil {
				return fmt.Errorf("%q: %v", item, err)
			}
		}
		return nil
	}
}

// stringSet normalises a YAML list (or single string) to a sorted,
// deduplicated string slice. Order is irrelevant per the data model, so a
// canonical order keeps results deterministic.
func stringSet(v any) ([]string, error) {
	var raw []any
	switch x := v.(type) {
	case string:
		raw = []any{x}
	case []any:
		raw = x
	default:
		return nil, fmt.Errorf("must be a list of strings (got %T)", v)
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("must contain only strings (got %T)", item)
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}
