package mdmeta

import (
	"fmt"
	"sort"
)

// Issue categories reported by Validate.
const (
	// CategoryInvalidStandardFields marks a base-schema failure: a required
	// field is missing or a present field has an invalid value.
	CategoryInvalidStandardFields = "invalid-standard-fields"
	// CategoryMissingRequiredExtensions marks config-declared extension
	// fields with required: true that are absent from the metadata.
	CategoryMissingRequiredExtensions = "missing-required-extensions"
	// CategoryUnknownFields marks metadata keys outside the fixed base
	// schema, declared extension fields included. Warnings, never errors.
	CategoryUnknownFields = "unknown-fields"
)

// Issue is one structured validation finding.
type Issue struct {
	Category string
	Message  string
	Fields   []string
}

// Report is the outcome of validating one document's metadata. Valid is true
// only when the base schema passes and no required extension is missing;
// unknown-field warnings never block validity.
type Report struct {
	Valid    bool
	Data     map[string]any
	Errors   []Issue
	Warnings []Issue
}

// extensionKey is the config key under a system's root section declaring
// extension fields.
const extensionKey = "metadata_extensions"

// Validate checks meta against the fixed schema for doc, plus any extension
// fields declared in cfg (the system's root config section; nil is fine).
func Validate(meta map[string]any, doc DocType, cfg map[string]any) Report {
	schema := schemaFor(doc)
	extensions := parseExtensions(cfg)

	var report Report

	// Base schema, in field order for deterministic output.
	for _, name := range sortedKeys(schema) {
		spec := schema[name]
		value, present := meta[name]
		if !present {
			if spec.required {
				report.Errors = append(report.Errors, Issue{
					Category: CategoryInvalidStandardFields,
					Message:  fmt.Sprintf("field %q is required", name),
					Fields:   []string{name},
				})
			}
			continue
		}
		if err := spec.check(value); err != nil {
			report.Errors = append(report.Errors, Issue{
				Category: CategoryInvalidStandardFields,
				Message:  fmt.Sprintf("field %q: %v", name, err),
				Fields:   []string{name},
			})
		}
	}

	// Required extensions.
	var missing []string
	for _, name := range sortedKeys(extensions) {
		if extensions[name].required {
			if _, present := meta[name]; !present {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		report.Errors = append(report.Errors, Issue{
			Category: CategoryMissingRequiredExtensions,
			Message:  fmt.Sprintf("missing required extension fields: %v", missing),
			Fields:   missing,
		})
	}

	// Unknown fields: anything outside the base schema. Declaring an
	// extension does not suppress the warning; only the fixed schema does.
	for _, name := range sortedKeys(meta) {
		if _, known := schema[name]; known {
			continue
		}
		report.Warnings = append(report.Warnings, Issue{
			Category: CategoryUnknownFields,
			Message:  fmt.Sprintf("unknown field %q", name),
			Fields:   []string{name},
		})
	}

	report.Valid = len(report.Errors) == 0
	if report.Valid {
		report.Data = meta
	}
	return report
}

// extension is one declared extension field.
type extension struct {
	required bool
}

// parseExtensions reads the metadata_extensions declaration from a config
// section. Malformed declarations are ignored rather than failing the whole
// validation: config problems surface through resolution, not here.
func parseExtensions(cfg map[string]any) map[string]extension {
	if cfg == nil {
		return nil
	}
	raw, ok := cfg[extensionKey].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]extension, len(raw))
	for name, decl := range raw {
		var ext extension
		if m, ok := decl.(map[string]any); ok {
			if req, ok := m["required"].(bool); ok {
				ext.required = req
			}
		}
		out[name] = ext
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
