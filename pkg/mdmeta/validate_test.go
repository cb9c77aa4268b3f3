package mdmeta

import (
	"reflect"
	"strings"
	"testing"
)

func validADR() map[string]any {
	return map[string]any{
		"date":   "2025-01-01",
		"status": "accepted",
		"tags":   []any{"storage", "api"},
	}
}

func validRunNote() map[string]any {
	return map[string]any{
		"phase": "implementation",
		"tags":  []any{"parser"},
	}
}

func issueCategories(issues []Issue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.Category)
	}
	return out
}

func TestValidate_ADRValid(t *testing.T) {
	report := Validate(validADR(), DocADR, nil)
	if !report.Valid {
		t.Fatalf("valid = false, errors = %v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("warnings = %v", report.Warnings)
	}
	if report.Data == nil {
		t.Error("Data not set on valid report")
	}
}

func TestValidate_ADRMissingStatus(t *testing.T) {
	meta := validADR()
	delete(meta, "status")
	report := Validate(meta, DocADR, nil)
	if report.Valid {
		t.Fatal("valid = true, want false")
	}
	if got := issueCategories(report.Errors); !reflect.DeepEqual(got, []string{CategoryInvalidStandardFields}) {
		t.Fatalf("error categories = %v", got)
	}
	if !strings.Contains(report.Errors[0].Message, `"status"`) {
		t.Errorf("message = %q, want it to name status", report.Errors[0].Message)
	}
}

func TestValidate_ADRBadStatusValue(t *testing.T) {
	meta := validADR()
	meta["status"] = "rejected"
	report := Validate(meta, DocADR, nil)
	if report.Valid {
		t.Fatal("valid = true, want false")
	}
}

func TestValidate_ADRBadDate(t *testing.T) {
	for _, bad := range []any{"2025-1-1", "20250101", 20250101, "01-01-2025"} {
		meta := validADR()
		meta["date"] = bad
		if report := Validate(meta, DocADR, nil); report.Valid {
			t.Errorf("date %v accepted, want rejection", bad)
		}
	}
}

func TestValidate_ADRRunnotesPattern(t *testing.T) {
	meta := validADR()
	meta["runnotes"] = []any{"20250101-spike-cache.md"}
	if report := Validate(meta, DocADR, nil); !report.Valid {
		t.Fatalf("errors = %v", report.Errors)
	}
	meta["runnotes"] = []any{"notes.txt"}
	if report := Validate(meta, DocADR, nil); report.Valid {
		t.Error("bad runnote filename accepted")
	}
	meta["runnotes"] = []any{}
	if report := Validate(meta, DocADR, nil); report.Valid {
		t.Error("empty runnotes set accepted")
	}
}

func TestValidate_UnknownFieldWarnsButValid(t *testing.T) {
	meta := validADR()
	meta["foo"] = "bar"
	report := Validate(meta, DocADR, nil)
	if !report.Valid {
		t.Fatalf("valid = false, errors = %v", report.Errors)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", report.Warnings)
	}
	w := report.Warnings[0]
	if w.Category != CategoryUnknownFields {
		t.Errorf("category = %q", w.Category)
	}
	if !reflect.DeepEqual(w.Fields, []string{"foo"}) {
		t.Errorf("fields = %v, want [foo]", w.Fields)
	}
}

func TestValidate_RunNoteValid(t *testing.T) {
	meta := validRunNote()
	meta["status"] = "active"
	meta["thinking_mode"] = "ultrathink"
	meta["complexity"] = "moderate"
	meta["date"] = "20250101"
	report := Validate(meta, DocRunNote, nil)
	if !report.Valid {
		t.Fatalf("errors = %v", report.Errors)
	}
}

func TestValidate_RunNoteMissingPhase(t *testing.T) {
	meta := validRunNote()
	delete(meta, "phase")
	if report := Validate(meta, DocRunNote, nil); report.Valid {
		t.Fatal("missing phase accepted")
	}
}

func TestValidate_RunNoteDateForms(t *testing.T) {
	good := []any{
		"20250101",
		map[string]any{"created": "2025-01-01"},
		map[string]any{"created": "2025-01-01", "modified": "2025-02-03"},
	}
	for _, d := range good {
		meta := validRunNote()
		meta["date"] = d
		if report := Validate(meta, DocRunNote, nil); !report.Valid {
			t.Errorf("date %v rejected: %v", d, report.Errors)
		}
	}
	bad := []any{
		"2025-01-01",
		map[string]any{"modified": "2025-02-03"},
		map[string]any{"created": "20250101"},
		map[string]any{"created": "2025-01-01", "extra": "x"},
		7,
	}
	for _, d := range bad {
		meta := validRunNote()
		meta["date"] = d
		if report := Validate(meta, DocRunNote, nil); report.Valid {
			t.Errorf("date %v accepted, want rejection", d)
		}
	}
}

func TestValidate_TagsDuplicatesCollapse(t *testing.T) {
	meta := validRunNote()
	meta["tags"] = []any{"a", "a", "b"}
	if report := Validate(meta, DocRunNote, nil); !report.Valid {
		t.Fatalf("errors = %v", report.Errors)
	}
	meta["tags"] = []any{"Bad Tag"}
	if report := Validate(meta, DocRunNote, nil); report.Valid {
		t.Error("invalid tag identifier accepted")
	}
	meta["tags"] = []any{}
	if report := Validate(meta, DocRunNote, nil); report.Valid {
		t.Error("empty tag set accepted")
	}
}

func TestValidate_RequiredExtensionMissing(t *testing.T) {
	cfg := map[string]any{
		"metadata_extensions": map[string]any{
			"owner":    map[string]any{"required": true},
			"audience": map[string]any{"required": false},
		},
	}
	report := Validate(validADR(), DocADR, cfg)
	if report.Valid {
		t.Fatal("valid = true, want false")
	}
	if got := issueCategories(report.Errors); !reflect.DeepEqual(got, []string{CategoryMissingRequiredExtensions}) {
		t.Fatalf("error categories = %v", got)
	}
	if !reflect.DeepEqual(report.Errors[0].Fields, []string{"owner"}) {
		t.Errorf("fields = %v, want [owner]", report.Errors[0].Fields)
	}
}

func TestValidate_DeclaredOptionalExtensionStillWarns(t *testing.T) {
	cfg := map[string]any{
		"metadata_extensions": map[string]any{
			"owner": map[string]any{"required": false},
		},
	}
	meta := validADR()
	meta["owner"] = "me"
	meta["stray"] = true
	report := Validate(meta, DocADR, cfg)
	if !report.Valid {
		t.Fatalf("errors = %v", report.Errors)
	}
	// Declaring owner does not suppress its warning: declared-optional and
	// undeclared fields land in the same category.
	if len(report.Warnings) != 2 {
		t.Fatalf("warnings = %v, want owner and stray both flagged", report.Warnings)
	}
	if report.Warnings[0].Fields[0] != "owner" || report.Warnings[1].Fields[0] != "stray" {
		t.Errorf("warnings = %v, want [owner stray]", report.Warnings)
	}
	for _, w := range report.Warnings {
		if w.Category != CategoryUnknownFields {
			t.Errorf("category = %q, want %q", w.Category, CategoryUnknownFields)
		}
	}
}

func TestValidate_RequiredExtensionPresentStillWarns(t *testing.T) {
	cfg := map[string]any{
		"metadata_extensions": map[string]any{
			"owner": map[string]any{"required": true},
		},
	}
	meta := validADR()
	meta["owner"] = "me"
	report := Validate(meta, DocADR, cfg)
	if !report.Valid {
		t.Fatalf("errors = %v", report.Errors)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Fields[0] != "owner" {
		t.Errorf("warnings = %v, want one naming owner", report.Warnings)
	}
}

func TestValidate_BaseAndExtensionErrorsBothReported(t *testing.T) {
	cfg := map[string]any{
		"metadata_extensions": map[string]any{
			"owner": map[string]any{"required": true},
		},
	}
	meta := validADR()
	delete(meta, "date")
	report := Validate(meta, DocADR, cfg)
	got := issueCategories(report.Errors)
	want := []string{CategoryInvalidStandardFields, CategoryMissingRequiredExtensions}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
}
