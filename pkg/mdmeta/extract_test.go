package mdmeta

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtract_NoBlock(t *testing.T) {
	text := "# A Title\n\nJust prose, no metadata.\n\n```go\nfmt.Println(\"code\")\n```\n"
	meta, found, err := Extract(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("found = true, want false")
	}
	if meta != nil {
		t.Errorf("meta = %v, want nil", meta)
	}
}

func TestExtract_WellFormedBlock(t *testing.T) {
	text := "# Decision\n\n```yaml docmeta\ndate: 2025-01-01\nstatus: accepted\ntags: [x]\n```\n\nBody.\n"
	meta, found, err := Extract(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	want := map[string]any{
		"date":   "2025-01-01",
		"status": "accepted",
		"tags":   []any{"x"},
	}
	if !reflect.DeepEqual(meta, want) {
		t.Errorf("meta = %v, want %v", meta, want)
	}
}

func TestExtract_UntaggedFenceIgnored(t *testing.T) {
	text := "```yaml\ndate: 2025-01-01\n```\n"
	_, found, err := Extract(text)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("plain yaml fence must not count as metadata")
	}
}

func TestExtract_FirstBlockWins(t *testing.T) {
	text := "```yaml docmeta\nstatus: accepted\n```\n\n```yaml docmeta\nstatus: proposed\n```\n"
	meta, found, err := Extract(text)
	if err != nil || !found {
		t.Fatalf("found = %v err = %v", found, err)
	}
	if meta["status"] != "accepted" {
		t.Errorf("status = %v, want first block's value", meta["status"])
	}
}

func TestExtract_MalformedBlockIsRecoverable(t *testing.T) {
	text := "```yaml docmeta\n: broken: yaml: {{{\n```\n"
	meta, found, err := Extract(text)
	if !found {
		t.Fatal("found = false, want true")
	}
	if meta != nil {
		t.Errorf("meta = %v, want nil", meta)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
}

func TestExtract_UnterminatedFence(t *testing.T) {
	text := "```yaml docmeta\nstatus: accepted\n"
	meta, found, err := Extract(text)
	if err != nil || !found {
		t.Fatalf("found = %v err = %v", found, err)
	}
	if meta["status"] != "accepted" {
		t.Errorf("meta = %v", meta)
	}
}
