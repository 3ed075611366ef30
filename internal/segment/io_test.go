// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/redline-engine/pkg/types"
)

func TestWriteJSONFormat(t *testing.T) {
	clauses := []types.Clause{
		{Name: "1. Definitions", Content: "Confidential Information & related terms."},
	}

	var buf strings.Builder
	if err := WriteJSON(&buf, clauses); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `"clause_name": "1. Definitions"`) {
		t.Errorf("output missing clause_name field:\n%s", out)
	}
	if !strings.Contains(out, `"clause_content"`) {
		t.Errorf("output missing clause_content field:\n%s", out)
	}
	// HTML escaping must stay off: & survives as-is.
	if strings.Contains(out, `&`) {
		t.Errorf("output should not HTML-escape: %s", out)
	}
	if !strings.HasPrefix(out, "[\n  {") {
		t.Errorf("output should be an indented array:\n%s", out)
	}
}

func TestWriteJSONEmptyList(t *testing.T) {
	var buf strings.Builder
	if err := WriteJSON(&buf, []types.Clause{}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty list should serialize as []: %q", buf.String())
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	clauses := []types.Clause{
		{Name: "2. Confidentiality", Content: "Recipient shall hold in confidence."},
		{Name: "3. Term", Content: "Two years."},
	}

	path := filepath.Join(t.TempDir(), "doc-clauses.json")
	if err := WriteFile(path, clauses); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d clauses, want 2", len(got))
	}
	if got[0] != clauses[0] || got[1] != clauses[1] {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should error")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("malformed JSON should error")
	}
}
