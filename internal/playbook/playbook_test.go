// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package playbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/redline-engine/pkg/types"
)

func writePlaybook(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const playbookJSON = `[
  {
    "clause": "Confidentiality Obligations",
    "clause_definition": "Duties to protect disclosed information.",
    "review_instruction": "Require prior notice before compelled disclosure.",
    "red_flag": "Waives liability for breach.",
    "example_ideal_clause": "The Recipient shall protect the information with at least reasonable care."
  },
  {
    "clause": "Term and Termination",
    "clause_definition": "How long the duties last.",
    "example_fallback_clause": "This Agreement terminates two years after the Effective Date."
  }
]`

func TestLoadJSON(t *testing.T) {
	path := writePlaybook(t, "playbook.json", playbookJSON)

	pb, err := Load(path)
	require.NoError(t, err)
	require.Len(t, pb.Entries, 2)
	assert.Equal(t, []string{"Confidentiality Obligations", "Term and Termination"}, pb.Names())
	assert.Equal(t, "Duties to protect disclosed information.", pb.Entries[0].ClauseDefinition)
}

func TestLoadYAML(t *testing.T) {
	path := writePlaybook(t, "playbook.yaml", `
- clause: Governing Law
  clause_definition: Which law applies.
`)
	pb, err := Load(path)
	require.NoError(t, err)
	require.Len(t, pb.Entries, 1)
	assert.Equal(t, "Governing Law", pb.Entries[0].Clause)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writePlaybook(t, "playbook.toml", "clause = 1")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported playbook format")
}

func TestLoadRejectsMissingClauseName(t *testing.T) {
	path := writePlaybook(t, "playbook.json", `[{"clause_definition": "orphan"}]`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing clause name")
}

func TestLookupNormalizes(t *testing.T) {
	path := writePlaybook(t, "playbook.json", playbookJSON)
	pb, err := Load(path)
	require.NoError(t, err)

	for _, name := range []string{
		"Confidentiality Obligations",
		"confidentiality obligations",
		"- Confidentiality Obligations",
		"  CONFIDENTIALITY OBLIGATIONS  ",
	} {
		e := pb.Lookup(name)
		require.NotNil(t, e, "lookup failed for %q", name)
		assert.Equal(t, "Confidentiality Obligations", e.Clause)
	}
	assert.Nil(t, pb.Lookup("Indemnification"))
}

func TestNormalizeNameCurlyQuotes(t *testing.T) {
	assert.Equal(t, "recipient's duties", NormalizeName("Recipient’s Duties"))
}

func TestFixPrefersIdeal(t *testing.T) {
	e := &types.PlaybookEntry{
		ExampleIdealClause:    "ideal text",
		ExampleFallbackClause: "fallback text",
	}
	assert.Equal(t, "ideal text", Fix(e))

	e.ExampleIdealClause = ""
	assert.Equal(t, "fallback text", Fix(e))

	e.ExampleFallbackClause = ""
	assert.Equal(t, "", Fix(e))
}
