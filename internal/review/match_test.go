// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/redline-engine/internal/playbook"
	"github.com/pdiddy/redline-engine/pkg/types"
)

// scriptedBackend answers prompts through a caller-supplied function.
type scriptedBackend struct {
	fn func(r Request) (string, error)
}

func (s *scriptedBackend) Complete(ctx context.Context, r Request) (string, error) {
	return s.fn(r)
}

// loadTestPlaybook round-trips playbook JSON through a temp file so the
// normalized-name lookup is wired exactly as in production.
func loadTestPlaybook(t *testing.T, content string) *playbook.Playbook {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playbook.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	pb, err := playbook.Load(path)
	require.NoError(t, err)
	return pb
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		reply string
		want  float64
		ok    bool
	}{
		{"7", 7, true},
		{"10\n", 10, true},
		{"8 out of 10", 8, true},
		{"6.5", 6.5, true},
		{"Score: 7", 0, false},
		{"", 0, false},
		{"high", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseScore(tt.reply)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseScore(%q) = %v, %v; want %v, %v", tt.reply, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAssignGreedyUnique(t *testing.T) {
	matrix := types.MatchMatrix{
		"Confidentiality": {0: 9, 1: 8, 2: 2},
		"Term":            {0: 8, 1: 7, 2: 3},
		"Governing Law":   {0: 1, 1: 2, 2: 4},
	}
	names := []string{"Confidentiality", "Term", "Governing Law"}

	mapping := Assign(matrix, names, 3, 6)

	require.NotNil(t, mapping["Confidentiality"])
	assert.Equal(t, 0, *mapping["Confidentiality"])
	// Clause 0 is taken, so Term falls back to its next best.
	require.NotNil(t, mapping["Term"])
	assert.Equal(t, 1, *mapping["Term"])
	// Best remaining score 4 is below threshold.
	assert.Nil(t, mapping["Governing Law"])
}

func TestAssignDefaultThreshold(t *testing.T) {
	matrix := types.MatchMatrix{"Term": {0: 6}}
	mapping := Assign(matrix, []string{"Term"}, 1, 0)
	require.NotNil(t, mapping["Term"])
}

func TestAssignTieGoesToLowestIndex(t *testing.T) {
	matrix := types.MatchMatrix{"Term": {0: 7, 1: 7}}
	mapping := Assign(matrix, []string{"Term"}, 2, 6)
	require.NotNil(t, mapping["Term"])
	assert.Equal(t, 0, *mapping["Term"])
}

func TestBuildMatrix(t *testing.T) {
	pb := loadTestPlaybook(t, `[
  {"clause": "Confidentiality", "clause_definition": "Protect information."},
  {"clause": "Term", "clause_definition": "Duration of duties."}
]`)
	clauses := []types.Clause{
		{Name: "1. Confidential Information", Content: "The Recipient shall keep it secret."},
		{Name: "2. Term", Content: "Two years."},
	}

	backend := &scriptedBackend{fn: func(r Request) (string, error) {
		assert.Equal(t, 4, r.MaxTokens)
		switch {
		case strings.Contains(r.Prompt, "Playbook Clause Name: Confidentiality") &&
			strings.Contains(r.Prompt, "keep it secret"):
			return "9", nil
		case strings.Contains(r.Prompt, "Playbook Clause Name: Term") &&
			strings.Contains(r.Prompt, "Two years"):
			return "8", nil
		default:
			return "1", nil
		}
	}}

	matrix, err := BuildMatrix(context.Background(), backend, pb, clauses, 1, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 9.0, matrix["Confidentiality"][0])
	assert.Equal(t, 1.0, matrix["Confidentiality"][1])
	assert.Equal(t, 1.0, matrix["Term"][0])
	assert.Equal(t, 8.0, matrix["Term"][1])
}

func TestBuildMatrixUnparseableScoresZero(t *testing.T) {
	pb := loadTestPlaybook(t, `[{"clause": "Term", "clause_definition": "d"}]`)
	clauses := []types.Clause{{Name: "1. Term", Content: "c"}}

	backend := &scriptedBackend{fn: func(r Request) (string, error) {
		return "I cannot score this.", nil
	}}

	var log strings.Builder
	matrix, err := BuildMatrix(context.Background(), backend, pb, clauses, 1, &log)
	require.NoError(t, err)
	assert.Equal(t, 0.0, matrix["Term"][0])
	assert.Contains(t, log.String(), "unparseable score")
}

func TestSecondPassAssignsUnmapped(t *testing.T) {
	pb := loadTestPlaybook(t, `[
  {"clause": "Return of Materials", "clause_definition": "Return or destroy.", "red_flag": "No return duty."}
]`)
	clauses := []types.Clause{
		{Name: "1. Something", Content: "irrelevant"},
		{Name: "2. Giving Stuff Back", Content: "Recipient returns all copies."},
	}
	mapping := types.Mapping{"Return of Materials": nil}

	backend := &scriptedBackend{fn: func(r Request) (string, error) {
		assert.Contains(t, r.Prompt, "Clause Name: Return of Materials")
		assert.Contains(t, r.Prompt, "2. Heading: 2. Giving Stuff Back")
		return "NDA Clause #2", nil
	}}

	var log strings.Builder
	err := SecondPass(context.Background(), backend, pb, clauses, mapping, 1, &log)
	require.NoError(t, err)
	require.NotNil(t, mapping["Return of Materials"])
	assert.Equal(t, 1, *mapping["Return of Materials"])
	assert.Contains(t, log.String(), "second pass: mapped Return of Materials to clause 2")
}

func TestSecondPassNoneLeavesUnmapped(t *testing.T) {
	pb := loadTestPlaybook(t, `[{"clause": "Indemnification", "clause_definition": "d"}]`)
	clauses := []types.Clause{{Name: "1. Term", Content: "c"}}
	mapping := types.Mapping{"Indemnification": nil}

	backend := &scriptedBackend{fn: func(r Request) (string, error) {
		return "None", nil
	}}

	err := SecondPass(context.Background(), backend, pb, clauses, mapping, 1, io.Discard)
	require.NoError(t, err)
	assert.Nil(t, mapping["Indemnification"])
}

func TestSecondPassSkipsAlreadyAssigned(t *testing.T) {
	pb := loadTestPlaybook(t, `[
  {"clause": "Term", "clause_definition": "d"},
  {"clause": "Notices", "clause_definition": "d"}
]`)
	clauses := []types.Clause{{Name: "1. Term", Content: "c"}}
	idx := 0
	mapping := types.Mapping{"Term": &idx, "Notices": nil}

	backend := &scriptedBackend{fn: func(r Request) (string, error) {
		return "NDA Clause #1", nil
	}}

	var log strings.Builder
	err := SecondPass(context.Background(), backend, pb, clauses, mapping, 1, &log)
	require.NoError(t, err)
	// The only clause is already assigned, so there is nothing to offer.
	assert.Nil(t, mapping["Notices"])
}
