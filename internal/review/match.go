// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/pdiddy/redline-engine/internal/playbook"
	"github.com/pdiddy/redline-engine/pkg/types"
)

// DefaultMatchThreshold is the minimum first-pass score that counts as a
// real match on the 0-10 scale.
const DefaultMatchThreshold = 6

const mappingSystemPrompt = "You are a legal contract clause mapping expert."

// scorePromptTmpl asks the model to rate one playbook/document clause pair.
// The reply must be a bare score so it can be parsed from the first token.
var scorePromptTmpl = template.Must(template.New("score").Parse(`You are a legal contract clause mapping expert.

For each pair below, score the match on a scale from 0 (not a match at all) to 10 (perfect match). Consider both the playbook clause name/definition and the NDA clause heading/content. A match means the NDA clause serves the *same legal purpose* as the playbook clause.

Playbook Clause Name: {{.PlaybookName}}
Playbook Clause Definition: {{.PlaybookDefinition}}

NDA Clause Name: {{.ClauseName}}
NDA Clause Content: {{.ClauseContent}}

Score (0-10), and nothing else:
`))

// secondPassPromptTmpl presents one unmapped playbook clause against all
// still-unmapped document clauses and asks for a single pick or "None".
var secondPassPromptTmpl = template.Must(template.New("secondpass").Parse(`You are a legal contract clause analyst.

Here is a playbook clause type, with definition and red flag(s):

Clause Name: {{.PlaybookName}}
Clause Definition: {{.PlaybookDefinition}}
Red Flag: {{.RedFlag}}
Review Instruction: {{.ReviewInstruction}}

Here are all remaining unmapped NDA clauses (with number, heading, content):

{{.UnmappedBlock}}

Instructions:
- For the playbook clause above, if any NDA clause below matches the legal concept (even if heading is different), output "NDA Clause #n" (with n = number as shown above).
- If none clearly matches, output "None".
- Do not output anything else.
`))

// BuildMatrix scores every playbook-clause x document-clause pair through
// the backend and returns the full score matrix. Unparseable replies score 0
// with a warning on w rather than aborting the run.
func BuildMatrix(ctx context.Context, backend Backend, pb *playbook.Playbook, clauses []types.Clause, maxRetries int, w io.Writer) (types.MatchMatrix, error) {
	matrix := make(types.MatchMatrix, len(pb.Entries))

	for i := range pb.Entries {
		entry := &pb.Entries[i]
		matrix[entry.Clause] = make(map[int]float64, len(clauses))
		fmt.Fprintf(w, "scoring %s\n", entry.Clause)

		for j, clause := range clauses {
			prompt, err := renderTemplate(scorePromptTmpl, map[string]string{
				"PlaybookName":       entry.Clause,
				"PlaybookDefinition": entry.ClauseDefinition,
				"ClauseName":         clause.Name,
				"ClauseContent":      clause.Content,
			})
			if err != nil {
				return nil, fmt.Errorf("rendering score prompt: %w", err)
			}

			reply, err := callWithRetry(ctx, backend, Request{
				System:    mappingSystemPrompt,
				Prompt:    prompt,
				MaxTokens: 4,
			}, maxRetries)
			if err != nil {
				return nil, fmt.Errorf("scoring %q against clause %d: %w", entry.Clause, j, err)
			}

			score, ok := parseScore(reply)
			if !ok {
				fmt.Fprintf(w, "warning: unparseable score %q for %q x clause %d, using 0\n", reply, entry.Clause, j)
			}
			matrix[entry.Clause][j] = score
		}
	}

	return matrix, nil
}

// parseScore extracts a numeric score from the first token of a reply.
func parseScore(reply string) (float64, bool) {
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return 0, false
	}
	if n, err := strconv.Atoi(fields[0]); err == nil {
		return float64(n), true
	}
	if f, err := strconv.ParseFloat(fields[0], 64); err == nil {
		return f, true
	}
	return 0, false
}

// Assign resolves the matrix into a unique playbook-to-clause mapping:
// greedy in playbook order, each document clause assigned at most once,
// entries below threshold left unmapped. Ties go to the lowest clause index.
func Assign(matrix types.MatchMatrix, names []string, clauseCount int, threshold float64) types.Mapping {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}

	assigned := make(map[int]bool, clauseCount)
	mapping := make(types.Mapping, len(names))

	for _, name := range names {
		bestIdx := -1
		bestScore := 0.0
		for j := 0; j < clauseCount; j++ {
			if assigned[j] {
				continue
			}
			score := matrix[name][j]
			if bestIdx == -1 || score > bestScore {
				bestIdx, bestScore = j, score
			}
		}

		if bestIdx >= 0 && bestScore >= threshold {
			idx := bestIdx
			mapping[name] = &idx
			assigned[bestIdx] = true
		} else {
			mapping[name] = nil
		}
	}

	return mapping
}

// clausePickRE matches the second-pass reply format "NDA Clause #n".
var clausePickRE = regexp.MustCompile(`(?i)^nda clause #\s*(\d+)`)

// SecondPass retries each unmapped playbook clause with a focused prompt
// over the still-unmapped document clauses, updating mapping in place.
// Unexpected replies leave the clause unmapped with a warning on w.
func SecondPass(ctx context.Context, backend Backend, pb *playbook.Playbook, clauses []types.Clause, mapping types.Mapping, maxRetries int, w io.Writer) error {
	assigned := make(map[int]bool)
	for _, idx := range mapping {
		if idx != nil {
			assigned[*idx] = true
		}
	}

	for _, name := range pb.Names() {
		if mapping[name] != nil {
			continue
		}
		entry := pb.Lookup(name)
		if entry == nil {
			fmt.Fprintf(w, "warning: playbook entry for unmapped clause %q not found\n", name)
			continue
		}

		var unmapped []string
		for j, clause := range clauses {
			if assigned[j] {
				continue
			}
			unmapped = append(unmapped, fmt.Sprintf("%d. Heading: %s\n   Content: %s", j+1, clause.Name, clause.Content))
		}
		if len(unmapped) == 0 {
			return nil
		}

		prompt, err := renderTemplate(secondPassPromptTmpl, map[string]string{
			"PlaybookName":       entry.Clause,
			"PlaybookDefinition": entry.ClauseDefinition,
			"RedFlag":            entry.RedFlag,
			"ReviewInstruction":  entry.ReviewInstruction,
			"UnmappedBlock":      strings.Join(unmapped, "\n\n"),
		})
		if err != nil {
			return fmt.Errorf("rendering second-pass prompt: %w", err)
		}

		reply, err := callWithRetry(ctx, backend, Request{
			System:    "You are a legal contract clause analyst.",
			Prompt:    prompt,
			MaxTokens: 16,
		}, maxRetries)
		if err != nil {
			return fmt.Errorf("second pass for %q: %w", name, err)
		}

		answer := strings.TrimSpace(reply)
		switch m := clausePickRE.FindStringSubmatch(answer); {
		case m != nil:
			num, err := strconv.Atoi(m[1])
			if err != nil || num < 1 || num > len(clauses) {
				fmt.Fprintf(w, "warning: second-pass pick %q out of range for %q\n", answer, name)
				continue
			}
			idx := num - 1
			if assigned[idx] {
				fmt.Fprintf(w, "warning: clause %d already mapped, skipping second-pass pick for %q\n", num, name)
				continue
			}
			mapping[name] = &idx
			assigned[idx] = true
			fmt.Fprintf(w, "second pass: mapped %s to clause %d\n", name, num)
		case strings.EqualFold(answer, "none"):
			fmt.Fprintf(w, "second pass: %s remains unmapped\n", name)
		default:
			fmt.Fprintf(w, "warning: unexpected second-pass reply for %q: %q\n", name, answer)
		}
	}

	return nil
}

// Match runs the full matching stage: score matrix, greedy assignment, and
// the focused second pass for anything left unmapped.
func Match(ctx context.Context, backend Backend, cfg types.ReviewConfig, pb *playbook.Playbook, clauses []types.Clause, w io.Writer) (types.MatchMatrix, types.Mapping, error) {
	matrix, err := BuildMatrix(ctx, backend, pb, clauses, cfg.MaxRetries, w)
	if err != nil {
		return nil, nil, err
	}

	mapping := Assign(matrix, pb.Names(), len(clauses), cfg.MatchThreshold)

	if err := SecondPass(ctx, backend, pb, clauses, mapping, cfg.MaxRetries, w); err != nil {
		return nil, nil, err
	}

	return matrix, mapping, nil
}

// renderTemplate executes tmpl with data and returns the result.
func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
