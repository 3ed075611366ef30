// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits unstructured contract text into an ordered list of
// named clauses. The pipeline is a single forward pass: classify heading
// lines, collapse adjacent heading runs, drop a front-matter heading, bound
// the final clause at the signature block, then assemble name and body per
// clause. Every stage is pure; segmenting the same text twice yields
// identical output.
package segment

import (
	"strings"

	"github.com/pdiddy/redline-engine/pkg/types"
)

// WarnNoHeadings is the warning recorded when a document yields no clauses.
const WarnNoHeadings = "no clause headings detected"

// Segment splits raw contract text into clauses. A document with no
// detectable headings produces an empty clause list and a warning, never an
// error. The caller is expected to have converted rich-text sources to
// plain text already.
func Segment(text string) types.SegmentResult {
	lines := splitLines(text)

	headings := classifyHeadings(lines)
	headings = dedupeAdjacent(headings)
	headings = dropPreambleHeading(lines, headings)

	if len(headings) == 0 {
		return types.SegmentResult{
			Clauses:  []types.Clause{},
			Warnings: []string{WarnNoHeadings},
		}
	}

	ranges := buildRanges(lines, headings)

	clauses := make([]types.Clause, 0, len(ranges))
	for _, r := range ranges {
		clauses = append(clauses, assembleClause(lines, r))
	}
	return types.SegmentResult{Clauses: clauses}
}

// assembleClause extracts the clause name and body for one range. The name
// is the heading with any trailing colon (half- or full-width) stripped.
// The body is the lines strictly after the heading, right-trimmed, joined,
// and trimmed; when that yields nothing but the range holds more than the
// heading line, the raw lines are rejoined instead so whitespace-heavy
// bodies are not lost.
func assembleClause(lines []string, r clauseRange) types.Clause {
	name := strings.TrimRight(r.heading, ":：")

	block := lines[r.start:r.end]
	var body []string
	if len(block) > 1 {
		body = block[1:]
	}

	trimmed := make([]string, len(body))
	for i, l := range body {
		trimmed[i] = strings.TrimRight(l, " \t\r\n")
	}
	content := strings.TrimSpace(strings.Join(trimmed, "\n"))

	if content == "" && len(block) > 1 {
		content = strings.TrimSpace(strings.Join(body, "\n"))
	}

	return types.Clause{Name: name, Content: content}
}

// splitLines splits text into lines without a trailing empty line for a
// trailing newline. Both \r\n and bare \r terminators are normalized.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
