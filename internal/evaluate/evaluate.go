// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evaluate compares an actual redline run against an expected gold
// set, clause by clause, and reports precision, recall, and F1.
package evaluate

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/redline-engine/pkg/types"
)

// unflagged marks a clause no run attached a playbook reference to.
const unflagged = "None"

// Similarity scores how close two text snippets are, in [0,1]. The default
// is the lexical token-cosine in this package; embedding-backed scorers can
// be plugged in from outside.
type Similarity interface {
	Score(a, b string) float64
}

// bestMatch finds the clause a redline snippet belongs to: exact substring
// containment wins outright, otherwise the highest-similarity clause.
// Returns -1 for an empty snippet.
func bestMatch(snippet string, clauses []types.Clause, sim Similarity) int {
	trimmed := strings.TrimSpace(snippet)
	if trimmed == "" {
		return -1
	}

	for i, c := range clauses {
		if strings.Contains(c.Content, trimmed) {
			return i
		}
	}

	best, bestScore := -1, 0.0
	for i, c := range clauses {
		if score := sim.Score(snippet, c.Content); best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// indexRedlines attaches each redline to its clause name. Redlines whose
// snippet matches no clause are keyed "(unmatched)".
func indexRedlines(redlines []types.Redline, clauses []types.Clause, sim Similarity) map[string]*types.Redline {
	m := make(map[string]*types.Redline, len(redlines))
	for i := range redlines {
		r := &redlines[i]
		name := "(unmatched)"
		if idx := bestMatch(r.TextSnippet, clauses, sim); idx >= 0 {
			name = strings.TrimSpace(clauses[idx].Name)
		}
		m[name] = r
	}
	return m
}

// Evaluate compares expected and actual redlines over the document's
// clauses. A clause flagged by both runs is a true positive; only by the
// actual run, a false positive; only by the expected run, a false negative.
// Snippet and fix similarities are -1 when neither run flagged the clause.
func Evaluate(expected, actual []types.Redline, clauses []types.Clause, sim Similarity) types.EvaluationSummary {
	expectedMap := indexRedlines(expected, clauses, sim)
	actualMap := indexRedlines(actual, clauses, sim)

	var summary types.EvaluationSummary

	for _, clause := range clauses {
		name := strings.TrimSpace(clause.Name)
		e := expectedMap[name]
		a := actualMap[name]

		row := types.ClauseEvaluation{
			Clause:           name,
			PlaybookExpected: unflagged,
			PlaybookActual:   unflagged,
			FlaggedExpected:  e != nil,
			FlaggedActual:    a != nil,
			TextSim:          -1,
			FixSim:           -1,
		}

		if e != nil {
			row.PlaybookExpected = e.PlaybookClauseReference
		}
		if a != nil {
			row.PlaybookActual = a.PlaybookClauseReference
		}

		switch {
		case e != nil && a != nil:
			summary.TruePositives++
			row.TextSim = sim.Score(e.TextSnippet, a.TextSnippet)
			row.FixSim = sim.Score(e.SuggestedFix, a.SuggestedFix)
		case e == nil && a != nil:
			summary.FalsePositives++
			row.TextSim, row.FixSim = 0, 0
		case e != nil && a == nil:
			summary.FalseNegatives++
			row.TextSim, row.FixSim = 0, 0
		}

		summary.Rows = append(summary.Rows, row)
	}

	if tp, fp := summary.TruePositives, summary.FalsePositives; tp+fp > 0 {
		summary.Precision = float64(tp) / float64(tp+fp)
	}
	if tp, fn := summary.TruePositives, summary.FalseNegatives; tp+fn > 0 {
		summary.Recall = float64(tp) / float64(tp+fn)
	}
	if summary.Precision+summary.Recall > 0 {
		summary.F1 = 2 * summary.Precision * summary.Recall / (summary.Precision + summary.Recall)
	}

	return summary
}

// Report writes the human-readable evaluation to w.
func Report(w io.Writer, s types.EvaluationSummary) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Clause Redline Evaluation")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "TP: %d   FP: %d   FN: %d   Precision: %.2f   Recall: %.2f   F1: %.2f\n",
		s.TruePositives, s.FalsePositives, s.FalseNegatives, s.Precision, s.Recall, s.F1)
	fmt.Fprintln(w, rule)

	for _, row := range s.Rows {
		fmt.Fprintf(w, "Clause: %s\n", row.Clause)
		fmt.Fprintf(w, "  - Expected:   Playbook: %s | Flagged: %s\n", row.PlaybookExpected, yesNo(row.FlaggedExpected))
		fmt.Fprintf(w, "  - Actual:     Playbook: %s | Flagged: %s\n", row.PlaybookActual, yesNo(row.FlaggedActual))
		fmt.Fprintf(w, "  - Text Snippet Similarity: %s\n", formatSim(row.TextSim))
		fmt.Fprintf(w, "  - Suggested Fix Similarity: %s\n", formatSim(row.FixSim))
		fmt.Fprintln(w, strings.Repeat("-", 60))
	}
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func formatSim(v float64) string {
	if v < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}
