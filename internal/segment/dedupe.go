// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

// dedupeAdjacent collapses contiguous runs of heading candidates into a
// single heading per run, keeping the earliest line. Multi-line heading
// blocks (a heading followed by a decorative line that also matched) must
// not become two separate clauses.
//
// Implemented as a fold over the ordered candidate list: a candidate
// survives only when it is more than one line past the previous candidate,
// kept or not, so a run of three adjacent matches still keeps only its
// first line.
func dedupeAdjacent(candidates []headingCandidate) []headingCandidate {
	var kept []headingCandidate
	prev := -2
	for _, c := range candidates {
		if c.line-prev > 1 {
			kept = append(kept, c)
		}
		prev = c.line
	}
	return kept
}
