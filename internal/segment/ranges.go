// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

// clauseRange is a half-open line range for one clause: start is the
// heading's own line, end is the next heading's line or, for the final
// clause, the signature block start or the document length.
type clauseRange struct {
	start   int
	end     int
	heading string
}

// buildRanges converts the filtered heading list into contiguous,
// non-overlapping clause ranges. Every range except the last ends where the
// next heading begins; the last ends at the signature block so that
// signature lines are excluded from any clause's content.
func buildRanges(lines []string, headings []headingCandidate) []clauseRange {
	ranges := make([]clauseRange, 0, len(headings))
	for i, h := range headings {
		end := len(lines)
		if i+1 < len(headings) {
			end = headings[i+1].line
		} else if sig := findSignatureBlockStart(lines, h.line+1); sig >= 0 {
			end = sig
		}
		ranges = append(ranges, clauseRange{start: h.line, end: end, heading: h.text})
	}
	return ranges
}
