// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"math"
	"strings"
	"unicode"
)

// Lexical is a token-frequency cosine similarity. It needs no model or
// network and behaves well on near-verbatim legal text, where matching runs
// share most of their vocabulary.
type Lexical struct{}

// Score returns the cosine similarity of the two texts' token-count
// vectors. Empty or token-free inputs score 0.
func (Lexical) Score(a, b string) float64 {
	va := tokenCounts(a)
	vb := tokenCounts(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for tok, ca := range va {
		dot += float64(ca) * float64(vb[tok])
		normA += float64(ca) * float64(ca)
	}
	for _, cb := range vb {
		normB += float64(cb) * float64(cb)
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// tokenCounts lowercases the text and counts alphanumeric word occurrences.
func tokenCounts(s string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		counts[tok]++
	}
	return counts
}
