// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Clause is a named contract section: the heading text (trailing colon
// stripped) and the body lines between the heading and the next clause
// boundary. Field names are fixed by the downstream review tooling.
type Clause struct {
	// Name is the heading text that introduced the clause.
	Name string `json:"clause_name" yaml:"clause_name"`

	// Content is the clause body, rejoined and trimmed.
	Content string `json:"clause_content" yaml:"clause_content"`
}

// SegmentResult holds the output of segmenting one contract document.
type SegmentResult struct {
	// DocumentID identifies the source document.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Clauses lists the detected clauses in document order.
	Clauses []Clause `json:"clauses" yaml:"clauses"`

	// Warnings records recoverable conditions, such as a document with
	// no detectable clause headings. Never treated as errors.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
