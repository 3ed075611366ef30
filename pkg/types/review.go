// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchMatrix maps each playbook clause name to per-clause match scores:
// document clause index → score on the 0-10 scale.
type MatchMatrix map[string]map[int]float64

// Mapping is the resolved assignment of playbook clause names to document
// clause indices. A nil entry means no document clause matched.
type Mapping map[string]*int

// Redline is one flagged clause with its suggested replacement. Field names
// are fixed by the evaluation tooling.
type Redline struct {
	// TextSnippet is the original clause content that was flagged.
	TextSnippet string `json:"text_snippet" yaml:"text_snippet"`

	// PlaybookClauseReference names the playbook clause type that flagged it.
	PlaybookClauseReference string `json:"playbook_clause_reference" yaml:"playbook_clause_reference"`

	// SuggestedFix is the replacement clause, numbering harmonized with
	// the original.
	SuggestedFix string `json:"suggested_fix" yaml:"suggested_fix"`
}

// ClauseEvaluation is the per-clause comparison between an expected and an
// actual redline run.
type ClauseEvaluation struct {
	// Clause is the document clause name.
	Clause string `json:"clause" yaml:"clause"`

	// PlaybookExpected and PlaybookActual name the playbook reference each
	// run attached to the clause ("None" when unflagged).
	PlaybookExpected string `json:"playbook_expected" yaml:"playbook_expected"`
	PlaybookActual   string `json:"playbook_actual" yaml:"playbook_actual"`

	// FlaggedExpected and FlaggedActual report whether each run flagged
	// the clause.
	FlaggedExpected bool `json:"flagged_expected" yaml:"flagged_expected"`
	FlaggedActual   bool `json:"flagged_actual" yaml:"flagged_actual"`

	// TextSim and FixSim are snippet and fix similarities in [0,1].
	// Negative when not applicable (neither run flagged the clause).
	TextSim float64 `json:"text_sim" yaml:"text_sim"`
	FixSim  float64 `json:"fix_sim" yaml:"fix_sim"`
}

// EvaluationSummary aggregates redline evaluation metrics over a document.
type EvaluationSummary struct {
	TruePositives  int     `json:"true_positives" yaml:"true_positives"`
	FalsePositives int     `json:"false_positives" yaml:"false_positives"`
	FalseNegatives int     `json:"false_negatives" yaml:"false_negatives"`
	Precision      float64 `json:"precision" yaml:"precision"`
	Recall         float64 `json:"recall" yaml:"recall"`
	F1             float64 `json:"f1" yaml:"f1"`

	Rows []ClauseEvaluation `json:"rows" yaml:"rows"`
}
