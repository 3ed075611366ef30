// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PlaybookEntry describes one clause type in the review playbook: what the
// clause is for, how to review it, and what acceptable language looks like.
type PlaybookEntry struct {
	// Clause is the playbook clause-type name (e.g. "Confidentiality Obligations").
	Clause string `json:"clause" yaml:"clause"`

	// ClauseDefinition explains the intended purpose of the clause type.
	ClauseDefinition string `json:"clause_definition" yaml:"clause_definition"`

	// ProvisionDefinition explains the legal context of the provision.
	ProvisionDefinition string `json:"provision_definition" yaml:"provision_definition"`

	// ReviewInstruction is the reviewer checklist for this clause type.
	ReviewInstruction string `json:"review_instruction" yaml:"review_instruction"`

	// Ideal is best-practice example language.
	Ideal string `json:"ideal" yaml:"ideal"`

	// Acceptable is minimum-standard example language.
	Acceptable string `json:"acceptable" yaml:"acceptable"`

	// RedFlag lists language that makes a clause problematic.
	RedFlag string `json:"red_flag" yaml:"red_flag"`

	// ExampleIdealClause is the preferred replacement text for a redline.
	ExampleIdealClause string `json:"example_ideal_clause" yaml:"example_ideal_clause"`

	// ExampleFallbackClause is the replacement used when no ideal text exists.
	ExampleFallbackClause string `json:"example_fallback_clause" yaml:"example_fallback_clause"`
}
