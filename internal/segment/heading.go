// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"regexp"
	"strings"
	"unicode"
)

// canonicalClauseNames is the curated list of NDA clause-type phrases used as
// a weak signal for flexible heading detection. A line mentioning one of
// these as a whole word is a heading candidate even without numbering.
var canonicalClauseNames = []string{
	"definitions", "confidentiality", "confidentiality obligations",
	"permitted and restricted uses", "permitted uses", "restricted uses",
	"term and termination", "term", "termination",
	"return or destruction of materials", "return of materials",
	"disclosures required by law", "required by law",
	"ownership", "ownership; no license", "no license", "indemnification",
	"assignment", "notices", "governing law", "oral agreements",
	"miscellaneous", "severability", "entire agreement", "amendment",
	"waiver", "counterparts", "remedies", "dispute resolution", "arbitration",
}

// canonicalClauseRE matches any canonical clause name as a whole word,
// case-insensitively. Compiled once at init; never mutated.
var canonicalClauseRE = regexp.MustCompile(
	`(?i)\b(` + strings.Join(quoteAll(canonicalClauseNames), "|") + `)\b`,
)

var (
	// numberedHeadingRE matches ordinal-prefixed headings: an arabic
	// numeral, a roman numeral, or a single capital letter, followed by a
	// period and a word or bracket character. E.g. "2. Confidentiality",
	// "IV. Termination", "A. Permitted Uses".
	numberedHeadingRE = regexp.MustCompile(`^(\d+|[IVXLCDM]+|[A-Z])\.\s*[\w(\[]+`)

	// subNumberRE matches sub-level numbering such as "1.2 Scope". Lines
	// like these are sub-clauses, not top-level clause headings.
	subNumberRE = regexp.MustCompile(`^\d+\.\d`)

	// colonHeadingRE matches a capitalized phrase ending in a colon,
	// e.g. "Governing Law:".
	colonHeadingRE = regexp.MustCompile(`^[A-Z][A-Za-z\s\-/;]+:$`)
)

// quoteAll regexp-escapes each name for alternation.
func quoteAll(names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return quoted
}

// isHeading reports whether a trimmed line introduces a clause. It is the
// OR of the numbered and flexible predicates; both are pure and no line is
// reclassified based on its neighbors.
func isHeading(line string) bool {
	return isNumberedHeading(line) || isFlexibleHeading(line)
}

// isNumberedHeading matches top-level ordinal-prefixed headings and rejects
// sub-level numbering.
func isNumberedHeading(line string) bool {
	return numberedHeadingRE.MatchString(line) && !subNumberRE.MatchString(line)
}

// isFlexibleHeading accepts short ALL-CAPS lines, capitalized
// colon-terminated phrases, and short lines mentioning a canonical clause name.
func isFlexibleHeading(line string) bool {
	if isAllUpper(line) && len(line) > 2 && len(line) < 80 && len(strings.Fields(line)) < 10 {
		return true
	}
	if colonHeadingRE.MatchString(line) {
		return true
	}
	if canonicalClauseRE.MatchString(line) && len(line) < 80 {
		return true
	}
	return false
}

// isAllUpper reports whether s contains at least one cased character and no
// lower-case characters.
func isAllUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// headingCandidate is a classified heading line: its 0-based index in the
// document and its trimmed text.
type headingCandidate struct {
	line int
	text string
}

// classifyHeadings runs the heading classifier over every line and returns
// the candidates in document order.
func classifyHeadings(lines []string) []headingCandidate {
	var candidates []headingCandidate
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isHeading(trimmed) {
			candidates = append(candidates, headingCandidate{line: i, text: trimmed})
		}
	}
	return candidates
}
