// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"regexp"
	"strings"
)

// preamblePatterns are front-matter signatures. When the text from the
// document start through the first heading matches any of them, that
// heading marks the document title or recitals rather than a clause.
var preamblePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)non-?disclosure agreement`),
	regexp.MustCompile(`(?i)this agreement (is|shall|constitutes|made|entered into)`),
	regexp.MustCompile(`(?i)effective date`),
	regexp.MustCompile(`(?i)by and between`),
}

// dropPreambleHeading removes the first heading when the span from the
// document start up to and including its line looks like front-matter.
// Applied at most once and only to the first heading.
func dropPreambleHeading(lines []string, headings []headingCandidate) []headingCandidate {
	if len(headings) == 0 {
		return headings
	}
	block := strings.Join(lines[:headings[0].line+1], "\n")
	for _, pat := range preamblePatterns {
		if pat.MatchString(block) {
			return headings[1:]
		}
	}
	return headings
}
