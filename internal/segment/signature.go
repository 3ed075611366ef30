// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"regexp"
	"strings"
)

// signatureStartPatterns match lines that open a closing signature block:
// execution boilerplate and signature field labels followed by nothing but
// whitespace or underscores. Both the half-width and full-width colon
// appear in exported contracts.
var signatureStartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^IN\s+WITNESS\s+WHEREOF`),
	regexp.MustCompile(`(?i)^SIGNED\s+this`),
	regexp.MustCompile(`(?i)^Executed`),
	regexp.MustCompile(`(?i)^Signed for and on behalf`),
	regexp.MustCompile(`(?i)^The parties (hereto|to this agreement)`),
	regexp.MustCompile(`(?i)^Discloser[:：]\s*[_\s]*$`),
	regexp.MustCompile(`(?i)^Recipient[:：]\s*[_\s]*$`),
	regexp.MustCompile(`(?i)^Name[:：]\s*[_\s]*$`),
	regexp.MustCompile(`(?i)^Title[:：]\s*[_\s]*$`),
	regexp.MustCompile(`(?i)^Date[:：]\s*[_\s]*$`),
}

// underscoreRunRE matches a signature line of 5 or more underscores.
var underscoreRunRE = regexp.MustCompile(`^_{5,}$`)

// isSignatureLine reports whether a line starts the closing signature block.
// A blank line also counts: the final clause's content never runs past the
// first gap after its heading.
func isSignatureLine(line string) bool {
	stripped := strings.TrimSpace(line)
	for _, pat := range signatureStartPatterns {
		if pat.MatchString(stripped) {
			return true
		}
	}
	return underscoreRunRE.MatchString(stripped) || stripped == ""
}

// findSignatureBlockStart scans forward from start and returns the index of
// the first signature line, or -1 when no trigger appears before the
// document ends. Used only to bound the final clause.
func findSignatureBlockStart(lines []string, start int) int {
	for i := start; i < len(lines); i++ {
		if isSignatureLine(lines[i]) {
			return i
		}
	}
	return -1
}
