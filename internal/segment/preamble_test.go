// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import "testing"

func TestDropPreambleHeading(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		headings []headingCandidate
		wantLen  int
	}{
		{
			name:     "nda title dropped",
			lines:    []string{"NON-DISCLOSURE AGREEMENT", "", "1. Definitions"},
			headings: []headingCandidate{{0, "NON-DISCLOSURE AGREEMENT"}, {2, "1. Definitions"}},
			wantLen:  1,
		},
		{
			name:     "nondisclosure without hyphen dropped",
			lines:    []string{"NONDISCLOSURE AGREEMENT", "1. Definitions"},
			headings: []headingCandidate{{0, "NONDISCLOSURE AGREEMENT"}, {1, "1. Definitions"}},
			wantLen:  1,
		},
		{
			name: "recital phrase dropped",
			lines: []string{
				"MUTUAL AGREEMENT",
				"This Agreement is made by and between the parties.",
				"1. Definitions",
			},
			headings: []headingCandidate{{0, "MUTUAL AGREEMENT"}, {2, "1. Definitions"}},
			wantLen:  1,
		},
		{
			name:     "effective date dropped",
			lines:    []string{"AGREEMENT", "Effective Date: January 1", "1. Definitions"},
			headings: []headingCandidate{{0, "AGREEMENT"}, {2, "1. Definitions"}},
			wantLen:  1,
		},
		{
			name:     "no front matter keeps all",
			lines:    []string{"1. Definitions", "body", "2. Confidentiality"},
			headings: []headingCandidate{{0, "1. Definitions"}, {2, "2. Confidentiality"}},
			wantLen:  2,
		},
		{
			name:     "empty heading list",
			lines:    []string{"NON-DISCLOSURE AGREEMENT"},
			headings: nil,
			wantLen:  0,
		},
		{
			name: "recital after first heading not inspected",
			lines: []string{
				"1. Definitions",
				"This Agreement is made by and between the parties.",
				"2. Confidentiality",
			},
			headings: []headingCandidate{{0, "1. Definitions"}, {2, "2. Confidentiality"}},
			wantLen:  2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dropPreambleHeading(tt.lines, tt.headings)
			if len(got) != tt.wantLen {
				t.Fatalf("got %d headings, want %d", len(got), tt.wantLen)
			}
			// Only the first heading may ever be removed.
			if tt.wantLen > 0 && len(tt.headings) > 0 {
				wantFirst := tt.headings[len(tt.headings)-tt.wantLen]
				if got[0] != wantFirst {
					t.Errorf("first surviving heading = %+v, want %+v", got[0], wantFirst)
				}
			}
		})
	}
}
