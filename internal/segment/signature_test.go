// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import "testing"

func TestIsSignatureLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"IN WITNESS WHEREOF, the parties have executed this Agreement.", true},
		{"in witness whereof", true},
		{"SIGNED this 3rd day of March", true},
		{"Executed as a deed", true},
		{"Signed for and on behalf of Acme Corp", true},
		{"The parties hereto agree as follows", true},
		{"The parties to this agreement have signed below", true},
		{"Discloser: ____", true},
		{"Recipient:", true},
		{"Name: ", true},
		{"Title:\t", true},
		{"Date：____", true},
		{"_____", true},
		{"________________", true},
		{"", true},
		{"   ", true},
		{"____", false},
		{"Name: Jane Smith", false},
		{"The recipient shall keep the information secret.", false},
		{"Executive summary follows", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := isSignatureLine(tt.line); got != tt.want {
				t.Errorf("isSignatureLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFindSignatureBlockStart(t *testing.T) {
	lines := []string{
		"3. Notices",
		"All notices go to the addresses below.",
		"IN WITNESS WHEREOF, the parties sign.",
		"Discloser: ____",
	}
	if got := findSignatureBlockStart(lines, 1); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	// Scanning from past the trigger finds the next one.
	if got := findSignatureBlockStart(lines, 3); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestFindSignatureBlockStartNotFound(t *testing.T) {
	lines := []string{"3. Notices", "All notices go to the registered office."}
	if got := findSignatureBlockStart(lines, 1); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}
