// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import "testing"

func TestDedupeAdjacent(t *testing.T) {
	tests := []struct {
		name  string
		in    []int
		want  []int
	}{
		{"empty", nil, nil},
		{"single", []int{3}, []int{3}},
		{"spread out", []int{0, 5, 9}, []int{0, 5, 9}},
		{"adjacent pair keeps first", []int{4, 5}, []int{4}},
		{"run of three keeps first", []int{4, 5, 6}, []int{4}},
		{"run then gap", []int{4, 5, 8}, []int{4, 8}},
		{"candidate at zero", []int{0, 1, 3}, []int{0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]headingCandidate, len(tt.in))
			for i, idx := range tt.in {
				in[i] = headingCandidate{line: idx, text: "H"}
			}
			got := dedupeAdjacent(in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d headings, want %d", len(got), len(tt.want))
			}
			for i, idx := range tt.want {
				if got[i].line != idx {
					t.Errorf("kept[%d].line = %d, want %d", i, got[i].line, idx)
				}
			}
		})
	}
}

func TestDedupeAdjacentDoesNotMutateInput(t *testing.T) {
	in := []headingCandidate{{line: 2, text: "A"}, {line: 3, text: "B"}}
	dedupeAdjacent(in)
	if in[1].line != 3 || in[1].text != "B" {
		t.Errorf("input slice mutated: %+v", in)
	}
}
