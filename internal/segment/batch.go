// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/redline-engine/pkg/types"
)

const (
	textDir      = "text"
	segmentedDir = "segmented"
)

// BatchSummary holds counts from a batch segmentation run.
type BatchSummary struct {
	Segmented int
	Skipped   int
	Failed    int
}

// Total returns the number of documents processed.
func (s BatchSummary) Total() int {
	return s.Segmented + s.Skipped + s.Failed
}

// HasFailures reports whether any documents failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// SegmentAll segments every plain-text document in documentsDir/text/ and
// writes per-document clause JSON to clausesDir/segmented/. Unchanged
// documents are skipped; changed ones are re-segmented.
func SegmentAll(cfg types.SegmentationConfig, w io.Writer) (BatchSummary, error) {
	srcDir := filepath.Join(cfg.DocumentsDir, textDir)
	outDir := filepath.Join(cfg.ClausesDir, segmentedDir)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading text directory %s: %w", srcDir, err)
	}

	var summary BatchSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		docID := strings.TrimSuffix(entry.Name(), ".txt")
		srcPath := filepath.Join(srcDir, entry.Name())
		outPath := filepath.Join(outDir, docID+"-clauses.json")

		changed, err := hasChanged(srcPath, outPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}
		if !changed {
			fmt.Fprintf(w, "skipped %s\n", docID)
			summary.Skipped++
			continue
		}

		data, err := os.ReadFile(srcPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		res := Segment(string(data))
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "warning %s: %s\n", docID, warn)
		}

		if err := WriteFile(outPath, res.Clauses); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "segmented %s (%d clauses)\n", docID, len(res.Clauses))
		summary.Segmented++
	}

	return summary, nil
}

// hasChanged reports whether the source text is newer than the clause file.
// Returns true if the output does not exist or the source is more recent.
func hasChanged(srcPath, outPath string) (bool, error) {
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return false, fmt.Errorf("stat text %s: %w", srcPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat output %s: %w", outPath, err)
	}

	return srcInfo.ModTime().After(outInfo.ModTime()), nil
}
