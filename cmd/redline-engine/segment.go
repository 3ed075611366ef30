// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/redline-engine/internal/segment"
	"github.com/pdiddy/redline-engine/pkg/types"
)

var segmentCmd = &cobra.Command{
	Use:   "segment [file]",
	Short: "Segment a contract into clauses",
	Long: `Segment splits a plain-text contract into clauses keyed by their
headings and writes them as a JSON array of {clause_name, clause_content}
records. A document with no recognizable headings produces an empty array
and a warning, not an error.

With --batch, every text file under documents/text/ is segmented into
clauses/segmented/; unchanged documents are skipped.`,
	RunE: runSegment,
}

func runSegment(cmd *cobra.Command, args []string) error {
	batch, _ := cmd.Flags().GetBool("batch")

	if batch {
		documentsDir, _ := cmd.Flags().GetString("documents-dir")
		clausesDir, _ := cmd.Flags().GetString("clauses-dir")

		cfg := types.SegmentationConfig{
			DocumentsDir: documentsDir,
			ClausesDir:   clausesDir,
		}
		summary, err := segment.SegmentAll(cfg, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("\nsegmented: %d, skipped: %d, failed: %d\n",
			summary.Segmented, summary.Skipped, summary.Failed)
		if summary.HasFailures() {
			return fmt.Errorf("%d document(s) failed segmentation", summary.Failed)
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("expected one input file (or use --batch)")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	res := segment.Segment(string(data))
	for _, warn := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warn)
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		return segment.WriteJSON(os.Stdout, res.Clauses)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := segment.WriteFile(outPath, res.Clauses); err != nil {
		return err
	}
	fmt.Printf("segmented %s (%d clauses) -> %s\n",
		strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])), len(res.Clauses), outPath)
	return nil
}

func init() {
	segmentCmd.Flags().Bool("batch", false, "segment every text file in documents-dir/text/")
	segmentCmd.Flags().String("documents-dir", "documents", "base directory for documents (contains text/)")
	segmentCmd.Flags().String("clauses-dir", "clauses", "base directory for clause output (contains segmented/)")
	segmentCmd.Flags().String("output", "", "clause JSON output path (default: stdout)")

	rootCmd.AddCommand(segmentCmd)
}
