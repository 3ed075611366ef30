// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/redline-engine/internal/playbook"
	"github.com/pdiddy/redline-engine/internal/review"
	"github.com/pdiddy/redline-engine/internal/segment"
	"github.com/pdiddy/redline-engine/pkg/types"
)

var redlineCmd = &cobra.Command{
	Use:   "redline [clauses.json]",
	Short: "Redline mapped clauses that fall short of the playbook",
	Long: `Redline reviews each mapped playbook/document clause pair. Clauses that
meet the playbook's acceptable standard are skipped; problematic clauses
get a suggested replacement drawn from the playbook's example language,
reformatted to match the original clause's numbering. Results are written
to the review directory as <doc>-redlines.json.

Requires the mapping produced by the match stage.`,
	Args: cobra.ExactArgs(1),
	RunE: runRedline,
}

func runRedline(cmd *cobra.Command, args []string) error {
	cfg, err := reviewConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	pb, err := playbook.Load(cfg.PlaybookPath)
	if err != nil {
		return err
	}

	clauses, err := segment.LoadFile(args[0])
	if err != nil {
		return err
	}

	docID := docIDFromClausePath(args[0])

	mappingPath, _ := cmd.Flags().GetString("mapping")
	if mappingPath == "" {
		mappingPath = review.MappingPath(cfg.ReviewDir, docID)
	}
	var mapping types.Mapping
	if err := review.LoadJSON(mappingPath, &mapping); err != nil {
		return fmt.Errorf("loading mapping (run match first): %w", err)
	}

	backend := newBackend(cfg)

	redlines, err := review.Redline(context.Background(), backend, cfg, pb, clauses, mapping, os.Stdout)
	if err != nil {
		return err
	}

	outPath := review.RedlinesPath(cfg.ReviewDir, docID)
	if err := review.SaveJSON(outPath, redlines); err != nil {
		return err
	}

	fmt.Printf("\n%d clause(s) redlined, wrote %s\n", len(redlines), outPath)
	return nil
}

func init() {
	addReviewFlags(redlineCmd)
	redlineCmd.Flags().String("mapping", "", "mapping file (default: <review-dir>/<doc>-mapping.json)")

	rootCmd.AddCommand(redlineCmd)
}
