// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/redline-engine/internal/playbook"
	"github.com/pdiddy/redline-engine/internal/review"
	"github.com/pdiddy/redline-engine/internal/segment"
	"github.com/pdiddy/redline-engine/pkg/types"
)

var matchCmd = &cobra.Command{
	Use:   "match [clauses.json]",
	Short: "Map playbook clause types to document clauses",
	Long: `Match scores every playbook clause type against every document clause
on a 0-10 scale, resolves a unique assignment (greedy, above a score
threshold), and retries unmapped playbook clauses with a focused second
pass. The score matrix and the final mapping are written to the review
directory as <doc>-matrix.json and <doc>-mapping.json.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
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

	backend := newBackend(cfg)
	docID := docIDFromClausePath(args[0])

	matrix, mapping, err := review.Match(context.Background(), backend, cfg, pb, clauses, os.Stdout)
	if err != nil {
		return err
	}

	if err := review.SaveJSON(review.MatrixPath(cfg.ReviewDir, docID), matrix); err != nil {
		return err
	}
	if err := review.SaveJSON(review.MappingPath(cfg.ReviewDir, docID), mapping); err != nil {
		return err
	}

	mapped := 0
	for _, idx := range mapping {
		if idx != nil {
			mapped++
		}
	}
	fmt.Printf("\nmapped %d of %d playbook clauses\n", mapped, len(pb.Entries))
	fmt.Printf("wrote %s and %s\n",
		review.MatrixPath(cfg.ReviewDir, docID), review.MappingPath(cfg.ReviewDir, docID))
	return nil
}

// --- shared review helpers ---

// reviewConfigFromFlags assembles the review configuration from flags,
// config file, and the secrets directory.
func reviewConfigFromFlags(cmd *cobra.Command) (types.ReviewConfig, error) {
	playbookPath, _ := cmd.Flags().GetString("playbook")
	reviewDir, _ := cmd.Flags().GetString("review-dir")
	model, _ := cmd.Flags().GetString("model")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	threshold, _ := cmd.Flags().GetFloat64("threshold")

	if model == "" {
		model = viper.GetString("review.model")
	}
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}

	apiKey := secretDefault("anthropic-api-key", viper.GetString("review.api_key"))
	if apiKey == "" {
		return types.ReviewConfig{}, fmt.Errorf("no API key: add .secrets/anthropic-api-key or set REDLINE_ENGINE_REVIEW.API_KEY")
	}

	return types.ReviewConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     apiKey,
			MaxRetries: maxRetries,
		},
		PlaybookPath:   playbookPath,
		ReviewDir:      reviewDir,
		MatchThreshold: threshold,
	}, nil
}

func newBackend(cfg types.ReviewConfig) review.Backend {
	return &review.ClaudeBackend{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		MaxRetries: cfg.MaxRetries,
	}
}

// docIDFromClausePath derives a document ID from a clause JSON filename,
// stripping the -clauses suffix the segmentation stage appends.
func docIDFromClausePath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSuffix(base, "-clauses")
}

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().String("playbook", "playbook.json", "playbook file (JSON or YAML)")
	cmd.Flags().String("review-dir", "review", "directory for review artifacts")
	cmd.Flags().String("model", "", "AI model identifier")
	cmd.Flags().Int("max-retries", 3, "retry attempts for failed API calls")
}

func init() {
	addReviewFlags(matchCmd)
	matchCmd.Flags().Float64("threshold", review.DefaultMatchThreshold, "minimum first-pass match score")

	rootCmd.AddCommand(matchCmd)
}
