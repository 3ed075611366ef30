// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/redline-engine/internal/evaluate"
	"github.com/pdiddy/redline-engine/internal/review"
	"github.com/pdiddy/redline-engine/internal/segment"
	"github.com/pdiddy/redline-engine/pkg/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Compare a redline run against an expected gold set",
	Long: `Evaluate lines up actual redlines against an expected gold set, clause
by clause. Each redline's snippet is matched back to its document clause
(verbatim containment first, lexical similarity otherwise), then flags are
compared to produce true/false positives, precision, recall, and F1.`,
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	expectedPath, _ := cmd.Flags().GetString("expected")
	actualPath, _ := cmd.Flags().GetString("actual")
	clausesPath, _ := cmd.Flags().GetString("clauses")

	var expected, actual []types.Redline
	if err := review.LoadJSON(expectedPath, &expected); err != nil {
		return err
	}
	if err := review.LoadJSON(actualPath, &actual); err != nil {
		return err
	}
	clauses, err := segment.LoadFile(clausesPath)
	if err != nil {
		return err
	}

	summary := evaluate.Evaluate(expected, actual, clauses, evaluate.Lexical{})

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	evaluate.Report(os.Stdout, summary)

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		if err := review.SaveJSON(outPath, summary); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
	}
	return nil
}

func init() {
	evaluateCmd.Flags().String("expected", "", "expected redlines JSON (gold set)")
	evaluateCmd.Flags().String("actual", "", "actual redlines JSON from the redline stage")
	evaluateCmd.Flags().String("clauses", "", "segmented clause JSON for the document")
	evaluateCmd.Flags().Bool("json", false, "output the summary as JSON")
	evaluateCmd.Flags().String("output", "", "also write the summary JSON to this path")
	evaluateCmd.MarkFlagRequired("expected")
	evaluateCmd.MarkFlagRequired("actual")
	evaluateCmd.MarkFlagRequired("clauses")

	rootCmd.AddCommand(evaluateCmd)
}
