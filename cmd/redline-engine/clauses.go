// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/redline-engine/internal/clausebase"
	"github.com/pdiddy/redline-engine/pkg/types"
)

var clausesCmd = &cobra.Command{
	Use:   "clauses",
	Short: "Manage the clause base (store, retrieve, export)",
	Long: `Clauses manages a local SQLite clause base built from segmented
documents. Use subcommands to index clause files, query them, or export.`,
}

// --- store subcommand ---

var clausesStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest segmented clause files into the clause base",
	Long: `Store reads clause JSON files from clauses/segmented/, ingests them
into a SQLite database with FTS5 indexing, and writes an export file.
Unchanged documents are skipped on subsequent runs.`,
	RunE: runClausesStore,
}

func runClausesStore(cmd *cobra.Command, args []string) error {
	store, err := clausebase.NewStore(clauseBaseConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d document(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var clausesRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the clause base with full-text search and filters",
	Long: `Retrieve searches the clause base using FTS5 full-text search over
clause names and contents, structured filters (document, clause name), or
a combination of both.`,
	RunE: runClausesRetrieve,
}

func runClausesRetrieve(cmd *cobra.Command, args []string) error {
	store, err := clausebase.NewStore(clauseBaseConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := clauseQueryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --document, or --name")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatClauseOutput(results, jsonOutput)
}

func formatClauseOutput(results []clausebase.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-4s  %-35s  %s\n",
		"Rank", "Document", "Ord", "Clause", "Content")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))

	for i, r := range results {
		doc := r.DocumentID
		if len(doc) > 20 {
			doc = doc[:17] + "..."
		}
		name := r.Name
		if len(name) > 35 {
			name = name[:32] + "..."
		}
		content := r.Content
		if len(content) > 50 {
			content = content[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-4d  %-35s  %s\n",
			i+1, doc, r.Ord, name, content)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var clausesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the clause base to YAML or JSON",
	Long: `Export writes the full clause base (or a filtered subset) to
clauses/index/export.yaml or export.json. Supports the same filter flags
as retrieve for partial exports.`,
	RunE: runClausesExport,
}

func runClausesExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := clausebase.NewStore(clauseBaseConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := clauseQueryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to clauses/index/export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to clauses/index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func clauseBaseConfig(cmd *cobra.Command) types.ClauseBaseConfig {
	clausesDir, _ := cmd.Flags().GetString("clauses-dir")
	if clausesDir == "" {
		clausesDir = "clauses"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.ClauseBaseConfig{
		ClausesDir: clausesDir,
		MaxResults: maxResults,
	}
}

func clauseQueryOptsFromFlags(cmd *cobra.Command, args []string) clausebase.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	documentID, _ := cmd.Flags().GetString("document")
	name, _ := cmd.Flags().GetString("name")
	limit, _ := cmd.Flags().GetInt("limit")

	return clausebase.QueryOptions{
		Query:      queryText,
		DocumentID: documentID,
		Name:       name,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	clausesCmd.PersistentFlags().String("clauses-dir", "clauses", "base directory for clauses (contains segmented/, index/)")
	clausesCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Retrieve flags.
	clausesRetrieveCmd.Flags().String("query", "", "full-text search query")
	clausesRetrieveCmd.Flags().String("document", "", "filter by document ID")
	clausesRetrieveCmd.Flags().String("name", "", "filter by clause heading substring")
	clausesRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	clausesRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	clausesExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	clausesExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	clausesExportCmd.Flags().String("document", "", "filter by document ID for partial export")
	clausesExportCmd.Flags().String("name", "", "filter by clause heading for partial export")
	clausesExportCmd.Flags().Int("limit", 0, "maximum clauses to export (0 = all)")

	// Wire subcommands.
	clausesCmd.AddCommand(clausesStoreCmd)
	clausesCmd.AddCommand(clausesRetrieveCmd)
	clausesCmd.AddCommand(clausesExportCmd)

	rootCmd.AddCommand(clausesCmd)
}
