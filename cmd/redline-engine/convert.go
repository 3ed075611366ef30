// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/redline-engine/internal/container"
	"github.com/pdiddy/redline-engine/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert contract source files to plain text",
	Long: `Convert transforms contract source files into plain text for
segmentation. RTF files are piped through the striprtf container image
(docker or podman); plain-text files are copied with lenient UTF-8
decoding. With --batch, every file under documents/raw/ is processed.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	documentsDir, _ := cmd.Flags().GetString("documents-dir")
	batch, _ := cmd.Flags().GetBool("batch")

	paths := args
	if batch {
		rawDir := filepath.Join(documentsDir, "raw")
		entries, err := os.ReadDir(rawDir)
		if err != nil {
			return fmt.Errorf("reading raw directory %s: %w", rawDir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				paths = append(paths, filepath.Join(rawDir, entry.Name()))
			}
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input files: pass file paths or use --batch")
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("source file %s: %w", p, err)
		}
	}

	rt, err := container.DetectRuntime()
	var conv convert.Converter
	if err == nil {
		conv, err = convert.NewStriprtfConverter(rt)
	}
	if err != nil {
		// No runtime or no image: plain-text sources still convert; RTF
		// sources will fail individually with a clear message.
		fmt.Fprintf(os.Stderr, "warning: RTF conversion unavailable: %v\n", err)
		conv = unavailableConverter{err}
	}

	result := convert.ConvertPaths(conv, paths, documentsDir, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// unavailableConverter fails every RTF conversion with the runtime error.
type unavailableConverter struct {
	err error
}

func (u unavailableConverter) Convert(path string) (string, error) {
	return "", u.err
}

func init() {
	convertCmd.Flags().String("documents-dir", "documents", "base directory for documents (contains raw/, text/)")
	convertCmd.Flags().Bool("batch", false, "convert every file in documents-dir/raw/")

	rootCmd.AddCommand(convertCmd)
}
