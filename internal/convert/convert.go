// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns contract source files into plain text for
// segmentation. RTF sources are piped through an external converter;
// plain-text sources pass through with lenient UTF-8 decoding, so malformed
// byte sequences never abort the pipeline.
package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/runes"

	"github.com/pdiddy/redline-engine/pkg/types"
)

const (
	// textDir is the subdirectory under the documents base for plain text.
	textDir = "text"
	// rawDir is the subdirectory under the documents base for source files.
	rawDir = "raw"
)

// rtfMagic is the signature that marks an RTF file. It appears within the
// first bytes of the header, not necessarily at offset zero.
var rtfMagic = []byte(`{\rtf`)

const rtfHeaderLen = 64

// Converter transforms an RTF file into plain text. The production
// implementation shells out to a container image; tests supply fakes.
type Converter interface {
	// Convert reads an RTF file at path and returns its plain text.
	Convert(path string) (string, error)
}

// IsRTF reports whether the file at path carries the RTF signature in its
// first 64 bytes.
func IsRTF(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, rtfHeaderLen)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading header of %s: %w", path, err)
	}
	return bytes.Contains(header[:n], rtfMagic), nil
}

// ReadText reads a plain-text file with lenient decoding: ill-formed UTF-8
// byte sequences are replaced with U+FFFD rather than reported as errors.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return runes.ReplaceIllFormed().String(string(data)), nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any documents failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertDocument converts a single source file to plain text, writing the
// result to documentsDir/text/. RTF sources go through the converter; plain
// sources are re-read leniently and copied. If the text output already
// exists, conversion is skipped.
func ConvertDocument(c Converter, doc types.Document, documentsDir string, w io.Writer) types.ConversionStatus {
	outDir := filepath.Join(documentsDir, textDir)
	txtPath := filepath.Join(outDir, doc.ID+".txt")

	if _, err := os.Stat(txtPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", doc.ID)
		return types.ConversionNone
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}

	rtf, err := IsRTF(doc.SourcePath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}

	var text string
	if rtf {
		text, err = c.Convert(doc.SourcePath)
	} else {
		text, err = ReadText(doc.SourcePath)
	}
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}

	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", doc.ID)
	return types.ConversionDone
}

// ConvertBatch processes a list of documents through the converter,
// printing per-file status to w and returning a summary.
func ConvertBatch(c Converter, docs []types.Document, documentsDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, d := range docs {
		switch ConvertDocument(c, d, documentsDir, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertPaths builds Document records from raw source paths and delegates
// to ConvertBatch. Each path becomes a minimal Document with ID derived
// from the filename.
func ConvertPaths(c Converter, paths []string, documentsDir string, w io.Writer) BatchResult {
	docs := make([]types.Document, len(paths))
	for i, p := range paths {
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		docs[i] = types.Document{
			ID:         base,
			SourcePath: p,
		}
	}
	return ConvertBatch(c, docs, documentsDir, w)
}
