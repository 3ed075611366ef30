// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the state of rich-text-to-plain-text conversion
// for a contract document.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Document holds metadata and file paths for a contract under review.
type Document struct {
	// ID is a slug derived from the source filename (e.g. "bad_document").
	ID string `json:"id" yaml:"id"`

	// SourcePath is the local filesystem path to the original file,
	// which may be RTF or plain text.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// TextPath is the path to the converted plain-text file.
	TextPath string `json:"text_path" yaml:"text_path"`

	// ConversionStatus tracks whether the source has been converted to plain text.
	ConversionStatus ConversionStatus `json:"conversion_status" yaml:"conversion_status"`
}
