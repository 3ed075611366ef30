package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that call the AI API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "redline-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// DocumentsDir is the base directory for documents (contains raw/, text/).
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir"`
}

// SegmentationConfig holds settings for the clause segmentation stage.
type SegmentationConfig struct {
	// DocumentsDir is the base directory for documents (contains text/).
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir"`

	// ClausesDir is the base directory for clause output (contains segmented/).
	ClausesDir string `json:"clauses_dir" yaml:"clauses_dir"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ReviewConfig holds settings for the match and redline stages.
type ReviewConfig struct {
	AIConfig `yaml:",inline"`

	// PlaybookPath is the path to the playbook file (JSON or YAML).
	PlaybookPath string `json:"playbook_path" yaml:"playbook_path"`

	// ReviewDir is the base directory for review output (matrices, redlines).
	ReviewDir string `json:"review_dir" yaml:"review_dir"`

	// MatchThreshold is the minimum score for a first-pass assignment (default 6).
	MatchThreshold float64 `json:"match_threshold" yaml:"match_threshold"`
}

// ClauseBaseConfig holds settings for the clause base stage.
type ClauseBaseConfig struct {
	// ClausesDir is the base directory for clauses (contains segmented/, index/).
	ClausesDir string `json:"clauses_dir" yaml:"clauses_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Conversion   ConversionConfig   `json:"conversion" yaml:"conversion"`
	Segmentation SegmentationConfig `json:"segmentation" yaml:"segmentation"`
	Review       ReviewConfig       `json:"review" yaml:"review"`
	ClauseBase   ClauseBaseConfig   `json:"clause_base" yaml:"clause_base"`
}
