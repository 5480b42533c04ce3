// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-pipeline/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the web search stage.
// Per prd002-search R1.2, R3.1-R3.3.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the Tavily search API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the number of records requested per query (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// AnalysisConfig holds settings for the analysis stage.
// Per prd003-analysis R4.1-R4.3.
type AnalysisConfig struct {
	AIConfig `yaml:",inline"`

	// MaxRetries bounds the correction loop for contract violations by the
	// generator: one original attempt plus MaxRetries correction attempts
	// (default 1). Transport errors are never retried.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ReportConfig holds settings for the report stage.
// Per prd004-report R2.1-R2.3.
type ReportConfig struct {
	// ReportsDir is the directory for rendered reports (default "reports").
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`

	// WriteData controls whether the analysis object is written next to the
	// report as a YAML sidecar.
	WriteData bool `json:"write_data" yaml:"write_data"`
}

// ArchiveConfig holds settings for the run archive.
// Per prd005-archive R1.1.
type ArchiveConfig struct {
	// Dir is the base directory for the archive database (default "archive").
	Dir string `json:"dir" yaml:"dir"`

	// Disabled turns off run recording entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Report   ReportConfig   `json:"report" yaml:"report"`
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
}
