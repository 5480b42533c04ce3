// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Request is the pipeline input as provided by the caller. Topic applies to
// overview mode; ItemA/ItemB apply to compare mode.
type Request struct {
	Mode  Mode   `json:"mode" yaml:"mode"`
	Topic string `json:"topic,omitempty" yaml:"topic,omitempty"`
	ItemA string `json:"item_a,omitempty" yaml:"item_a,omitempty"`
	ItemB string `json:"item_b,omitempty" yaml:"item_b,omitempty"`
	Depth Depth  `json:"depth" yaml:"depth"`
}

// ReportLocations holds the paths written by the report stage.
type ReportLocations struct {
	// ReportPath is the rendered markdown report.
	ReportPath string `json:"report_path" yaml:"report_path"`

	// DataPath is the optional YAML sidecar carrying the analysis object.
	// Empty when sidecar output is disabled.
	DataPath string `json:"data_path,omitempty" yaml:"data_path,omitempty"`
}

// PipelineResult is the aggregate of a fully successful run. Failed runs
// produce no PipelineResult: the orchestrator returns a stage-tagged error
// instead, and callers must treat the run as fully failed.
type PipelineResult struct {
	Request   Request         `json:"request" yaml:"request"`
	PlanSteps []string        `json:"plan_steps" yaml:"plan_steps"`
	Analysis  Analysis        `json:"analysis" yaml:"analysis"`
	Report    ReportLocations `json:"report" yaml:"report"`
}
