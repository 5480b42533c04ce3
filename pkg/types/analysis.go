// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Mode selects the analysis shape: a single-topic overview or a two-item
// comparison. Exactly two output schemas exist, one per mode.
type Mode string

const (
	ModeOverview Mode = "overview"
	ModeCompare  Mode = "compare"
)

// Valid reports whether m is a known analysis mode.
func (m Mode) Valid() bool {
	return m == ModeOverview || m == ModeCompare
}

// Depth controls the size targets inlined into the analysis prompt.
// The value is advisory: unknown depths fall back to DepthShort rather
// than failing the run.
type Depth string

const (
	DepthShort    Depth = "short"
	DepthDetailed Depth = "detailed"
)

// AnalysisRequest carries everything the analysis stage needs for one run.
// Overview mode uses Topic and Records; compare mode uses ItemA/ItemB and
// RecordsA/RecordsB. Constructed per pipeline run, never persisted.
type AnalysisRequest struct {
	Mode  Mode
	Depth Depth

	// Topic is the subject name for overview mode. When empty it is
	// inferred from the first record's title.
	Topic string

	// ItemA and ItemB name the comparison subjects for compare mode.
	// When empty they are inferred from the respective record lists.
	ItemA string
	ItemB string

	// Records holds the search records for overview mode.
	Records []SearchRecord

	// RecordsA and RecordsB hold the labeled record lists for compare mode.
	RecordsA []SearchRecord
	RecordsB []SearchRecord
}

// OverviewAnalysis is the validated single-topic analysis object.
// All list fields exist after validation, possibly empty.
type OverviewAnalysis struct {
	Summary   string   `json:"summary" yaml:"summary"`
	KeyPoints []string `json:"key_points" yaml:"key_points"`
	Pros      []string `json:"pros" yaml:"pros"`
	Cons      []string `json:"cons" yaml:"cons"`
	Sources   []Source `json:"sources" yaml:"sources"`
}

// ItemAnalysis is the per-item half of a comparison.
type ItemAnalysis struct {
	Summary    string   `json:"summary" yaml:"summary"`
	Strengths  []string `json:"strengths" yaml:"strengths"`
	Weaknesses []string `json:"weaknesses" yaml:"weaknesses"`
}

// Comparison pairs the two item analyses of a compare run.
type Comparison struct {
	ItemA ItemAnalysis `json:"item_a" yaml:"item_a"`
	ItemB ItemAnalysis `json:"item_b" yaml:"item_b"`
}

// CompareAnalysis is the validated two-item comparison object.
type CompareAnalysis struct {
	Overview               string     `json:"overview" yaml:"overview"`
	Comparison             Comparison `json:"comparison" yaml:"comparison"`
	KeyDifferences         []string   `json:"key_differences" yaml:"key_differences"`
	UseCaseRecommendations []string   `json:"use_case_recommendations" yaml:"use_case_recommendations"`
	Sources                []Source   `json:"sources" yaml:"sources"`
}

// AnalysisSchemaVersion stamps Analysis objects so downstream consumers can
// detect schema drift instead of probing for key presence.
const AnalysisSchemaVersion = 1

// Analysis is the tagged union of the two analysis shapes. Exactly one of
// Overview and Compare is non-nil, matching Mode. An Analysis value exists
// only after schema validation; no partially validated object ever reaches
// the report stage.
type Analysis struct {
	SchemaVersion int               `json:"schema_version" yaml:"schema_version"`
	Mode          Mode              `json:"mode" yaml:"mode"`
	Overview      *OverviewAnalysis `json:"overview,omitempty" yaml:"overview,omitempty"`
	Compare       *CompareAnalysis  `json:"compare,omitempty" yaml:"compare,omitempty"`
}

// Sources returns the citation list of whichever branch is populated.
func (a Analysis) Sources() []Source {
	switch {
	case a.Overview != nil:
		return a.Overview.Sources
	case a.Compare != nil:
		return a.Compare.Sources
	}
	return nil
}
