// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan generates the research plan echoed into pipeline results.
// Implements: prd001-pipeline (R2.1-R2.3);
//
//	docs/ARCHITECTURE § Planning.
package plan

// planTemplates holds the predefined step lists per planning mode. Plans
// are informational: later stages never consume them, the final result only
// echoes them back to the caller.
var planTemplates = map[string][]string{
	"overview": {
		"Define research scope and objectives",
		"Identify key topics and keywords",
		"Search for relevant sources",
		"Extract and summarize key information",
		"Compile findings into overview report",
	},
	"detailed": {
		"Conduct background research on topic",
		"Define specific research questions",
		"Identify primary and secondary sources",
		"Perform systematic literature review",
		"Analyze data and extract insights",
		"Cross-reference findings across sources",
		"Synthesize information into coherent narrative",
		"Generate comprehensive detailed report",
	},
	"compare": {
		"Identify items/topics to compare",
		"Define comparison criteria and metrics",
		"Research each item independently",
		"Extract comparable data points",
		"Perform side-by-side analysis",
		"Highlight similarities and differences",
		"Generate comparative summary report",
	},
	"deep": {
		"Define research hypothesis or key questions",
		"Conduct extensive literature review",
		"Identify all relevant sources and datasets",
		"Perform in-depth analysis of each source",
		"Extract detailed insights and patterns",
		"Validate findings across multiple sources",
		"Analyze implications and draw conclusions",
		"Generate comprehensive deep-dive report",
	},
}

// Steps returns the ordered plan for a planning mode. Unknown modes fall
// back to the overview plan. The returned slice is a copy, so callers may
// modify it freely.
func Steps(mode string) []string {
	steps, ok := planTemplates[mode]
	if !ok {
		steps = planTemplates["overview"]
	}
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}

// Modes lists the known planning modes.
func Modes() []string {
	return []string{"overview", "detailed", "compare", "deep"}
}
