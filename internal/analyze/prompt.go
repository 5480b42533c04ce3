// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/pdiddy/research-pipeline/pkg/types"
)

// depthProfile holds the human-readable size targets inlined into a prompt.
// Values are pure configuration keyed by depth (prd003-analysis R1.2).
type depthProfile struct {
	Instruction        string // overall verbosity instruction
	SummaryLength      string // overview summary target
	PointsCount        string // key_points target
	ProsConsCount      string // pros and cons target, each
	ItemSummaryLength  string // compare per-item summary target
	ListCount          string // strengths/weaknesses target, each
	DifferencesCount   string // key_differences target
	RecommendationsCnt string // use_case_recommendations target
}

var depthProfiles = map[types.Depth]depthProfile{
	types.DepthShort: {
		Instruction:        "Provide concise, focused analysis.",
		SummaryLength:      "2-3 concise paragraphs",
		PointsCount:        "3-4 key points",
		ProsConsCount:      "2-3 items each",
		ItemSummaryLength:  "2-3 concise paragraphs per item",
		ListCount:          "2-3 items per list",
		DifferencesCount:   "3-4 key differences",
		RecommendationsCnt: "2-3 recommendations",
	},
	types.DepthDetailed: {
		Instruction:        "Provide comprehensive, long-form analysis with extensive details.",
		SummaryLength:      "3-4 detailed paragraphs",
		PointsCount:        "5-7 key points",
		ProsConsCount:      "3-4 items each",
		ItemSummaryLength:  "3-4 detailed paragraphs per item",
		ListCount:          "4-5 items per list",
		DifferencesCount:   "5-7 key differences",
		RecommendationsCnt: "4-5 recommendations",
	},
}

// profileFor returns the size targets for a depth value. Unknown depths fall
// back to the short profile: depth is advisory sizing, not a validated input.
func profileFor(depth types.Depth) depthProfile {
	if p, ok := depthProfiles[depth]; ok {
		return p
	}
	return depthProfiles[types.DepthShort]
}

// formatRecords renders search records as an indented JSON block for
// source grounding. Every record appears in original order with no
// omission; titles and URLs are carried verbatim (prd003-analysis R1.1).
func formatRecords(records []types.SearchRecord) (string, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering search records: %w", err)
	}
	return string(data), nil
}

// overviewPromptTmpl instructs the generator to produce the single-topic
// analysis object. The schema template is literal and field-by-field; the
// depth-derived count hints are inlined next to each list field.
var overviewPromptTmpl = template.Must(template.New("overview").Parse(`You are an expert AI research analyst. Your task is to analyze search results and produce a highly structured JSON output.

CRITICAL INSTRUCTIONS:
1. Respond ONLY with valid JSON. No markdown, no prose, no explanations.
2. Do NOT include code blocks, comments, or trailing commas.
3. Base your analysis STRICTLY on the provided search results - do not invent information.
4. Extract insights directly from the source material.
5. {{.Profile.Instruction}}

TOPIC: {{.Topic}}

DEPTH: {{.Depth}}

SEARCH RESULTS (Source-Grounded Data):
{{.RecordsJSON}}

OUTPUT SCHEMA (You must follow this EXACT structure):
{
  "summary": "{{.Profile.SummaryLength}} summarizing {{.Topic}} based on the search results",
  "key_points": [
    "Key insight 1 from sources",
    "Key insight 2 from sources",
    "Key insight 3 from sources"
  ],
  "pros": [
    "Advantage 1 backed by sources",
    "Advantage 2 backed by sources"
  ],
  "cons": [
    "Limitation 1 backed by sources",
    "Limitation 2 backed by sources"
  ]
}

SIZE TARGETS:
- key_points: {{.Profile.PointsCount}}
- pros: {{.Profile.ProsConsCount}}
- cons: {{.Profile.ProsConsCount}}

VALIDATION CHECKLIST:
- Output is valid JSON (no trailing commas)
- All fields are present: summary, key_points, pros, cons
- key_points is an array of strings
- pros is an array of strings
- cons is an array of strings
- All content is grounded in the provided search results
- No markdown formatting or code blocks

OUTPUT (JSON only):`))

// comparePromptTmpl instructs the generator to produce the two-item
// comparison object.
var comparePromptTmpl = template.Must(template.New("compare").Parse(`You are an expert AI comparative research analyst. Your task is to compare two items based on search results and produce a highly structured JSON output.

CRITICAL INSTRUCTIONS:
1. Respond ONLY with valid JSON. No markdown, no prose, no explanations.
2. Do NOT include code blocks, comments, or trailing commas.
3. Base your analysis STRICTLY on the provided search results - do not invent information.
4. Provide objective, balanced comparison grounded in sources.
5. {{.Profile.Instruction}}

COMPARISON ITEMS:
- Item A: {{.ItemA}}
- Item B: {{.ItemB}}

DEPTH: {{.Depth}}

SEARCH RESULTS FOR {{.ItemA}}:
{{.RecordsAJSON}}

SEARCH RESULTS FOR {{.ItemB}}:
{{.RecordsBJSON}}

OUTPUT SCHEMA (You must follow this EXACT structure):
{
  "overview": "2-3 paragraphs providing high-level comparison context between {{.ItemA}} and {{.ItemB}}",
  "comparison": {
    "item_a": {
      "summary": "{{.Profile.ItemSummaryLength}} describing {{.ItemA}}",
      "strengths": ["Strength of {{.ItemA}} from sources"],
      "weaknesses": ["Weakness of {{.ItemA}} from sources"]
    },
    "item_b": {
      "summary": "{{.Profile.ItemSummaryLength}} describing {{.ItemB}}",
      "strengths": ["Strength of {{.ItemB}} from sources"],
      "weaknesses": ["Weakness of {{.ItemB}} from sources"]
    }
  },
  "key_differences": [
    "Major difference 1 between {{.ItemA}} and {{.ItemB}}",
    "Major difference 2 between {{.ItemA}} and {{.ItemB}}"
  ],
  "use_case_recommendations": [
    "Use {{.ItemA}} when... (specific scenario)",
    "Use {{.ItemB}} when... (specific scenario)"
  ]
}

SIZE TARGETS:
- strengths and weaknesses: {{.Profile.ListCount}}
- key_differences: {{.Profile.DifferencesCount}}
- use_case_recommendations: {{.Profile.RecommendationsCnt}}

VALIDATION CHECKLIST:
- Output is valid JSON (no trailing commas)
- All fields are present: overview, comparison, key_differences, use_case_recommendations
- comparison.item_a and comparison.item_b each have: summary, strengths, weaknesses
- All arrays contain strings
- All content is grounded in the provided search results
- Comparison is objective and balanced
- No markdown formatting or code blocks

OUTPUT (JSON only):`))

// correctionPromptTmpl re-prompts the generator after a contract violation.
// It embeds the literal error and the previous raw output verbatim so the
// generator corrects a concrete example instead of starting over.
var correctionPromptTmpl = template.Must(template.New("correction").Parse(`The previous response violated the required JSON output contract. Fix it and respond with ONLY valid JSON.

Error: {{.Error}}

Previous response:
{{.Previous}}

Requirements:
1. Valid JSON only (no markdown, no comments)
2. No trailing commas
3. Follow the exact schema provided earlier

OUTPUT (corrected JSON only):`))

// BuildOverviewPrompt produces the full instruction text for a single-topic
// analysis. It is a pure function of its inputs: identical inputs yield
// identical prompt text.
func BuildOverviewPrompt(topic string, depth types.Depth, records []types.SearchRecord) (string, error) {
	recordsJSON, err := formatRecords(records)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = overviewPromptTmpl.Execute(&buf, struct {
		Topic       string
		Depth       types.Depth
		RecordsJSON string
		Profile     depthProfile
	}{
		Topic:       topic,
		Depth:       depth,
		RecordsJSON: recordsJSON,
		Profile:     profileFor(depth),
	})
	if err != nil {
		return "", fmt.Errorf("rendering overview prompt: %w", err)
	}
	return buf.String(), nil
}

// BuildComparePrompt produces the full instruction text for a two-item
// comparison. Pure function, same as BuildOverviewPrompt.
func BuildComparePrompt(itemA, itemB string, depth types.Depth, recordsA, recordsB []types.SearchRecord) (string, error) {
	recordsAJSON, err := formatRecords(recordsA)
	if err != nil {
		return "", err
	}
	recordsBJSON, err := formatRecords(recordsB)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = comparePromptTmpl.Execute(&buf, struct {
		ItemA        string
		ItemB        string
		Depth        types.Depth
		RecordsAJSON string
		RecordsBJSON string
		Profile      depthProfile
	}{
		ItemA:        itemA,
		ItemB:        itemB,
		Depth:        depth,
		RecordsAJSON: recordsAJSON,
		RecordsBJSON: recordsBJSON,
		Profile:      profileFor(depth),
	})
	if err != nil {
		return "", fmt.Errorf("rendering compare prompt: %w", err)
	}
	return buf.String(), nil
}

// buildCorrectionPrompt produces the re-prompt for a failed attempt from the
// previous attempt's raw output and contract error.
func buildCorrectionPrompt(prev attempt) (string, error) {
	var buf bytes.Buffer
	err := correctionPromptTmpl.Execute(&buf, struct {
		Error    string
		Previous string
	}{
		Error:    prev.err.Error(),
		Previous: prev.raw,
	})
	if err != nil {
		return "", fmt.Errorf("rendering correction prompt: %w", err)
	}
	return buf.String(), nil
}
