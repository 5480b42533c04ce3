// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze turns web search records into a validated, source-grounded
// analysis object by prompting a Generative AI API for structured JSON.
// Implements: prd003-analysis (R1-R4);
//
//	docs/ARCHITECTURE § Analysis.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/research-pipeline/pkg/types"
)

// defaultMaxRetries is the correction budget when the config leaves it
// unset: one original attempt plus one correction attempt.
const defaultMaxRetries = 1

// Generator abstracts the text-generation API so tests can supply a stub.
// Implementations are synchronous and stateless after construction, so one
// instance is safe to share across concurrent pipeline runs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Agent produces analysis objects from search records. The generator is the
// only external collaborator; everything else is pure computation.
type Agent struct {
	generator  Generator
	maxRetries int
}

// NewAgent builds an analysis agent. A non-positive MaxRetries falls back to
// the default of 1.
func NewAgent(generator Generator, cfg types.AnalysisConfig) *Agent {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Agent{generator: generator, maxRetries: maxRetries}
}

// Analyze runs the mode-appropriate analysis and returns the validated
// object. Sources are always derived from the input records, never taken
// from generator output, so the generator cannot fabricate citations.
func (a *Agent) Analyze(ctx context.Context, req types.AnalysisRequest) (types.Analysis, error) {
	switch req.Mode {
	case types.ModeOverview:
		return a.analyzeOverview(ctx, req)
	case types.ModeCompare:
		return a.analyzeCompare(ctx, req)
	}
	return types.Analysis{}, fmt.Errorf("invalid mode %q: use %q or %q", req.Mode, types.ModeOverview, types.ModeCompare)
}

func (a *Agent) analyzeOverview(ctx context.Context, req types.AnalysisRequest) (types.Analysis, error) {
	if len(req.Records) == 0 {
		return types.Analysis{}, fmt.Errorf("no search records provided for overview analysis")
	}

	topic := req.Topic
	if topic == "" {
		topic = inferTopic(req.Records)
	}

	prompt, err := BuildOverviewPrompt(topic, req.Depth, req.Records)
	if err != nil {
		return types.Analysis{}, err
	}

	obj, err := a.generateValidated(ctx, prompt, types.ModeOverview)
	if err != nil {
		return types.Analysis{}, err
	}

	var overview types.OverviewAnalysis
	if err := decode(obj, &overview); err != nil {
		return types.Analysis{}, err
	}
	overview.Sources = types.SourcesFromRecords(req.Records)

	return types.Analysis{
		SchemaVersion: types.AnalysisSchemaVersion,
		Mode:          types.ModeOverview,
		Overview:      &overview,
	}, nil
}

func (a *Agent) analyzeCompare(ctx context.Context, req types.AnalysisRequest) (types.Analysis, error) {
	if len(req.RecordsA) == 0 || len(req.RecordsB) == 0 {
		return types.Analysis{}, fmt.Errorf("incomplete search records for comparison analysis")
	}

	itemA := req.ItemA
	if itemA == "" {
		itemA = inferTopic(req.RecordsA)
	}
	itemB := req.ItemB
	if itemB == "" {
		itemB = inferTopic(req.RecordsB)
	}

	prompt, err := BuildComparePrompt(itemA, itemB, req.Depth, req.RecordsA, req.RecordsB)
	if err != nil {
		return types.Analysis{}, err
	}

	obj, err := a.generateValidated(ctx, prompt, types.ModeCompare)
	if err != nil {
		return types.Analysis{}, err
	}

	var compare types.CompareAnalysis
	if err := decode(obj, &compare); err != nil {
		return types.Analysis{}, err
	}
	// Citations come from both record lists in order: A first, then B.
	compare.Sources = append(
		types.SourcesFromRecords(req.RecordsA),
		types.SourcesFromRecords(req.RecordsB)...,
	)

	return types.Analysis{
		SchemaVersion: types.AnalysisSchemaVersion,
		Mode:          types.ModeCompare,
		Compare:       &compare,
	}, nil
}

// attempt carries one loop iteration's failure state into the next
// iteration. Threading it as a value keeps every attempt independently
// testable; there is no closure-captured last-error state.
type attempt struct {
	raw string
	err error
}

// generateValidated is the retry-correction loop. Attempt 0 sends prompt;
// each later attempt sends a correction prompt embedding the previous raw
// output and the contract error verbatim. Contract violations (malformed
// response, schema violation) consume the retry budget; generator transport
// errors escalate immediately and are never retried. Exhausting the budget
// returns the last contract error, never a default object.
func (a *Agent) generateValidated(ctx context.Context, prompt string, mode types.Mode) (map[string]any, error) {
	var prev attempt
	current := prompt

	for n := 0; n <= a.maxRetries; n++ {
		if n > 0 {
			correction, err := buildCorrectionPrompt(prev)
			if err != nil {
				return nil, err
			}
			current = correction
		}

		raw, err := a.generator.Generate(ctx, current)
		if err != nil {
			return nil, &UpstreamError{Err: err}
		}

		parsed, err := Parse(raw)
		if err == nil {
			if err = Validate(parsed, mode); err == nil {
				return parsed, nil
			}
		}
		prev = attempt{raw: raw, err: err}
	}

	return nil, prev.err
}

// decode binds a validated generic object to its typed analysis struct.
// Validation is shallow, so binding can still fail on mixed-type list
// elements; that counts as a schema violation of the overall object.
func decode(obj map[string]any, out any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("re-encoding analysis object: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &SchemaViolationError{Field: "analysis", Reason: err.Error()}
	}
	return nil
}

// inferTopic derives a topic name from the first record's title when the
// caller did not provide one.
func inferTopic(records []types.SearchRecord) string {
	if len(records) == 0 {
		return "Unknown Topic"
	}

	title := records[0].Title
	title = strings.ReplaceAll(title, "Introduction to", "")
	title = strings.ReplaceAll(title, "What is", "")
	title = strings.ReplaceAll(title, "?", "")
	if idx := strings.IndexByte(title, ':'); idx >= 0 {
		title = title[:idx]
	}
	title = strings.TrimSpace(title)

	if title == "" {
		return "Unknown Topic"
	}
	return title
}
