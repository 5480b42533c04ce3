// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the four research stages: plan, search,
// analyze, report. Implements: prd001-pipeline (R1, R3, R4);
//
//	docs/ARCHITECTURE § Orchestration.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/research-pipeline/pkg/types"
)

// Stage names the pipeline stage a failure is attributed to.
type Stage string

const (
	StagePlanning Stage = "planning"
	StageSearch   Stage = "search"
	StageAnalysis Stage = "analysis"
	StageReport   Stage = "report"
)

// StageError tags a stage's failure with the stage name. The orchestrator
// surfaces exactly one StageError per failed run and carries the stage's
// message unchanged: no reinterpretation, no cross-stage aggregation.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Planner produces the informational research plan for a mode.
type Planner interface {
	Plan(ctx context.Context, mode types.Mode) ([]string, error)
}

// Searcher gathers the search records a request needs: one list for
// overview, two labeled lists for compare.
type Searcher interface {
	Search(ctx context.Context, req types.Request) (types.SearchData, error)
}

// Analyzer turns search records into a validated analysis object.
type Analyzer interface {
	Analyze(ctx context.Context, req types.AnalysisRequest) (types.Analysis, error)
}

// Reporter renders a validated analysis object and returns the written
// locations.
type Reporter interface {
	Render(ctx context.Context, req types.Request, analysis types.Analysis) (types.ReportLocations, error)
}

// Orchestrator runs the stages strictly in sequence. A stage starts only
// after the previous one succeeded; the first failure stops the run.
type Orchestrator struct {
	planner  Planner
	searcher Searcher
	analyzer Analyzer
	reporter Reporter
}

// New assembles an orchestrator from its four stage collaborators.
func New(planner Planner, searcher Searcher, analyzer Analyzer, reporter Reporter) *Orchestrator {
	return &Orchestrator{
		planner:  planner,
		searcher: searcher,
		analyzer: analyzer,
		reporter: reporter,
	}
}

// Run executes plan, search, analyze, and report for one request. On success
// it aggregates the plan steps, analysis object, and report locations. On
// failure it returns a *StageError naming the failed stage; the partial
// outputs of earlier stages are discarded, never returned.
func (o *Orchestrator) Run(ctx context.Context, req types.Request, w io.Writer) (types.PipelineResult, error) {
	if !req.Mode.Valid() {
		return types.PipelineResult{}, fmt.Errorf("invalid mode %q: use %q or %q", req.Mode, types.ModeOverview, types.ModeCompare)
	}

	fmt.Fprintf(w, "planning %s research\n", req.Mode)
	steps, err := o.planner.Plan(ctx, req.Mode)
	if err != nil {
		return types.PipelineResult{}, &StageError{Stage: StagePlanning, Err: err}
	}

	fmt.Fprintf(w, "searching\n")
	data, err := o.searcher.Search(ctx, req)
	if err != nil {
		return types.PipelineResult{}, &StageError{Stage: StageSearch, Err: err}
	}

	fmt.Fprintf(w, "analyzing\n")
	analysis, err := o.analyzer.Analyze(ctx, analysisRequest(req, data))
	if err != nil {
		return types.PipelineResult{}, &StageError{Stage: StageAnalysis, Err: err}
	}

	fmt.Fprintf(w, "rendering report\n")
	report, err := o.reporter.Render(ctx, req, analysis)
	if err != nil {
		return types.PipelineResult{}, &StageError{Stage: StageReport, Err: err}
	}

	return types.PipelineResult{
		Request:   req,
		PlanSteps: steps,
		Analysis:  analysis,
		Report:    report,
	}, nil
}

// analysisRequest binds the original request parameters to the search stage
// output for the analysis stage.
func analysisRequest(req types.Request, data types.SearchData) types.AnalysisRequest {
	return types.AnalysisRequest{
		Mode:     req.Mode,
		Depth:    req.Depth,
		Topic:    req.Topic,
		ItemA:    req.ItemA,
		ItemB:    req.ItemB,
		Records:  data.Results,
		RecordsA: data.ItemA,
		RecordsB: data.ItemB,
	}
}
