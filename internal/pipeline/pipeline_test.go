package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/pdiddy/research-pipeline/pkg/types"
)

// --- stage stubs ---

type stubPlanner struct {
	steps []string
	err   error
	calls int
}

func (s *stubPlanner) Plan(_ context.Context, _ types.Mode) ([]string, error) {
	s.calls++
	return s.steps, s.err
}

type stubSearcher struct {
	data  types.SearchData
	err   error
	calls int
}

func (s *stubSearcher) Search(_ context.Context, _ types.Request) (types.SearchData, error) {
	s.calls++
	return s.data, s.err
}

type stubAnalyzer struct {
	analysis types.Analysis
	err      error
	calls    int
	lastReq  types.AnalysisRequest
}

func (s *stubAnalyzer) Analyze(_ context.Context, req types.AnalysisRequest) (types.Analysis, error) {
	s.calls++
	s.lastReq = req
	return s.analysis, s.err
}

type stubReporter struct {
	locations types.ReportLocations
	err       error
	calls     int
}

func (s *stubReporter) Render(_ context.Context, _ types.Request, _ types.Analysis) (types.ReportLocations, error) {
	s.calls++
	return s.locations, s.err
}

func happyStages() (*stubPlanner, *stubSearcher, *stubAnalyzer, *stubReporter) {
	planner := &stubPlanner{steps: []string{"step one", "step two"}}
	searcher := &stubSearcher{data: types.SearchData{
		Results: []types.SearchRecord{{Title: "R", URL: "https://r.example", Snippet: "s"}},
	}}
	analyzer := &stubAnalyzer{analysis: types.Analysis{
		SchemaVersion: types.AnalysisSchemaVersion,
		Mode:          types.ModeOverview,
		Overview: &types.OverviewAnalysis{
			Summary: "s",
			Sources: []types.Source{{Title: "R", URL: "https://r.example"}},
		},
	}}
	reporter := &stubReporter{locations: types.ReportLocations{ReportPath: "reports/x.md"}}
	return planner, searcher, analyzer, reporter
}

func overviewReq() types.Request {
	return types.Request{Mode: types.ModeOverview, Topic: "T", Depth: types.DepthShort}
}

func TestRunSuccessAggregatesResult(t *testing.T) {
	planner, searcher, analyzer, reporter := happyStages()
	orch := New(planner, searcher, analyzer, reporter)

	result, err := orch.Run(context.Background(), overviewReq(), io.Discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.PlanSteps) != 2 {
		t.Errorf("plan steps not aggregated: %v", result.PlanSteps)
	}
	if result.Analysis.Overview == nil || result.Analysis.Overview.Summary != "s" {
		t.Errorf("analysis not aggregated: %+v", result.Analysis)
	}
	if result.Report.ReportPath != "reports/x.md" {
		t.Errorf("report location not aggregated: %+v", result.Report)
	}
	if result.Request != overviewReq() {
		t.Errorf("request parameters not echoed: %+v", result.Request)
	}
	for name, calls := range map[string]int{
		"planner": planner.calls, "searcher": searcher.calls,
		"analyzer": analyzer.calls, "reporter": reporter.calls,
	} {
		if calls != 1 {
			t.Errorf("%s called %d times, want 1", name, calls)
		}
	}
}

func TestRunAnalysisFailureSkipsReport(t *testing.T) {
	planner, searcher, analyzer, reporter := happyStages()
	analyzer.err = fmt.Errorf("malformed generator response after retries")
	analyzer.analysis = types.Analysis{}

	orch := New(planner, searcher, analyzer, reporter)
	_, err := orch.Run(context.Background(), overviewReq(), io.Discard)
	if err == nil {
		t.Fatal("Run succeeded despite analysis failure")
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error is %T, want *StageError", err)
	}
	if stageErr.Stage != StageAnalysis {
		t.Errorf("failure tagged %q, want %q", stageErr.Stage, StageAnalysis)
	}
	if !errors.Is(err, analyzer.err) {
		t.Error("underlying stage message was reinterpreted")
	}
	if reporter.calls != 0 {
		t.Errorf("report stage invoked %d times after analysis failure", reporter.calls)
	}
}

func TestRunShortCircuitsPerStage(t *testing.T) {
	tests := []struct {
		name      string
		breakOne  func(p *stubPlanner, s *stubSearcher, a *stubAnalyzer, r *stubReporter)
		wantStage Stage
		wantCalls func(p *stubPlanner, s *stubSearcher, a *stubAnalyzer, r *stubReporter) []int
	}{
		{
			name:      "planning fails",
			breakOne:  func(p *stubPlanner, _ *stubSearcher, _ *stubAnalyzer, _ *stubReporter) { p.err = fmt.Errorf("boom") },
			wantStage: StagePlanning,
			wantCalls: func(p *stubPlanner, s *stubSearcher, a *stubAnalyzer, r *stubReporter) []int {
				return []int{s.calls, a.calls, r.calls}
			},
		},
		{
			name:      "search fails",
			breakOne:  func(_ *stubPlanner, s *stubSearcher, _ *stubAnalyzer, _ *stubReporter) { s.err = fmt.Errorf("boom") },
			wantStage: StageSearch,
			wantCalls: func(p *stubPlanner, s *stubSearcher, a *stubAnalyzer, r *stubReporter) []int {
				return []int{a.calls, r.calls}
			},
		},
		{
			name:      "report fails",
			breakOne:  func(_ *stubPlanner, _ *stubSearcher, _ *stubAnalyzer, r *stubReporter) { r.err = fmt.Errorf("boom") },
			wantStage: StageReport,
			wantCalls: func(p *stubPlanner, s *stubSearcher, a *stubAnalyzer, r *stubReporter) []int {
				return nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner, searcher, analyzer, reporter := happyStages()
			tt.breakOne(planner, searcher, analyzer, reporter)

			orch := New(planner, searcher, analyzer, reporter)
			_, err := orch.Run(context.Background(), overviewReq(), io.Discard)

			var stageErr *StageError
			if !errors.As(err, &stageErr) {
				t.Fatalf("error is %T, want *StageError", err)
			}
			if stageErr.Stage != tt.wantStage {
				t.Errorf("failure tagged %q, want %q", stageErr.Stage, tt.wantStage)
			}
			for i, calls := range tt.wantCalls(planner, searcher, analyzer, reporter) {
				if calls != 0 {
					t.Errorf("later stage %d invoked %d times after failure", i, calls)
				}
			}
		})
	}
}

func TestRunInvalidMode(t *testing.T) {
	planner, searcher, analyzer, reporter := happyStages()
	orch := New(planner, searcher, analyzer, reporter)

	_, err := orch.Run(context.Background(), types.Request{Mode: "digest"}, io.Discard)
	if err == nil {
		t.Fatal("invalid mode accepted")
	}
	if planner.calls != 0 {
		t.Error("planner invoked for invalid mode")
	}
}

func TestRunPassesSearchDataToAnalyzer(t *testing.T) {
	planner, searcher, analyzer, reporter := happyStages()
	searcher.data = types.SearchData{
		ItemA: []types.SearchRecord{{Title: "A", URL: "https://a.example"}},
		ItemB: []types.SearchRecord{{Title: "B", URL: "https://b.example"}},
	}
	analyzer.analysis = types.Analysis{
		Mode:    types.ModeCompare,
		Compare: &types.CompareAnalysis{},
	}

	orch := New(planner, searcher, analyzer, reporter)
	req := types.Request{Mode: types.ModeCompare, ItemA: "A", ItemB: "B", Depth: types.DepthDetailed}
	if _, err := orch.Run(context.Background(), req, io.Discard); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := analyzer.lastReq
	if got.Mode != types.ModeCompare || got.Depth != types.DepthDetailed {
		t.Errorf("request parameters not forwarded: %+v", got)
	}
	if len(got.RecordsA) != 1 || got.RecordsA[0].Title != "A" {
		t.Errorf("item A records not forwarded: %+v", got.RecordsA)
	}
	if len(got.RecordsB) != 1 || got.RecordsB[0].Title != "B" {
		t.Errorf("item B records not forwarded: %+v", got.RecordsB)
	}
}
