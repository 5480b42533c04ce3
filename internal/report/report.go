// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders validated analysis objects into markdown reports.
// Implements: prd004-report (R1-R3);
//
//	docs/ARCHITECTURE § Reporting.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-pipeline/pkg/types"
)

// timeNow stamps reports and filenames. Package-level var for test substitution.
var timeNow = time.Now

// defaultReportsDir receives reports when the config leaves the directory unset.
const defaultReportsDir = "reports"

// Renderer writes markdown reports and optional YAML data sidecars.
type Renderer struct {
	cfg types.ReportConfig
}

// NewRenderer builds a report renderer.
func NewRenderer(cfg types.ReportConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// Render writes the report for a completed analysis and returns the written
// locations. The filename carries a timestamp and the mode, e.g.
// reports/20260829_153000_overview.md. When WriteData is set the analysis
// object is also written as a YAML sidecar next to the report (R3.1).
func (r *Renderer) Render(_ context.Context, req types.Request, analysis types.Analysis) (types.ReportLocations, error) {
	var markdown string
	switch {
	case analysis.Mode == types.ModeOverview && analysis.Overview != nil:
		markdown = renderOverview(req.Topic, analysis.Overview)
	case analysis.Mode == types.ModeCompare && analysis.Compare != nil:
		markdown = renderCompare(req.ItemA, req.ItemB, analysis.Compare)
	default:
		return types.ReportLocations{}, fmt.Errorf("analysis object does not match mode %q", analysis.Mode)
	}

	dir := r.cfg.ReportsDir
	if dir == "" {
		dir = defaultReportsDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return types.ReportLocations{}, fmt.Errorf("creating reports directory: %w", err)
	}

	stamp := timeNow().Format("20060102_150405")
	reportPath := filepath.Join(dir, fmt.Sprintf("%s_%s.md", stamp, analysis.Mode))
	if err := os.WriteFile(reportPath, []byte(markdown), 0o644); err != nil {
		return types.ReportLocations{}, fmt.Errorf("writing report: %w", err)
	}

	locations := types.ReportLocations{ReportPath: reportPath}

	if r.cfg.WriteData {
		dataPath := filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", stamp, analysis.Mode))
		data, err := yaml.Marshal(analysis)
		if err != nil {
			return types.ReportLocations{}, fmt.Errorf("marshaling analysis data: %w", err)
		}
		if err := os.WriteFile(dataPath, data, 0o644); err != nil {
			return types.ReportLocations{}, fmt.Errorf("writing analysis data: %w", err)
		}
		locations.DataPath = dataPath
	}

	return locations, nil
}

// renderOverview lays out the single-topic report: summary, key points,
// pros, cons, sources.
func renderOverview(topic string, a *types.OverviewAnalysis) string {
	var b strings.Builder

	title := "Overview Report"
	if topic != "" {
		title = fmt.Sprintf("Overview Report: %s", topic)
	}
	writeHeader(&b, title)

	writeSection(&b, "Summary")
	b.WriteString(orPlaceholder(a.Summary, "*No summary available.*"))
	b.WriteString("\n")

	writeSection(&b, "Key Points")
	writeList(&b, a.KeyPoints, "*No key points available.*")

	writeSection(&b, "Pros")
	writeList(&b, a.Pros, "*No pros identified.*")

	writeSection(&b, "Cons")
	writeList(&b, a.Cons, "*No cons identified.*")

	writeSources(&b, a.Sources)
	writeFooter(&b)
	return b.String()
}

// renderCompare lays out the two-item report: overview, per-item summaries
// with strengths and weaknesses, key differences, recommendations, sources.
func renderCompare(itemA, itemB string, a *types.CompareAnalysis) string {
	var b strings.Builder

	title := "Comparison Report"
	if itemA != "" && itemB != "" {
		title = fmt.Sprintf("Comparison Report: %s vs %s", itemA, itemB)
	}
	writeHeader(&b, title)

	writeSection(&b, "Overview")
	b.WriteString(orPlaceholder(a.Overview, "*No overview available.*"))
	b.WriteString("\n")

	labelA := orPlaceholder(itemA, "Item A")
	labelB := orPlaceholder(itemB, "Item B")

	writeItem(&b, labelA, a.Comparison.ItemA)
	writeItem(&b, labelB, a.Comparison.ItemB)

	writeSection(&b, "Key Differences")
	writeList(&b, a.KeyDifferences, "*No key differences identified.*")

	writeSection(&b, "Use Case Recommendations")
	writeList(&b, a.UseCaseRecommendations, "*No recommendations available.*")

	writeSources(&b, a.Sources)
	writeFooter(&b)
	return b.String()
}

func writeItem(b *strings.Builder, label string, item types.ItemAnalysis) {
	writeSection(b, label)
	b.WriteString(orPlaceholder(item.Summary, "*No summary available.*"))
	b.WriteString("\n\n### Strengths\n\n")
	writeListBody(b, item.Strengths, "*No strengths identified.*")
	b.WriteString("\n### Weaknesses\n\n")
	writeListBody(b, item.Weaknesses, "*No weaknesses identified.*")
}

func writeHeader(b *strings.Builder, title string) {
	fmt.Fprintf(b, "# %s\n\n", title)
	fmt.Fprintf(b, "**Generated:** %s\n", timeNow().Format("2006-01-02 15:04:05"))
}

func writeSection(b *strings.Builder, heading string) {
	fmt.Fprintf(b, "\n---\n\n## %s\n\n", heading)
}

func writeList(b *strings.Builder, items []string, placeholder string) {
	writeListBody(b, items, placeholder)
}

func writeListBody(b *strings.Builder, items []string, placeholder string) {
	if len(items) == 0 {
		b.WriteString(placeholder)
		b.WriteString("\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeSources(b *strings.Builder, sources []types.Source) {
	writeSection(b, "Sources")
	if len(sources) == 0 {
		b.WriteString("*No sources available.*\n")
		return
	}
	for i, s := range sources {
		fmt.Fprintf(b, "%d. [%s](%s)\n", i+1, s.Title, s.URL)
	}
}

func writeFooter(b *strings.Builder) {
	b.WriteString("\n---\n\n*Report generated by research-pipeline*\n")
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
