// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-pipeline.
// Implements: prd002-search (SearchRecord, Source, SearchData);
//
//	prd003-analysis (AnalysisRequest, Analysis);
//	prd001-pipeline (Request, PipelineResult).
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

// SearchRecord is one raw web search result as returned by the search
// collaborator. Records are immutable once produced; the pipeline consumes
// them only for prompt grounding and citation extraction.
type SearchRecord struct {
	// Title is the page title as returned by the search API.
	Title string `json:"title" yaml:"title"`

	// URL is the page URL.
	URL string `json:"url" yaml:"url"`

	// Snippet is the extracted page content relevant to the query.
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Source is a citation derived from a SearchRecord with a non-empty URL.
// Derivation is order-preserving and does not deduplicate.
type Source struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// SourcesFromRecords derives citations from search records, keeping input
// order and skipping records without a URL. Untitled records are labeled
// "Untitled" so the citation list never carries an empty title.
func SourcesFromRecords(records []SearchRecord) []Source {
	sources := make([]Source, 0, len(records))
	for _, r := range records {
		if r.URL == "" {
			continue
		}
		title := r.Title
		if title == "" {
			title = "Untitled"
		}
		sources = append(sources, Source{Title: title, URL: r.URL})
	}
	return sources
}

// SearchData holds the search stage output. Overview mode fills Results;
// compare mode fills ItemA and ItemB.
type SearchData struct {
	// Results are the records for the single topic (overview mode).
	Results []SearchRecord `json:"results,omitempty" yaml:"results,omitempty"`

	// ItemA are the records for the first comparison item (compare mode).
	ItemA []SearchRecord `json:"item_a,omitempty" yaml:"item_a,omitempty"`

	// ItemB are the records for the second comparison item (compare mode).
	ItemB []SearchRecord `json:"item_b,omitempty" yaml:"item_b,omitempty"`
}
