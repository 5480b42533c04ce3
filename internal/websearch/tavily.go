// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch gathers web search records for the pipeline.
// Implements: prd002-search (R1-R3);
//
//	docs/ARCHITECTURE § Search.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/research-pipeline/internal/httputil"
	"github.com/pdiddy/research-pipeline/pkg/types"
)

// tavilyAPIURL is the Tavily search endpoint. Declared as a var so tests can
// substitute an httptest server.
var tavilyAPIURL = "https://api.tavily.com/search"

// defaultMaxResults is the per-query record count when the config leaves it unset.
const defaultMaxResults = 5

// Backend runs one search query against a web search API. The pipeline's
// per-mode gathering sits above it in Service (R2.3).
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchRecord, error)
}

// TavilyBackend queries the Tavily search API (R2.1).
type TavilyBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *TavilyBackend) Name() string { return "tavily" }

// tavilyRequest is the request body for the Tavily search API.
type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// tavilyResponse is the response body from the Tavily search API.
type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search posts the query to Tavily and returns the records in API order.
func (b *TavilyBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchRecord, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Tavily API key not configured (set tavily-api-key secret or search.api_key)")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	reqBody := tavilyRequest{
		APIKey:     cfg.APIKey,
		Query:      query,
		MaxResults: maxResults,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	client := b.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("calling Tavily API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Tavily API returned %d: %s", resp.StatusCode, string(body))
	}

	var tResp tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tResp); err != nil {
		return nil, fmt.Errorf("decoding Tavily response: %w", err)
	}

	records := make([]types.SearchRecord, 0, len(tResp.Results))
	for _, r := range tResp.Results {
		records = append(records, types.SearchRecord{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
		})
	}
	return records, nil
}
