package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/research-pipeline/pkg/types"
)

func tavilyFixture(w http.ResponseWriter, results ...map[string]string) {
	resp := map[string]any{"results": results}
	json.NewEncoder(w).Encode(resp)
}

func TestTavilySearch(t *testing.T) {
	var gotReq tavilyRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		tavilyFixture(w,
			map[string]string{"title": "First", "url": "https://one.example", "content": "snippet one"},
			map[string]string{"title": "Second", "url": "https://two.example", "content": "snippet two"},
		)
	}))
	defer ts.Close()

	oldURL := tavilyAPIURL
	tavilyAPIURL = ts.URL
	defer func() { tavilyAPIURL = oldURL }()

	backend := &TavilyBackend{Client: ts.Client()}
	cfg := types.SearchConfig{APIKey: "tv-key", MaxResults: 2}

	records, err := backend.Search(context.Background(), "test query", cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotReq.Query != "test query" || gotReq.APIKey != "tv-key" || gotReq.MaxResults != 2 {
		t.Errorf("request body = %+v", gotReq)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	want := types.SearchRecord{Title: "First", URL: "https://one.example", Snippet: "snippet one"}
	if records[0] != want {
		t.Errorf("record 0 = %+v, want %+v", records[0], want)
	}
}

func TestTavilySearchMissingKey(t *testing.T) {
	backend := &TavilyBackend{}
	if _, err := backend.Search(context.Background(), "q", types.SearchConfig{}); err == nil {
		t.Error("missing API key not reported")
	}
}

func TestTavilySearchAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer ts.Close()

	oldURL := tavilyAPIURL
	tavilyAPIURL = ts.URL
	defer func() { tavilyAPIURL = oldURL }()

	backend := &TavilyBackend{Client: ts.Client()}
	_, err := backend.Search(context.Background(), "q", types.SearchConfig{APIKey: "k"})
	if err == nil {
		t.Error("API error not propagated")
	}
}
