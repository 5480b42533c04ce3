package websearch

import (
	"context"
	"fmt"
	"testing"

	"github.com/pdiddy/research-pipeline/pkg/types"
)

// stubBackend records queries and returns one canned record per query.
type stubBackend struct {
	queries []string
	err     error
}

func (b *stubBackend) Name() string { return "stub" }

func (b *stubBackend) Search(_ context.Context, query string, _ types.SearchConfig) ([]types.SearchRecord, error) {
	b.queries = append(b.queries, query)
	if b.err != nil {
		return nil, b.err
	}
	return []types.SearchRecord{{Title: query, URL: "https://example.com/" + query, Snippet: "s"}}, nil
}

func TestServiceOverview(t *testing.T) {
	backend := &stubBackend{}
	svc := NewService(backend, types.SearchConfig{})

	data, err := svc.Search(context.Background(), types.Request{Mode: types.ModeOverview, Topic: "golang"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(backend.queries) != 1 || backend.queries[0] != "golang" {
		t.Errorf("queries = %v", backend.queries)
	}
	if len(data.Results) != 1 || data.ItemA != nil || data.ItemB != nil {
		t.Errorf("data = %+v", data)
	}
}

func TestServiceCompare(t *testing.T) {
	backend := &stubBackend{}
	svc := NewService(backend, types.SearchConfig{})

	req := types.Request{Mode: types.ModeCompare, ItemA: "redis", ItemB: "memcached"}
	data, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	// Item A is always queried before item B.
	if len(backend.queries) != 2 || backend.queries[0] != "redis" || backend.queries[1] != "memcached" {
		t.Errorf("queries = %v", backend.queries)
	}
	if len(data.ItemA) != 1 || data.ItemA[0].Title != "redis" {
		t.Errorf("item A data = %+v", data.ItemA)
	}
	if len(data.ItemB) != 1 || data.ItemB[0].Title != "memcached" {
		t.Errorf("item B data = %+v", data.ItemB)
	}
}

func TestServiceValidation(t *testing.T) {
	svc := NewService(&stubBackend{}, types.SearchConfig{})

	tests := []struct {
		name string
		req  types.Request
	}{
		{"overview without topic", types.Request{Mode: types.ModeOverview}},
		{"compare without item b", types.Request{Mode: types.ModeCompare, ItemA: "a"}},
		{"unknown mode", types.Request{Mode: "digest", Topic: "t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Search(context.Background(), tt.req); err == nil {
				t.Error("invalid request accepted")
			}
		})
	}
}

func TestServiceBackendErrorEscalates(t *testing.T) {
	backend := &stubBackend{err: fmt.Errorf("rate limited")}
	svc := NewService(backend, types.SearchConfig{})

	_, err := svc.Search(context.Background(), types.Request{Mode: types.ModeOverview, Topic: "t"})
	if err == nil {
		t.Fatal("backend error swallowed")
	}
	// One query, no retry at this level.
	if len(backend.queries) != 1 {
		t.Errorf("backend called %d times, want 1", len(backend.queries))
	}
}
