// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"fmt"

	"github.com/pdiddy/research-pipeline/pkg/types"
)

// Service gathers the records a pipeline request needs: one query for
// overview mode, one query per item for compare mode. Queries run strictly
// sequentially; a backend failure escalates immediately and is never
// retried here (prd002-search R3.2).
type Service struct {
	backend Backend
	cfg     types.SearchConfig
}

// NewService builds a search service over a backend.
func NewService(backend Backend, cfg types.SearchConfig) *Service {
	return &Service{backend: backend, cfg: cfg}
}

// Search gathers records for the request's mode.
func (s *Service) Search(ctx context.Context, req types.Request) (types.SearchData, error) {
	switch req.Mode {
	case types.ModeOverview:
		if req.Topic == "" {
			return types.SearchData{}, fmt.Errorf("overview search requires a topic")
		}
		results, err := s.backend.Search(ctx, req.Topic, s.cfg)
		if err != nil {
			return types.SearchData{}, err
		}
		return types.SearchData{Results: results}, nil

	case types.ModeCompare:
		if req.ItemA == "" || req.ItemB == "" {
			return types.SearchData{}, fmt.Errorf("compare search requires both item names")
		}
		resultsA, err := s.backend.Search(ctx, req.ItemA, s.cfg)
		if err != nil {
			return types.SearchData{}, fmt.Errorf("searching %q: %w", req.ItemA, err)
		}
		resultsB, err := s.backend.Search(ctx, req.ItemB, s.cfg)
		if err != nil {
			return types.SearchData{}, fmt.Errorf("searching %q: %w", req.ItemB, err)
		}
		return types.SearchData{ItemA: resultsA, ItemB: resultsB}, nil
	}

	return types.SearchData{}, fmt.Errorf("invalid mode %q for search", req.Mode)
}
