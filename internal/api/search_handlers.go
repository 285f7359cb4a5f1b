package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/raymondchung216/instacook/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search recipes",
		Description: "Full-text search over recipe titles, content, and tags",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// SearchInput carries search parameters as query string values.
type SearchInput struct {
	Query     string   `query:"q" doc:"Search text"`
	Tags      []string `query:"tag" doc:"Filter to recipes with any of these tags"`
	Limit     int      `query:"limit" doc:"Maximum results (default 20)"`
	Offset    int      `query:"offset" doc:"Results to skip"`
	SortBy    string   `query:"sort" enum:"relevance,recent,popular" doc:"Sort order (default relevance)"`
	Highlight bool     `query:"highlight" doc:"Include match highlights"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body search.Result
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.Tags = input.Tags
	params.Highlight = input.Highlight
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}
