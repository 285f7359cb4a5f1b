package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/raymondchung216/instacook/internal/dto"
)

func (s *Server) registerFeedRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/feed",
		Summary:     "Get personal feed",
		Description: "Returns recipes from followed users, newest first",
		Tags:        []string{"Feed"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetFeed)
}

// FeedResponse contains the assembled feed.
type FeedResponse struct {
	Recipes []*dto.RecipeView `json:"recipes" doc:"Feed entries, newest first"`
}

// FeedOutput wraps the feed response for Huma.
type FeedOutput struct {
	Body FeedResponse
}

func (s *Server) handleGetFeed(ctx context.Context, input *AuthInput) (*FeedOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipes, err := s.services.Feed.GetFeed(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &FeedOutput{Body: FeedResponse{Recipes: recipes}}, nil
}
