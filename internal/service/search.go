package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/errors"
	"github.com/raymondchung216/instacook/internal/search"
	"github.com/raymondchung216/instacook/internal/store"
)

// SearchService fronts the full-text recipe index.
type SearchService struct {
	store    *store.Store
	enricher *dto.Enricher
	index    *search.Index
	logger   *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(store *store.Store, enricher *dto.Enricher, index *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:    store,
		enricher: enricher,
		index:    index,
		logger:   logger,
	}
}

// Search runs a query against the recipe index.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if s.index == nil {
		return nil, errors.StoreUnavailable("search index not available")
	}
	return s.index.Search(ctx, params)
}

// DocumentCount reports the number of indexed recipes.
func (s *SearchService) DocumentCount() (uint64, error) {
	if s.index == nil {
		return 0, errors.StoreUnavailable("search index not available")
	}
	return s.index.DocumentCount()
}

// Reindex rebuilds the index from the store. Called on startup so the index
// catches up with writes it missed while the server was down.
func (s *SearchService) Reindex(ctx context.Context) error {
	recipes, err := s.store.ListRecipes(ctx, store.RecipeFilter{}, store.SortAscending)
	if err != nil {
		return fmt.Errorf("list recipes: %w", err)
	}

	tagNames := make(map[string][]string, len(recipes))
	for _, recipe := range recipes {
		if len(recipe.TagIDs) == 0 {
			continue
		}
		names, err := s.enricher.ResolveTagNames(ctx, recipe.TagIDs)
		if err != nil {
			s.logger.Warn("failed to resolve tags during reindex", "recipe_id", recipe.ID, "error", err)
			continue
		}
		tagNames[recipe.ID] = names
	}

	if err := s.index.IndexRecipes(recipes, tagNames); err != nil {
		return fmt.Errorf("index recipes: %w", err)
	}

	s.logger.Info("search reindex complete", "recipes", len(recipes))
	return nil
}
