package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/errors"
	"github.com/raymondchung216/instacook/internal/id"
	"github.com/raymondchung216/instacook/internal/store"
	"github.com/raymondchung216/instacook/internal/util"
)

// TagService provides read access to the global tag catalog.
type TagService struct {
	store    *store.Store
	enricher *dto.Enricher
	logger   *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store *store.Store, enricher *dto.Enricher, logger *slog.Logger) *TagService {
	return &TagService{
		store:    store,
		enricher: enricher,
		logger:   logger,
	}
}

// CreateTag adds a tag to the global catalog. The name is slugified before
// storage so the catalog never holds two spellings of the same tag.
func (s *TagService) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	slug := util.NormalizeTagSlug(name)
	if slug == "" {
		return nil, errors.Validation("tag name must contain at least one letter or digit")
	}

	tag := domain.NewTag(id.MustGenerate(id.PrefixTag), slug)
	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, errors.ErrAlreadyExists) {
			return nil, errors.AlreadyExistsf("tag %q already exists", slug)
		}
		return nil, err
	}

	s.logger.Info("tag created", "tag_id", tag.ID, "name", slug)
	return tag, nil
}

// ListTags returns every tag, sorted by name.
func (s *TagService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(tags, func(a, b *domain.Tag) int {
		return strings.Compare(a.Name, b.Name)
	})
	return tags, nil
}

// GetRecipesByTag returns all recipes carrying the named tag, newest first.
func (s *TagService) GetRecipesByTag(ctx context.Context, name string) ([]*dto.RecipeView, error) {
	tag, err := s.store.GetTagByName(ctx, util.NormalizeTagSlug(name))
	if err != nil {
		return nil, err
	}

	recipes, err := s.store.ListRecipes(ctx, store.RecipeFilter{TagID: tag.ID}, store.SortDescending)
	if err != nil {
		return nil, err
	}
	return s.enricher.EnrichRecipes(ctx, recipes)
}
