package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/errors"
	"github.com/raymondchung216/instacook/internal/id"
	"github.com/raymondchung216/instacook/internal/search"
	"github.com/raymondchung216/instacook/internal/store"
	"github.com/raymondchung216/instacook/internal/util"
)

// RecipeService manages recipe lifecycle and likes.
type RecipeService struct {
	store    *store.Store
	enricher *dto.Enricher
	index    *search.Index
	logger   *slog.Logger
}

// NewRecipeService creates a new recipe service. index may be nil when
// search is disabled.
func NewRecipeService(store *store.Store, enricher *dto.Enricher, index *search.Index, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		store:    store,
		enricher: enricher,
		index:    index,
		logger:   logger,
	}
}

// CreateRecipeInput holds the caller-supplied fields for a new recipe.
// CreatedAt, when set, back-dates the recipe instead of stamping now, so
// imported recipes keep their original feed position.
type CreateRecipeInput struct {
	Title     string
	Content   string
	Tags      []string
	CreatedAt *time.Time
}

// UpdateRecipeInput holds the mutable recipe fields. Nil means unchanged.
type UpdateRecipeInput struct {
	Title     *string
	Content   *string
	Tags      *[]string
	CreatedAt *time.Time
}

// CreateRecipe creates a recipe owned by contributorID. Tag names that do
// not exist yet are created on the fly.
func (s *RecipeService) CreateRecipe(ctx context.Context, contributorID string, input CreateRecipeInput) (*dto.RecipeView, error) {
	tagIDs, err := s.ensureTagIDs(ctx, input.Tags)
	if err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		ID:            id.MustGenerate(id.PrefixRecipe),
		Title:         strings.TrimSpace(input.Title),
		Content:       input.Content,
		ContributorID: contributorID,
		TagIDs:        tagIDs,
	}
	recipe.InitTimestamps()
	if input.CreatedAt != nil {
		recipe.CreatedAt = input.CreatedAt.UTC()
	}

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.indexRecipe(ctx, recipe)

	return s.enricher.EnrichRecipe(ctx, recipe, nil)
}

// GetRecipe returns a single denormalized recipe, including the full liker
// list. List and feed reads carry only the count.
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID string) (*dto.RecipeView, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	view, err := s.enricher.EnrichRecipe(ctx, recipe, nil)
	if err != nil {
		return nil, err
	}
	view.Likers = slices.Clone(recipe.Likers)
	return view, nil
}

// GetRecipesByContributor returns a user's recipes, newest first.
func (s *RecipeService) GetRecipesByContributor(ctx context.Context, username string) ([]*dto.RecipeView, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if len(user.Recipes) == 0 {
		return []*dto.RecipeView{}, nil
	}

	recipes, err := s.store.GetRecipesByIDs(ctx, user.Recipes)
	if err != nil {
		return nil, err
	}
	sortRecipesNewestFirst(recipes)

	return s.enricher.EnrichRecipesFor(ctx, user, recipes)
}

// ListRecipes returns all recipes matching the filter, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, filter store.RecipeFilter) ([]*dto.RecipeView, error) {
	recipes, err := s.store.ListRecipes(ctx, filter, store.SortDescending)
	if err != nil {
		return nil, err
	}
	return s.enricher.EnrichRecipes(ctx, recipes)
}

// UpdateRecipe applies the supplied changes to a recipe the caller owns.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, recipeID string, input UpdateRecipeInput) (*dto.RecipeView, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.ContributorID != userID {
		return nil, errors.Forbidden("only the contributor can edit a recipe")
	}

	if input.Title != nil {
		recipe.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		recipe.Content = *input.Content
	}
	if input.Tags != nil {
		tagIDs, err := s.ensureTagIDs(ctx, *input.Tags)
		if err != nil {
			return nil, err
		}
		recipe.TagIDs = tagIDs
	}
	if input.CreatedAt != nil {
		recipe.CreatedAt = input.CreatedAt.UTC()
	}

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	s.indexRecipe(ctx, recipe)

	return s.enricher.EnrichRecipe(ctx, recipe, nil)
}

// DeleteRecipe removes a recipe the caller owns, along with its comments and
// its entry in the contributor's owned list.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.ContributorID != userID {
		return errors.Forbidden("only the contributor can delete a recipe")
	}

	if err := s.store.DeleteRecipe(ctx, recipeID); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.RemoveRecipe(recipeID); err != nil {
			s.logger.Warn("failed to remove recipe from search index", "recipe_id", recipeID, "error", err)
		}
	}
	return nil
}

// ToggleLike flips username's like on a recipe. Liking twice is a no-op
// pair: the second call removes the first. The new state is not returned -
// callers that need the count re-read the recipe.
func (s *RecipeService) ToggleLike(ctx context.Context, username, recipeID string) error {
	liked, err := s.store.ToggleRecipeLike(ctx, recipeID, username)
	if err != nil {
		return err
	}

	s.logger.Debug("like toggled", "recipe_id", recipeID, "username", username, "liked", liked)
	return nil
}

// ensureTagIDs maps tag names to ids, creating tags that do not exist yet.
// Names are slugified so "Vegan" and "vegan" share one tag.
func (s *RecipeService) ensureTagIDs(ctx context.Context, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, raw := range names {
		name := util.NormalizeTagSlug(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := s.store.GetTagByName(ctx, name)
		if errors.Is(err, errors.ErrNotFound) {
			tag = domain.NewTag(id.MustGenerate(id.PrefixTag), name)
			if err := s.store.CreateTag(ctx, tag); err != nil {
				// Lost a create race: someone else made the tag first.
				if errors.Is(err, errors.ErrAlreadyExists) {
					tag, err = s.store.GetTagByName(ctx, name)
				}
				if err != nil {
					return nil, fmt.Errorf("create tag %q: %w", name, err)
				}
			}
		} else if err != nil {
			return nil, fmt.Errorf("look up tag %q: %w", name, err)
		}

		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func (s *RecipeService) indexRecipe(ctx context.Context, recipe *domain.Recipe) {
	if s.index == nil {
		return
	}

	names, err := s.enricher.ResolveTagNames(ctx, recipe.TagIDs)
	if err != nil {
		s.logger.Warn("failed to resolve tags for search indexing", "recipe_id", recipe.ID, "error", err)
		names = nil
	}
	if err := s.index.IndexRecipe(recipe, names); err != nil {
		s.logger.Warn("failed to index recipe", "recipe_id", recipe.ID, "error", err)
	}
}

// sortRecipesNewestFirst orders by creation time descending, id ascending
// among equal timestamps.
func sortRecipesNewestFirst(recipes []*domain.Recipe) {
	slices.SortFunc(recipes, func(a, b *domain.Recipe) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
