package store

import (
	"context"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/errors"
)

// SortDirection selects result ordering for filtered queries.
type SortDirection int

const (
	// SortDescending returns newest first. This is the feed's contract.
	SortDescending SortDirection = iota
	// SortAscending returns oldest first.
	SortAscending
)

// CreateRecipe creates a recipe and appends its ID to the contributor's
// owned-recipe list in the same transaction. The contributor must exist -
// a recipe may never be created pointing at a missing user.
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	recipeKey := recipePrefix + recipe.ID
	userKey := userPrefix + recipe.ContributorID

	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		var contributor domain.User
		if err := getJSON(txn, userKey, &contributor); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.NotFoundf("contributor %q not found", recipe.ContributorID)
			}
			return err
		}

		if _, err := txn.Get([]byte(recipeKey)); err == nil {
			return errors.AlreadyExistsf("recipe %q already exists", recipe.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := setJSON(txn, recipeKey, recipe); err != nil {
			return err
		}

		contributor.AddRecipe(recipe.ID)
		contributor.Touch()
		return setJSON(txn, userKey, &contributor)
	})
}

// GetRecipe retrieves a recipe by ID.
func (s *Store) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, err := s.Recipes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("recipe %q not found", id)
		}
		return nil, err
	}
	return recipe, nil
}

// GetRecipesByIDs retrieves multiple recipes in one batched read.
// Missing IDs are skipped; no ordering guarantee.
func (s *Store) GetRecipesByIDs(ctx context.Context, ids []string) ([]*domain.Recipe, error) {
	return s.Recipes.GetByIDs(ctx, ids)
}

// UpdateRecipe replaces a recipe's stored state. The contributor reference
// is immutable after creation; callers edit title, content, tags and dates.
func (s *Store) UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	recipe.Touch()
	return s.Recipes.Update(ctx, recipe.ID, recipe)
}

// DeleteRecipe deletes a recipe and removes its ID from the contributor's
// owned-recipe list in the same transaction, so no dangling reference
// survives. The recipe's comments are deleted with it.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	recipeKey := recipePrefix + id

	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		var recipe domain.Recipe
		if err := getJSON(txn, recipeKey, &recipe); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.NotFoundf("recipe %q not found", id)
			}
			return err
		}

		if err := txn.Delete([]byte(recipeKey)); err != nil {
			return err
		}

		// Referential cleanup on the contributor's owned list. A missing
		// contributor is tolerated here - the deletion must still succeed
		// so the inconsistency cannot spread.
		userKey := userPrefix + recipe.ContributorID
		var contributor domain.User
		err := getJSON(txn, userKey, &contributor)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			// Nothing to clean up.
		case err != nil:
			return err
		default:
			if contributor.RemoveRecipe(id) {
				contributor.Touch()
				if err := setJSON(txn, userKey, &contributor); err != nil {
					return err
				}
			}
		}

		for _, commentID := range recipe.CommentIDs {
			if err := txn.Delete([]byte(commentPrefix + commentID)); err != nil {
				return err
			}
		}

		return nil
	})
}

// ToggleRecipeLike flips the username's membership in the recipe's liker
// set and reports whether the user likes the recipe afterwards. The
// read-modify-write commits atomically with optimistic retry, so toggles
// racing from different users on the same recipe never lose updates.
func (s *Store) ToggleRecipeLike(ctx context.Context, recipeID, username string) (bool, error) {
	recipeKey := recipePrefix + recipeID
	var liked bool

	err := s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		var recipe domain.Recipe
		if err := getJSON(txn, recipeKey, &recipe); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.NotFoundf("recipe %q not found", recipeID)
			}
			return err
		}

		liked = recipe.ToggleLike(username)
		recipe.Touch()
		return setJSON(txn, recipeKey, &recipe)
	})
	if err != nil {
		return false, err
	}

	return liked, nil
}

// RecipeFilter selects recipes for ListRecipes. A zero filter matches all.
type RecipeFilter struct {
	ContributorID string
	TagID         string
	TitleContains string
}

func (f RecipeFilter) matches(r *domain.Recipe) bool {
	if f.ContributorID != "" && r.ContributorID != f.ContributorID {
		return false
	}
	if f.TagID != "" && !slices.Contains(r.TagIDs, f.TagID) {
		return false
	}
	if f.TitleContains != "" && !strings.Contains(strings.ToLower(r.Title), strings.ToLower(f.TitleContains)) {
		return false
	}
	return true
}

// ListRecipes returns recipes matching the filter, sorted by creation time
// in the given direction with recipe ID ascending as the tie-break.
func (s *Store) ListRecipes(ctx context.Context, filter RecipeFilter, dir SortDirection) ([]*domain.Recipe, error) {
	recipes := make([]*domain.Recipe, 0)
	for recipe, err := range s.Recipes.List(ctx) {
		if err != nil {
			return nil, err
		}
		if filter.matches(recipe) {
			recipes = append(recipes, recipe)
		}
	}

	slices.SortFunc(recipes, func(a, b *domain.Recipe) int {
		var c int
		if dir == SortDescending {
			c = b.CreatedAt.Compare(a.CreatedAt)
		} else {
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return recipes, nil
}
