package store

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/errors"
)

// CreateComment stores a comment and appends its ID to the recipe's
// comment list in the same transaction. The recipe must exist.
func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	commentKey := commentPrefix + comment.ID
	recipeKey := recipePrefix + comment.RecipeID

	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		var recipe domain.Recipe
		if err := getJSON(txn, recipeKey, &recipe); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.NotFoundf("recipe %q not found", comment.RecipeID)
			}
			return err
		}

		if err := setJSON(txn, commentKey, comment); err != nil {
			return err
		}

		recipe.AddComment(comment.ID)
		recipe.Touch()
		return setJSON(txn, recipeKey, &recipe)
	})
}

// GetComment retrieves a comment by ID.
func (s *Store) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	comment, err := s.Comments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("comment %q not found", id)
		}
		return nil, err
	}
	return comment, nil
}

// GetCommentsByIDs retrieves multiple comments in one batched read.
// Missing IDs are skipped; no ordering guarantee.
func (s *Store) GetCommentsByIDs(ctx context.Context, ids []string) ([]*domain.Comment, error) {
	return s.Comments.GetByIDs(ctx, ids)
}
