package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/errors"
	"github.com/raymondchung216/instacook/internal/id"
	"github.com/raymondchung216/instacook/internal/store"
)

// CommentService manages recipe comments.
type CommentService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(store *store.Store, logger *slog.Logger) *CommentService {
	return &CommentService{
		store:  store,
		logger: logger,
	}
}

// AddComment attaches a comment by author (a username) to a recipe.
func (s *CommentService) AddComment(ctx context.Context, author, recipeID, content string) (*dto.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.Validation("comment content cannot be empty")
	}

	comment := &domain.Comment{
		ID:        id.MustGenerate(id.PrefixComment),
		Author:    author,
		RecipeID:  recipeID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	view := dto.NewCommentView(comment)
	return &view, nil
}
