package dto

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/errors"
)

// Store defines the interface for fetching related entities during enrichment.
// This allows Enricher to remain testable and independent of the concrete
// store implementation.
type Store interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error)
	GetCommentsByIDs(ctx context.Context, ids []string) ([]*domain.Comment, error)
}

// Enricher denormalizes domain models for client consumption.
//
// Design philosophy:
//   - Batch fetching: one store call per entity type, never one per id
//   - Graceful degradation: dangling tag/comment ids are dropped, not errors
//   - A recipe whose contributor is gone cannot be rendered at all - that is
//     a data-integrity failure, not degradation
type Enricher struct {
	store Store
}

// NewEnricher creates a new enricher.
func NewEnricher(store Store) *Enricher {
	return &Enricher{store: store}
}

// ResolveTagNames maps a set of tag ids to their display names, sorted
// ascending (case-sensitive). Duplicate ids are collapsed before the lookup
// and ids with no backing tag are dropped, so the output is stable for
// identical input sets regardless of input order.
func (e *Enricher) ResolveTagNames(ctx context.Context, tagIDs []string) ([]string, error) {
	if len(tagIDs) == 0 {
		return []string{}, nil
	}

	seen := make(map[string]bool, len(tagIDs))
	unique := make([]string, 0, len(tagIDs))
	for _, id := range tagIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	tags, err := e.store.GetTagsByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("fetch tags: %w", err)
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	slices.Sort(names)
	return names, nil
}

// ResolveComments maps a set of comment ids to client views, sorted newest
// first. Ids with no backing comment are dropped.
func (e *Enricher) ResolveComments(ctx context.Context, commentIDs []string) ([]CommentView, error) {
	if len(commentIDs) == 0 {
		return []CommentView{}, nil
	}

	comments, err := e.store.GetCommentsByIDs(ctx, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	sortComments(comments)

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = NewCommentView(c)
	}
	return views, nil
}

// EnrichRecipe denormalizes a single recipe for client consumption.
// contributor may be pre-fetched by the caller; pass nil to have it looked
// up here. A missing contributor is reported as a data-integrity error
// because the recipe references a user that no longer exists.
func (e *Enricher) EnrichRecipe(ctx context.Context, recipe *domain.Recipe, contributor *domain.User) (*RecipeView, error) {
	if contributor == nil {
		var err error
		contributor, err = e.store.GetUser(ctx, recipe.ContributorID)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return nil, errors.DataIntegrityf("recipe %s references missing contributor %s", recipe.ID, recipe.ContributorID)
			}
			return nil, fmt.Errorf("fetch contributor: %w", err)
		}
	}

	tags, err := e.ResolveTagNames(ctx, recipe.TagIDs)
	if err != nil {
		return nil, err
	}

	comments, err := e.ResolveComments(ctx, recipe.CommentIDs)
	if err != nil {
		return nil, err
	}

	return newRecipeView(recipe, contributor.Name(), tags, comments), nil
}

// EnrichRecipes denormalizes multiple recipes, batching every lookup across
// the whole slice: one call for contributors, one for tags, one for comments.
// Output order matches input order.
func (e *Enricher) EnrichRecipes(ctx context.Context, recipes []*domain.Recipe) ([]*RecipeView, error) {
	if len(recipes) == 0 {
		return []*RecipeView{}, nil
	}

	contributorIDs := make([]string, 0, len(recipes))
	seen := make(map[string]bool, len(recipes))
	for _, r := range recipes {
		if !seen[r.ContributorID] {
			seen[r.ContributorID] = true
			contributorIDs = append(contributorIDs, r.ContributorID)
		}
	}

	contributors, err := e.store.GetUsersByIDs(ctx, contributorIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch contributors: %w", err)
	}
	contributorMap := make(map[string]*domain.User, len(contributors))
	for _, u := range contributors {
		contributorMap[u.ID] = u
	}

	return e.enrichWithContributors(ctx, recipes, contributorMap)
}

// EnrichRecipesFor denormalizes recipes whose contributor the caller already
// holds, skipping the contributor lookup. Tag and comment fetches are still
// batched across the whole slice.
func (e *Enricher) EnrichRecipesFor(ctx context.Context, contributor *domain.User, recipes []*domain.Recipe) ([]*RecipeView, error) {
	if len(recipes) == 0 {
		return []*RecipeView{}, nil
	}
	return e.enrichWithContributors(ctx, recipes, map[string]*domain.User{contributor.ID: contributor})
}

func (e *Enricher) enrichWithContributors(ctx context.Context, recipes []*domain.Recipe, contributorMap map[string]*domain.User) ([]*RecipeView, error) {
	var tagIDs, commentIDs []string
	for _, r := range recipes {
		tagIDs = append(tagIDs, r.TagIDs...)
		commentIDs = append(commentIDs, r.CommentIDs...)
	}

	tagMap, err := e.tagMap(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	commentMap, err := e.commentMap(ctx, commentIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*RecipeView, 0, len(recipes))
	for _, r := range recipes {
		contributor, ok := contributorMap[r.ContributorID]
		if !ok {
			return nil, errors.DataIntegrityf("recipe %s references missing contributor %s", r.ID, r.ContributorID)
		}

		names := make([]string, 0, len(r.TagIDs))
		for _, id := range r.TagIDs {
			if tag, ok := tagMap[id]; ok && !slices.Contains(names, tag.Name) {
				names = append(names, tag.Name)
			}
		}
		slices.Sort(names)

		comments := make([]*domain.Comment, 0, len(r.CommentIDs))
		for _, id := range r.CommentIDs {
			if c, ok := commentMap[id]; ok {
				comments = append(comments, c)
			}
		}
		sortComments(comments)

		commentViews := make([]CommentView, len(comments))
		for i, c := range comments {
			commentViews[i] = NewCommentView(c)
		}

		views = append(views, newRecipeView(r, contributor.Name(), names, commentViews))
	}
	return views, nil
}

func (e *Enricher) tagMap(ctx context.Context, ids []string) (map[string]*domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := e.store.GetTagsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch tags: %w", err)
	}
	m := make(map[string]*domain.Tag, len(tags))
	for _, tag := range tags {
		m[tag.ID] = tag
	}
	return m, nil
}

func (e *Enricher) commentMap(ctx context.Context, ids []string) (map[string]*domain.Comment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	comments, err := e.store.GetCommentsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	m := make(map[string]*domain.Comment, len(comments))
	for _, c := range comments {
		m[c.ID] = c
	}
	return m, nil
}

// sortComments orders newest first, id ascending among equal timestamps.
func sortComments(comments []*domain.Comment) {
	slices.SortFunc(comments, func(a, b *domain.Comment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func newRecipeView(r *domain.Recipe, contributor string, tags []string, comments []CommentView) *RecipeView {
	return &RecipeView{
		ID:          r.ID,
		Title:       r.Title,
		Content:     r.Content,
		Contributor: contributor,
		CreatedAt:   formatTime(r.CreatedAt),
		UpdatedAt:   formatTime(r.UpdatedAt),
		LikeCount:   r.LikeCount(),
		Tags:        tags,
		Comments:    comments,
	}
}
