package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/store"
)

// feedWorkers bounds the fan-out when assembling a feed. Each followed user
// costs a user fetch, a recipe batch fetch, and an enrichment pass, so the
// pool keeps a user following hundreds of accounts from flooding the store.
const feedWorkers = 8

// FeedService assembles the home feed: every recipe contributed by the users
// the viewer follows, denormalized and sorted newest first.
type FeedService struct {
	store    *store.Store
	enricher *dto.Enricher
	logger   *slog.Logger
}

// NewFeedService creates a new feed service.
func NewFeedService(store *store.Store, enricher *dto.Enricher, logger *slog.Logger) *FeedService {
	return &FeedService{
		store:    store,
		enricher: enricher,
		logger:   logger,
	}
}

// feedEntry pairs a view with its source recipe so the merge can sort on the
// recipe's full-precision timestamp rather than the formatted string.
type feedEntry struct {
	recipe *domain.Recipe
	view   *dto.RecipeView
}

// GetFeed returns the denormalized feed for userID, sorted by recipe creation
// time descending with recipe id as the tiebreak. Following nobody yields an
// empty feed. A followed user whose recipes cannot be loaded is dropped from
// this response and logged; one bad account never fails the whole feed.
func (s *FeedService) GetFeed(ctx context.Context, userID string) ([]*dto.RecipeView, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(user.Following) == 0 {
		return []*dto.RecipeView{}, nil
	}

	type result struct {
		followed domain.UserRef
		entries  []feedEntry
		err      error
	}

	jobs := make(chan domain.UserRef, len(user.Following))
	results := make(chan result, len(user.Following))

	workers := min(feedWorkers, len(user.Following))
	for range workers {
		go func() {
			for ref := range jobs {
				entries, err := s.collectFrom(ctx, ref)
				results <- result{followed: ref, entries: entries, err: err}
			}
		}()
	}

	for _, ref := range user.Following {
		jobs <- ref
	}
	close(jobs)

	var entries []feedEntry
	for range len(user.Following) {
		select {
		case r := <-results:
			if r.err != nil {
				s.logger.Warn("dropping followed user from feed",
					"user_id", userID,
					"followed_id", r.followed.ID,
					"followed_username", r.followed.Username,
					"error", r.err,
				)
				continue
			}
			entries = append(entries, r.entries...)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	slices.SortFunc(entries, func(a, b feedEntry) int {
		if c := b.recipe.CreatedAt.Compare(a.recipe.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.recipe.ID, b.recipe.ID)
	})

	feed := make([]*dto.RecipeView, len(entries))
	for i, e := range entries {
		feed[i] = e.view
	}
	return feed, nil
}

// collectFrom loads one followed user's recipes and enriches them. The user
// is re-fetched by id: the follow list only carries a reference, and the
// owned-recipe list on it may have changed since the follow was recorded.
func (s *FeedService) collectFrom(ctx context.Context, ref domain.UserRef) ([]feedEntry, error) {
	followed, err := s.store.GetUser(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	if len(followed.Recipes) == 0 {
		return nil, nil
	}

	recipes, err := s.store.GetRecipesByIDs(ctx, followed.Recipes)
	if err != nil {
		return nil, err
	}

	views, err := s.enricher.EnrichRecipesFor(ctx, followed, recipes)
	if err != nil {
		return nil, err
	}

	entries := make([]feedEntry, len(recipes))
	for i := range recipes {
		entries[i] = feedEntry{recipe: recipes[i], view: views[i]}
	}
	return entries, nil
}
