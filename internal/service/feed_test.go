package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/errors"
	"github.com/raymondchung216/instacook/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(store.Options{Path: t.TempDir()})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFeedService(t *testing.T) (*FeedService, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	return NewFeedService(s, dto.NewEnricher(s), testLogger()), s
}

func createUser(t *testing.T, s *store.Store, id, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
	}
	user.InitTimestamps()
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createRecipeAt(t *testing.T, s *store.Store, id, contributorID, title string, created time.Time) *domain.Recipe {
	t.Helper()
	recipe := &domain.Recipe{
		ID:            id,
		Title:         title,
		Content:       "Instructions for " + title,
		ContributorID: contributorID,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, s.CreateRecipe(context.Background(), recipe))
	return recipe
}

func follow(t *testing.T, s *store.Store, userID string, ref domain.UserRef) {
	t.Helper()
	require.NoError(t, s.MutateUser(context.Background(), userID, func(u *domain.User) error {
		u.Follow(ref)
		return nil
	}))
}

func TestGetFeed_OrderedNewestFirst(t *testing.T) {
	svc, s := newFeedService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	bob := createUser(t, s, "user-bob", "bob")
	carol := createUser(t, s, "user-carol", "carol")

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	createRecipeAt(t, s, "rcp-old", bob.ID, "Old Pancakes", base)
	createRecipeAt(t, s, "rcp-mid", carol.ID, "Mid Curry", base.Add(time.Hour))
	createRecipeAt(t, s, "rcp-new", bob.ID, "New Waffles", base.Add(2*time.Hour))

	follow(t, s, alice.ID, bob.Ref())
	follow(t, s, alice.ID, carol.Ref())

	feed, err := svc.GetFeed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	assert.Equal(t, "rcp-new", feed[0].ID)
	assert.Equal(t, "rcp-mid", feed[1].ID)
	assert.Equal(t, "rcp-old", feed[2].ID)

	assert.Equal(t, "bob", feed[0].Contributor)
	assert.Equal(t, "carol", feed[1].Contributor)
}

func TestGetFeed_TimestampTieBrokenByID(t *testing.T) {
	svc, s := newFeedService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	bob := createUser(t, s, "user-bob", "bob")
	carol := createUser(t, s, "user-carol", "carol")

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	// Created in reverse id order to prove the tiebreak is by id, not
	// insertion order.
	createRecipeAt(t, s, "rcp-b", carol.ID, "Recipe B", created)
	createRecipeAt(t, s, "rcp-a", bob.ID, "Recipe A", created)

	follow(t, s, alice.ID, bob.Ref())
	follow(t, s, alice.ID, carol.Ref())

	feed, err := svc.GetFeed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "rcp-a", feed[0].ID)
	assert.Equal(t, "rcp-b", feed[1].ID)
}

func TestGetFeed_FollowingNobody(t *testing.T) {
	svc, s := newFeedService(t)

	alice := createUser(t, s, "user-alice", "alice")

	feed, err := svc.GetFeed(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestGetFeed_ExcludesOwnRecipes(t *testing.T) {
	svc, s := newFeedService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	bob := createUser(t, s, "user-bob", "bob")

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	createRecipeAt(t, s, "rcp-own", alice.ID, "My Own", base)
	createRecipeAt(t, s, "rcp-bob", bob.ID, "Bob's", base)

	follow(t, s, alice.ID, bob.Ref())

	feed, err := svc.GetFeed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "rcp-bob", feed[0].ID)
}

func TestGetFeed_DropsUnloadableFollowedUser(t *testing.T) {
	svc, s := newFeedService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	bob := createUser(t, s, "user-bob", "bob")
	createRecipeAt(t, s, "rcp-bob", bob.ID, "Bob's", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	follow(t, s, alice.ID, bob.Ref())
	// A follow reference whose user no longer exists must not fail the feed.
	follow(t, s, alice.ID, domain.UserRef{ID: "user-gone", Username: "ghost"})

	feed, err := svc.GetFeed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "rcp-bob", feed[0].ID)
}

func TestGetFeed_UnknownViewer(t *testing.T) {
	svc, _ := newFeedService(t)

	_, err := svc.GetFeed(context.Background(), "user-gone")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestGetFeed_EnrichedViews(t *testing.T) {
	svc, s := newFeedService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	bob := createUser(t, s, "user-bob", "bob")

	require.NoError(t, s.CreateTag(ctx, domain.NewTag("tag-1", "vegan")))
	require.NoError(t, s.CreateTag(ctx, domain.NewTag("tag-2", "breakfast")))

	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	recipe := &domain.Recipe{
		ID:            "rcp-1",
		Title:         "Tofu Scramble",
		Content:       "Crumble and fry.",
		ContributorID: bob.ID,
		TagIDs:        []string{"tag-1", "tag-2"},
		Likers:        []string{"alice", "carol"},
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, s.CreateRecipe(ctx, recipe))

	require.NoError(t, s.CreateComment(ctx, &domain.Comment{
		ID: "cmt-1", Author: "alice", RecipeID: "rcp-1", Content: "Love it",
		CreatedAt: created.Add(time.Hour),
	}))
	require.NoError(t, s.CreateComment(ctx, &domain.Comment{
		ID: "cmt-2", Author: "carol", RecipeID: "rcp-1", Content: "Me too",
		CreatedAt: created.Add(2 * time.Hour),
	}))

	follow(t, s, alice.ID, bob.Ref())

	feed, err := svc.GetFeed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	view := feed[0]
	assert.Equal(t, "bob", view.Contributor)
	assert.Equal(t, []string{"breakfast", "vegan"}, view.Tags)
	assert.Equal(t, 2, view.LikeCount)
	assert.Empty(t, view.Likers, "feed entries carry the count, not the liker list")
	require.Len(t, view.Comments, 2)
	assert.Equal(t, "carol", view.Comments[0].Author, "newest comment first")
	assert.Equal(t, "2024-06-01T08:00:00Z", view.CreatedAt)
}

func TestGetFeed_ManyFollowed(t *testing.T) {
	svc, s := newFeedService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")

	// More followed users than pool workers; everything must still arrive.
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range 20 {
		u := createUser(t, s, fmt.Sprintf("user-%02d", i), fmt.Sprintf("cook%02d", i))
		createRecipeAt(t, s, fmt.Sprintf("rcp-%02d", i), u.ID, "Recipe", base.Add(time.Duration(i)*time.Minute))
		follow(t, s, alice.ID, u.Ref())
	}

	feed, err := svc.GetFeed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 20)

	for i := 1; i < len(feed); i++ {
		assert.True(t, feed[i-1].CreatedAt >= feed[i].CreatedAt, "feed must be newest first")
	}
}
