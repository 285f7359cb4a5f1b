package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/errors"
	"github.com/raymondchung216/instacook/internal/store"
)

func newRecipeService(t *testing.T) (*RecipeService, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	return NewRecipeService(s, dto.NewEnricher(s), nil, testLogger()), s
}

func TestCreateRecipe(t *testing.T) {
	svc, s := newRecipeService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")

	view, err := svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{
		Title:   "  Blueberry Pancakes ",
		Content: "Flour, eggs, blueberries.",
		Tags:    []string{"Breakfast", "breakfast", " vegan "},
	})
	require.NoError(t, err)

	assert.Equal(t, "Blueberry Pancakes", view.Title)
	assert.Equal(t, "alice", view.Contributor)
	assert.Equal(t, []string{"breakfast", "vegan"}, view.Tags, "names deduplicated and sorted")
	assert.Zero(t, view.LikeCount)

	user, err := s.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{view.ID}, user.Recipes)
}

func TestCreateRecipe_ReusesExistingTags(t *testing.T) {
	svc, s := newRecipeService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")

	first, err := svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{Title: "One", Content: "x", Tags: []string{"vegan"}})
	require.NoError(t, err)
	second, err := svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{Title: "Two", Content: "y", Tags: []string{"vegan"}})
	require.NoError(t, err)

	assert.Equal(t, first.Tags, second.Tags)

	tags, err := s.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1, "same name must map to one tag")
}

func TestCreateRecipe_BackdatedCreationTime(t *testing.T) {
	svc, s := newRecipeService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")

	imported := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	old, err := svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{
		Title:     "Sourdough Starter",
		Content:   "Flour and water, fed daily.",
		CreatedAt: &imported,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15T12:00:00Z", old.CreatedAt)

	_, err = svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{Title: "Fresh", Content: "x"})
	require.NoError(t, err)

	views, err := svc.GetRecipesByContributor(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Fresh", views[0].Title, "backdated recipe sorts behind recent ones")
	assert.Equal(t, "Sourdough Starter", views[1].Title)
}

func TestUpdateRecipe_MovesCreationTime(t *testing.T) {
	svc, s := newRecipeService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	view, err := svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{Title: "Pancakes", Content: "x"})
	require.NoError(t, err)

	when := time.Date(2023, 7, 1, 8, 30, 0, 0, time.UTC)
	updated, err := svc.UpdateRecipe(ctx, alice.ID, view.ID, UpdateRecipeInput{CreatedAt: &when})
	require.NoError(t, err)
	assert.Equal(t, "2023-07-01T08:30:00Z", updated.CreatedAt)
	assert.Equal(t, "Pancakes", updated.Title, "other fields untouched")

	recipe, err := s.GetRecipe(ctx, view.ID)
	require.NoError(t, err)
	assert.True(t, recipe.CreatedAt.Equal(when))
}

func TestGetRecipe_IncludesLikers(t *testing.T) {
	svc, s := newRecipeService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	view, err := svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{Title: "Pancakes", Content: "x"})
	require.NoError(t, err)

	_, err = s.ToggleRecipeLike(ctx, view.ID, "bob")
	require.NoError(t, err)

	got, err := svc.GetRecipe(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, got.Likers)
	assert.Equal(t, 1, got.LikeCount)
}

func TestGetRecipesByContributor(t *testing.T) {
	svc, s := newRecipeService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	createUser(t, s, "user-bob", "bob")

	_, err := svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{Title: "One", Content: "x"})
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{Title: "Two", Content: "y"})
	require.NoError(t, err)

	views, err := svc.GetRecipesByContributor(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = svc.GetRecipesByContributor(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, views)

	_, err = svc.GetRecipesByContributor(ctx, "ghost")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestUpdateRecipe_OwnershipEnforced(t *testing.T) {
	svc, s := newRecipeService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	bob := createUser(t, s, "user-bob", "bob")

	view, err := svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{Title: "Pancakes", Content: "x"})
	require.NoError(t, err)

	title := "Waffles"
	_, err = svc.UpdateRecipe(ctx, bob.ID, view.ID, UpdateRecipeInput{Title: &title})
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	updated, err := svc.UpdateRecipe(ctx, alice.ID, view.ID, UpdateRecipeInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Waffles", updated.Title)
}

func TestDeleteRecipe_OwnershipEnforced(t *testing.T) {
	svc, s := newRecipeService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	bob := createUser(t, s, "user-bob", "bob")

	view, err := svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{Title: "Pancakes", Content: "x"})
	require.NoError(t, err)

	err = svc.DeleteRecipe(ctx, bob.ID, view.ID)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	require.NoError(t, svc.DeleteRecipe(ctx, alice.ID, view.ID))

	_, err = svc.GetRecipe(ctx, view.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	user, err := s.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, user.Recipes)
}

func TestToggleLike(t *testing.T) {
	svc, s := newRecipeService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	view, err := svc.CreateRecipe(ctx, alice.ID, CreateRecipeInput{Title: "Pancakes", Content: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.ToggleLike(ctx, "bob", view.ID))

	recipe, err := s.GetRecipe(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, recipe.Likers)

	require.NoError(t, svc.ToggleLike(ctx, "bob", view.ID))

	recipe, err = s.GetRecipe(ctx, view.ID)
	require.NoError(t, err)
	assert.Empty(t, recipe.Likers)

	err = svc.ToggleLike(ctx, "bob", "rcp-gone")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
