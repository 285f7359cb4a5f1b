package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raymondchung216/instacook/internal/dto"
)

// createRecipe posts a recipe and returns its view.
func (ts *testServer) createRecipe(t *testing.T, token, title string, tags ...string) dto.RecipeView {
	t.Helper()

	resp := ts.api.Post("/api/v1/recipes", bearer(token), map[string]any{
		"title":   title,
		"content": "Instructions for " + title,
		"tags":    tags,
	})
	require.Equal(t, http.StatusOK, resp.Code, "create recipe failed: %s", resp.Body.String())

	var envelope testEnvelope[dto.RecipeView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestCreateRecipe(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "alice")

	view := ts.createRecipe(t, token, "Shakshuka", "Breakfast", "eggs")

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Shakshuka", view.Title)
	assert.Equal(t, "alice", view.Contributor)
	assert.Equal(t, []string{"breakfast", "eggs"}, view.Tags)
	assert.Empty(t, view.Comments)
	assert.Zero(t, view.LikeCount)
}

func TestCreateRecipe_CreationTimeOverride(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "alice")

	resp := ts.api.Post("/api/v1/recipes", bearer(token), map[string]any{
		"title":      "Sourdough Starter",
		"content":    "Flour and water, fed daily.",
		"created_at": "2024-03-15T12:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[dto.RecipeView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "2024-03-15T12:00:00Z", envelope.Data.CreatedAt)
}

func TestUpdateRecipe_CreationTimeOverride(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "alice")

	view := ts.createRecipe(t, token, "Shakshuka")

	resp := ts.api.Patch("/api/v1/recipes/"+view.ID, bearer(token), map[string]any{
		"created_at": "2023-07-01T08:30:00Z",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[dto.RecipeView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "2023-07-01T08:30:00Z", envelope.Data.CreatedAt)
	assert.Equal(t, "Shakshuka", envelope.Data.Title)
}

func TestCreateRecipe_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/recipes", map[string]any{
		"title":   "Shakshuka",
		"content": "Eggs in tomato sauce",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetRecipe_IncludesLikers(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")
	bob := ts.registerUser(t, "bob")

	view := ts.createRecipe(t, alice, "Shakshuka")

	resp := ts.api.Post("/api/v1/recipes/"+view.ID+"/like", bearer(bob))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/recipes/" + view.ID)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[dto.RecipeView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data.LikeCount)
	assert.Equal(t, []string{"bob"}, envelope.Data.Likers)
}

func TestGetRecipe_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/recipes/rcp-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateRecipe_OnlyContributor(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")
	bob := ts.registerUser(t, "bob")

	view := ts.createRecipe(t, alice, "Shakshuka")

	resp := ts.api.Patch("/api/v1/recipes/"+view.ID, bearer(bob), map[string]any{
		"title": "Stolen Shakshuka",
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Patch("/api/v1/recipes/"+view.ID, bearer(alice), map[string]any{
		"title": "Improved Shakshuka",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[dto.RecipeView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "Improved Shakshuka", envelope.Data.Title)
}

func TestDeleteRecipe(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")

	view := ts.createRecipe(t, alice, "Shakshuka")

	resp := ts.api.Delete("/api/v1/recipes/"+view.ID, bearer(alice))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/recipes/" + view.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestToggleLike_Flips(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")
	bob := ts.registerUser(t, "bob")

	view := ts.createRecipe(t, alice, "Shakshuka")

	resp := ts.api.Post("/api/v1/recipes/"+view.ID+"/like", bearer(bob))
	require.Equal(t, http.StatusOK, resp.Code)

	// The toggle returns no state: re-read the recipe for the count.
	var envelope testEnvelope[dto.RecipeView]
	resp = ts.api.Get("/api/v1/recipes/" + view.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data.LikeCount)
	assert.Equal(t, []string{"bob"}, envelope.Data.Likers)

	resp = ts.api.Post("/api/v1/recipes/"+view.ID+"/like", bearer(bob))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/recipes/" + view.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Zero(t, envelope.Data.LikeCount)
	assert.Empty(t, envelope.Data.Likers)
}

func TestAddComment(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")
	bob := ts.registerUser(t, "bob")

	view := ts.createRecipe(t, alice, "Shakshuka")

	resp := ts.api.Post("/api/v1/recipes/"+view.ID+"/comments", bearer(bob), map[string]any{
		"content": "Loved it!",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[dto.CommentView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "bob", envelope.Data.Author)
	assert.Equal(t, "Loved it!", envelope.Data.Content)
	assert.Equal(t, view.ID, envelope.Data.RecipeID)

	// Comment shows up on the recipe.
	resp = ts.api.Get("/api/v1/recipes/" + view.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	var recipe testEnvelope[dto.RecipeView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &recipe))
	require.Len(t, recipe.Data.Comments, 1)
	assert.Equal(t, "bob", recipe.Data.Comments[0].Author)
}

func TestAddComment_EmptyContent(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")

	view := ts.createRecipe(t, alice, "Shakshuka")

	resp := ts.api.Post("/api/v1/recipes/"+view.ID+"/comments", bearer(alice), map[string]any{
		"content": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetUserRecipes(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")
	bob := ts.registerUser(t, "bob")

	ts.createRecipe(t, alice, "Shakshuka")
	ts.createRecipe(t, alice, "Falafel")
	ts.createRecipe(t, bob, "Ramen")

	resp := ts.api.Get("/api/v1/users/alice/recipes")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[RecipeListResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Recipes, 2)
	for _, r := range envelope.Data.Recipes {
		assert.Equal(t, "alice", r.Contributor)
	}
}

func TestGetUserRecipes_UnknownUser(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/ghost/recipes")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListRecipes(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")

	ts.createRecipe(t, alice, "Shakshuka")
	ts.createRecipe(t, alice, "Falafel")

	resp := ts.api.Get("/api/v1/recipes")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[RecipeListResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Recipes, 2)
}
