package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeed(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")
	bob := ts.registerUser(t, "bob")
	carol := ts.registerUser(t, "carol")

	ts.createRecipe(t, bob, "Ramen")
	ts.createRecipe(t, carol, "Tacos")
	ts.createRecipe(t, alice, "Shakshuka") // own recipe, must not appear

	resp := ts.api.Post("/api/v1/users/bob/follow", bearer(alice))
	require.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Post("/api/v1/users/carol/follow", bearer(alice))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/feed", bearer(alice))
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[FeedResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Recipes, 2)
	titles := []string{envelope.Data.Recipes[0].Title, envelope.Data.Recipes[1].Title}
	assert.ElementsMatch(t, []string{"Ramen", "Tacos"}, titles)
	for _, r := range envelope.Data.Recipes {
		assert.NotEqual(t, "Shakshuka", r.Title)
		assert.Empty(t, r.Likers, "feed entries do not expose likers")
	}
}

func TestGetFeed_EmptyWhenFollowingNobody(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")

	resp := ts.api.Get("/api/v1/feed", bearer(alice))
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[FeedResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Recipes)
}

func TestGetFeed_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/feed")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
