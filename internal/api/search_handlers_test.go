package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raymondchung216/instacook/internal/search"
)

func TestSearchRecipes(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")

	ts.createRecipe(t, alice, "Blueberry Pancakes", "breakfast")
	ts.createRecipe(t, alice, "Miso Ramen", "dinner")

	resp := ts.api.Get("/api/v1/search?q=pancakes")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[search.Result]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Hits, 1)
	assert.Equal(t, "Blueberry Pancakes", envelope.Data.Hits[0].Title)
}

func TestSearchRecipes_TagFilter(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerUser(t, "alice")

	ts.createRecipe(t, alice, "Blueberry Pancakes", "breakfast")
	ts.createRecipe(t, alice, "Miso Ramen", "dinner")

	resp := ts.api.Get("/api/v1/search?tag=dinner")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[search.Result]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Hits, 1)
	assert.Equal(t, "Miso Ramen", envelope.Data.Hits[0].Title)
}

func TestSearchRecipes_NoMatches(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/search?q=nothing")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[search.Result]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Hits)
}
