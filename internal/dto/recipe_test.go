package dto

import (
	"encoding/json/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raymondchung216/instacook/internal/domain"
)

func TestNewCommentView(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	view := NewCommentView(&domain.Comment{
		ID:        "cmt-1",
		Author:    "alice",
		RecipeID:  "rcp-1",
		Content:   "Delicious",
		CreatedAt: created,
	})

	assert.Equal(t, "alice", view.Author)
	assert.Equal(t, "rcp-1", view.RecipeID)
	assert.Equal(t, "Delicious", view.Content)
	assert.Equal(t, "2024-06-01T12:00:00Z", view.CreatedAt)
}

func TestCommentView_SerializationContract(t *testing.T) {
	view := NewCommentView(&domain.Comment{
		ID:        "cmt-1",
		Author:    "alice",
		RecipeID:  "rcp-1",
		Content:   "Delicious",
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	// Comment ids are internal; the view carries the recipe id instead.
	assert.NotContains(t, fields, "id")
	assert.Equal(t, "rcp-1", fields["recipe_id"])
	assert.Equal(t, "alice", fields["author"])
}
