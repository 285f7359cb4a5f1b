package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipe_ToggleLike(t *testing.T) {
	r := &Recipe{ID: "rcp-1", Likers: []string{"alice"}}

	// Removing a present liker
	liked := r.ToggleLike("alice")
	assert.False(t, liked)
	assert.Empty(t, r.Likers)

	// Adding it back
	liked = r.ToggleLike("alice")
	assert.True(t, liked)
	assert.Equal(t, []string{"alice"}, r.Likers)

	// Toggling again never duplicates
	r.ToggleLike("alice")
	r.ToggleLike("alice")
	assert.Equal(t, []string{"alice"}, r.Likers)
}

func TestRecipe_ToggleLike_IndependentUsers(t *testing.T) {
	r := &Recipe{ID: "rcp-1"}

	assert.True(t, r.ToggleLike("alice"))
	assert.True(t, r.ToggleLike("bob"))
	assert.Equal(t, 2, r.LikeCount())

	assert.False(t, r.ToggleLike("alice"))
	assert.Equal(t, []string{"bob"}, r.Likers)
}

func TestRecipe_AddComment_NoDuplicates(t *testing.T) {
	r := &Recipe{ID: "rcp-1"}

	r.AddComment("cmt-1")
	r.AddComment("cmt-2")
	r.AddComment("cmt-1")

	assert.Equal(t, []string{"cmt-1", "cmt-2"}, r.CommentIDs)
}
