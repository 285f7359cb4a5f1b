// Package dto provides the client-facing view models for recipes and comments.
//
// Views are fully denormalized: every foreign id on the domain model is
// resolved to display data before it crosses the API boundary. A RecipeView
// never carries raw tag, comment, or contributor ids - only names, rendered
// comments, and the contributor's username.
package dto

import (
	"time"

	"github.com/raymondchung216/instacook/internal/domain"
)

// CommentView is the client-facing representation of a comment. The raw
// comment id stays internal - ordering ties are broken on it before
// projection, but it never serializes.
type CommentView struct {
	Author    string `json:"author"`
	RecipeID  string `json:"recipe_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"` // RFC 3339, UTC
}

// RecipeView is the client-facing representation of a recipe.
//
// Tags are resolved names sorted alphabetically; Comments are sorted newest
// first. Likers is only populated on single-recipe reads - list and feed
// responses carry the count alone.
type RecipeView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Contributor string        `json:"contributor"` // username, not id
	CreatedAt   string        `json:"created_at"`  // RFC 3339, UTC
	UpdatedAt   string        `json:"updated_at"`
	LikeCount   int           `json:"like_count"`
	Likers      []string      `json:"likers,omitempty"`
	Tags        []string      `json:"tags"`
	Comments    []CommentView `json:"comments"`
}

// NewCommentView converts a domain comment to its client representation.
func NewCommentView(c *domain.Comment) CommentView {
	return CommentView{
		Author:    c.Author,
		RecipeID:  c.RecipeID,
		Content:   c.Content,
		CreatedAt: formatTime(c.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
