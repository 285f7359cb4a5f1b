package domain

import (
	"slices"
	"time"
)

// Recipe represents a published recipe.
//
// TagIDs and CommentIDs are raw foreign-key lists resolved to display data
// by the enricher before anything leaves the service boundary. Likers holds
// usernames with set semantics - a username appears at most once.
type Recipe struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ContributorID string    `json:"contributor_id"`
	TagIDs        []string  `json:"tag_ids"`
	CommentIDs    []string  `json:"comment_ids"`
	Likers        []string  `json:"likers"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp to the current time.
func (r *Recipe) Touch() {
	r.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (r *Recipe) InitTimestamps() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}

// HasLiker reports whether the given username is in the liker set.
func (r *Recipe) HasLiker(username string) bool {
	return slices.Contains(r.Likers, username)
}

// ToggleLike flips the username's membership in the liker set and returns
// true if the user now likes the recipe. Adding a present value or removing
// an absent one is a no-op by construction: this is an exact set toggle.
func (r *Recipe) ToggleLike(username string) bool {
	if r.HasLiker(username) {
		r.Likers = slices.DeleteFunc(r.Likers, func(u string) bool {
			return u == username
		})
		return false
	}
	r.Likers = append(r.Likers, username)
	return true
}

// LikeCount returns the cardinality of the liker set.
func (r *Recipe) LikeCount() int {
	return len(r.Likers)
}

// AddComment appends a comment ID, preserving insertion order.
func (r *Recipe) AddComment(commentID string) {
	if !slices.Contains(r.CommentIDs, commentID) {
		r.CommentIDs = append(r.CommentIDs, commentID)
	}
}
