package domain

import "time"

// Comment is a single comment on a recipe. Comments are append-only; the
// recipe keeps the comment IDs and rendering sorts by recency.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"` // username, not user ID
	RecipeID  string    `json:"recipe_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
