package domain

import "time"

// Tag is a global category label for recipes. Tags are shared across all
// users - no ownership model. They are looked up by ID set during enrichment
// and never mutated by the feed path.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTag creates a tag with the current time as its creation timestamp.
func NewTag(id, name string) *Tag {
	return &Tag{ID: id, Name: name, CreatedAt: time.Now()}
}
