// Package domain contains the core entities for the InstaCook recipe-sharing service.
package domain

import (
	"slices"
	"time"
)

// UserRef is a weak reference to another user: an ID for lookup plus a
// denormalized username for display. It carries no ownership - the referenced
// user's authoritative state (including their recipe list) must always be
// re-fetched from the store.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// User represents a registered account.
//
// Recipes holds the IDs of recipes this user contributed, in insertion order.
// The recipe itself points back via ContributorID; deleting a recipe must
// remove its ID from this list in the same store transaction.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	DisplayName  string    `json:"display_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Recipes      []string  `json:"recipes"`
	Following    []UserRef `json:"following"`
}

// Touch updates the UpdatedAt timestamp to the current time.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new user.
func (u *User) InitTimestamps() {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
}

// IsFollowing reports whether the user follows the user with the given ID.
func (u *User) IsFollowing(userID string) bool {
	return slices.ContainsFunc(u.Following, func(ref UserRef) bool {
		return ref.ID == userID
	})
}

// Follow adds a weak reference to the followed user.
// Returns false if the user was already followed (no duplicate entries).
func (u *User) Follow(ref UserRef) bool {
	if u.IsFollowing(ref.ID) {
		return false
	}
	u.Following = append(u.Following, ref)
	return true
}

// Unfollow removes the reference to the given user.
// Returns false if the user was not followed.
func (u *User) Unfollow(userID string) bool {
	before := len(u.Following)
	u.Following = slices.DeleteFunc(u.Following, func(ref UserRef) bool {
		return ref.ID == userID
	})
	return len(u.Following) != before
}

// AddRecipe appends a recipe ID to the owned list, preserving insertion order.
func (u *User) AddRecipe(recipeID string) {
	if !slices.Contains(u.Recipes, recipeID) {
		u.Recipes = append(u.Recipes, recipeID)
	}
}

// RemoveRecipe removes a recipe ID from the owned list.
// Returns false if the ID was not present.
func (u *User) RemoveRecipe(recipeID string) bool {
	before := len(u.Recipes)
	u.Recipes = slices.DeleteFunc(u.Recipes, func(id string) bool {
		return id == recipeID
	})
	return len(u.Recipes) != before
}

// Ref returns a weak reference to this user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username}
}

// Name returns the best available name to display for the user.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
