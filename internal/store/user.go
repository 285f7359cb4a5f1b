package store

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/errors"
)

// CreateUser creates a new user. Username and email must be unique;
// violations surface as ErrAlreadyExists through the entity indexes.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	return s.Users.Create(ctx, user.ID, user)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("user %q not found", id)
		}
		return nil, err
	}
	return user, nil
}

// GetUsersByIDs retrieves multiple users in a single transaction.
// Missing IDs are skipped.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	return s.Users.GetByIDs(ctx, ids)
}

// GetUserByUsername retrieves a user by their unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.Users.GetByIndex(ctx, "username", username)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("user %q not found", username)
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email (case-insensitive).
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.Users.GetByIndex(ctx, "email", email)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFound("no user with that email")
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser replaces a user's stored state, maintaining indexes.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	user.Touch()
	return s.Users.Update(ctx, user.ID, user)
}

// MutateUser applies fn to the current stored user inside a single
// transaction with optimistic retry. This is the required discipline for
// follow-list and owned-recipe-list edits, which a user can race from two
// sessions. fn must not change username or email - those carry unique
// indexes that this fast path does not maintain.
func (s *Store) MutateUser(ctx context.Context, userID string, fn func(*domain.User) error) error {
	key := userPrefix + userID

	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		var user domain.User
		if err := getJSON(txn, key, &user); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.NotFoundf("user %q not found", userID)
			}
			return err
		}

		if err := fn(&user); err != nil {
			return err
		}

		user.Touch()
		return setJSON(txn, key, &user)
	})
}

// ListUsers returns all users.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0)
	for user, err := range s.Users.List(ctx) {
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
