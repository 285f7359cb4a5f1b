package service

import (
	"context"
	"log/slog"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/errors"
	"github.com/raymondchung216/instacook/internal/store"
)

// SocialService manages the follow graph.
type SocialService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSocialService creates a new social service.
func NewSocialService(store *store.Store, logger *slog.Logger) *SocialService {
	return &SocialService{
		store:  store,
		logger: logger,
	}
}

// Follow adds targetUsername to userID's follow list. Following someone
// already followed is a no-op; following yourself is rejected.
func (s *SocialService) Follow(ctx context.Context, userID, targetUsername string) error {
	target, err := s.store.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if target.ID == userID {
		return errors.Validation("cannot follow yourself")
	}

	return s.store.MutateUser(ctx, userID, func(u *domain.User) error {
		if u.Follow(target.Ref()) {
			s.logger.Info("user followed", "user_id", userID, "target", targetUsername)
		}
		return nil
	})
}

// GetProfile returns the user with the given username for public display.
// Callers must strip private fields before the result leaves the API.
func (s *SocialService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	return s.store.GetUserByUsername(ctx, username)
}

// Unfollow removes targetUsername from userID's follow list. Unfollowing
// someone not followed is a no-op.
func (s *SocialService) Unfollow(ctx context.Context, userID, targetUsername string) error {
	target, err := s.store.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}

	return s.store.MutateUser(ctx, userID, func(u *domain.User) error {
		if u.Unfollow(target.ID) {
			s.logger.Info("user unfollowed", "user_id", userID, "target", targetUsername)
		}
		return nil
	})
}

// GetFollowing returns the accounts userID follows.
func (s *SocialService) GetFollowing(ctx context.Context, userID string) ([]domain.UserRef, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Following == nil {
		return []domain.UserRef{}, nil
	}
	return user.Following, nil
}
