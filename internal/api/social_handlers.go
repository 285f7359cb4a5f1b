package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/raymondchung216/instacook/internal/color"
	"github.com/raymondchung216/instacook/internal/domain"
)

func (s *Server) registerSocialRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "followUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{username}/follow",
		Summary:     "Follow user",
		Description: "Adds the given user to the authenticated user's following list",
		Tags:        []string{"Social"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleFollow)

	huma.Register(s.api, huma.Operation{
		OperationID: "unfollowUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{username}/follow",
		Summary:     "Unfollow user",
		Description: "Removes the given user from the authenticated user's following list. Idempotent.",
		Tags:        []string{"Social"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnfollow)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{username}",
		Summary:     "Get public profile",
		Description: "Returns a user's public profile by username",
		Tags:        []string{"Social"},
	}, s.handleGetUserProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFollowing",
		Method:      http.MethodGet,
		Path:        "/api/v1/following",
		Summary:     "List followed users",
		Description: "Returns the users the authenticated user follows",
		Tags:        []string{"Social"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetFollowing)
}

// AuthedUsernameInput identifies a target user and carries the auth header.
type AuthedUsernameInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
	Username      string `path:"username" doc:"Target username"`
}

// UsernamePathInput identifies a user by username.
type UsernamePathInput struct {
	Username string `path:"username" doc:"Username"`
}

// ProfileResponse is a user's public profile. It never carries the email or
// anything else private.
type ProfileResponse struct {
	Username       string `json:"username" doc:"Username"`
	DisplayName    string `json:"display_name,omitempty" doc:"Display name"`
	AvatarColor    string `json:"avatar_color" doc:"Deterministic avatar color (hex)"`
	CreatedAt      string `json:"created_at" doc:"Account creation timestamp (RFC 3339)"`
	RecipeCount    int    `json:"recipe_count" doc:"Number of published recipes"`
	FollowingCount int    `json:"following_count" doc:"Number of followed users"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// FollowingResponse contains the authenticated user's following list.
type FollowingResponse struct {
	Following []domain.UserRef `json:"following" doc:"Followed users"`
}

// FollowingOutput wraps the following response for Huma.
type FollowingOutput struct {
	Body FollowingResponse
}

func (s *Server) handleFollow(ctx context.Context, input *AuthedUsernameInput) (*MessageOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Social.Follow(ctx, user.ID, input.Username); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Following " + input.Username}}, nil
}

func (s *Server) handleUnfollow(ctx context.Context, input *AuthedUsernameInput) (*MessageOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Social.Unfollow(ctx, user.ID, input.Username); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Unfollowed " + input.Username}}, nil
}

func (s *Server) handleGetUserProfile(ctx context.Context, input *UsernamePathInput) (*ProfileOutput, error) {
	user, err := s.services.Social.GetProfile(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: ProfileResponse{
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		AvatarColor:    color.ForUsername(user.Username),
		CreatedAt:      user.CreatedAt.UTC().Format(timeFormat),
		RecipeCount:    len(user.Recipes),
		FollowingCount: len(user.Following),
	}}, nil
}

func (s *Server) handleGetFollowing(ctx context.Context, input *AuthInput) (*FollowingOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	following, err := s.services.Social.GetFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &FollowingOutput{Body: FollowingResponse{Following: following}}, nil
}
