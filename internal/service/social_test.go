package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raymondchung216/instacook/internal/errors"
	"github.com/raymondchung216/instacook/internal/store"
)

func newSocialService(t *testing.T) (*SocialService, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	return NewSocialService(s, testLogger()), s
}

func TestFollowAndUnfollow(t *testing.T) {
	svc, s := newSocialService(t)
	ctx := context.Background()

	alice := createUser(t, s, "user-alice", "alice")
	createUser(t, s, "user-bob", "bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, "bob"))

	following, err := svc.GetFollowing(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "user-bob", following[0].ID)
	assert.Equal(t, "bob", following[0].Username)

	// Following again is a no-op, not an error
	require.NoError(t, svc.Follow(ctx, alice.ID, "bob"))
	following, err = svc.GetFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, following, 1)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, "bob"))
	following, err = svc.GetFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, following)

	// Unfollowing someone not followed is a no-op
	require.NoError(t, svc.Unfollow(ctx, alice.ID, "bob"))
}

func TestFollow_Self(t *testing.T) {
	svc, s := newSocialService(t)

	alice := createUser(t, s, "user-alice", "alice")

	err := svc.Follow(context.Background(), alice.ID, "alice")
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestFollow_UnknownTarget(t *testing.T) {
	svc, s := newSocialService(t)

	alice := createUser(t, s, "user-alice", "alice")

	err := svc.Follow(context.Background(), alice.ID, "ghost")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
