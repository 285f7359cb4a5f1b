package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/errors"
)

func testUser(id, username string) *domain.User {
	u := &domain.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
	}
	u.InitTimestamps()
	return u
}

func TestEntity_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := testUser("user-1", "alice")
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestEntity_Get_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "user-missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestEntity_Create_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("user-1", "alice")))

	err := s.CreateUser(ctx, testUser("user-1", "bob"))
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
}

func TestEntity_Create_IndexConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("user-1", "alice")))

	// Same username, different ID
	err := s.CreateUser(ctx, testUser("user-2", "alice"))
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
}

func TestEntity_GetByIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("user-1", "alice")))

	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)

	// Email lookups are case-insensitive
	got, err = s.GetUserByEmail(ctx, "ALICE@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestEntity_GetByIDs_SkipsMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTag(ctx, &domain.Tag{ID: "tag-1", Name: "vegan", CreatedAt: time.Now()}))
	require.NoError(t, s.CreateTag(ctx, &domain.Tag{ID: "tag-2", Name: "dessert", CreatedAt: time.Now()}))

	tags, err := s.GetTagsByIDs(ctx, []string{"tag-1", "tag-gone", "tag-2"})
	require.NoError(t, err)
	require.Len(t, tags, 2)

	names := []string{tags[0].Name, tags[1].Name}
	assert.ElementsMatch(t, []string{"vegan", "dessert"}, names)
}

func TestEntity_Update_MaintainsIndexes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := testUser("user-1", "alice")
	require.NoError(t, s.CreateUser(ctx, user))

	user.Username = "alice2"
	require.NoError(t, s.UpdateUser(ctx, user))

	_, err := s.GetUserByUsername(ctx, "alice")
	assert.True(t, errors.Is(err, errors.ErrNotFound), "old index entry should be gone")

	got, err := s.GetUserByUsername(ctx, "alice2")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)
}

func TestEntity_Delete_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("user-1", "alice")))
	require.NoError(t, s.Users.Delete(ctx, "user-1"))
	require.NoError(t, s.Users.Delete(ctx, "user-1"), "second delete should be a no-op")

	_, err := s.GetUser(ctx, "user-1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestEntity_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("user-1", "alice")))
	require.NoError(t, s.CreateUser(ctx, testUser("user-2", "bob")))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestStore_CanceledContext(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetUser(ctx, "user-1")
	assert.Error(t, err)
}
