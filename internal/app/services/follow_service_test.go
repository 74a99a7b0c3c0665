package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/inkwell/internal/pkg/apperrors"
)

type followFixture struct {
	users   *fakeUserRepo
	follows *fakeFollowRepo
	service FollowService
}

func newFollowFixture() *followFixture {
	users := newFakeUserRepo()
	follows := newFakeFollowRepo()
	return &followFixture{
		users:   users,
		follows: follows,
		service: NewFollowService(follows, users, zerolog.Nop()),
	}
}

func TestFollowCreatesEdge(t *testing.T) {
	f := newFollowFixture()
	follower := f.users.addUser("mila")
	f.users.addUser("leo")

	err := f.service.Follow(context.Background(), follower.ID, "leo")
	require.NoError(t, err)

	following, err := f.service.IsFollowing(context.Background(), follower.ID, "leo")
	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollowUnknownUsername(t *testing.T) {
	f := newFollowFixture()
	follower := f.users.addUser("mila")

	err := f.service.Follow(context.Background(), follower.ID, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestSelfFollowIsSilentlySkipped(t *testing.T) {
	f := newFollowFixture()
	user := f.users.addUser("mila")

	err := f.service.Follow(context.Background(), user.ID, "mila")
	require.NoError(t, err)

	following, err := f.service.IsFollowing(context.Background(), user.ID, "mila")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestRepeatedFollowIsIdempotent(t *testing.T) {
	f := newFollowFixture()
	follower := f.users.addUser("mila")
	f.users.addUser("leo")

	require.NoError(t, f.service.Follow(context.Background(), follower.ID, "leo"))
	require.NoError(t, f.service.Follow(context.Background(), follower.ID, "leo"))

	ids, err := f.follows.FollowedIDs(context.Background(), follower.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestUnfollowIsIdempotent(t *testing.T) {
	f := newFollowFixture()
	follower := f.users.addUser("mila")
	f.users.addUser("leo")

	require.NoError(t, f.service.Follow(context.Background(), follower.ID, "leo"))
	require.NoError(t, f.service.Unfollow(context.Background(), follower.ID, "leo"))
	require.NoError(t, f.service.Unfollow(context.Background(), follower.ID, "leo"))

	following, err := f.service.IsFollowing(context.Background(), follower.ID, "leo")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowIsDirectional(t *testing.T) {
	f := newFollowFixture()
	mila := f.users.addUser("mila")
	leo := f.users.addUser("leo")

	require.NoError(t, f.service.Follow(context.Background(), mila.ID, "leo"))

	reverse, err := f.service.IsFollowing(context.Background(), leo.ID, "mila")
	require.NoError(t, err)
	assert.False(t, reverse)
}
