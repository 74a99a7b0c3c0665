package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/inkwell/internal/pkg/apperrors"
)

type feedFixture struct {
	users   *fakeUserRepo
	groups  *fakeGroupRepo
	posts   *fakePostRepo
	follows *fakeFollowRepo
	service FeedService
}

func newFeedFixture() *feedFixture {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	posts := newFakePostRepo(users, groups)
	follows := newFakeFollowRepo()
	service := NewFeedService(posts, groups, users, follows, &fakeFileStorage{}, zerolog.Nop())
	return &feedFixture{users: users, groups: groups, posts: posts, follows: follows, service: service}
}

func TestGlobalListingOrdersNewestFirst(t *testing.T) {
	f := newFeedFixture()
	author := f.users.addUser("leo")
	for i := 1; i <= 3; i++ {
		f.posts.addPost(author.ID, nil, fmt.Sprintf("post %d", i))
	}

	result, err := f.service.Global(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Posts, 3)
	assert.Equal(t, "post 3", result.Posts[0].Text)
	assert.Equal(t, "post 2", result.Posts[1].Text)
	assert.Equal(t, "post 1", result.Posts[2].Text)
	assert.Equal(t, author.Username, result.Posts[0].Author.Username)
}

func TestGlobalListingPageSaturation(t *testing.T) {
	f := newFeedFixture()
	author := f.users.addUser("leo")
	for i := 0; i < 25; i++ {
		f.posts.addPost(author.ID, nil, fmt.Sprintf("post %d", i))
	}

	tests := []struct {
		name          string
		page          int
		wantPage      int
		wantPostCount int
	}{
		{"first page", 1, 1, 10},
		{"last page", 3, 3, 5},
		{"past the end clamps to last", 99, 3, 5},
		{"zero clamps to first", 0, 1, 10},
		{"negative clamps to first", -5, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.service.Global(context.Background(), tt.page, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, result.PageInfo.CurrentPage)
			assert.Equal(t, 3, result.PageInfo.TotalPages)
			assert.Equal(t, int64(25), result.PageInfo.TotalItems)
			assert.Len(t, result.Posts, tt.wantPostCount)
		})
	}
}

func TestGlobalListingEmpty(t *testing.T) {
	f := newFeedFixture()

	result, err := f.service.Global(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Posts)
	assert.Equal(t, 1, result.PageInfo.CurrentPage)
	assert.Equal(t, 1, result.PageInfo.TotalPages)
	assert.False(t, result.PageInfo.HasNext)
	assert.False(t, result.PageInfo.HasPrevious)
}

func TestGroupListingFiltersByGroup(t *testing.T) {
	f := newFeedFixture()
	author := f.users.addUser("leo")
	travel := f.groups.addGroup("Travel", "travel")
	other := f.groups.addGroup("Cooking", "cooking")

	f.posts.addPost(author.ID, &travel.ID, "in travel")
	f.posts.addPost(author.ID, &other.ID, "in cooking")
	f.posts.addPost(author.ID, nil, "ungrouped")

	result, err := f.service.ByGroup(context.Background(), "travel", 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "in travel", result.Posts[0].Text)
	assert.Equal(t, "Travel", result.Group.Title)
}

func TestGroupListingUnknownSlug(t *testing.T) {
	f := newFeedFixture()

	_, err := f.service.ByGroup(context.Background(), "no-such-group", 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)
}

func TestAuthorListingUnknownUsername(t *testing.T) {
	f := newFeedFixture()

	_, err := f.service.ByAuthor(context.Background(), "ghost", nil, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAuthorListingReportsFollowState(t *testing.T) {
	f := newFeedFixture()
	author := f.users.addUser("leo")
	viewer := f.users.addUser("mila")
	f.posts.addPost(author.ID, nil, "hello")
	_, err := f.follows.Create(context.Background(), followModel(viewer.ID, author.ID))
	require.NoError(t, err)

	result, err := f.service.ByAuthor(context.Background(), "leo", &viewer.ID, 1, 10)
	require.NoError(t, err)
	assert.True(t, result.IsFollowing)
	require.Len(t, result.Posts, 1)

	anon, err := f.service.ByAuthor(context.Background(), "leo", nil, 1, 10)
	require.NoError(t, err)
	assert.False(t, anon.IsFollowing)
}

func TestFollowedListingOnlyIncludesFollowedAuthors(t *testing.T) {
	f := newFeedFixture()
	viewer := f.users.addUser("mila")
	followed := f.users.addUser("leo")
	stranger := f.users.addUser("nils")

	f.posts.addPost(followed.ID, nil, "from leo")
	f.posts.addPost(stranger.ID, nil, "from nils")
	_, err := f.follows.Create(context.Background(), followModel(viewer.ID, followed.ID))
	require.NoError(t, err)

	result, err := f.service.ByFollowed(context.Background(), viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "from leo", result.Posts[0].Text)
}

func TestFollowedListingEmptyWhenFollowingNobody(t *testing.T) {
	f := newFeedFixture()
	viewer := f.users.addUser("mila")
	author := f.users.addUser("leo")
	f.posts.addPost(author.ID, nil, "unseen")

	result, err := f.service.ByFollowed(context.Background(), viewer.ID, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Posts)
	assert.Equal(t, 1, result.PageInfo.CurrentPage)
	assert.Equal(t, int64(0), result.PageInfo.TotalItems)
}

func TestFollowedListingUpdatesAfterUnfollow(t *testing.T) {
	f := newFeedFixture()
	viewer := f.users.addUser("mila")
	author := f.users.addUser("leo")
	f.posts.addPost(author.ID, nil, "from leo")
	_, err := f.follows.Create(context.Background(), followModel(viewer.ID, author.ID))
	require.NoError(t, err)

	before, err := f.service.ByFollowed(context.Background(), viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, before.Posts, 1)

	_, err = f.follows.Delete(context.Background(), viewer.ID, author.ID)
	require.NoError(t, err)

	after, err := f.service.ByFollowed(context.Background(), viewer.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, after.Posts)
}
