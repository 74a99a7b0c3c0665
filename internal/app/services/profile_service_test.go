package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/inkwell/internal/app/models"
	"github.com/emre/inkwell/internal/pkg/apperrors"
)

func TestGetProfile(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	posts := newFakePostRepo(users, groups)
	follows := newFakeFollowRepo()
	service := NewProfileService(users, posts, follows, &fakeFileStorage{}, zerolog.Nop())

	author := users.addUser("leo")
	viewer := users.addUser("mila")
	posts.addPost(author.ID, nil, "one")
	posts.addPost(author.ID, nil, "two")
	_, err := follows.Create(context.Background(), followModel(viewer.ID, author.ID))
	require.NoError(t, err)
	_, err = follows.Create(context.Background(), followModel(author.ID, viewer.ID))
	require.NoError(t, err)

	profile, err := service.GetProfile(context.Background(), "leo", &viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo", profile.Author.Username)
	assert.Equal(t, int64(2), profile.PostCount)
	assert.Equal(t, int64(1), profile.FollowingCount)
	assert.True(t, profile.IsFollowing)

	anon, err := service.GetProfile(context.Background(), "leo", nil)
	require.NoError(t, err)
	assert.False(t, anon.IsFollowing)

	own, err := service.GetProfile(context.Background(), "leo", &author.ID)
	require.NoError(t, err)
	assert.False(t, own.IsFollowing)
}

func TestGetProfileUnknownUsername(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	posts := newFakePostRepo(users, groups)
	service := NewProfileService(users, posts, newFakeFollowRepo(), &fakeFileStorage{}, zerolog.Nop())

	_, err := service.GetProfile(context.Background(), "ghost", nil)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestDeleteAccountRemovesUserAndImages(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	posts := newFakePostRepo(users, groups)
	follows := newFakeFollowRepo()
	users.follows = follows
	files := &fakeFileStorage{}
	service := NewProfileService(users, posts, follows, files, zerolog.Nop())

	author := users.addUser("leo")
	imagePath := "posts/cat.png"
	withImage := posts.addPost(author.ID, nil, "with image")
	withImage.ImagePath = &imagePath
	posts.addPost(author.ID, nil, "text only")

	err := service.DeleteAccount(context.Background(), author.ID)
	require.NoError(t, err)

	_, err = users.GetByUsername(context.Background(), "leo")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Equal(t, []string{imagePath}, files.deleted)
}

func TestDeleteAccountCascades(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	posts := newFakePostRepo(users, groups)
	comments := newFakeCommentRepo(users)
	follows := newFakeFollowRepo()
	users.follows = follows
	service := NewProfileService(users, posts, follows, &fakeFileStorage{}, zerolog.Nop())
	feed := NewFeedService(posts, groups, users, follows, &fakeFileStorage{}, zerolog.Nop())

	author := users.addUser("leo")
	reader := users.addUser("mila")
	post := posts.addPost(author.ID, nil, "soon gone")
	keeper := posts.addPost(reader.ID, nil, "stays")
	_, err := comments.Create(context.Background(), &models.Comment{PostID: post.ID, AuthorID: reader.ID, Text: "on a doomed post"})
	require.NoError(t, err)
	_, err = comments.Create(context.Background(), &models.Comment{PostID: keeper.ID, AuthorID: author.ID, Text: "by the doomed author"})
	require.NoError(t, err)
	_, err = follows.Create(context.Background(), followModel(reader.ID, author.ID))
	require.NoError(t, err)
	_, err = follows.Create(context.Background(), followModel(author.ID, reader.ID))
	require.NoError(t, err)

	require.NoError(t, service.DeleteAccount(context.Background(), author.ID))

	global, err := feed.Global(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, global.Posts, 1)
	assert.Equal(t, "stays", global.Posts[0].Text)

	remaining, err := comments.ListByPostID(context.Background(), keeper.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	following, err := follows.Exists(context.Background(), reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)
	followedBack, err := follows.Exists(context.Background(), author.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, followedBack)
}

func TestDeleteAccountUnknownUser(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	posts := newFakePostRepo(users, groups)
	service := NewProfileService(users, posts, newFakeFollowRepo(), &fakeFileStorage{}, zerolog.Nop())

	err := service.DeleteAccount(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
