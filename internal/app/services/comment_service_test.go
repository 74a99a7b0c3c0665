package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/pkg/apperrors"
)

type commentFixture struct {
	users    *fakeUserRepo
	posts    *fakePostRepo
	comments *fakeCommentRepo
	service  CommentService
}

func newCommentFixture() *commentFixture {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	posts := newFakePostRepo(users, groups)
	comments := newFakeCommentRepo(users)
	return &commentFixture{
		users:    users,
		posts:    posts,
		comments: comments,
		service:  NewCommentService(comments, posts, users, zerolog.Nop()),
	}
}

func TestCreateComment(t *testing.T) {
	f := newCommentFixture()
	author := f.users.addUser("leo")
	commenter := f.users.addUser("mila")
	post := f.posts.addPost(author.ID, nil, "worth discussing")

	resp, err := f.service.Create(context.Background(), commenter.ID, post.ID, &dto.CreateCommentRequest{Text: "agreed"})
	require.NoError(t, err)
	assert.Equal(t, "agreed", resp.Text)
	assert.Equal(t, post.ID, resp.PostID)
	assert.Equal(t, "mila", resp.Author.Username)
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	f := newCommentFixture()
	commenter := f.users.addUser("mila")

	_, err := f.service.Create(context.Background(), commenter.ID, 404, &dto.CreateCommentRequest{Text: "hello?"})
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestCreateCommentEmptyTextRejected(t *testing.T) {
	f := newCommentFixture()
	author := f.users.addUser("leo")
	commenter := f.users.addUser("mila")
	post := f.posts.addPost(author.ID, nil, "quiet thread")

	_, err := f.service.Create(context.Background(), commenter.ID, post.ID, &dto.CreateCommentRequest{Text: "  \t "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	comments, err := f.service.ListByPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestListCommentsNewestFirst(t *testing.T) {
	f := newCommentFixture()
	author := f.users.addUser("leo")
	post := f.posts.addPost(author.ID, nil, "busy thread")

	for _, text := range []string{"first", "second", "third"} {
		_, err := f.service.Create(context.Background(), author.ID, post.ID, &dto.CreateCommentRequest{Text: text})
		require.NoError(t, err)
	}

	comments, err := f.service.ListByPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Text)
	assert.Equal(t, "first", comments[2].Text)
}

func TestListCommentsMissingPost(t *testing.T) {
	f := newCommentFixture()

	_, err := f.service.ListByPost(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestDeleteComment(t *testing.T) {
	f := newCommentFixture()
	author := f.users.addUser("leo")
	post := f.posts.addPost(author.ID, nil, "a post")

	created, err := f.service.Create(context.Background(), author.ID, post.ID, &dto.CreateCommentRequest{Text: "short-lived"})
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), author.ID, created.ID)
	require.NoError(t, err)

	remaining, err := f.service.ListByPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDeleteCommentByNonAuthor(t *testing.T) {
	f := newCommentFixture()
	author := f.users.addUser("leo")
	intruder := f.users.addUser("mila")
	post := f.posts.addPost(author.ID, nil, "a post")

	created, err := f.service.Create(context.Background(), author.ID, post.ID, &dto.CreateCommentRequest{Text: "keep out"})
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), intruder.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	remaining, err := f.service.ListByPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestDeleteMissingComment(t *testing.T) {
	f := newCommentFixture()
	user := f.users.addUser("leo")

	err := f.service.Delete(context.Background(), user.ID, 99)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}
