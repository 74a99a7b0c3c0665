package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/inkwell/internal/pkg/apperrors"
)

func TestGetAllGroupsOrderedByTitle(t *testing.T) {
	groups := newFakeGroupRepo()
	service := NewGroupService(groups, zerolog.Nop())

	groups.addGroup("Travel notes", "travel-notes")
	groups.addGroup("General", "general")

	directory, err := service.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, directory.Groups, 2)
	assert.Equal(t, "General", directory.Groups[0].Title)
	assert.Equal(t, "Travel notes", directory.Groups[1].Title)
}

func TestGetGroupBySlug(t *testing.T) {
	groups := newFakeGroupRepo()
	service := NewGroupService(groups, zerolog.Nop())

	groups.addGroup("Travel notes", "travel-notes")

	group, err := service.GetBySlug(context.Background(), "travel-notes")
	require.NoError(t, err)
	assert.Equal(t, "Travel notes", group.Title)

	_, err = service.GetBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)
}

func TestDeleteGroupKeepsPostsUngrouped(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	posts := newFakePostRepo(users, groups)
	service := NewGroupService(groups, zerolog.Nop())

	author := users.addUser("leo")
	group := groups.addGroup("Travel notes", "travel-notes")
	post := posts.addPost(author.ID, &group.ID, "from the road")

	err := service.Delete(context.Background(), "travel-notes")
	require.NoError(t, err)

	_, err = service.GetBySlug(context.Background(), "travel-notes")
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)

	survivor, err := posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Nil(t, survivor.GroupID)
}

func TestDeleteGroupUnknownSlug(t *testing.T) {
	service := NewGroupService(newFakeGroupRepo(), zerolog.Nop())

	err := service.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)
}
