package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/app/repositories"
	"github.com/emre/inkwell/internal/pkg/filestorage"
)

// ProfileService assembles author profile pages
type ProfileService interface {
	// GetProfile resolves a profile by username. viewerID is nil for
	// anonymous viewers; IsFollowing is always false for them.
	GetProfile(ctx context.Context, username string, viewerID *int64) (*dto.ProfileResponse, error)
	// DeleteAccount removes the user together with their posts, comments
	// and follow edges, and cleans up any post images on disk.
	DeleteAccount(ctx context.Context, userID int64) error
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	userRepo   repositories.IUserRepository
	postRepo   repositories.IPostRepository
	followRepo repositories.IFollowRepository
	files      filestorage.FileStorage
	logger     zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	userRepo repositories.IUserRepository,
	postRepo repositories.IPostRepository,
	followRepo repositories.IFollowRepository,
	files filestorage.FileStorage,
	logger zerolog.Logger,
) ProfileService {
	return &profileServiceImpl{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
		files:      files,
		logger:     logger,
	}
}

// GetProfile assembles the profile payload for an author
func (s *profileServiceImpl) GetProfile(ctx context.Context, username string, viewerID *int64) (*dto.ProfileResponse, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	postCount, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("Failed to count author posts")
		return nil, err
	}

	followingCount, err := s.followRepo.CountByFollower(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != nil && *viewerID != author.ID {
		isFollowing, err = s.followRepo.Exists(ctx, *viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ProfileResponse{
		Author:         dto.FromUserBasic(author),
		PostCount:      postCount,
		FollowingCount: followingCount,
		IsFollowing:    isFollowing,
		JoinedAt:       author.CreatedAt,
	}, nil
}

// DeleteAccount removes a user and everything they own. Image files are
// removed after the rows; a failed file removal is logged, not fatal.
func (s *profileServiceImpl) DeleteAccount(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	count, err := s.postRepo.Count(ctx, repositories.PostFilter{AuthorID: &userID})
	if err != nil {
		return err
	}
	var imagePaths []string
	if count > 0 {
		posts, err := s.postRepo.List(ctx, repositories.PostFilter{AuthorID: &userID}, 0, int(count))
		if err != nil {
			return err
		}
		for i := range posts {
			if posts[i].ImagePath != nil {
				imagePaths = append(imagePaths, *posts[i].ImagePath)
			}
		}
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to delete account")
		return err
	}

	for _, path := range imagePaths {
		if err := s.files.DeleteFile(path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove post image")
		}
	}

	s.logger.Info().Int64("userID", userID).Str("username", user.Username).Msg("Account deleted")
	return nil
}
