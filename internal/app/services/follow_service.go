package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/emre/inkwell/internal/app/models"
	"github.com/emre/inkwell/internal/app/repositories"
	"github.com/emre/inkwell/internal/pkg/apperrors"
)

// FollowService manages subscription edges between a follower and an author.
// Follow and Unfollow are idempotent: repeating either request leaves the
// edge set unchanged and succeeds. A self-follow attempt is silently skipped.
type FollowService interface {
	Follow(ctx context.Context, followerID int64, followedUsername string) error
	Unfollow(ctx context.Context, followerID int64, followedUsername string) error
	IsFollowing(ctx context.Context, followerID int64, followedUsername string) (bool, error)
}

// followServiceImpl implements FollowService
type followServiceImpl struct {
	followRepo repositories.IFollowRepository
	userRepo   repositories.IUserRepository
	logger     zerolog.Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(
	followRepo repositories.IFollowRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) FollowService {
	return &followServiceImpl{
		followRepo: followRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Follow creates a subscription edge from followerID to the named author.
func (s *followServiceImpl) Follow(ctx context.Context, followerID int64, followedUsername string) error {
	followed, err := s.userRepo.GetByUsername(ctx, followedUsername)
	if err != nil {
		return err
	}

	if followed.ID == followerID {
		s.logger.Debug().Int64("userId", followerID).Msg("Self-follow attempt skipped")
		return nil
	}

	_, err = s.followRepo.Create(ctx, &models.Follow{FollowerID: followerID, FollowedID: followed.ID})
	if err != nil {
		// An edge that already exists is not an error for the caller.
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrSelfFollow) {
			return nil
		}
		s.logger.Error().Err(err).Int64("followerId", followerID).Str("username", followedUsername).Msg("Failed to create follow")
		return err
	}

	return nil
}

// Unfollow removes the subscription edge if it exists.
func (s *followServiceImpl) Unfollow(ctx context.Context, followerID int64, followedUsername string) error {
	followed, err := s.userRepo.GetByUsername(ctx, followedUsername)
	if err != nil {
		return err
	}

	_, err = s.followRepo.Delete(ctx, followerID, followed.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("followerId", followerID).Str("username", followedUsername).Msg("Failed to delete follow")
		return err
	}

	return nil
}

// IsFollowing reports whether followerID currently follows the named author.
func (s *followServiceImpl) IsFollowing(ctx context.Context, followerID int64, followedUsername string) (bool, error) {
	followed, err := s.userRepo.GetByUsername(ctx, followedUsername)
	if err != nil {
		return false, err
	}

	if followed.ID == followerID {
		return false, nil
	}

	return s.followRepo.Exists(ctx, followerID, followed.ID)
}
