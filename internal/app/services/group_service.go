package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/app/repositories"
)

// GroupService exposes the group directory
type GroupService interface {
	GetAll(ctx context.Context) (*dto.GroupListResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.GroupResponse, error)
	// Delete removes a group. Posts published to it survive and become ungrouped.
	Delete(ctx context.Context, slug string) error
}

// groupServiceImpl implements GroupService
type groupServiceImpl struct {
	groupRepo repositories.IGroupRepository
	logger    zerolog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repositories.IGroupRepository, logger zerolog.Logger) GroupService {
	return &groupServiceImpl{
		groupRepo: groupRepo,
		logger:    logger,
	}
}

// GetAll returns every group ordered by title
func (s *groupServiceImpl) GetAll(ctx context.Context) (*dto.GroupListResponse, error) {
	groups, err := s.groupRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list groups")
		return nil, err
	}

	responses := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		responses = append(responses, dto.FromGroup(&groups[i]))
	}

	return &dto.GroupListResponse{Groups: responses}, nil
}

// GetBySlug returns a single group
func (s *groupServiceImpl) GetBySlug(ctx context.Context, slug string) (*dto.GroupResponse, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp := dto.FromGroup(group)
	return &resp, nil
}

// Delete removes a group by slug
func (s *groupServiceImpl) Delete(ctx context.Context, slug string) error {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.groupRepo.Delete(ctx, group.ID); err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("Failed to delete group")
		return err
	}

	s.logger.Info().Str("slug", slug).Msg("Group deleted")
	return nil
}
