package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/inkwell/internal/app/models"
	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/app/repositories"
	"github.com/emre/inkwell/internal/pkg/filestorage"
	"github.com/emre/inkwell/internal/pkg/helpers"
)

// FeedService assembles the four post listings. Every listing shares the same
// base sequence (posts newest-first, id-descending on ties) and the same
// saturating pagination: an out-of-range page clamps to the first or last
// page instead of failing.
type FeedService interface {
	Global(ctx context.Context, page, size int) (*dto.PostListResponse, error)
	ByGroup(ctx context.Context, slug string, page, size int) (*dto.GroupPostsResponse, error)
	ByAuthor(ctx context.Context, username string, viewerID *int64, page, size int) (*dto.ProfilePostsResponse, error)
	ByFollowed(ctx context.Context, viewerID int64, page, size int) (*dto.PostListResponse, error)
}

// feedServiceImpl implements FeedService
type feedServiceImpl struct {
	postRepo   repositories.IPostRepository
	groupRepo  repositories.IGroupRepository
	userRepo   repositories.IUserRepository
	followRepo repositories.IFollowRepository
	files      filestorage.FileStorage
	logger     zerolog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(
	postRepo repositories.IPostRepository,
	groupRepo repositories.IGroupRepository,
	userRepo repositories.IUserRepository,
	followRepo repositories.IFollowRepository,
	files filestorage.FileStorage,
	logger zerolog.Logger,
) FeedService {
	return &feedServiceImpl{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		files:      files,
		logger:     logger,
	}
}

// assemble runs the shared listing pipeline: count, clamp the requested page,
// fetch one page, convert to response DTOs.
func (s *feedServiceImpl) assemble(ctx context.Context, filter repositories.PostFilter, page, size int) ([]dto.PostResponse, dto.PageInfo, error) {
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, dto.PageInfo{}, err
	}

	clampedPage, _ := helpers.ClampPage(page, size, total)
	offset, limit := helpers.CalculateOffsetLimit(clampedPage, size)

	posts, err := s.postRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, dto.PageInfo{}, err
	}

	return s.toResponses(posts), helpers.NewPageInfo(total, clampedPage, limit), nil
}

func (s *feedServiceImpl) toResponses(posts []models.Post) []dto.PostResponse {
	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, dto.FromPost(&posts[i], s.imageURL(posts[i].ImagePath)))
	}
	return responses
}

func (s *feedServiceImpl) imageURL(imagePath *string) *string {
	if imagePath == nil || *imagePath == "" {
		return nil
	}
	url := s.files.FileURL(*imagePath)
	return &url
}

// Global assembles one page of the unfiltered listing
func (s *feedServiceImpl) Global(ctx context.Context, page, size int) (*dto.PostListResponse, error) {
	posts, pageInfo, err := s.assemble(ctx, repositories.PostFilter{}, page, size)
	if err != nil {
		s.logger.Error().Err(err).Int("page", page).Msg("Failed to assemble global listing")
		return nil, err
	}

	return &dto.PostListResponse{Posts: posts, PageInfo: pageInfo}, nil
}

// ByGroup assembles one page of a group's posts. The slug must resolve to an
// existing group.
func (s *feedServiceImpl) ByGroup(ctx context.Context, slug string, page, size int) (*dto.GroupPostsResponse, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	posts, pageInfo, err := s.assemble(ctx, repositories.PostFilter{GroupID: &group.ID}, page, size)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("Failed to assemble group listing")
		return nil, err
	}

	return &dto.GroupPostsResponse{
		Group:    dto.FromGroup(group),
		Posts:    posts,
		PageInfo: pageInfo,
	}, nil
}

// ByAuthor assembles one page of an author's posts along with the viewer's
// follow state. viewerID is nil for anonymous viewers.
func (s *feedServiceImpl) ByAuthor(ctx context.Context, username string, viewerID *int64, page, size int) (*dto.ProfilePostsResponse, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, pageInfo, err := s.assemble(ctx, repositories.PostFilter{AuthorID: &author.ID}, page, size)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("Failed to assemble author listing")
		return nil, err
	}

	isFollowing := false
	if viewerID != nil && *viewerID != author.ID {
		isFollowing, err = s.followRepo.Exists(ctx, *viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ProfilePostsResponse{
		Author:      dto.FromUserBasic(author),
		IsFollowing: isFollowing,
		Posts:       posts,
		PageInfo:    pageInfo,
	}, nil
}

// ByFollowed assembles one page of posts from the authors the viewer follows.
// A viewer who follows nobody gets an empty page, not an error.
func (s *feedServiceImpl) ByFollowed(ctx context.Context, viewerID int64, page, size int) (*dto.PostListResponse, error) {
	followedIDs, err := s.followRepo.FollowedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	if len(followedIDs) == 0 {
		return &dto.PostListResponse{
			Posts:    []dto.PostResponse{},
			PageInfo: helpers.NewPageInfo(0, page, size),
		}, nil
	}

	posts, pageInfo, err := s.assemble(ctx, repositories.PostFilter{AuthorIn: followedIDs}, page, size)
	if err != nil {
		s.logger.Error().Err(err).Int64("viewerId", viewerID).Msg("Failed to assemble subscription listing")
		return nil, err
	}

	return &dto.PostListResponse{Posts: posts, PageInfo: pageInfo}, nil
}
