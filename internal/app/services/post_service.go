package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emre/inkwell/internal/app/models"
	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/app/repositories"
	"github.com/emre/inkwell/internal/pkg/apperrors"
	"github.com/emre/inkwell/internal/pkg/filestorage"
)

const postImageDir = "posts"

// PostService handles post authoring and retrieval
type PostService interface {
	Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest, image *multipart.FileHeader) (*dto.PostResponse, error)
	// Edit updates a post's text and group. Only the author may edit; any
	// other authenticated user gets apperrors.ErrPermissionDenied.
	Edit(ctx context.Context, actorID, postID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	GetDetail(ctx context.Context, postID int64) (*dto.PostDetailResponse, error)
	Delete(ctx context.Context, actorID, postID int64) error
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	postRepo    repositories.IPostRepository
	groupRepo   repositories.IGroupRepository
	commentRepo repositories.ICommentRepository
	files       filestorage.FileStorage
	logger      zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.IPostRepository,
	groupRepo repositories.IGroupRepository,
	commentRepo repositories.ICommentRepository,
	files filestorage.FileStorage,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		files:       files,
		logger:      logger,
	}
}

// resolveGroup validates an optional group reference and returns the group
// when one was requested.
func (s *postServiceImpl) resolveGroup(ctx context.Context, groupID *int64) (*models.Group, error) {
	if groupID == nil {
		return nil, nil
	}
	return s.groupRepo.GetByID(ctx, *groupID)
}

// Create publishes a new post for the authenticated author.
func (s *postServiceImpl) Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest, image *multipart.FileHeader) (*dto.PostResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.NewValidationError("text", "Post text must not be empty")
	}

	if _, err := s.resolveGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  req.GroupID,
	}

	if image != nil {
		imagePath, err := s.files.SaveFileWithPath(image, postImageDir)
		if err != nil {
			s.logger.Error().Err(err).Int64("authorId", authorID).Msg("Failed to store post image")
			return nil, apperrors.NewValidationError("image", "Could not store the uploaded image")
		}
		post.ImagePath = &imagePath
	}

	if _, err := s.postRepo.Create(ctx, post); err != nil {
		if post.ImagePath != nil {
			if delErr := s.files.DeleteFile(*post.ImagePath); delErr != nil {
				s.logger.Warn().Err(delErr).Str("path", *post.ImagePath).Msg("Failed to remove orphaned post image")
			}
		}
		return nil, err
	}

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromPost(created, s.imageURL(created.ImagePath))
	return &resp, nil
}

// Edit updates the text and group of an existing post.
func (s *postServiceImpl) Edit(ctx context.Context, actorID, postID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != actorID {
		return nil, apperrors.ErrPermissionDenied
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.NewValidationError("text", "Post text must not be empty")
	}

	if _, err := s.resolveGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = req.GroupID

	if err := s.postRepo.Update(ctx, post); err != nil {
		s.logger.Error().Err(err).Int64("postId", postID).Msg("Failed to update post")
		return nil, err
	}

	updated, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromPost(updated, s.imageURL(updated.ImagePath))
	return &resp, nil
}

// GetDetail retrieves a single post with its comments.
func (s *postServiceImpl) GetDetail(ctx context.Context, postID int64) (*dto.PostDetailResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		commentResponses = append(commentResponses, dto.FromComment(&comments[i]))
	}

	return &dto.PostDetailResponse{
		Post:     dto.FromPost(post, s.imageURL(post.ImagePath)),
		Comments: commentResponses,
	}, nil
}

// Delete removes a post and its comments. Only the author may delete.
func (s *postServiceImpl) Delete(ctx context.Context, actorID, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != actorID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		s.logger.Error().Err(err).Int64("postId", postID).Msg("Failed to delete post")
		return err
	}

	if post.ImagePath != nil {
		if delErr := s.files.DeleteFile(*post.ImagePath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", *post.ImagePath).Msg("Failed to remove deleted post image")
		}
	}

	return nil
}

func (s *postServiceImpl) imageURL(imagePath *string) *string {
	if imagePath == nil || *imagePath == "" {
		return nil
	}
	url := s.files.FileURL(*imagePath)
	return &url
}
