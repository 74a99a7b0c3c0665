package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emre/inkwell/internal/app/models"
	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/app/repositories"
	"github.com/emre/inkwell/internal/pkg/apperrors"
)

// CommentService handles commenting on posts
type CommentService interface {
	// Create attaches a comment to an existing post. The target post must
	// exist and the text must be non-empty after trimming.
	Create(ctx context.Context, authorID, postID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListByPost(ctx context.Context, postID int64) ([]dto.CommentResponse, error)
	// Delete removes a comment. Only its author may delete it.
	Delete(ctx context.Context, userID, commentID int64) error
}

// commentServiceImpl implements CommentService
type commentServiceImpl struct {
	commentRepo repositories.ICommentRepository
	postRepo    repositories.IPostRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repositories.ICommentRepository,
	postRepo repositories.IPostRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Create attaches a comment to a post
func (s *commentServiceImpl) Create(ctx context.Context, authorID, postID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.NewValidationError("text", "Comment text must not be empty")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}

	if _, err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error().Err(err).Int64("postId", postID).Msg("Failed to create comment")
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	comment.Author = author

	resp := dto.FromComment(comment)
	return &resp, nil
}

// ListByPost returns a post's comments newest-first
func (s *commentServiceImpl) ListByPost(ctx context.Context, postID int64) ([]dto.CommentResponse, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, dto.FromComment(&comments[i]))
	}

	return responses, nil
}

// Delete removes a comment after checking ownership
func (s *commentServiceImpl) Delete(ctx context.Context, userID, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != userID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		s.logger.Error().Err(err).Int64("commentId", commentID).Msg("Failed to delete comment")
		return err
	}

	return nil
}
