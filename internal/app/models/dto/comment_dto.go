package dto

import (
	"time"

	"github.com/emre/inkwell/internal/app/models"
)

// CreateCommentRequest carries the authoring form for a new comment
type CreateCommentRequest struct {
	Text string `form:"text" json:"text" binding:"required"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID        int64             `json:"id"`
	PostID    int64             `json:"postId"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"createdAt"`
	Author    UserBasicResponse `json:"author"`
}

// FromComment converts a models.Comment to a CommentResponse
func FromComment(comment *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		resp.Author = FromUserBasic(comment.Author)
	}
	return resp
}
