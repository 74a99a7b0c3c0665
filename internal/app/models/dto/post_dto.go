package dto

import (
	"time"

	"github.com/emre/inkwell/internal/app/models"
)

// CreatePostRequest carries the authoring form for a new post. The author is
// never part of the payload; it is taken from the authenticated identity.
type CreatePostRequest struct {
	Text    string `form:"text" json:"text" binding:"required"`
	GroupID *int64 `form:"groupId" json:"groupId,omitempty"`
}

// UpdatePostRequest carries the editable fields of an existing post
type UpdatePostRequest struct {
	Text    string `form:"text" json:"text" binding:"required"`
	GroupID *int64 `form:"groupId" json:"groupId,omitempty"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID        int64               `json:"id" example:"42"`
	Text      string              `json:"text"`
	CreatedAt time.Time           `json:"createdAt"`
	Author    UserBasicResponse   `json:"author"`
	Group     *GroupBasicResponse `json:"group,omitempty"`
	ImageURL  *string             `json:"imageUrl,omitempty"`
}

// PostDetailResponse is a post together with its comments
type PostDetailResponse struct {
	Post     PostResponse      `json:"post"`
	Comments []CommentResponse `json:"comments"`
}

// PageInfo describes the pagination metadata attached to every listing
type PageInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	HasPrevious bool  `json:"hasPrevious"`
	HasNext     bool  `json:"hasNext"`
}

// PostListResponse is one page of a post listing
type PostListResponse struct {
	Posts    []PostResponse `json:"posts"`
	PageInfo PageInfo       `json:"pageInfo"`
}

// FromPost converts a models.Post to a PostResponse. The post is expected to
// carry its resolved Author; Group is optional.
func FromPost(post *models.Post, imageURL *string) PostResponse {
	resp := PostResponse{
		ID:        post.ID,
		Text:      post.Text,
		CreatedAt: post.CreatedAt,
		ImageURL:  imageURL,
	}
	if post.Author != nil {
		resp.Author = FromUserBasic(post.Author)
	}
	if post.Group != nil {
		group := FromGroupBasic(post.Group)
		resp.Group = &group
	}
	return resp
}
