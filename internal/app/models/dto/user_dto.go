package dto

import (
	"time"

	"github.com/emre/inkwell/internal/app/models"
)

// UserBasicResponse is the compact author representation embedded in posts
// and comments
type UserBasicResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"leo_t"`
}

// ProfileResponse is the profile page payload: the resolved author, their
// posts, and whether the viewer follows them
type ProfileResponse struct {
	Author         UserBasicResponse `json:"author"`
	PostCount      int64             `json:"postCount"`
	FollowingCount int64             `json:"followingCount"` // Authors this user follows
	IsFollowing    bool              `json:"isFollowing"`
	JoinedAt       time.Time         `json:"joinedAt"`
}

// ProfilePostsResponse is one page of an author's posts plus the resolved
// author and the viewer's follow state
type ProfilePostsResponse struct {
	Author      UserBasicResponse `json:"author"`
	IsFollowing bool              `json:"isFollowing"`
	Posts       []PostResponse    `json:"posts"`
	PageInfo    PageInfo          `json:"pageInfo"`
}

// FromUserBasic converts a models.User to its compact representation
func FromUserBasic(user *models.User) UserBasicResponse {
	return UserBasicResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}
