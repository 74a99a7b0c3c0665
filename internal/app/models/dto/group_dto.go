package dto

import "github.com/emre/inkwell/internal/app/models"

// GroupBasicResponse is the compact group representation embedded in posts
type GroupBasicResponse struct {
	ID    int64  `json:"id" example:"1"`
	Title string `json:"title" example:"Travel notes"` // Truncated display title
	Slug  string `json:"slug" example:"travel-notes"`
}

// GroupResponse represents a group in the group directory
type GroupResponse struct {
	ID          int64  `json:"id" example:"1"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// GroupListResponse is the group directory payload
type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// GroupPostsResponse is one page of a group's posts plus the resolved group
type GroupPostsResponse struct {
	Group    GroupResponse  `json:"group"`
	Posts    []PostResponse `json:"posts"`
	PageInfo PageInfo       `json:"pageInfo"`
}

// FromGroupBasic converts a models.Group to its compact representation
func FromGroupBasic(group *models.Group) GroupBasicResponse {
	return GroupBasicResponse{
		ID:    group.ID,
		Title: group.SummaryTitle(),
		Slug:  group.Slug,
	}
}

// FromGroup converts a models.Group to a GroupResponse
func FromGroup(group *models.Group) GroupResponse {
	return GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}
