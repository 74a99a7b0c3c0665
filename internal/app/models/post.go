package models

import "time"

// Post represents a published blog entry. CreatedAt is assigned once at
// insert time and never updated; listings order by it, newest first.
type Post struct {
	ID        int64     `json:"id" db:"id" example:"42"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-03-10T18:33:00Z"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	GroupID   *int64    `json:"groupId,omitempty" db:"group_id"`     // Optional group the post belongs to
	ImagePath *string   `json:"imagePath,omitempty" db:"image_path"` // Optional uploaded image, relative storage path

	// Related entities
	Author *User  `json:"author,omitempty"`
	Group  *Group `json:"group,omitempty"`
}
