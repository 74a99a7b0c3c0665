package models

import "time"

// Follow represents a directed subscription edge: the follower receives the
// followed author's posts in their subscription feed. The (follower,
// followed) pair is unique and self-loops are rejected by the store.
type Follow struct {
	ID         int64     `json:"id" db:"id"`
	FollowerID int64     `json:"followerId" db:"follower_id"`
	FollowedID int64     `json:"followedId" db:"followed_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
