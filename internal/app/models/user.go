package models

import (
	"time"
)

// User defines the user model based on the 'users' table.
// Credentials are owned by the auth boundary; the rest of the application
// treats users as immutable authors.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Username    string     `json:"username" db:"username" example:"leo_t"`                   // Unique username, used in profile URLs
	Email       string     `json:"email" db:"email" example:"leo@example.com"`               // User's email address
	Password    string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
}
