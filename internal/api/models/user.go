package models

import "time"

// User represents a user in the database.
type User struct {
	ID        string    `db:"id" json:"id" validate:"required,uuid"`
	Username  string    `db:"username" json:"username" validate:"notblank"`
	CreatedAt time.Time `db:"-" json:"-"`
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username" form:"username"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// NewUserResponse converts a stored user for output.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{Username: u.Username, ID: u.ID}
}
