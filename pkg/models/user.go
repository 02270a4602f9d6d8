package models

import "time"

// User represents an account in the system. Posts holds the IDs of the user's
// posts ordered by creation; posts.owner_id remains the source of truth for
// ownership, and the two are kept in lockstep on every create/delete.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Status       string    `json:"status" db:"status"`
	Posts        []string  `json:"posts"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SignupRequest is the request body for creating an account.
type SignupRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Name     string `json:"name" example:"Jane Doe"`
	Password string `json:"password" example:"secret123"`
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"secret123"`
}

// StatusRequest is the request body for updating the caller's status text.
type StatusRequest struct {
	Status string `json:"status" example:"Shipping it"`
}
