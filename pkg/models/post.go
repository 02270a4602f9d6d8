package models

import "time"

// Post represents a single feed entry. Every post is bound to exactly one
// image asset and one owner; only the owner may mutate or delete it.
type Post struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	OwnerID   string    `json:"ownerId" db:"owner_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CreatePostRequest is the request body for creating a post. The image must
// already have been uploaded via the image endpoint; imageUrl is its reference.
type CreatePostRequest struct {
	Title    string `json:"title" example:"My first post"`
	Content  string `json:"content" example:"Hello feed!"`
	ImageURL string `json:"imageUrl" example:"images/4f2a-duck.png"`
}

// UpdatePostRequest is the request body for updating a post. All fields are
// resubmitted; imageUrl may equal the post's current reference or point at a
// freshly uploaded replacement.
type UpdatePostRequest struct {
	Title    string `json:"title" example:"Edited title"`
	Content  string `json:"content" example:"Edited body"`
	ImageURL string `json:"imageUrl" example:"images/9c1b-duck2.png"`
}
