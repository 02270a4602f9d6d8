// Package store holds the durable repositories for posts and users. The
// Postgres implementations keep posts.owner_id (source of truth) and the
// user_posts back-reference table in lockstep inside a single transaction
// on every create and delete.
package store

import (
	"context"
	"errors"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// PostStore is the durable repository of post records.
type PostStore interface {
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// List returns a window of posts ordered by creation time descending,
	// ties broken by ID ascending.
	List(ctx context.Context, offset, limit int) ([]models.Post, error)
	Count(ctx context.Context) (int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Post, error)
	// Create inserts the post and appends its ID to the owner's post list.
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post and its entry in the owner's post list.
	Delete(ctx context.Context, id, ownerID string) error
}

// UserStore is the durable repository of user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// PostIDs returns the user's post IDs ordered by creation.
	PostIDs(ctx context.Context, userID string) ([]string, error)
}
