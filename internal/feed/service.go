// Package feed implements the authorized post mutation service: the single
// write path for posts, the ownership guard, stable pagination, and change
// event emission on the broadcast bus.
package feed

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/L-YS-Ayoussef/EchoPost/internal/assets"
	"github.com/L-YS-Ayoussef/EchoPost/internal/bus"
	"github.com/L-YS-Ayoussef/EchoPost/internal/store"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/middleware"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
)

// DefaultPerPage is the page size used when the caller does not specify one.
const DefaultPerPage = 2

const (
	minTitleLen   = 5
	minContentLen = 5
)

// Service owns every post mutation. Handlers never touch the post store
// directly; all writes flow through here so that validation, authorization,
// asset release and event emission cannot be bypassed.
type Service struct {
	posts     store.PostStore
	assets    assets.Store
	lifecycle *assets.Lifecycle
	bus       *bus.Bus
}

// NewService wires the mutation service to its store, the asset lifecycle
// and the broadcast bus.
func NewService(posts store.PostStore, images assets.Store, lifecycle *assets.Lifecycle, b *bus.Bus) *Service {
	return &Service{
		posts:     posts,
		assets:    images,
		lifecycle: lifecycle,
		bus:       b,
	}
}

// Create validates the input, persists a new post owned by ownerID and
// broadcasts a create event carrying the stored snapshot. The image reference
// must name an asset that was already uploaded.
func (s *Service) Create(ctx context.Context, ownerID string, in models.CreatePostRequest) (*models.Post, error) {
	if err := validateInput(in.Title, in.Content); err != nil {
		return nil, err
	}
	if in.ImageURL == "" {
		return nil, validationErr("No image provided.")
	}
	if !s.assets.Exists(in.ImageURL) {
		return nil, validationErr("No image provided.")
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  in.ImageURL,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, storageErr("creating post failed", err)
	}

	log.Printf("[Feed] Post created: %s by user %s", post.ID, ownerID)
	s.publish(ctx, models.ActionCreate, post)
	return post, nil
}

// Update replaces the title, content and image reference of an existing post.
// Only the owner may update; a replaced image is released asynchronously after
// the new state is persisted. Concurrent updates resolve last-writer-wins.
func (s *Service) Update(ctx context.Context, callerID, postID string, in models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(callerID, post); err != nil {
		return nil, err
	}
	if err := validateInput(in.Title, in.Content); err != nil {
		return nil, err
	}
	if in.ImageURL == "" {
		return nil, validationErr("No file picked.")
	}

	oldImage := post.ImageURL
	post.Title = in.Title
	post.Content = in.Content
	post.ImageURL = in.ImageURL
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundErr("Could not find post.")
		}
		return nil, storageErr("updating post failed", err)
	}

	if in.ImageURL != oldImage {
		s.lifecycle.Release(oldImage)
	}

	log.Printf("[Feed] Post updated: %s by user %s", post.ID, callerID)
	s.publish(ctx, models.ActionUpdate, post)
	return post, nil
}

// Delete removes a post owned by callerID, releases its image asset and
// broadcasts a delete event carrying only the post ID.
func (s *Service) Delete(ctx context.Context, callerID, postID string) error {
	post, err := s.load(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.authorize(callerID, post); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, postID, post.OwnerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundErr("Could not find post.")
		}
		return storageErr("deleting post failed", err)
	}

	s.lifecycle.Release(post.ImageURL)

	log.Printf("[Feed] Post deleted: %s by user %s", postID, callerID)
	s.publishDelete(ctx, postID)
	return nil
}

// Get returns a single post by ID. Reads are not guarded; any authenticated
// user may view any post.
func (s *Service) Get(ctx context.Context, postID string) (*models.Post, error) {
	return s.load(ctx, postID)
}

// List returns one page of the feed, newest first, along with the total
// number of posts. The count and the page scan are separate queries, so a
// concurrent mutation between them can skew the total by one; clients treat
// totalItems as advisory.
func (s *Service) List(ctx context.Context, page, perPage int) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	total, err := s.posts.Count(ctx)
	if err != nil {
		return nil, 0, storageErr("counting posts failed", err)
	}

	posts, err := s.posts.List(ctx, (page-1)*perPage, perPage)
	if err != nil {
		return nil, 0, storageErr("listing posts failed", err)
	}
	return posts, total, nil
}

func (s *Service) load(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundErr("Could not find post.")
		}
		return nil, storageErr("loading post failed", err)
	}
	return post, nil
}

// authorize enforces the ownership guard: the post's owner at the time of
// the check is the only principal allowed to mutate it.
func (s *Service) authorize(callerID string, post *models.Post) error {
	if post.OwnerID != callerID {
		return notAuthorizedErr("Not authorized!")
	}
	return nil
}

func validateInput(title, content string) error {
	if len(title) < minTitleLen {
		return validationErr("Title is too short.")
	}
	if len(content) < minContentLen {
		return validationErr("Content is too short.")
	}
	return nil
}

// publish broadcasts a create or update event carrying a snapshot copied by
// value, so later mutations of the stored post cannot alter delivered events.
func (s *Service) publish(ctx context.Context, action models.Action, post *models.Post) {
	snapshot := *post
	s.bus.Publish(models.ChangeEvent{
		EventID:       uuid.New().String(),
		CorrelationID: middleware.CorrelationFromContext(ctx),
		Action:        action,
		Post:          &snapshot,
		Timestamp:     time.Now().UTC(),
	})
}

func (s *Service) publishDelete(ctx context.Context, postID string) {
	s.bus.Publish(models.ChangeEvent{
		EventID:       uuid.New().String(),
		CorrelationID: middleware.CorrelationFromContext(ctx),
		Action:        models.ActionDelete,
		PostID:        postID,
		Timestamp:     time.Now().UTC(),
	})
}
