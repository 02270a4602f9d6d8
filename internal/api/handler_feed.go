package api

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/L-YS-Ayoussef/EchoPost/internal/feed"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/middleware"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
)

// FeedService is the mutation and query surface the feed handlers depend on.
type FeedService interface {
	Create(ctx context.Context, ownerID string, in models.CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, callerID, postID string, in models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, callerID, postID string) error
	Get(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, page, perPage int) ([]models.Post, int, error)
}

// FeedHandler handles post-related HTTP requests.
type FeedHandler struct {
	Feed FeedService
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(svc FeedService) *FeedHandler {
	return &FeedHandler{Feed: svc}
}

// writeError maps a feed error onto the HTTP response.
func writeError(c *gin.Context, err error) {
	switch feed.KindOf(err) {
	case feed.KindValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case feed.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case feed.KindNotAuthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] Internal error: %v correlation_id=%s", err, middleware.GetCorrelationID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// GetPosts godoc
// @Summary      List feed posts
// @Description  Returns one page of the feed, newest first, with the total post count
// @Tags         feed
// @Produce      json
// @Param        page  query     int  false  "Page number (1-based)"
// @Success      200   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]string
// @Security     BearerAuth
// @Router       /feed/posts [get]
func (h *FeedHandler) GetPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	posts, total, err := h.Feed.List(c.Request.Context(), page, feed.DefaultPerPage)
	if err != nil {
		writeError(c, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Fetched posts successfully.",
		"posts":      posts,
		"totalItems": total,
	})
}

// GetPost godoc
// @Summary      Get a single post
// @Tags         feed
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /feed/posts/{id} [get]
func (h *FeedHandler) GetPost(c *gin.Context) {
	post, err := h.Feed.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post fetched.", "post": post})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post owned by the caller and broadcasts a create event
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        request  body      models.CreatePostRequest  true  "Create post request"
// @Success      201      {object}  map[string]interface{}
// @Failure      422      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Security     BearerAuth
// @Router       /feed/posts [post]
func (h *FeedHandler) CreatePost(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	userID := middleware.GetUserID(c)
	log.Printf("[API] CreatePost user=%s correlation_id=%s", userID, correlationID)

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	post, err := h.Feed.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully!",
		"post":    post,
		"creator": gin.H{"id": userID},
	})
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Replaces a post owned by the caller and broadcasts an update event
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Post ID"
// @Param        request  body      models.UpdatePostRequest  true  "Update post request"
// @Success      200      {object}  map[string]interface{}
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Security     BearerAuth
// @Router       /feed/posts/{id} [put]
func (h *FeedHandler) UpdatePost(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	userID := middleware.GetUserID(c)
	postID := c.Param("id")
	log.Printf("[API] UpdatePost id=%s user=%s correlation_id=%s", postID, userID, correlationID)

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	post, err := h.Feed.Update(c.Request.Context(), userID, postID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated!", "post": post})
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post owned by the caller and broadcasts a delete event
// @Tags         feed
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /feed/posts/{id} [delete]
func (h *FeedHandler) DeletePost(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	userID := middleware.GetUserID(c)
	postID := c.Param("id")
	log.Printf("[API] DeletePost id=%s user=%s correlation_id=%s", postID, userID, correlationID)

	if err := h.Feed.Delete(c.Request.Context(), userID, postID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted post."})
}
