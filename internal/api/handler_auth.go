package api

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/L-YS-Ayoussef/EchoPost/internal/store"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/middleware"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/token"
)

const defaultStatus = "I am new!"

const minPasswordLen = 5

// AuthHandler handles signup, login and user status requests.
type AuthHandler struct {
	Users  store.UserStore
	Tokens *token.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users store.UserStore, tokens *token.Manager) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens}
}

// Signup godoc
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.SignupRequest  true  "Signup request"
// @Success      201      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /auth/signup [put]
func (h *AuthHandler) Signup(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Please enter a valid email."})
		return
	}
	if len(req.Password) < minPasswordLen {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Password too short."})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Name is required."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		Status:       defaultStatus,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "E-Mail address already exists!"})
			return
		}
		log.Printf("[API] Error creating user: %v correlation_id=%s", err, correlationID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	log.Printf("[API] User created: id=%s email=%s correlation_id=%s", user.ID, user.Email, correlationID)
	c.JSON(http.StatusCreated, gin.H{"message": "User created!", "userId": user.ID})
}

// Login godoc
// @Summary      Log in and obtain a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.LoginRequest  true  "Login request"
// @Success      200      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "A user with this email could not be found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password!"})
		return
	}

	tok, err := h.Tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok, "userId": user.ID})
}

// GetStatus godoc
// @Summary      Get the caller's status text
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /auth/status [get]
func (h *AuthHandler) GetStatus(c *gin.Context) {
	user, err := h.Users.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": user.Status})
}

// UpdateStatus godoc
// @Summary      Update the caller's status text
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.StatusRequest  true  "Status request"
// @Success      200      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Security     BearerAuth
// @Router       /auth/status [patch]
func (h *AuthHandler) UpdateStatus(c *gin.Context) {
	var req models.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Status must not be empty."})
		return
	}

	if err := h.Users.UpdateStatus(c.Request.Context(), middleware.GetUserID(c), req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated."})
}
