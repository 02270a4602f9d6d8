package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/token"

	"github.com/gin-gonic/gin"
)

func authTestRouter(tokens *token.Manager) *gin.Engine {
	r := gin.New()
	r.Use(Auth(tokens))
	r.GET("/protected", func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	return r
}

func TestAuth_MissingHeader(t *testing.T) {
	r := authTestRouter(token.NewManager("test-secret", time.Minute))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	r := authTestRouter(token.NewManager("test-secret", time.Minute))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abcdef")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	r := authTestRouter(token.NewManager("test-secret", time.Minute))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAuth_ValidTokenSetsUserID(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Minute)
	r := authTestRouter(tokens)

	tok, err := tokens.Issue("user-77")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "user-77" {
		t.Errorf("expected user-77, got %q", w.Body.String())
	}
}

func TestGetUserID_NoAuth(t *testing.T) {
	r := gin.New()
	r.GET("/open", func(c *gin.Context) {
		c.String(http.StatusOK, "id=%s", GetUserID(c))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)

	if w.Body.String() != "id=" {
		t.Errorf("expected empty user id, got %q", w.Body.String())
	}
}
