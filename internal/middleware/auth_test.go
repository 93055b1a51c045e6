package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/pkg/token"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *token.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := token.NewManager("test-secret", time.Hour)

	r := gin.New()
	r.GET("/private", Auth(tokens), func(c *gin.Context) {
		userID, role := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	r.GET("/admin", Auth(tokens), RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/open", OptionalAuth(tokens), func(c *gin.Context) {
		userID, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r, tokens
}

func doGet(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r, _ := newAuthRouter(t)
	if w := doGet(r, "/private", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	r, _ := newAuthRouter(t)
	if w := doGet(r, "/private", "Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	r, tokens := newAuthRouter(t)
	tok, err := tokens.Issue(7, "alice", "user")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	w := doGet(r, "/private", "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRoleForbidsNonAdmin(t *testing.T) {
	r, tokens := newAuthRouter(t)
	tok, _ := tokens.Issue(7, "alice", "user")
	if w := doGet(r, "/admin", "Bearer "+tok); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	admin, _ := tokens.Issue(1, "root", "admin")
	if w := doGet(r, "/admin", "Bearer "+admin); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOptionalAuthTreatsBadTokenAsGuest(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := doGet(r, "/open", "Bearer broken")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":0}` {
		t.Fatalf("guest must have user_id 0, got %s", body)
	}
}
