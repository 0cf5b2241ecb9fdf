package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/dealflow-backend/internal/logger"
)

func newAuthRouter(t *testing.T, apiKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	router := gin.New()
	router.Use(NewAuthMiddleware(log, apiKey).RequireAPIKey())
	router.GET("/companies", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequireAPIKey_MissingKeyIsForbidden(t *testing.T) {
	router := newAuthRouter(t, "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/companies", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"detail":"Unauthorized"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRequireAPIKey_WrongKeyIsForbidden(t *testing.T) {
	router := newAuthRouter(t, "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/companies", nil)
	req.Header.Set("X-API-Key", "not-the-key")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireAPIKey_ValidKeyPasses(t *testing.T) {
	router := newAuthRouter(t, "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/companies", nil)
	req.Header.Set("X-API-Key", "secret")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAPIKey_EmptyConfiguredKeyRejectsEverything(t *testing.T) {
	router := newAuthRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/companies", nil)
	req.Header.Set("X-API-Key", "")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when no key is configured, got %d", w.Code)
	}
}
