package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedRouter(tokens *auth.TokenIssuer, revoker auth.Revoker) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/admin/stats", RequireAdmin(tokens, revoker), func(c *gin.Context) {
		claims, ok := AdminClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		id, _ := c.Get(AdminIDKey)
		c.JSON(http.StatusOK, gin.H{"admin_id": id, "email": claims.Email})
	})
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	r := newGuardedRouter(tokens, auth.NewMemoryRevoker())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAdminRejectsGarbageToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	r := newGuardedRouter(tokens, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer admin_secret_token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAdminAcceptsBearerAndQueryToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	r := newGuardedRouter(tokens, auth.NewMemoryRevoker())
	token, _, err := tokens.Issue(4, "boss@shop.io")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("bearer: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/stats?token="+token, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("query: expected 200, got %d", w.Code)
	}
}

func TestRequireAdminRejectsRevokedToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	revoker := auth.NewMemoryRevoker()
	r := newGuardedRouter(tokens, revoker)
	token, claims, _ := tokens.Issue(4, "boss@shop.io")

	if err := revoker.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", w.Code)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newGuardedRouter(auth.NewTokenIssuer("secret", time.Hour), nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "req-123" {
		t.Fatalf("request id: got %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected a generated request id")
	}
}

func TestRecoveryReturnsGeneric500(t *testing.T) {
	r := newGuardedRouter(auth.NewTokenIssuer("secret", time.Hour), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"Internal server error"}` {
		t.Fatalf("unexpected body %s", body)
	}
}
