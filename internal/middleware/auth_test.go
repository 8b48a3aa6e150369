package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"centavo/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-session-secret"

func setupAuthRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"external_id": c.GetString(ContextExternalID),
			"email":       c.GetString(ContextEmail),
		})
	})
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := parseBody(t, rec)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid_token", func(t *testing.T) {
		cfg := &config.Config{SessionSecret: testSecret}
		r := setupAuthRouter(cfg)

		token, err := NewSessionToken(testSecret, "ext-123", "alice@example.com", "Alice", time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		rec := doAuthRequest(r, "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := parseBody(t, rec)
		if body["external_id"] != "ext-123" {
			t.Errorf("expected external_id ext-123, got %v", body["external_id"])
		}
		if body["email"] != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %v", body["email"])
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		cfg := &config.Config{SessionSecret: testSecret}
		rec := doAuthRequest(setupAuthRouter(cfg), "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if errorCode(t, rec) != "UNAUTHORIZED" {
			t.Errorf("expected UNAUTHORIZED, got %s", errorCode(t, rec))
		}
	})

	t.Run("malformed_header", func(t *testing.T) {
		cfg := &config.Config{SessionSecret: testSecret}
		rec := doAuthRequest(setupAuthRouter(cfg), "NotBearer token")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong_secret", func(t *testing.T) {
		cfg := &config.Config{SessionSecret: testSecret}
		token, err := NewSessionToken("other-secret", "ext-123", "alice@example.com", "Alice", time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		rec := doAuthRequest(setupAuthRouter(cfg), "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("expired_token", func(t *testing.T) {
		cfg := &config.Config{SessionSecret: testSecret}
		token, err := NewSessionToken(testSecret, "ext-123", "alice@example.com", "Alice", -time.Minute)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		rec := doAuthRequest(setupAuthRouter(cfg), "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("allowlisted_email", func(t *testing.T) {
		cfg := &config.Config{
			SessionSecret: testSecret,
			AllowedEmails: []string{"alice@example.com"},
		}
		token, err := NewSessionToken(testSecret, "ext-123", "Alice@Example.com", "Alice", time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		// Allow-list matching is case-insensitive.
		rec := doAuthRequest(setupAuthRouter(cfg), "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("email_not_allowlisted", func(t *testing.T) {
		cfg := &config.Config{
			SessionSecret: testSecret,
			AllowedEmails: []string{"alice@example.com"},
		}
		token, err := NewSessionToken(testSecret, "ext-456", "mallory@example.com", "Mallory", time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		rec := doAuthRequest(setupAuthRouter(cfg), "Bearer "+token)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if errorCode(t, rec) != "FORBIDDEN" {
			t.Errorf("expected FORBIDDEN, got %s", errorCode(t, rec))
		}
	})

	t.Run("empty_allowlist_admits_any", func(t *testing.T) {
		cfg := &config.Config{SessionSecret: testSecret}
		token, err := NewSessionToken(testSecret, "ext-789", "anyone@example.com", "Anyone", time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		rec := doAuthRequest(setupAuthRouter(cfg), "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
