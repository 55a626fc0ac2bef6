package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"levelup_backend/internal/service"

	"github.com/gin-gonic/gin"
)

func jwtRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWT(), func(c *gin.Context) {
		uid, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": uid})
	})
	return r
}

func TestJWT_ValidToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()

	token, err := service.GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	r := jwtRouter()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.UserID != 42 {
		t.Fatalf("user_id = %d, want 42", body.UserID)
	}
}

func TestJWT_MissingHeader(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()

	r := jwtRouter()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWT_GarbageToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()

	r := jwtRouter()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
