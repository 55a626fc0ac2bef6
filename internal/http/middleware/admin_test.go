package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func adminRouter(password string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/admin/users/1", AdminAuth(password), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAdminAuth_ValidPassword(t *testing.T) {
	r := adminRouter("s3cret")

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/1", nil)
	req.Header.Set("x-admin-password", "s3cret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestAdminAuth_WrongPassword(t *testing.T) {
	r := adminRouter("s3cret")

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/1", nil)
	req.Header.Set("x-admin-password", "wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAdminAuth_MissingHeader(t *testing.T) {
	r := adminRouter("s3cret")

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAdminAuth_DisabledWhenNoPassword(t *testing.T) {
	r := adminRouter("")

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/1", nil)
	req.Header.Set("x-admin-password", "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
