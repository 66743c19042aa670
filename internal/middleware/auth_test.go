package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taskhub/internal/models"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, userID int64, role models.UserRole, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret), func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	r.GET("/admin", AuthMiddleware(testSecret), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := authTestRouter()

	for _, header := range []string{"", "Bearer ", "Token abc"} {
		w := doRequest(r, "/protected", header)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := authTestRouter()

	w := doRequest(r, "/protected", "Bearer not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}

	wrongKey := signToken(t, []byte("other-secret"), 1, models.RoleMember, time.Hour)
	w = doRequest(r, "/protected", "Bearer "+wrongKey)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", w.Code)
	}

	expired := signToken(t, testSecret, 1, models.RoleMember, -time.Hour)
	w = doRequest(r, "/protected", "Bearer "+expired)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expired token: status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewarePassesIdentity(t *testing.T) {
	r := authTestRouter()

	token := signToken(t, testSecret, 7, models.RoleMember, time.Hour)
	w := doRequest(r, "/protected", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"user_id":7`) || !strings.Contains(body, `"role":"member"`) {
		t.Errorf("identity not propagated: %s", body)
	}
}

func TestRequireAdmin(t *testing.T) {
	r := authTestRouter()

	member := signToken(t, testSecret, 2, models.RoleMember, time.Hour)
	if w := doRequest(r, "/admin", "Bearer "+member); w.Code != http.StatusForbidden {
		t.Errorf("member: status = %d, want 403", w.Code)
	}

	admin := signToken(t, testSecret, 1, models.RoleAdmin, time.Hour)
	if w := doRequest(r, "/admin", "Bearer "+admin); w.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", w.Code)
	}
}
