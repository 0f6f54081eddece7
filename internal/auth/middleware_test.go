package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/algorave/errorhandler/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(errors.Handler(nil))
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.String(http.StatusOK, id)
	})
	r.GET("/admin", AuthMiddleware(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/maybe", OptionalAuthMiddleware(), func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.String(http.StatusOK, id)
	})

	return r
}

func get(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func errorMessages(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	var resp errors.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	out := make([]string, 0, len(resp.Errors))
	for _, r := range resp.Errors {
		out = append(out, r.Message)
	}

	return out
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := newProtectedRouter()

	token, err := GenerateJWT("user-1", "one@example.com", false)
	require.NoError(t, err)

	w := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"authorization header required"}, errorMessages(t, w))

	w = get(r, "/me", "Token "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"invalid authorization header format"}, errorMessages(t, w))

	w = get(r, "/me", "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"invalid or expired token"}, errorMessages(t, w))

	w = get(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := newProtectedRouter()

	user, err := GenerateJWT("user-1", "one@example.com", false)
	require.NoError(t, err)
	admin, err := GenerateJWT("admin-1", "root@example.com", true)
	require.NoError(t, err)

	w := get(r, "/admin", "Bearer "+user)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []string{errors.MessageAccessDenied}, errorMessages(t, w))

	assert.Equal(t, http.StatusNoContent, get(r, "/admin", "Bearer "+admin).Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := newProtectedRouter()

	token, err := GenerateJWT("user-2", "two@example.com", false)
	require.NoError(t, err)

	assert.Equal(t, "", get(r, "/maybe", "").Body.String())
	assert.Equal(t, "", get(r, "/maybe", "Bearer junk").Body.String())
	assert.Equal(t, "user-2", get(r, "/maybe", "Bearer "+token).Body.String())
}
