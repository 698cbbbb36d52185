package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodbank-backend/shared/database/models"
	utils "bloodbank-backend/shared/utils/auth"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("sets identity from a valid token", func(t *testing.T) {
		router := newAuthRouter()
		userID := uuid.New()
		token, err := utils.GenerateJWT(userID, models.RoleDonor)
		require.NoError(t, err)

		var gotID uuid.UUID
		var gotRole string
		router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
			gotID = CallerID(c)
			gotRole = CallerRole(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, models.RoleDonor, gotRole)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		router := newAuthRouter()
		router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
			t.Fatal("handler must not run without credentials")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header is required")
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		router := newAuthRouter()
		router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		router := newAuthRouter()
		router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-real-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("allows a listed role", func(t *testing.T) {
		router := newAuthRouter()
		router.GET("/admin", func(c *gin.Context) {
			c.Set("userRole", models.RoleAdmin)
		}, RequireRole(models.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("blocks every other role", func(t *testing.T) {
		router := newAuthRouter()
		router.GET("/admin", func(c *gin.Context) {
			c.Set("userRole", models.RoleDonor)
		}, RequireRole(models.RoleAdmin), func(c *gin.Context) {
			t.Fatal("handler must not run for a blocked role")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Access denied: insufficient permissions")
	})
}
