package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlexiiMelnik/app-users/pkg/helpers"
)

func authRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(jwt), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	t.Run("bearer token injects the principal", func(t *testing.T) {
		token, _, err := jwt.GenerateAccessToken(42, "a@b.com", []string{"USER", "ADMIN"}, "sid-1")
		require.NoError(t, err)

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.GET("/me", Auth(jwt), func(c *gin.Context) {
			assert.Equal(t, int64(42), PrincipalID(c))
			assert.Equal(t, "a@b.com", PrincipalEmail(c))
			roles, _ := c.Get(CtxUserRolesKey)
			assert.Equal(t, []string{"USER", "ADMIN"}, roles)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cookie token works too", func(t *testing.T) {
		token, _, err := jwt.GenerateAccessToken(7, "c@d.com", []string{"USER"}, "sid-2")
		require.NoError(t, err)

		r := authRouter(jwt)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		r := authRouter(jwt)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		r := authRouter(jwt)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		refresh, _, err := jwt.GenerateRefreshToken(42, "a@b.com", nil, "sid-3")
		require.NoError(t, err)

		r := authRouter(jwt)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		short := helpers.NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
		token, _, err := short.GenerateAccessToken(42, "a@b.com", nil, "sid-4")
		require.NoError(t, err)

		r := authRouter(short)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
