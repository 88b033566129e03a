package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/OlexiiMelnik/app-users/pkg/helpers"
	"github.com/OlexiiMelnik/app-users/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserRolesKey = "userRoles"
)

// Auth validates the access token and injects the principal into the Gin
// context: numeric user id, email, and role names. The token is read from
// the access_token cookie or, failing that, a bearer Authorization header.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		uid, err := claims.UserID()
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		c.Set(CtxUserIDKey, uid)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserRolesKey, claims.Roles)
		c.Next()
	}
}

func tokenFrom(c *gin.Context) string {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// PrincipalEmail returns the authenticated principal's email, if any.
func PrincipalEmail(c *gin.Context) string {
	return c.GetString(CtxUserEmailKey)
}

// PrincipalID returns the authenticated principal's user id.
func PrincipalID(c *gin.Context) int64 {
	if v, ok := c.Get(CtxUserIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
