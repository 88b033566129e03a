package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OlexiiMelnik/app-users/internal/domain/entity"
	"github.com/OlexiiMelnik/app-users/pkg/response"
)

// RequireRole guards a route behind a role from the principal's claim
// set. It runs after Auth and is independent of the handler it protects.
func RequireRole(role entity.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxUserRolesKey)
		if !ok {
			response.AbortError(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		roles, _ := v.([]string)
		for _, r := range roles {
			if r == string(role) {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusForbidden, "forbidden", nil)
	}
}
