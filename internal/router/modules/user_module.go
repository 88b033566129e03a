package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OlexiiMelnik/app-users/internal/container"
	"github.com/OlexiiMelnik/app-users/internal/domain/entity"
	handlers "github.com/OlexiiMelnik/app-users/internal/interface/http"
	"github.com/OlexiiMelnik/app-users/internal/interface/middleware"
	"github.com/OlexiiMelnik/app-users/pkg/helpers"
)

// UserModule wires the user HTTP handlers into routes.
// Public: POST /api/register
// Authenticated: PUT /api/users
// Admin only: DELETE /api/users/:id, GET /api/users
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())

	rg.POST("/register", registerLimiter, m.Handler.Register)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.PUT("/users", m.Handler.UpdateProfile)

		admin := auth.Group("/")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.DELETE("/users/:id", m.Handler.Delete)
			admin.GET("/users", m.Handler.FindByBirthDateRange)
		}
	}
}
