package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OlexiiMelnik/app-users/internal/container"
	handlers "github.com/OlexiiMelnik/app-users/internal/interface/http"
	"github.com/OlexiiMelnik/app-users/internal/interface/middleware"
	"github.com/OlexiiMelnik/app-users/pkg/helpers"
)

// AuthModule wires the login/refresh/logout routes.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
