package router

import (
	userapp "github.com/OlexiiMelnik/app-users/internal/application"
	"github.com/OlexiiMelnik/app-users/internal/container"
	pginfra "github.com/OlexiiMelnik/app-users/internal/infrastructure/postgres"
	handlers "github.com/OlexiiMelnik/app-users/internal/interface/http"
	"github.com/OlexiiMelnik/app-users/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	roleRepo := pginfra.NewRoleRepository(pool)

	service := userapp.NewService(
		userRepo,
		roleRepo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetRabbitPub(),
		container.GetLogger(),
		cfg.MailSendEnabled,
	)

	userHandler := handlers.NewUserHandler(service, container.GetLogger())
	authHandler := handlers.NewAuthHandler(service, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
}
