package router

import "github.com/gin-gonic/gin"

// Module is one routable feature slice. Each module mounts its own
// routes and middleware on the group the registry hands it.
type Module interface {
	Register(api *gin.RouterGroup)
}
