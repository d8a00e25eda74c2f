package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/permission"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/handlers"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/middleware"
)

type EventRouteConfig struct {
	EventsHandler        *handlers.EventsHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupEventRoutes configures the realtime ticket event stream.
func SetupEventRoutes(engine *gin.Engine, cfg *EventRouteConfig) {
	engine.GET("/ws/events",
		cfg.AuthMiddleware.RequireAuth(),
		cfg.PermissionMiddleware.RequirePermission(permission.ResourceEvents, permission.ActionRead),
		cfg.EventsHandler.Stream)
}
