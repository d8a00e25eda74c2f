// Package http assembles the HTTP API: dependency wiring, middleware chain
// and route registration.
package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/upkeep-inc/upkeep/docs"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/middleware"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Metrics(c.metrics))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.ErrorHandler(c.log))

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)
	c.engine.GET("/metrics", gin.WrapH(c.metrics.Handler()))
	if c.cfg.Server.IsDebug() {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.loginLimiter,
	})

	routes.SetupPublicRoutes(c.engine, &routes.PublicRouteConfig{
		MachineHandler: c.hdlrs.machineHandler,
		TicketHandler:  c.hdlrs.ticketHandler,
		RateLimiter:    c.reportLimiter,
	})

	routes.SetupTicketRoutes(c.engine, &routes.TicketRouteConfig{
		TicketHandler:        c.hdlrs.ticketHandler,
		CalendarHandler:      c.hdlrs.calendarHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupMasterRoutes(c.engine, &routes.MasterRouteConfig{
		MachineHandler:       c.hdlrs.machineHandler,
		InstrumentHandler:    c.hdlrs.instrumentHandler,
		UserHandler:          c.hdlrs.userHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupEventRoutes(c.engine, &routes.EventRouteConfig{
		EventsHandler:        c.hdlrs.eventsHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}
