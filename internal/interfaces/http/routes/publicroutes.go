package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/interfaces/http/handlers"
	tickethandlers "github.com/upkeep-inc/upkeep/internal/interfaces/http/handlers/ticket"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/middleware"
)

// PublicRouteConfig holds dependencies for the unauthenticated breakdown
// reporting routes.
type PublicRouteConfig struct {
	MachineHandler *handlers.MachineHandler
	TicketHandler  *tickethandlers.TicketHandler
	RateLimiter    *middleware.RateLimiter
}

// SetupPublicRoutes configures routes used by the anonymous breakdown form.
func SetupPublicRoutes(engine *gin.Engine, cfg *PublicRouteConfig) {
	public := engine.Group("/public")
	{
		public.GET("/areas", cfg.MachineHandler.ListAreas)
		public.GET("/machines", cfg.MachineHandler.ListMachinesInArea)
		public.POST("/breakdowns", cfg.RateLimiter.Limit(), cfg.TicketHandler.ReportAnonymousBreakdown)
	}
}
