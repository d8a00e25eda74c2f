package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/permission"
	tickethandlers "github.com/upkeep-inc/upkeep/internal/interfaces/http/handlers/ticket"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	CalendarHandler      *tickethandlers.CalendarHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	perm := config.PermissionMiddleware

	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// Kind-specific actions (static segments before /:id)
		tickets.POST("/breakdown",
			perm.RequirePermission(permission.ResourceBreakdown, permission.ActionCreate),
			config.TicketHandler.CreateBreakdown)
		tickets.POST("/breakdown/:id/close",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionClose),
			config.TicketHandler.CloseBreakdown)

		tickets.POST("/preventive/schedule",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionSchedule),
			config.TicketHandler.SchedulePM)
		tickets.POST("/preventive/:id/close",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionClose),
			config.TicketHandler.ClosePM)

		tickets.POST("/calibration/schedule",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionSchedule),
			config.TicketHandler.ScheduleCalibration)
		tickets.POST("/calibration/:id/close",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionClose),
			config.TicketHandler.CloseCalibration)

		// Reads by kind
		tickets.GET("/:kind",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.ListTickets)
		tickets.GET("/:kind/:id",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.GetTicket)
	}

	calendar := engine.Group("/calendar")
	calendar.Use(
		config.AuthMiddleware.RequireAuth(),
		perm.RequirePermission(permission.ResourceCalendar, permission.ActionRead),
	)
	{
		calendar.GET("/days/:date", config.CalendarHandler.GetDaySummary)
		calendar.GET("/:year/:month", config.CalendarHandler.GetMonth)
	}
}
