package http

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/interfaces/http/handlers"
	ticketHandlers "github.com/upkeep-inc/upkeep/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// Auth
	authHandler *handlers.AuthHandler

	// Masters
	machineHandler    *handlers.MachineHandler
	instrumentHandler *handlers.InstrumentHandler
	userHandler       *handlers.UserHandler

	// Tickets
	ticketHandler   *ticketHandlers.TicketHandler
	calendarHandler *ticketHandlers.CalendarHandler

	// Realtime & ops
	eventsHandler *handlers.EventsHandler
	healthHandler *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	u := c.ucs
	log := c.log

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(u.authenticateUC, log),

		machineHandler:    handlers.NewMachineHandler(u.createMachineUC, u.updateMachineUC, u.deleteMachineUC, u.getMachineUC, log),
		instrumentHandler: handlers.NewInstrumentHandler(u.createInstrumentUC, u.updateInstrumentUC, u.deleteInstrumentUC, u.getInstrumentUC, log),
		userHandler:       handlers.NewUserHandler(u.createUserUC, u.updateUserUC, u.deleteUserUC, u.getUserUC, log),

		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createBreakdownUC, u.closeBreakdownUC,
			u.schedulePMUC, u.closePMUC,
			u.scheduleCalibrationUC, u.closeCalibrationUC,
			u.listTicketsUC, u.getTicketUC, log,
		),
		calendarHandler: ticketHandlers.NewCalendarHandler(u.calendarMonthUC, u.daySummaryUC, log),

		eventsHandler: handlers.NewEventsHandler(c.eventHub, c.cfg.Server.AllowedOrigins, log),
		healthHandler: handlers.NewHealthHandler(c.healthChecks(), log),
	}
}

func (c *Container) healthChecks() map[string]handlers.Pinger {
	checks := make(map[string]handlers.Pinger)
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			checks["database"] = handlers.PingerFunc(sqlDB.PingContext)
		}
	}
	if c.redis != nil {
		checks["redis"] = handlers.PingerFunc(func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		})
	}
	return checks
}
