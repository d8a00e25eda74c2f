package http

import (
	instrumentUsecases "github.com/upkeep-inc/upkeep/internal/application/instrument/usecases"
	machineUsecases "github.com/upkeep-inc/upkeep/internal/application/machine/usecases"
	ticketUsecases "github.com/upkeep-inc/upkeep/internal/application/ticket/usecases"
	userUsecases "github.com/upkeep-inc/upkeep/internal/application/user/usecases"
	"github.com/upkeep-inc/upkeep/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Tickets
	createBreakdownUC     *ticketUsecases.CreateBreakdownTicketUseCase
	closeBreakdownUC      *ticketUsecases.CloseBreakdownTicketUseCase
	schedulePMUC          *ticketUsecases.SchedulePMTicketsUseCase
	closePMUC             *ticketUsecases.ClosePMTicketUseCase
	scheduleCalibrationUC *ticketUsecases.ScheduleCalibrationTicketsUseCase
	closeCalibrationUC    *ticketUsecases.CloseCalibrationTicketUseCase
	listTicketsUC         *ticketUsecases.ListTicketsUseCase
	getTicketUC           *ticketUsecases.GetTicketUseCase
	calendarMonthUC       *ticketUsecases.GetCalendarMonthUseCase
	daySummaryUC          *ticketUsecases.GetDaySummaryUseCase

	// Background jobs
	scanOverdueUC   *ticketUsecases.ScanOverdueTicketsUseCase
	refreshGaugesUC *ticketUsecases.RefreshOpenTicketGaugesUseCase

	// Machines
	createMachineUC *machineUsecases.CreateMachineUseCase
	updateMachineUC *machineUsecases.UpdateMachineUseCase
	deleteMachineUC *machineUsecases.DeleteMachineUseCase
	getMachineUC    *machineUsecases.GetMachineUseCase

	// Instruments
	createInstrumentUC *instrumentUsecases.CreateInstrumentUseCase
	updateInstrumentUC *instrumentUsecases.UpdateInstrumentUseCase
	deleteInstrumentUC *instrumentUsecases.DeleteInstrumentUseCase
	getInstrumentUC    *instrumentUsecases.GetInstrumentUseCase

	// Users & auth
	createUserUC   *userUsecases.CreateUserUseCase
	updateUserUC   *userUsecases.UpdateUserUseCase
	deleteUserUC   *userUsecases.DeleteUserUseCase
	getUserUC      *userUsecases.GetUserUseCase
	authenticateUC *userUsecases.AuthenticateUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log
	renderer := markdown.NewRenderer()
	superUser := userUsecases.SuperUser{
		Username: c.cfg.Auth.SuperUser.Username,
		Password: c.cfg.Auth.SuperUser.Password,
	}

	c.ucs = &allUseCases{
		createBreakdownUC:     ticketUsecases.NewCreateBreakdownTicketUseCase(r.tickets.Breakdowns, r.machineRepo, c.dispatcher, c.metrics, log),
		closeBreakdownUC:      ticketUsecases.NewCloseBreakdownTicketUseCase(r.tickets.Breakdowns, r.machineRepo, c.locker, c.dispatcher, c.metrics, log),
		schedulePMUC:          ticketUsecases.NewSchedulePMTicketsUseCase(r.tickets.Preventives, r.machineRepo, c.dispatcher, c.metrics, log),
		closePMUC:             ticketUsecases.NewClosePMTicketUseCase(r.tickets.Preventives, c.locker, c.dispatcher, c.metrics, log),
		scheduleCalibrationUC: ticketUsecases.NewScheduleCalibrationTicketsUseCase(r.tickets.Calibrations, r.instrumentRepo, c.dispatcher, c.metrics, log),
		closeCalibrationUC:    ticketUsecases.NewCloseCalibrationTicketUseCase(r.tickets.Calibrations, c.locker, c.dispatcher, c.metrics, log),
		listTicketsUC:         ticketUsecases.NewListTicketsUseCase(r.tickets, log),
		getTicketUC:           ticketUsecases.NewGetTicketUseCase(r.tickets, log),
		calendarMonthUC:       ticketUsecases.NewGetCalendarMonthUseCase(r.tickets, log),
		daySummaryUC:          ticketUsecases.NewGetDaySummaryUseCase(r.tickets, renderer, log),

		scanOverdueUC:   ticketUsecases.NewScanOverdueTicketsUseCase(r.tickets, c.dispatcher, c.metrics, log),
		refreshGaugesUC: ticketUsecases.NewRefreshOpenTicketGaugesUseCase(r.tickets, c.metrics, log),

		createMachineUC: machineUsecases.NewCreateMachineUseCase(r.machineRepo, log),
		updateMachineUC: machineUsecases.NewUpdateMachineUseCase(r.machineRepo, log),
		deleteMachineUC: machineUsecases.NewDeleteMachineUseCase(r.machineRepo, log),
		getMachineUC:    machineUsecases.NewGetMachineUseCase(r.machineRepo, log),

		createInstrumentUC: instrumentUsecases.NewCreateInstrumentUseCase(r.instrumentRepo, log),
		updateInstrumentUC: instrumentUsecases.NewUpdateInstrumentUseCase(r.instrumentRepo, log),
		deleteInstrumentUC: instrumentUsecases.NewDeleteInstrumentUseCase(r.instrumentRepo, log),
		getInstrumentUC:    instrumentUsecases.NewGetInstrumentUseCase(r.instrumentRepo, log),

		createUserUC:   userUsecases.NewCreateUserUseCase(r.userRepo, c.hasher, log),
		updateUserUC:   userUsecases.NewUpdateUserUseCase(r.userRepo, c.hasher, log),
		deleteUserUC:   userUsecases.NewDeleteUserUseCase(r.userRepo, log),
		getUserUC:      userUsecases.NewGetUserUseCase(r.userRepo, log),
		authenticateUC: userUsecases.NewAuthenticateUseCase(r.userRepo, c.hasher, c.jwtSvc, superUser, log),
	}
}
