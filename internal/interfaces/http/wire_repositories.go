package http

import (
	"gorm.io/gorm"

	ticketUsecases "github.com/upkeep-inc/upkeep/internal/application/ticket/usecases"
	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/repository"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/session"
	"github.com/upkeep-inc/upkeep/internal/shared/db"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// repositories holds all repository instances used by the application,
// together with the Transactor that makes them atomic.
type repositories struct {
	machineRepo    machine.Repository
	instrumentRepo instrument.Repository
	userRepo       user.Repository
	tickets        ticketUsecases.TicketRepositories
	tx             db.Transactor
}

// newGormRepositories backs every collection with the SQL database.
func newGormRepositories(gdb *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		machineRepo:    repository.NewMachineRepository(gdb, log),
		instrumentRepo: repository.NewInstrumentRepository(gdb, log),
		userRepo:       repository.NewUserRepository(gdb, log),
		tickets: ticketUsecases.TicketRepositories{
			Breakdowns:   repository.NewBreakdownRepository(gdb, log),
			Preventives:  repository.NewPreventiveRepository(gdb, log),
			Calibrations: repository.NewCalibrationRepository(gdb, log),
		},
		tx: db.NewTransactionManager(gdb),
	}
}

// newSessionRepositories keeps every collection in process memory.
func newSessionRepositories(store *session.Store) *repositories {
	return &repositories{
		machineRepo:    store.Machines(),
		instrumentRepo: store.Instruments(),
		userRepo:       store.Users(),
		tickets: ticketUsecases.TicketRepositories{
			Breakdowns:   store.Breakdowns(),
			Preventives:  store.Preventives(),
			Calibrations: store.Calibrations(),
		},
		tx: store,
	}
}
