package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// TicketLocker serializes close requests on one ticket.
type TicketLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// MetricsRecorder receives ticket activity counters.
type MetricsRecorder interface {
	TicketsCreated(kind string, n int)
	TicketClosed(kind string)
	CloseRejected(kind, reason string)
	SetOpenTickets(kind string, n int64)
	SetOverdueTickets(kind string, n int)
}

func lockKey(kind, id string) string {
	return "ticket:" + kind + ":" + id
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return biztime.NowUTC()
	}
	return t
}

// closeError maps domain and repository failures of a close onto AppErrors
// and returns the metric reason alongside.
func closeError(err error) (*errors.AppError, string) {
	switch {
	case stderrors.Is(err, ticket.ErrTicketNotFound):
		return errors.NewNotFoundError("ticket not found"), "not_found"
	case stderrors.Is(err, ticket.ErrTicketClosed):
		return errors.NewConflictError("ticket is already closed"), "already_closed"
	case ticket.IsFutureClose(err):
		return errors.NewFutureCloseError(err.Error()), "future_close"
	default:
		return errors.NewInternalError("failed to close ticket"), "error"
	}
}

func publish(publisher events.EventPublisher, log logger.Interface, evts ...events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.PublishAll(evts); err != nil {
		log.Warnw("failed to publish events", "error", err)
	}
}
