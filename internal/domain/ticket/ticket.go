// Package ticket models maintenance tickets. A ticket is one of three
// variants: a Breakdown report, a Preventive (PM) task tied to a machine,
// or a Calibration task tied to an instrument. Preventive and Calibration
// tickets recur: closing one yields its successor.
package ticket

import (
	"time"

	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
)

// Ticket is the behaviour common to every variant.
type Ticket interface {
	ID() string
	Kind() vo.Kind
	Title() string
	Status() vo.TicketStatus
	ClosedDate() *time.Time
	CreatedAt() time.Time
	UpdatedAt() time.Time
}

// header holds the fields shared by every variant.
type header struct {
	id         string
	title      string
	status     vo.TicketStatus
	closedDate *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

func (h *header) ID() string              { return h.id }
func (h *header) Title() string           { return h.title }
func (h *header) Status() vo.TicketStatus { return h.status }
func (h *header) CreatedAt() time.Time    { return h.createdAt }
func (h *header) UpdatedAt() time.Time    { return h.updatedAt }
func (h *header) IsOpen() bool            { return h.status.IsOpen() }
func (h *header) ClosedDate() *time.Time {
	if h.closedDate == nil {
		return nil
	}
	t := *h.closedDate
	return &t
}

// closed returns a copy of h in the Closed state.
func (h header) closed(at time.Time) header {
	h.status = vo.StatusClosed
	h.closedDate = &at
	h.updatedAt = at
	return h
}

func openHeader(id, title string, now time.Time) header {
	return header{
		id:        id,
		title:     title,
		status:    vo.StatusOpen,
		createdAt: now,
		updatedAt: now,
	}
}

// schedule is the recurrence state of Preventive and Calibration tickets.
type schedule struct {
	scheduledDate time.Time
	frequency     vo.Frequency
}

func (s schedule) ScheduledDate() time.Time { return s.scheduledDate }
func (s schedule) Frequency() vo.Frequency  { return s.frequency }

// IsOverdue reports whether the ticket was due before now.
func (s schedule) IsOverdue(now time.Time) bool {
	return s.scheduledDate.Before(now)
}

// next validates a close at closedAt and returns the successor's schedule.
// It performs the status check and the future-date guard, so nothing is
// modified when it fails.
func (s schedule) next(status vo.TicketStatus, closedAt time.Time) (schedule, error) {
	if !status.CanTransitionTo(vo.StatusClosed) {
		return schedule{}, ErrTicketClosed
	}
	if s.scheduledDate.After(closedAt) {
		return schedule{}, &FutureCloseError{ScheduledDate: s.scheduledDate, ClosedAt: closedAt}
	}
	nextDate, err := s.frequency.NextDate(closedAt)
	if err != nil {
		return schedule{}, err
	}
	return schedule{scheduledDate: nextDate, frequency: s.frequency}, nil
}
