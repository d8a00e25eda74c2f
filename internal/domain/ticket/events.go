package ticket

import (
	"time"

	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
)

const (
	EventBreakdownReported = "breakdown.reported"
	EventBreakdownClosed   = "breakdown.closed"
	EventTicketsScheduled  = "ticket.scheduled"
	EventTicketRescheduled = "ticket.rescheduled"
	EventTicketOverdue     = "ticket.overdue"
)

// BreakdownReportedEvent is published when a breakdown ticket is opened.
type BreakdownReportedEvent struct {
	events.BaseEvent
	Title           string `json:"title"`
	MachineID       string `json:"machine_id"`
	Location        string `json:"location"`
	Shift           string `json:"shift"`
	ProblemObserved string `json:"problem_observed"`
	AttendedBy      string `json:"attended_by"`
}

func NewBreakdownReportedEvent(b *Breakdown) BreakdownReportedEvent {
	return BreakdownReportedEvent{
		BaseEvent:       events.NewBaseEvent(b.ID(), EventBreakdownReported, b.CreatedAt()),
		Title:           b.Title(),
		MachineID:       b.MachineID(),
		Location:        b.Location(),
		Shift:           b.Shift().String(),
		ProblemObserved: b.ProblemObserved(),
		AttendedBy:      b.AttendedBy(),
	}
}

// BreakdownClosedEvent is published when a breakdown ticket is completed.
type BreakdownClosedEvent struct {
	events.BaseEvent
	Title         string `json:"title"`
	AttendedBy    string `json:"attended_by"`
	TotalDowntime string `json:"total_downtime"`
}

func NewBreakdownClosedEvent(b *Breakdown, at time.Time) BreakdownClosedEvent {
	return BreakdownClosedEvent{
		BaseEvent:     events.NewBaseEvent(b.ID(), EventBreakdownClosed, at),
		Title:         b.Title(),
		AttendedBy:    b.AttendedBy(),
		TotalDowntime: b.TotalDowntime().String(),
	}
}

// TicketsScheduledEvent is published once per scheduling request.
type TicketsScheduledEvent struct {
	events.BaseEvent
	Kind          string    `json:"kind"`
	Area          string    `json:"area"`
	TicketIDs     []string  `json:"ticket_ids"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Frequency     string    `json:"frequency"`
}

// TicketRescheduledEvent is published when a recurring ticket is closed
// and its successor opened.
type TicketRescheduledEvent struct {
	events.BaseEvent
	Kind              string    `json:"kind"`
	Title             string    `json:"title"`
	ClosedDate        time.Time `json:"closed_date"`
	SuccessorID       string    `json:"successor_id"`
	NextScheduledDate time.Time `json:"next_scheduled_date"`
}

// TicketOverdueEvent is published by the overdue scan for open recurring
// tickets whose scheduled date has passed.
type TicketOverdueEvent struct {
	events.BaseEvent
	Kind          string    `json:"kind"`
	Title         string    `json:"title"`
	ScheduledDate time.Time `json:"scheduled_date"`
}
