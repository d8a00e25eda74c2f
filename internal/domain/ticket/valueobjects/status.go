package valueobjects

import "fmt"

// TicketStatus is the lifecycle state shared by every ticket kind.
type TicketStatus string

const (
	StatusOpen   TicketStatus = "Open"
	StatusClosed TicketStatus = "Closed"
)

// Closed is terminal: nothing reopens a ticket.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen:   {StatusClosed},
	StatusClosed: {},
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	_, ok := ticketStatusTransitions[ts]
	return ok
}

func (ts TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range ticketStatusTransitions[ts] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (ts TicketStatus) IsOpen() bool   { return ts == StatusOpen }
func (ts TicketStatus) IsClosed() bool { return ts == StatusClosed }

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
