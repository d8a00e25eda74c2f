package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
)

// Breakdown is an incident report against a machine. It never recurs; it
// is closed by recording what was done about it.
type Breakdown struct {
	header
	workType        vo.WorkType
	machineID       string
	machineName     string
	location        string
	shift           vo.Shift
	dateOfWork      time.Time
	downtimeFrom    time.Time
	downtimeTo      *time.Time
	problemObserved string
	attendedBy      string
	completion      Completion
}

// Completion holds the free-text outcome recorded when a breakdown is closed.
type Completion struct {
	CorrectiveAction string `json:"corrective_action,omitempty"`
	MaterialRequired string `json:"material_required,omitempty"`
	MaterialReplaced string `json:"material_replaced,omitempty"`
	Remark           string `json:"remark,omitempty"`
}

// BreakdownReport is the input of a new breakdown ticket.
type BreakdownReport struct {
	ID              string
	WorkType        vo.WorkType
	MachineID       string
	MachineName     string
	Location        string
	Shift           vo.Shift
	DateOfWork      time.Time
	DowntimeFrom    time.Time
	DowntimeTo      *time.Time
	ProblemObserved string
	AttendedBy      string
}

// BreakdownClosure is the input of closing a breakdown. Machine and
// downtime fields may be corrected at close time.
type BreakdownClosure struct {
	WorkType        vo.WorkType
	MachineID       string
	MachineName     string
	Location        string
	Shift           vo.Shift
	DateOfWork      time.Time
	DowntimeFrom    time.Time
	DowntimeTo      *time.Time
	ProblemObserved string
	AttendedBy      string
	Completion      Completion
}

func BreakdownTitle(workType vo.WorkType, machineName string) string {
	return fmt.Sprintf("%s: %s", workType, machineName)
}

func NewBreakdown(r BreakdownReport, now time.Time) (*Breakdown, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !r.Shift.IsValid() {
		return nil, fmt.Errorf("shift is required")
	}
	if r.DowntimeFrom.IsZero() {
		return nil, fmt.Errorf("downtime from is required")
	}
	if strings.TrimSpace(r.MachineID) == "" {
		return nil, fmt.Errorf("machine is required")
	}
	if strings.TrimSpace(r.ProblemObserved) == "" {
		return nil, fmt.Errorf("problem observed is required")
	}
	if r.WorkType == "" {
		r.WorkType = vo.WorkTypeBreakdown
	}
	if !r.WorkType.IsValid() {
		return nil, fmt.Errorf("invalid work type: %s", r.WorkType)
	}
	if r.DateOfWork.IsZero() {
		r.DateOfWork = now
	}

	return &Breakdown{
		header:          openHeader(r.ID, BreakdownTitle(r.WorkType, r.MachineName), now),
		workType:        r.WorkType,
		machineID:       r.MachineID,
		machineName:     r.MachineName,
		location:        r.Location,
		shift:           r.Shift,
		dateOfWork:      r.DateOfWork,
		downtimeFrom:    r.DowntimeFrom,
		downtimeTo:      r.DowntimeTo,
		problemObserved: r.ProblemObserved,
		attendedBy:      r.AttendedBy,
	}, nil
}

func ReconstructBreakdown(
	r BreakdownReport,
	title string,
	status vo.TicketStatus,
	completion Completion,
	closedDate *time.Time,
	createdAt, updatedAt time.Time,
) (*Breakdown, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Breakdown{
		header: header{
			id:         r.ID,
			title:      title,
			status:     status,
			closedDate: closedDate,
			createdAt:  createdAt,
			updatedAt:  updatedAt,
		},
		workType:        r.WorkType,
		machineID:       r.MachineID,
		machineName:     r.MachineName,
		location:        r.Location,
		shift:           r.Shift,
		dateOfWork:      r.DateOfWork,
		downtimeFrom:    r.DowntimeFrom,
		downtimeTo:      r.DowntimeTo,
		problemObserved: r.ProblemObserved,
		attendedBy:      r.AttendedBy,
		completion:      completion,
	}, nil
}

func (b *Breakdown) Kind() vo.Kind           { return vo.KindBreakdown }
func (b *Breakdown) WorkType() vo.WorkType   { return b.workType }
func (b *Breakdown) MachineID() string       { return b.machineID }
func (b *Breakdown) MachineName() string     { return b.machineName }
func (b *Breakdown) Location() string        { return b.location }
func (b *Breakdown) Shift() vo.Shift         { return b.shift }
func (b *Breakdown) DateOfWork() time.Time   { return b.dateOfWork }
func (b *Breakdown) DowntimeFrom() time.Time { return b.downtimeFrom }
func (b *Breakdown) ProblemObserved() string { return b.problemObserved }
func (b *Breakdown) AttendedBy() string      { return b.attendedBy }
func (b *Breakdown) Completion() Completion  { return b.completion }

func (b *Breakdown) DowntimeTo() *time.Time {
	if b.downtimeTo == nil {
		return nil
	}
	t := *b.downtimeTo
	return &t
}

// TotalDowntime is derived from the downtime window.
func (b *Breakdown) TotalDowntime() Downtime {
	return ComputeDowntime(&b.downtimeFrom, b.downtimeTo)
}

// Close validates the completion record and returns a Closed copy of b.
// Shift, both ends of the downtime window, the machine, the problem and
// the corrective action are all required.
func (b *Breakdown) Close(c BreakdownClosure, closedAt time.Time) (*Breakdown, error) {
	if !b.status.CanTransitionTo(vo.StatusClosed) {
		return nil, ErrTicketClosed
	}
	switch {
	case !c.Shift.IsValid():
		return nil, fmt.Errorf("shift is required")
	case c.DowntimeFrom.IsZero():
		return nil, fmt.Errorf("downtime from is required")
	case c.DowntimeTo == nil || c.DowntimeTo.IsZero():
		return nil, fmt.Errorf("downtime to is required")
	case strings.TrimSpace(c.MachineID) == "":
		return nil, fmt.Errorf("machine is required")
	case strings.TrimSpace(c.ProblemObserved) == "":
		return nil, fmt.Errorf("problem observed is required")
	case strings.TrimSpace(c.Completion.CorrectiveAction) == "":
		return nil, fmt.Errorf("corrective action is required")
	}

	workType := c.WorkType
	if workType == "" {
		workType = b.workType
	}
	if !workType.IsValid() {
		return nil, fmt.Errorf("invalid work type: %s", workType)
	}

	closed := *b
	closed.header = b.header.closed(closedAt)
	closed.workType = workType
	closed.shift = c.Shift
	closed.downtimeFrom = c.DowntimeFrom
	to := *c.DowntimeTo
	closed.downtimeTo = &to
	closed.problemObserved = c.ProblemObserved
	closed.attendedBy = c.AttendedBy
	closed.completion = c.Completion
	if !c.DateOfWork.IsZero() {
		closed.dateOfWork = c.DateOfWork
	}
	if c.MachineID != b.machineID {
		closed.machineID = c.MachineID
		closed.machineName = c.MachineName
		closed.location = c.Location
	}
	closed.title = BreakdownTitle(closed.workType, closed.machineName)
	return &closed, nil
}
