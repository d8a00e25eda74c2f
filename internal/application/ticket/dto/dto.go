// Package dto holds the ticket shapes returned to the delivery layer.
package dto

import (
	"time"

	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/mapper"
)

// TicketDTO is the flattened view of any ticket variant. Fields that do not
// apply to the variant are omitted.
type TicketDTO struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	ClosedDate *time.Time `json:"closed_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Preventive and Calibration
	Area           string     `json:"area,omitempty"`
	ScheduledDate  *time.Time `json:"scheduled_date,omitempty"`
	Frequency      string     `json:"frequency,omitempty"`
	FrequencyLabel string     `json:"frequency_label,omitempty"`
	IsOverdue      bool       `json:"is_overdue,omitempty"`

	// Preventive and Breakdown
	MachineID string `json:"machine_id,omitempty"`

	// Preventive
	AssetNumber string `json:"asset_number,omitempty"`

	// Calibration
	InstrumentID     string `json:"instrument_id,omitempty"`
	InstrumentNumber string `json:"instrument_number,omitempty"`
	InstrumentName   string `json:"instrument_name,omitempty"`

	// Breakdown
	WorkType         string     `json:"work_type,omitempty"`
	MachineName      string     `json:"machine_name,omitempty"`
	Location         string     `json:"location,omitempty"`
	Shift            string     `json:"shift,omitempty"`
	DateOfWork       *time.Time `json:"date_of_work,omitempty"`
	DowntimeFrom     *time.Time `json:"downtime_from,omitempty"`
	DowntimeTo       *time.Time `json:"downtime_to,omitempty"`
	TotalDowntime    string     `json:"total_downtime,omitempty"`
	ProblemObserved  string     `json:"problem_observed,omitempty"`
	AttendedBy       string     `json:"attended_by,omitempty"`
	CorrectiveAction string     `json:"corrective_action,omitempty"`
	MaterialRequired string     `json:"material_required,omitempty"`
	MaterialReplaced string     `json:"material_replaced,omitempty"`
	Remark           string     `json:"remark,omitempty"`
}

// CloseResultDTO reports a closed recurring ticket and the successor it
// spawned.
type CloseResultDTO struct {
	Closed    *TicketDTO `json:"closed"`
	Successor *TicketDTO `json:"successor"`
}

type TicketListDTO struct {
	Items    []*TicketDTO `json:"items"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// CalendarDayDTO counts the recurring tickets scheduled on one day.
type CalendarDayDTO struct {
	Date      string `json:"date"`
	Pending   int    `json:"pending"`
	Completed int    `json:"completed"`
}

type CalendarMonthDTO struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Kind  string           `json:"kind"`
	Days  []CalendarDayDTO `json:"days"`
}

type DaySummaryDTO struct {
	Date      string       `json:"date"`
	Kind      string       `json:"kind"`
	Pending   []*TicketDTO `json:"pending"`
	Completed []*TicketDTO `json:"completed"`
	// HTML is set when the summary was requested rendered.
	HTML string `json:"html,omitempty"`
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func header(t ticket.Ticket) *TicketDTO {
	return &TicketDTO{
		ID:         t.ID(),
		Kind:       t.Kind().String(),
		Title:      t.Title(),
		Status:     t.Status().String(),
		ClosedDate: t.ClosedDate(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
}

func FromPreventive(p *ticket.Preventive) *TicketDTO {
	if p == nil {
		return nil
	}
	d := header(p)
	d.MachineID = p.MachineID()
	d.AssetNumber = p.AssetNumber()
	d.Area = p.Area()
	d.ScheduledDate = timePtr(p.ScheduledDate())
	d.Frequency = p.Frequency().String()
	d.FrequencyLabel = p.Frequency().Label()
	d.IsOverdue = p.IsOpen() && p.IsOverdue(biztime.StartOfDayUTC(biztime.NowUTC()))
	return d
}

func FromCalibration(c *ticket.Calibration) *TicketDTO {
	if c == nil {
		return nil
	}
	d := header(c)
	d.InstrumentID = c.InstrumentID()
	d.InstrumentNumber = c.InstrumentNumber()
	d.InstrumentName = c.InstrumentName()
	d.Area = c.Area()
	d.ScheduledDate = timePtr(c.ScheduledDate())
	d.Frequency = c.Frequency().String()
	d.FrequencyLabel = c.Frequency().Label()
	d.IsOverdue = c.IsOpen() && c.IsOverdue(biztime.StartOfDayUTC(biztime.NowUTC()))
	return d
}

func FromBreakdown(b *ticket.Breakdown) *TicketDTO {
	if b == nil {
		return nil
	}
	d := header(b)
	completion := b.Completion()
	d.WorkType = b.WorkType().String()
	d.MachineID = b.MachineID()
	d.MachineName = b.MachineName()
	d.Location = b.Location()
	d.Shift = b.Shift().String()
	d.DateOfWork = timePtr(b.DateOfWork())
	d.DowntimeFrom = timePtr(b.DowntimeFrom())
	d.DowntimeTo = b.DowntimeTo()
	d.TotalDowntime = b.TotalDowntime().String()
	d.ProblemObserved = b.ProblemObserved()
	d.AttendedBy = b.AttendedBy()
	d.CorrectiveAction = completion.CorrectiveAction
	d.MaterialRequired = completion.MaterialRequired
	d.MaterialReplaced = completion.MaterialReplaced
	d.Remark = completion.Remark
	return d
}

func FromPreventives(ps []*ticket.Preventive) []*TicketDTO {
	return mapper.MapSlice(ps, FromPreventive)
}

func FromCalibrations(cs []*ticket.Calibration) []*TicketDTO {
	return mapper.MapSlice(cs, FromCalibration)
}

func FromBreakdowns(bs []*ticket.Breakdown) []*TicketDTO {
	return mapper.MapSlice(bs, FromBreakdown)
}
