package ticket

import (
	"time"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/usecases"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
)

// ReportBreakdownRequest is the breakdown form, used both by logged-in
// users and by the anonymous public form.
type ReportBreakdownRequest struct {
	WorkType        string `json:"work_type" binding:"omitempty,oneof=Breakdown 'Other Work'"`
	MachineID       string `json:"machine_id" binding:"required"`
	Shift           string `json:"shift" binding:"required,oneof=First Second Night"`
	DateOfWork      string `json:"date_of_work"`
	DowntimeFrom    string `json:"downtime_from" binding:"required"`
	DowntimeTo      string `json:"downtime_to"`
	ProblemObserved string `json:"problem_observed" binding:"required,max=2000"`
}

func (r *ReportBreakdownRequest) ToCommand(reportedBy string) (usecases.CreateBreakdownTicketCommand, error) {
	cmd := usecases.CreateBreakdownTicketCommand{
		WorkType:        r.WorkType,
		MachineID:       r.MachineID,
		Shift:           r.Shift,
		ProblemObserved: r.ProblemObserved,
		ReportedBy:      reportedBy,
	}

	var err error
	if cmd.DateOfWork, err = optionalTime("date_of_work", r.DateOfWork); err != nil {
		return cmd, err
	}
	if cmd.DowntimeFrom, err = optionalTime("downtime_from", r.DowntimeFrom); err != nil {
		return cmd, err
	}
	if cmd.DowntimeTo, err = optionalTime("downtime_to", r.DowntimeTo); err != nil {
		return cmd, err
	}
	return cmd, nil
}

// CloseBreakdownRequest completes a breakdown. The report fields may be
// corrected while closing.
type CloseBreakdownRequest struct {
	WorkType         string `json:"work_type" binding:"omitempty,oneof=Breakdown 'Other Work'"`
	MachineID        string `json:"machine_id" binding:"required"`
	Shift            string `json:"shift" binding:"required,oneof=First Second Night"`
	DateOfWork       string `json:"date_of_work"`
	DowntimeFrom     string `json:"downtime_from" binding:"required"`
	DowntimeTo       string `json:"downtime_to" binding:"required"`
	ProblemObserved  string `json:"problem_observed" binding:"required,max=2000"`
	CorrectiveAction string `json:"corrective_action" binding:"required,max=2000"`
	MaterialRequired string `json:"material_required" binding:"max=2000"`
	MaterialReplaced string `json:"material_replaced" binding:"max=2000"`
	Remark           string `json:"remark" binding:"max=2000"`
}

func (r *CloseBreakdownRequest) ToCommand(ticketID, closedBy string) (usecases.CloseBreakdownTicketCommand, error) {
	cmd := usecases.CloseBreakdownTicketCommand{
		TicketID:         ticketID,
		WorkType:         r.WorkType,
		MachineID:        r.MachineID,
		Shift:            r.Shift,
		ProblemObserved:  r.ProblemObserved,
		CorrectiveAction: r.CorrectiveAction,
		MaterialRequired: r.MaterialRequired,
		MaterialReplaced: r.MaterialReplaced,
		Remark:           r.Remark,
		ClosedBy:         closedBy,
	}

	var err error
	if cmd.DateOfWork, err = optionalTime("date_of_work", r.DateOfWork); err != nil {
		return cmd, err
	}
	if cmd.DowntimeFrom, err = optionalTime("downtime_from", r.DowntimeFrom); err != nil {
		return cmd, err
	}
	if cmd.DowntimeTo, err = optionalTime("downtime_to", r.DowntimeTo); err != nil {
		return cmd, err
	}
	return cmd, nil
}

type SchedulePMRequest struct {
	Location   string   `json:"location" binding:"required"`
	MachineIDs []string `json:"machine_ids"`
	SelectAll  bool     `json:"select_all"`
	StartDate  string   `json:"start_date" binding:"required"`
	EndDate    string   `json:"end_date" binding:"required"`
	Frequency  string   `json:"frequency" binding:"required"`
}

func (r *SchedulePMRequest) ToCommand() (usecases.SchedulePMTicketsCommand, error) {
	cmd := usecases.SchedulePMTicketsCommand{
		Location:   r.Location,
		MachineIDs: r.MachineIDs,
		SelectAll:  r.SelectAll,
		Frequency:  r.Frequency,
	}

	var err error
	if cmd.StartDate, err = optionalDate("start_date", r.StartDate); err != nil {
		return cmd, err
	}
	if cmd.EndDate, err = optionalDate("end_date", r.EndDate); err != nil {
		return cmd, err
	}
	return cmd, nil
}

type ScheduleCalibrationRequest struct {
	Area          string   `json:"area" binding:"required"`
	InstrumentIDs []string `json:"instrument_ids"`
	SelectAll     bool     `json:"select_all"`
	StartDate     string   `json:"start_date" binding:"required"`
	Frequency     string   `json:"frequency"`
}

func (r *ScheduleCalibrationRequest) ToCommand() (usecases.ScheduleCalibrationTicketsCommand, error) {
	cmd := usecases.ScheduleCalibrationTicketsCommand{
		Area:          r.Area,
		InstrumentIDs: r.InstrumentIDs,
		SelectAll:     r.SelectAll,
		Frequency:     r.Frequency,
	}

	var err error
	cmd.StartDate, err = optionalDate("start_date", r.StartDate)
	return cmd, err
}

type ListTicketsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=Open Closed"`
	Area     string `form:"area"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func (r *ListTicketsRequest) ToQuery(kind string) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Kind:     kind,
		Status:   r.Status,
		Area:     r.Area,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}

func optionalTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := biztime.ParseDateTime(value)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+field, err.Error())
	}
	return &t, nil
}

func optionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := biztime.ParseDate(value)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+field, "expected YYYY-MM-DD")
	}
	return &t, nil
}
