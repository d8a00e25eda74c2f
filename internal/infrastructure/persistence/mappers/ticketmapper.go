package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/models"
	"github.com/upkeep-inc/upkeep/internal/shared/mapper"
)

// TicketMapper converts the three ticket variants to and from their tables.
type TicketMapper interface {
	BreakdownToModel(t *ticket.Breakdown) *models.BreakdownTicketModel
	BreakdownToEntity(model *models.BreakdownTicketModel) (*ticket.Breakdown, error)
	BreakdownsToEntities(ms []*models.BreakdownTicketModel) ([]*ticket.Breakdown, error)

	PreventiveToModel(t *ticket.Preventive) *models.PreventiveTicketModel
	PreventiveToEntity(model *models.PreventiveTicketModel) (*ticket.Preventive, error)
	PreventivesToEntities(ms []*models.PreventiveTicketModel) ([]*ticket.Preventive, error)

	CalibrationToModel(t *ticket.Calibration) *models.CalibrationTicketModel
	CalibrationToEntity(model *models.CalibrationTicketModel) (*ticket.Calibration, error)
	CalibrationsToEntities(ms []*models.CalibrationTicketModel) ([]*ticket.Calibration, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) BreakdownToModel(t *ticket.Breakdown) *models.BreakdownTicketModel {
	c := t.Completion()
	return &models.BreakdownTicketModel{
		ID:              t.ID(),
		Title:           t.Title(),
		Status:          t.Status().String(),
		WorkType:        t.WorkType().String(),
		MachineID:       t.MachineID(),
		MachineName:     t.MachineName(),
		Location:        t.Location(),
		Shift:           t.Shift().String(),
		DateOfWork:      t.DateOfWork(),
		DowntimeFrom:    t.DowntimeFrom(),
		DowntimeTo:      t.DowntimeTo(),
		ProblemObserved: t.ProblemObserved(),
		AttendedBy:      t.AttendedBy(),
		Completion: datatypes.NewJSONType(models.CompletionData{
			CorrectiveAction: c.CorrectiveAction,
			MaterialRequired: c.MaterialRequired,
			MaterialReplaced: c.MaterialReplaced,
			Remark:           c.Remark,
		}),
		ClosedDate: t.ClosedDate(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) BreakdownToEntity(model *models.BreakdownTicketModel) (*ticket.Breakdown, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("breakdown %s: %w", model.ID, err)
	}
	c := model.Completion.Data()
	return ticket.ReconstructBreakdown(
		ticket.BreakdownReport{
			ID:              model.ID,
			WorkType:        vo.WorkType(model.WorkType),
			MachineID:       model.MachineID,
			MachineName:     model.MachineName,
			Location:        model.Location,
			Shift:           vo.Shift(model.Shift),
			DateOfWork:      model.DateOfWork,
			DowntimeFrom:    model.DowntimeFrom,
			DowntimeTo:      model.DowntimeTo,
			ProblemObserved: model.ProblemObserved,
			AttendedBy:      model.AttendedBy,
		},
		model.Title,
		status,
		ticket.Completion{
			CorrectiveAction: c.CorrectiveAction,
			MaterialRequired: c.MaterialRequired,
			MaterialReplaced: c.MaterialReplaced,
			Remark:           c.Remark,
		},
		model.ClosedDate,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TicketMapperImpl) BreakdownsToEntities(ms []*models.BreakdownTicketModel) ([]*ticket.Breakdown, error) {
	return mapper.MapSliceWithError(ms, m.BreakdownToEntity)
}

func (m *TicketMapperImpl) PreventiveToModel(t *ticket.Preventive) *models.PreventiveTicketModel {
	return &models.PreventiveTicketModel{
		ID:            t.ID(),
		Status:        t.Status().String(),
		MachineID:     t.MachineID(),
		AssetNumber:   t.AssetNumber(),
		Area:          t.Area(),
		ScheduledDate: t.ScheduledDate(),
		Frequency:     t.Frequency().String(),
		ClosedDate:    t.ClosedDate(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) PreventiveToEntity(model *models.PreventiveTicketModel) (*ticket.Preventive, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("preventive ticket %s: %w", model.ID, err)
	}
	return ticket.ReconstructPreventive(
		model.ID,
		model.MachineID,
		model.AssetNumber,
		model.Area,
		status,
		model.ScheduledDate,
		vo.Frequency(model.Frequency),
		model.ClosedDate,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TicketMapperImpl) PreventivesToEntities(ms []*models.PreventiveTicketModel) ([]*ticket.Preventive, error) {
	return mapper.MapSliceWithError(ms, m.PreventiveToEntity)
}

func (m *TicketMapperImpl) CalibrationToModel(t *ticket.Calibration) *models.CalibrationTicketModel {
	return &models.CalibrationTicketModel{
		ID:               t.ID(),
		Status:           t.Status().String(),
		InstrumentID:     t.InstrumentID(),
		InstrumentNumber: t.InstrumentNumber(),
		InstrumentName:   t.InstrumentName(),
		Area:             t.Area(),
		ScheduledDate:    t.ScheduledDate(),
		Frequency:        t.Frequency().String(),
		ClosedDate:       t.ClosedDate(),
		CreatedAt:        t.CreatedAt(),
		UpdatedAt:        t.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) CalibrationToEntity(model *models.CalibrationTicketModel) (*ticket.Calibration, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("calibration ticket %s: %w", model.ID, err)
	}
	return ticket.ReconstructCalibration(
		model.ID,
		model.InstrumentID,
		model.InstrumentNumber,
		model.InstrumentName,
		model.Area,
		status,
		model.ScheduledDate,
		vo.Frequency(model.Frequency),
		model.ClosedDate,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TicketMapperImpl) CalibrationsToEntities(ms []*models.CalibrationTicketModel) ([]*ticket.Calibration, error) {
	return mapper.MapSliceWithError(ms, m.CalibrationToEntity)
}
