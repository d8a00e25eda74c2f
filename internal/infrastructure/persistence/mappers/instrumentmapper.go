package mappers

import (
	"fmt"

	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/models"
	"github.com/upkeep-inc/upkeep/internal/shared/mapper"
)

// InstrumentMapper converts between instrument entities and persistence models.
type InstrumentMapper interface {
	ToEntity(model *models.InstrumentModel) (*instrument.Instrument, error)
	ToModel(entity *instrument.Instrument) *models.InstrumentModel
	ToEntities(models []*models.InstrumentModel) ([]*instrument.Instrument, error)
}

type InstrumentMapperImpl struct{}

func NewInstrumentMapper() InstrumentMapper {
	return &InstrumentMapperImpl{}
}

func (m *InstrumentMapperImpl) ToEntity(model *models.InstrumentModel) (*instrument.Instrument, error) {
	if model == nil {
		return nil, nil
	}
	status, err := shared.NewActiveStatus(model.Status)
	if err != nil {
		return nil, err
	}
	frequency, err := vo.ParseFrequency(model.Frequency)
	if err != nil {
		return nil, fmt.Errorf("instrument %s: %w", model.ID, err)
	}
	return instrument.ReconstructInstrument(model.ID, instrument.Details{
		InstrumentNumber:    model.InstrumentNumber,
		InstrumentName:      model.InstrumentName,
		Area:                model.Area,
		Status:              status,
		Description:         model.Description,
		LastCalibrationDone: model.LastCalibrationDone,
		Frequency:           frequency,
	}, model.CreatedAt, model.UpdatedAt), nil
}

func (m *InstrumentMapperImpl) ToModel(entity *instrument.Instrument) *models.InstrumentModel {
	if entity == nil {
		return nil
	}
	return &models.InstrumentModel{
		ID:                  entity.ID(),
		InstrumentNumber:    entity.InstrumentNumber(),
		InstrumentName:      entity.InstrumentName(),
		Area:                entity.Area(),
		Status:              entity.Status().String(),
		Description:         entity.Description(),
		Frequency:           entity.Frequency().String(),
		LastCalibrationDone: entity.LastCalibrationDone(),
		CreatedAt:           entity.CreatedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}
}

func (m *InstrumentMapperImpl) ToEntities(ms []*models.InstrumentModel) ([]*instrument.Instrument, error) {
	return mapper.MapSliceWithError(ms, m.ToEntity)
}
