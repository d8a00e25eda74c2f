package mappers

import (
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/models"
	"github.com/upkeep-inc/upkeep/internal/shared/mapper"
)

// MachineMapper converts between machine entities and persistence models.
type MachineMapper interface {
	ToEntity(model *models.MachineModel) (*machine.Machine, error)
	ToModel(entity *machine.Machine) *models.MachineModel
	ToEntities(models []*models.MachineModel) ([]*machine.Machine, error)
}

type MachineMapperImpl struct{}

func NewMachineMapper() MachineMapper {
	return &MachineMapperImpl{}
}

func (m *MachineMapperImpl) ToEntity(model *models.MachineModel) (*machine.Machine, error) {
	if model == nil {
		return nil, nil
	}
	status, err := shared.NewActiveStatus(model.Status)
	if err != nil {
		return nil, err
	}
	return machine.ReconstructMachine(model.ID, machine.Details{
		AssetNumber: model.AssetNumber,
		MachineName: model.MachineName,
		Area:        model.Area,
		Status:      status,
		Description: model.Description,
	}, model.CreatedAt, model.UpdatedAt), nil
}

func (m *MachineMapperImpl) ToModel(entity *machine.Machine) *models.MachineModel {
	if entity == nil {
		return nil
	}
	return &models.MachineModel{
		ID:          entity.ID(),
		AssetNumber: entity.AssetNumber(),
		MachineName: entity.MachineName(),
		Area:        entity.Area(),
		Status:      entity.Status().String(),
		Description: entity.Description(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *MachineMapperImpl) ToEntities(ms []*models.MachineModel) ([]*machine.Machine, error) {
	return mapper.MapSliceWithError(ms, m.ToEntity)
}
