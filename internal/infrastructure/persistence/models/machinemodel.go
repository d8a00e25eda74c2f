package models

import (
	"time"

	"github.com/upkeep-inc/upkeep/internal/shared/constants"
)

// MachineModel is the persistence model of the machine master.
type MachineModel struct {
	ID          string `gorm:"primaryKey;size:32"`
	AssetNumber string `gorm:"not null;size:100;index"`
	MachineName string `gorm:"not null;size:200"`
	Area        string `gorm:"not null;size:100;index"`
	Status      string `gorm:"not null;size:20;default:Active"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (MachineModel) TableName() string {
	return constants.TableMachines
}
