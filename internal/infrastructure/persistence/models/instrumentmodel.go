package models

import (
	"time"

	"github.com/upkeep-inc/upkeep/internal/shared/constants"
)

// InstrumentModel is the persistence model of the instrument master.
type InstrumentModel struct {
	ID                  string `gorm:"primaryKey;size:32"`
	InstrumentNumber    string `gorm:"not null;size:100;index"`
	InstrumentName      string `gorm:"not null;size:200"`
	Area                string `gorm:"not null;size:100;index"`
	Status              string `gorm:"not null;size:20;default:Active"`
	Description         string `gorm:"type:text"`
	Frequency           string `gorm:"not null;size:20;default:monthly"`
	LastCalibrationDone *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (InstrumentModel) TableName() string {
	return constants.TableInstruments
}
