package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/upkeep-inc/upkeep/internal/shared/constants"
)

// CompletionData is the JSON document stored with a closed breakdown.
type CompletionData struct {
	CorrectiveAction string `json:"corrective_action,omitempty"`
	MaterialRequired string `json:"material_required,omitempty"`
	MaterialReplaced string `json:"material_replaced,omitempty"`
	Remark           string `json:"remark,omitempty"`
}

type BreakdownTicketModel struct {
	ID              string `gorm:"primaryKey;size:32"`
	Title           string `gorm:"not null;size:255"`
	Status          string `gorm:"not null;size:20;index"`
	WorkType        string `gorm:"not null;size:20"`
	MachineID       string `gorm:"not null;size:32;index"`
	MachineName     string `gorm:"not null;size:200"`
	Location        string `gorm:"not null;size:100;index"`
	Shift           string `gorm:"not null;size:20"`
	DateOfWork      time.Time
	DowntimeFrom    time.Time
	DowntimeTo      *time.Time
	ProblemObserved string `gorm:"type:text"`
	AttendedBy      string `gorm:"size:100"`
	Completion      datatypes.JSONType[CompletionData]
	ClosedDate      *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (BreakdownTicketModel) TableName() string {
	return constants.TableBreakdownTickets
}

// Note: No foreign key constraints. Tickets outlive the machine or
// instrument they were raised against.

type PreventiveTicketModel struct {
	ID            string    `gorm:"primaryKey;size:32"`
	Status        string    `gorm:"not null;size:20;index"`
	MachineID     string    `gorm:"not null;size:32;index"`
	AssetNumber   string    `gorm:"not null;size:100"`
	Area          string    `gorm:"not null;size:100;index"`
	ScheduledDate time.Time `gorm:"not null;index"`
	Frequency     string    `gorm:"not null;size:20"`
	ClosedDate    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PreventiveTicketModel) TableName() string {
	return constants.TablePreventiveTickets
}

type CalibrationTicketModel struct {
	ID               string    `gorm:"primaryKey;size:32"`
	Status           string    `gorm:"not null;size:20;index"`
	InstrumentID     string    `gorm:"not null;size:32;index"`
	InstrumentNumber string    `gorm:"not null;size:100"`
	InstrumentName   string    `gorm:"not null;size:200"`
	Area             string    `gorm:"not null;size:100;index"`
	ScheduledDate    time.Time `gorm:"not null;index"`
	Frequency        string    `gorm:"not null;size:20"`
	ClosedDate       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (CalibrationTicketModel) TableName() string {
	return constants.TableCalibrationTickets
}
