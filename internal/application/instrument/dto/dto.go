package dto

import (
	"time"

	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/shared/mapper"
)

type CreateInstrumentRequest struct {
	InstrumentNumber    string     `json:"instrument_number" binding:"required,max=50"`
	InstrumentName      string     `json:"instrument_name" binding:"required,max=200"`
	Area                string     `json:"area" binding:"required,max=100"`
	Status              string     `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Description         string     `json:"description"`
	LastCalibrationDone *time.Time `json:"last_calibration_done"`
	Frequency           string     `json:"frequency"`
}

type UpdateInstrumentRequest = CreateInstrumentRequest

type ListInstrumentsRequest struct {
	Area     string `form:"area"`
	Status   string `form:"status" binding:"omitempty,oneof=Active Inactive"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type InstrumentResponse struct {
	ID                  string     `json:"id"`
	InstrumentNumber    string     `json:"instrument_number"`
	InstrumentName      string     `json:"instrument_name"`
	Area                string     `json:"area"`
	Status              string     `json:"status"`
	Description         string     `json:"description,omitempty"`
	LastCalibrationDone *time.Time `json:"last_calibration_done,omitempty"`
	NextDueDate         *time.Time `json:"next_due_date,omitempty"`
	Frequency           string     `json:"frequency"`
	FrequencyLabel      string     `json:"frequency_label"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type ListInstrumentsResponse struct {
	Instruments []*InstrumentResponse `json:"instruments"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
}

func FromInstrument(i *instrument.Instrument) *InstrumentResponse {
	if i == nil {
		return nil
	}
	return &InstrumentResponse{
		ID:                  i.ID(),
		InstrumentNumber:    i.InstrumentNumber(),
		InstrumentName:      i.InstrumentName(),
		Area:                i.Area(),
		Status:              i.Status().String(),
		Description:         i.Description(),
		LastCalibrationDone: i.LastCalibrationDone(),
		NextDueDate:         i.NextDueDate(),
		Frequency:           i.Frequency().String(),
		FrequencyLabel:      i.Frequency().Label(),
		CreatedAt:           i.CreatedAt(),
		UpdatedAt:           i.UpdatedAt(),
	}
}

func FromInstruments(is []*instrument.Instrument) []*InstrumentResponse {
	return mapper.MapSlice(is, FromInstrument)
}
