package dto

import (
	"time"

	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/shared/mapper"
)

type CreateMachineRequest struct {
	AssetNumber string `json:"asset_number" binding:"required,max=50"`
	MachineName string `json:"machine_name" binding:"required,max=200"`
	Area        string `json:"area" binding:"required,max=100"`
	Status      string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Description string `json:"description"`
}

type UpdateMachineRequest struct {
	AssetNumber string `json:"asset_number" binding:"required,max=50"`
	MachineName string `json:"machine_name" binding:"required,max=200"`
	Area        string `json:"area" binding:"required,max=100"`
	Status      string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Description string `json:"description"`
}

type ListMachinesRequest struct {
	Area     string `form:"area"`
	Status   string `form:"status" binding:"omitempty,oneof=Active Inactive"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type MachineResponse struct {
	ID          string    `json:"id"`
	AssetNumber string    `json:"asset_number"`
	MachineName string    `json:"machine_name"`
	Area        string    `json:"area"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListMachinesResponse struct {
	Machines []*MachineResponse `json:"machines"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

func FromMachine(m *machine.Machine) *MachineResponse {
	if m == nil {
		return nil
	}
	return &MachineResponse{
		ID:          m.ID(),
		AssetNumber: m.AssetNumber(),
		MachineName: m.MachineName(),
		Area:        m.Area(),
		Status:      m.Status().String(),
		Description: m.Description(),
		CreatedAt:   m.CreatedAt(),
		UpdatedAt:   m.UpdatedAt(),
	}
}

func FromMachines(ms []*machine.Machine) []*MachineResponse {
	return mapper.MapSlice(ms, FromMachine)
}
