package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/application/machine/dto"
	"github.com/upkeep-inc/upkeep/internal/application/machine/usecases"
	"github.com/upkeep-inc/upkeep/internal/shared/constants"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

type MachineHandler struct {
	createMachineUC usecases.CreateMachineExecutor
	updateMachineUC usecases.UpdateMachineExecutor
	deleteMachineUC usecases.DeleteMachineExecutor
	getMachineUC    usecases.GetMachineExecutor
	logger          logger.Interface
}

func NewMachineHandler(
	createMachineUC usecases.CreateMachineExecutor,
	updateMachineUC usecases.UpdateMachineExecutor,
	deleteMachineUC usecases.DeleteMachineExecutor,
	getMachineUC usecases.GetMachineExecutor,
	logger logger.Interface,
) *MachineHandler {
	return &MachineHandler{
		createMachineUC: createMachineUC,
		updateMachineUC: updateMachineUC,
		deleteMachineUC: deleteMachineUC,
		getMachineUC:    getMachineUC,
		logger:          logger,
	}
}

// CreateMachine handles POST /machines
// @Summary Create a machine
// @Tags machines
// @Accept json
// @Produce json
// @Security Bearer
// @Param machine body dto.CreateMachineRequest true "Machine"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /machines [post]
func (h *MachineHandler) CreateMachine(c *gin.Context) {
	var req dto.CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create machine", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createMachineUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Machine created successfully")
}

// GetMachine handles GET /machines/:id
// @Summary Get a machine
// @Tags machines
// @Produce json
// @Security Bearer
// @Param id path string true "Machine ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /machines/{id} [get]
func (h *MachineHandler) GetMachine(c *gin.Context) {
	machineID, err := utils.ParseIDParam(c, "id", "machine")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getMachineUC.ExecuteByID(c.Request.Context(), machineID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListMachines handles GET /machines
// @Summary List machines
// @Tags machines
// @Produce json
// @Security Bearer
// @Param area query string false "Area filter"
// @Param status query string false "Active or Inactive"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Router /machines [get]
func (h *MachineHandler) ListMachines(c *gin.Context) {
	var req dto.ListMachinesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.getMachineUC.ExecuteList(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Machines, result.Total, result.Page, result.PageSize)
}

// UpdateMachine handles PUT /machines/:id
// @Summary Update a machine
// @Tags machines
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Machine ID"
// @Param machine body dto.UpdateMachineRequest true "Machine"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /machines/{id} [put]
func (h *MachineHandler) UpdateMachine(c *gin.Context) {
	machineID, err := utils.ParseIDParam(c, "id", "machine")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update machine", "machine_id", machineID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateMachineUC.Execute(c.Request.Context(), machineID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machine updated successfully", result)
}

// DeleteMachine handles DELETE /machines/:id
// @Summary Delete a machine
// @Tags machines
// @Security Bearer
// @Param id path string true "Machine ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /machines/{id} [delete]
func (h *MachineHandler) DeleteMachine(c *gin.Context) {
	machineID, err := utils.ParseIDParam(c, "id", "machine")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteMachineUC.Execute(c.Request.Context(), machineID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListAreas handles GET /public/areas
// @Summary Distinct machine locations
// @Description Drives the location dropdowns of the breakdown and PM forms.
// @Tags public
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /public/areas [get]
func (h *MachineHandler) ListAreas(c *gin.Context) {
	areas, err := h.getMachineUC.ExecuteAreas(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", areas)
}

// ListMachinesInArea handles GET /public/machines
// @Summary Machines in one location
// @Tags public
// @Produce json
// @Param area query string true "Location"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /public/machines [get]
func (h *MachineHandler) ListMachinesInArea(c *gin.Context) {
	area := c.Query("area")
	if area == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("area is required"))
		return
	}

	result, err := h.getMachineUC.ExecuteList(c.Request.Context(), dto.ListMachinesRequest{
		Area:     area,
		PageSize: constants.MaxPageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Machines)
}
