package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/application/instrument/dto"
	"github.com/upkeep-inc/upkeep/internal/application/instrument/usecases"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

type InstrumentHandler struct {
	createInstrumentUC usecases.CreateInstrumentExecutor
	updateInstrumentUC usecases.UpdateInstrumentExecutor
	deleteInstrumentUC usecases.DeleteInstrumentExecutor
	getInstrumentUC    usecases.GetInstrumentExecutor
	logger             logger.Interface
}

func NewInstrumentHandler(
	createInstrumentUC usecases.CreateInstrumentExecutor,
	updateInstrumentUC usecases.UpdateInstrumentExecutor,
	deleteInstrumentUC usecases.DeleteInstrumentExecutor,
	getInstrumentUC usecases.GetInstrumentExecutor,
	logger logger.Interface,
) *InstrumentHandler {
	return &InstrumentHandler{
		createInstrumentUC: createInstrumentUC,
		updateInstrumentUC: updateInstrumentUC,
		deleteInstrumentUC: deleteInstrumentUC,
		getInstrumentUC:    getInstrumentUC,
		logger:             logger,
	}
}

// CreateInstrument handles POST /instruments
// @Summary Create a instrument
// @Tags instruments
// @Accept json
// @Produce json
// @Security Bearer
// @Param instrument body dto.CreateInstrumentRequest true "Instrument"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /instruments [post]
func (h *InstrumentHandler) CreateInstrument(c *gin.Context) {
	var req dto.CreateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create instrument", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createInstrumentUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Instrument created successfully")
}

// GetInstrument handles GET /instruments/:id
// @Summary Get a instrument
// @Tags instruments
// @Produce json
// @Security Bearer
// @Param id path string true "Instrument ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /instruments/{id} [get]
func (h *InstrumentHandler) GetInstrument(c *gin.Context) {
	instrumentID, err := utils.ParseIDParam(c, "id", "instrument")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getInstrumentUC.ExecuteByID(c.Request.Context(), instrumentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListInstruments handles GET /instruments
// @Summary List instruments
// @Tags instruments
// @Produce json
// @Security Bearer
// @Param area query string false "Area filter"
// @Param status query string false "Active or Inactive"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Router /instruments [get]
func (h *InstrumentHandler) ListInstruments(c *gin.Context) {
	var req dto.ListInstrumentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.getInstrumentUC.ExecuteList(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Instruments, result.Total, result.Page, result.PageSize)
}

// UpdateInstrument handles PUT /instruments/:id
// @Summary Update a instrument
// @Tags instruments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Instrument ID"
// @Param instrument body dto.UpdateInstrumentRequest true "Instrument"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /instruments/{id} [put]
func (h *InstrumentHandler) UpdateInstrument(c *gin.Context) {
	instrumentID, err := utils.ParseIDParam(c, "id", "instrument")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update instrument", "instrument_id", instrumentID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateInstrumentUC.Execute(c.Request.Context(), instrumentID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Instrument updated successfully", result)
}

// DeleteInstrument handles DELETE /instruments/:id
// @Summary Delete a instrument
// @Tags instruments
// @Security Bearer
// @Param id path string true "Instrument ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /instruments/{id} [delete]
func (h *InstrumentHandler) DeleteInstrument(c *gin.Context) {
	instrumentID, err := utils.ParseIDParam(c, "id", "instrument")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteInstrumentUC.Execute(c.Request.Context(), instrumentID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
