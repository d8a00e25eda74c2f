// Package ticket serves breakdown, preventive and calibration tickets and
// the maintenance calendar.
package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/usecases"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/middleware"
	"github.com/upkeep-inc/upkeep/internal/shared/constants"
	"github.com/upkeep-inc/upkeep/internal/shared/id"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

type TicketHandler struct {
	createBreakdownUC     usecases.CreateBreakdownTicketExecutor
	closeBreakdownUC      usecases.CloseBreakdownTicketExecutor
	schedulePMUC          usecases.SchedulePMTicketsExecutor
	closePMUC             usecases.CloseRecurringTicketExecutor
	scheduleCalibrationUC usecases.ScheduleCalibrationTicketsExecutor
	closeCalibrationUC    usecases.CloseRecurringTicketExecutor
	listTicketsUC         usecases.ListTicketsExecutor
	getTicketUC           usecases.GetTicketExecutor
	logger                logger.Interface
}

func NewTicketHandler(
	createBreakdownUC usecases.CreateBreakdownTicketExecutor,
	closeBreakdownUC usecases.CloseBreakdownTicketExecutor,
	schedulePMUC usecases.SchedulePMTicketsExecutor,
	closePMUC usecases.CloseRecurringTicketExecutor,
	scheduleCalibrationUC usecases.ScheduleCalibrationTicketsExecutor,
	closeCalibrationUC usecases.CloseRecurringTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createBreakdownUC:     createBreakdownUC,
		closeBreakdownUC:      closeBreakdownUC,
		schedulePMUC:          schedulePMUC,
		closePMUC:             closePMUC,
		scheduleCalibrationUC: scheduleCalibrationUC,
		closeCalibrationUC:    closeCalibrationUC,
		listTicketsUC:         listTicketsUC,
		getTicketUC:           getTicketUC,
		logger:                logger,
	}
}

// ListTickets handles GET /tickets/:kind
// @Summary List tickets of one kind
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param kind path string true "breakdown, preventive or calibration"
// @Param status query string false "Open or Closed"
// @Param area query string false "Area filter"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{kind} [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	var req ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), req.ToQuery(c.Param("kind")))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetTicket handles GET /tickets/:kind/:id
// @Summary Get a ticket
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param kind path string true "breakdown, preventive or calibration"
// @Param id path string true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{kind}/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	query := usecases.GetTicketQuery{Kind: c.Param("kind"), ID: c.Param("id")}

	result, err := h.getTicketUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateBreakdown handles POST /tickets/breakdown
// @Summary Report a breakdown
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param ticket body ReportBreakdownRequest true "Breakdown report"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/breakdown [post]
func (h *TicketHandler) CreateBreakdown(c *gin.Context) {
	h.reportBreakdown(c, middleware.CurrentUsername(c))
}

// ReportAnonymousBreakdown handles POST /public/breakdowns
// @Summary Report a breakdown without logging in
// @Tags public
// @Accept json
// @Produce json
// @Param ticket body ReportBreakdownRequest true "Breakdown report"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /public/breakdowns [post]
func (h *TicketHandler) ReportAnonymousBreakdown(c *gin.Context) {
	h.reportBreakdown(c, constants.AnonymousReporter)
}

func (h *TicketHandler) reportBreakdown(c *gin.Context, reportedBy string) {
	var req ReportBreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for breakdown report", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd, err := req.ToCommand(reportedBy)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createBreakdownUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Breakdown ticket created successfully")
}

// CloseBreakdown handles POST /tickets/breakdown/:id/close
// @Summary Close a breakdown ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Param completion body CloseBreakdownRequest true "Completion details"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /tickets/breakdown/{id}/close [post]
func (h *TicketHandler) CloseBreakdown(c *gin.Context) {
	ticketID, err := utils.ParseSIDParam(c, "id", id.PrefixBreakdown, "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CloseBreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for close breakdown", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd, err := req.ToCommand(ticketID, middleware.CurrentUsername(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.closeBreakdownUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Breakdown ticket closed", result)
}

// SchedulePM handles POST /tickets/preventive/schedule
// @Summary Schedule preventive maintenance for machines in a location
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param schedule body SchedulePMRequest true "Schedule"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/preventive/schedule [post]
func (h *TicketHandler) SchedulePM(c *gin.Context) {
	var req SchedulePMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.schedulePMUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "PM tickets scheduled")
}

// ClosePM handles POST /tickets/preventive/:id/close
// @Summary Close a PM ticket and schedule the next one
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /tickets/preventive/{id}/close [post]
func (h *TicketHandler) ClosePM(c *gin.Context) {
	h.closeRecurring(c, vo.KindPreventive, id.PrefixPreventive, h.closePMUC)
}

// ScheduleCalibration handles POST /tickets/calibration/schedule
// @Summary Schedule calibration for instruments in an area
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param schedule body ScheduleCalibrationRequest true "Schedule"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/calibration/schedule [post]
func (h *TicketHandler) ScheduleCalibration(c *gin.Context) {
	var req ScheduleCalibrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.scheduleCalibrationUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Calibration tickets scheduled")
}

// CloseCalibration handles POST /tickets/calibration/:id/close
// @Summary Close a calibration ticket and schedule the next one
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /tickets/calibration/{id}/close [post]
func (h *TicketHandler) CloseCalibration(c *gin.Context) {
	h.closeRecurring(c, vo.KindCalibration, id.PrefixCalibration, h.closeCalibrationUC)
}

func (h *TicketHandler) closeRecurring(c *gin.Context, kind vo.Kind, prefix string, uc usecases.CloseRecurringTicketExecutor) {
	ticketID, err := utils.ParseSIDParam(c, "id", prefix, "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CloseRecurringTicketCommand{
		TicketID: ticketID,
		ClosedBy: middleware.CurrentUsername(c),
	}

	result, err := uc.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Infow("close rejected", "kind", kind, "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket closed and next one scheduled", result)
}
