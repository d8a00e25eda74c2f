package ticket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/usecases"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

type CalendarHandler struct {
	monthUC      usecases.GetCalendarMonthExecutor
	daySummaryUC usecases.GetDaySummaryExecutor
	logger       logger.Interface
}

func NewCalendarHandler(
	monthUC usecases.GetCalendarMonthExecutor,
	daySummaryUC usecases.GetDaySummaryExecutor,
	logger logger.Interface,
) *CalendarHandler {
	return &CalendarHandler{
		monthUC:      monthUC,
		daySummaryUC: daySummaryUC,
		logger:       logger,
	}
}

// GetMonth handles GET /calendar/:year/:month
// @Summary Pending and completed recurring tickets per day of a month
// @Tags calendar
// @Produce json
// @Security Bearer
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param kind query string false "preventive (default) or calibration"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /calendar/{year}/{month} [get]
func (h *CalendarHandler) GetMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid year", c.Param("year")))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid month", c.Param("month")))
		return
	}

	result, err := h.monthUC.Execute(c.Request.Context(), usecases.GetCalendarMonthQuery{
		Year:  year,
		Month: month,
		Kind:  c.Query("kind"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetDaySummary handles GET /calendar/days/:date
// @Summary Recurring tickets scheduled on one day
// @Description With format=html the summary is returned as a rendered HTML fragment.
// @Tags calendar
// @Produce json,html
// @Security Bearer
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param kind query string false "preventive (default) or calibration"
// @Param format query string false "json (default) or html"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /calendar/days/{date} [get]
func (h *CalendarHandler) GetDaySummary(c *gin.Context) {
	query := usecases.GetDaySummaryQuery{
		Date:   c.Param("date"),
		Kind:   c.Query("kind"),
		Format: c.Query("format"),
	}

	result, err := h.daySummaryUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.HTML != "" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result.HTML))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
