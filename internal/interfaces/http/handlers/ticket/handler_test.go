package ticket

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "github.com/upkeep-inc/upkeep/internal/application/ticket/dto"
	"github.com/upkeep-inc/upkeep/internal/application/ticket/usecases"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/handlers/testutil"
	"github.com/upkeep-inc/upkeep/internal/shared/constants"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateBreakdownUC struct {
	result *ticketdto.TicketDTO
	err    error
	got    usecases.CreateBreakdownTicketCommand
}

func (m *mockCreateBreakdownUC) Execute(_ context.Context, cmd usecases.CreateBreakdownTicketCommand) (*ticketdto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCloseBreakdownUC struct {
	result *ticketdto.TicketDTO
	err    error
	got    usecases.CloseBreakdownTicketCommand
}

func (m *mockCloseBreakdownUC) Execute(_ context.Context, cmd usecases.CloseBreakdownTicketCommand) (*ticketdto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockSchedulePMUC struct {
	result []*ticketdto.TicketDTO
	err    error
	got    usecases.SchedulePMTicketsCommand
}

func (m *mockSchedulePMUC) Execute(_ context.Context, cmd usecases.SchedulePMTicketsCommand) ([]*ticketdto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockScheduleCalibrationUC struct {
	result []*ticketdto.TicketDTO
	err    error
	got    usecases.ScheduleCalibrationTicketsCommand
}

func (m *mockScheduleCalibrationUC) Execute(_ context.Context, cmd usecases.ScheduleCalibrationTicketsCommand) ([]*ticketdto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCloseRecurringUC struct {
	result *ticketdto.CloseResultDTO
	err    error
	got    usecases.CloseRecurringTicketCommand
}

func (m *mockCloseRecurringUC) Execute(_ context.Context, cmd usecases.CloseRecurringTicketCommand) (*ticketdto.CloseResultDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListTicketsUC struct {
	result *ticketdto.TicketListDTO
	err    error
	got    usecases.ListTicketsQuery
}

func (m *mockListTicketsUC) Execute(_ context.Context, query usecases.ListTicketsQuery) (*ticketdto.TicketListDTO, error) {
	m.got = query
	return m.result, m.err
}

type mockGetTicketUC struct {
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockGetTicketUC) Execute(_ context.Context, _ usecases.GetTicketQuery) (*ticketdto.TicketDTO, error) {
	return m.result, m.err
}

type mockCalendarMonthUC struct {
	result *ticketdto.CalendarMonthDTO
	err    error
	got    usecases.GetCalendarMonthQuery
}

func (m *mockCalendarMonthUC) Execute(_ context.Context, query usecases.GetCalendarMonthQuery) (*ticketdto.CalendarMonthDTO, error) {
	m.got = query
	return m.result, m.err
}

type mockDaySummaryUC struct {
	result *ticketdto.DaySummaryDTO
	err    error
}

func (m *mockDaySummaryUC) Execute(_ context.Context, _ usecases.GetDaySummaryQuery) (*ticketdto.DaySummaryDTO, error) {
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	createBreakdownUC     *mockCreateBreakdownUC
	closeBreakdownUC      *mockCloseBreakdownUC
	schedulePMUC          *mockSchedulePMUC
	closePMUC             *mockCloseRecurringUC
	scheduleCalibrationUC *mockScheduleCalibrationUC
	closeCalibrationUC    *mockCloseRecurringUC
	listTicketsUC         *mockListTicketsUC
	getTicketUC           *mockGetTicketUC
}

func newTestTicketHandler(deps testDeps) *TicketHandler {
	return NewTicketHandler(
		deps.createBreakdownUC,
		deps.closeBreakdownUC,
		deps.schedulePMUC,
		deps.closePMUC,
		deps.scheduleCalibrationUC,
		deps.closeCalibrationUC,
		deps.listTicketsUC,
		deps.getTicketUC,
		testutil.NewMockLogger(),
	)
}

func validBreakdownReport() map[string]any {
	return map[string]any{
		"machine_id":       "m1",
		"shift":            "First",
		"downtime_from":    "2024-03-01T08:30",
		"problem_observed": "Belt slipping",
	}
}

// =====================================================================
// Breakdown
// =====================================================================

func TestTicketHandler_ReportAnonymousBreakdown(t *testing.T) {
	mockUC := &mockCreateBreakdownUC{result: &ticketdto.TicketDTO{ID: "bd_abc", Kind: "breakdown", Status: "Open"}}
	handler := newTestTicketHandler(testDeps{createBreakdownUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/public/breakdowns", validBreakdownReport())

	handler.ReportAnonymousBreakdown(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, constants.AnonymousReporter, mockUC.got.ReportedBy)
	assert.Equal(t, "m1", mockUC.got.MachineID)
	require.NotNil(t, mockUC.got.DowntimeFrom)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC), *mockUC.got.DowntimeFrom)
	assert.Nil(t, mockUC.got.DowntimeTo)

	var created ticketdto.TicketDTO
	resp, err := testutil.DecodeData(w, &created)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "bd_abc", created.ID)
}

func TestTicketHandler_CreateBreakdown_RecordsReporter(t *testing.T) {
	mockUC := &mockCreateBreakdownUC{result: &ticketdto.TicketDTO{ID: "bd_abc"}}
	handler := newTestTicketHandler(testDeps{createBreakdownUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/breakdown", validBreakdownReport())
	testutil.SetAuthContext(c, "user2", "User")

	handler.CreateBreakdown(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user2", mockUC.got.ReportedBy)
}

func TestTicketHandler_ReportBreakdown_BindErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   string
	}{
		{"missing shift", func(b map[string]any) { delete(b, "shift") }, "shift is required"},
		{"unknown shift", func(b map[string]any) { b["shift"] = "Evening" }, "shift must be one of"},
		{"missing machine", func(b map[string]any) { delete(b, "machine_id") }, "machine_id is required"},
		{"missing problem", func(b map[string]any) { delete(b, "problem_observed") }, "problem_observed is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCreateBreakdownUC{}
			handler := newTestTicketHandler(testDeps{createBreakdownUC: mockUC})

			body := validBreakdownReport()
			tt.mutate(body)
			c, w := testutil.NewTestContext(http.MethodPost, "/public/breakdowns", body)

			handler.ReportAnonymousBreakdown(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
			assert.Contains(t, resp.Error.Details, tt.want)
			assert.Empty(t, mockUC.got.MachineID, "use case must not run")
		})
	}
}

func TestTicketHandler_ReportBreakdown_BadTimestamp(t *testing.T) {
	handler := newTestTicketHandler(testDeps{createBreakdownUC: &mockCreateBreakdownUC{}})

	body := validBreakdownReport()
	body["downtime_from"] = "yesterday morning"
	c, w := testutil.NewTestContext(http.MethodPost, "/public/breakdowns", body)

	handler.ReportAnonymousBreakdown(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_CloseBreakdown(t *testing.T) {
	body := validBreakdownReport()
	body["downtime_to"] = "2024-03-01T10:00"
	body["corrective_action"] = "Replaced belt"

	t.Run("success", func(t *testing.T) {
		mockUC := &mockCloseBreakdownUC{result: &ticketdto.TicketDTO{ID: "bd_abc", Status: "Closed"}}
		handler := newTestTicketHandler(testDeps{closeBreakdownUC: mockUC})

		c, w := testutil.NewTestContext(http.MethodPost, "/tickets/breakdown/bd_abc/close", body)
		testutil.SetAuthContext(c, "user2", "User")
		testutil.SetURLParam(c, "id", "bd_abc")

		handler.CloseBreakdown(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bd_abc", mockUC.got.TicketID)
		assert.Equal(t, "user2", mockUC.got.ClosedBy)
		assert.Equal(t, "Replaced belt", mockUC.got.CorrectiveAction)
	})

	t.Run("wrong id prefix", func(t *testing.T) {
		handler := newTestTicketHandler(testDeps{closeBreakdownUC: &mockCloseBreakdownUC{}})

		c, w := testutil.NewTestContext(http.MethodPost, "/tickets/breakdown/pm_abc/close", body)
		testutil.SetURLParam(c, "id", "pm_abc")

		handler.CloseBreakdown(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already closed", func(t *testing.T) {
		mockUC := &mockCloseBreakdownUC{err: errors.NewConflictError("ticket is already closed")}
		handler := newTestTicketHandler(testDeps{closeBreakdownUC: mockUC})

		c, w := testutil.NewTestContext(http.MethodPost, "/tickets/breakdown/bd_abc/close", body)
		testutil.SetURLParam(c, "id", "bd_abc")

		handler.CloseBreakdown(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

// =====================================================================
// Recurring tickets
// =====================================================================

func TestTicketHandler_SchedulePM(t *testing.T) {
	mockUC := &mockSchedulePMUC{result: []*ticketdto.TicketDTO{{ID: "pm_1"}, {ID: "pm_2"}}}
	handler := newTestTicketHandler(testDeps{schedulePMUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/preventive/schedule", map[string]any{
		"location":    "Production Floor",
		"machine_ids": []string{"m1", "m2"},
		"start_date":  "2024-03-01",
		"end_date":    "2024-12-31",
		"frequency":   "monthly",
	})

	handler.SchedulePM(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"m1", "m2"}, mockUC.got.MachineIDs)
	require.NotNil(t, mockUC.got.StartDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *mockUC.got.StartDate)

	var created []ticketdto.TicketDTO
	_, err := testutil.DecodeData(w, &created)
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestTicketHandler_SchedulePM_BadDate(t *testing.T) {
	handler := newTestTicketHandler(testDeps{schedulePMUC: &mockSchedulePMUC{}})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/preventive/schedule", map[string]any{
		"location":   "Production Floor",
		"select_all": true,
		"start_date": "03/01/2024",
		"end_date":   "2024-12-31",
		"frequency":  "monthly",
	})

	handler.SchedulePM(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_ScheduleCalibration(t *testing.T) {
	mockUC := &mockScheduleCalibrationUC{result: []*ticketdto.TicketDTO{{ID: "cal_1"}}}
	handler := newTestTicketHandler(testDeps{scheduleCalibrationUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/calibration/schedule", map[string]any{
		"area":       "Quality Lab",
		"select_all": true,
		"start_date": "2024-01-10",
		"frequency":  "quarterly",
	})

	handler.ScheduleCalibration(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockUC.got.SelectAll)
	assert.Equal(t, "quarterly", mockUC.got.Frequency)
}

func TestTicketHandler_ClosePM(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"success", "pm_abc", nil, http.StatusOK},
		{"future ticket", "pm_abc", errors.NewFutureCloseError(), http.StatusConflict},
		{"not found", "pm_abc", errors.NewNotFoundError("ticket not found"), http.StatusNotFound},
		{"calibration id", "cal_abc", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCloseRecurringUC{
				result: &ticketdto.CloseResultDTO{
					Closed:    &ticketdto.TicketDTO{ID: "pm_abc", Status: "Closed"},
					Successor: &ticketdto.TicketDTO{ID: "pm_next", Status: "Open"},
				},
				err: tt.err,
			}
			handler := newTestTicketHandler(testDeps{closePMUC: mockUC})

			c, w := testutil.NewTestContext(http.MethodPost, "/tickets/preventive/"+tt.id+"/close", nil)
			testutil.SetAuthContext(c, "user2", "User")
			testutil.SetURLParam(c, "id", tt.id)

			handler.ClosePM(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var result ticketdto.CloseResultDTO
				_, err := testutil.DecodeData(w, &result)
				require.NoError(t, err)
				assert.Equal(t, "pm_next", result.Successor.ID)
				assert.Equal(t, "user2", mockUC.got.ClosedBy)
			}
			if tt.name == "future ticket" {
				var resp testutil.APIResponse
				require.NoError(t, testutil.ParseResponse(w, &resp))
				assert.Equal(t, "You cannot close a ticket scheduled for a future date.", resp.Error.Message)
			}
		})
	}
}

func TestTicketHandler_CloseCalibration(t *testing.T) {
	mockUC := &mockCloseRecurringUC{result: &ticketdto.CloseResultDTO{}}
	handler := newTestTicketHandler(testDeps{closeCalibrationUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/calibration/cal_abc/close", nil)
	testutil.SetURLParam(c, "id", "cal_abc")

	handler.CloseCalibration(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cal_abc", mockUC.got.TicketID)
}

// =====================================================================
// Reads
// =====================================================================

func TestTicketHandler_ListTickets(t *testing.T) {
	mockUC := &mockListTicketsUC{result: &ticketdto.TicketListDTO{
		Items:    []*ticketdto.TicketDTO{{ID: "pm_1"}},
		Total:    1,
		Page:     1,
		PageSize: 20,
	}}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/preventive", nil)
	testutil.SetURLParam(c, "kind", "preventive")
	testutil.SetQueryParams(c, map[string]string{"status": "Open", "page": "1"})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "preventive", mockUC.got.Kind)
	assert.Equal(t, "Open", mockUC.got.Status)

	var list struct {
		Items []ticketdto.TicketDTO `json:"items"`
		Total int64                 `json:"total"`
	}
	_, err := testutil.DecodeData(w, &list)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
}

func TestTicketHandler_ListTickets_BadStatus(t *testing.T) {
	handler := newTestTicketHandler(testDeps{listTicketsUC: &mockListTicketsUC{}})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/preventive", nil)
	testutil.SetURLParam(c, "kind", "preventive")
	testutil.SetQueryParams(c, map[string]string{"status": "Pending"})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_GetTicket(t *testing.T) {
	handler := newTestTicketHandler(testDeps{getTicketUC: &mockGetTicketUC{err: errors.NewNotFoundError("ticket not found")}})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/breakdown/bd_missing", nil)
	testutil.SetURLParam(c, "kind", "breakdown")
	testutil.SetURLParam(c, "id", "bd_missing")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// Calendar
// =====================================================================

func TestCalendarHandler_GetMonth(t *testing.T) {
	mockUC := &mockCalendarMonthUC{result: &ticketdto.CalendarMonthDTO{Year: 2024, Month: 3, Kind: "preventive"}}
	handler := NewCalendarHandler(mockUC, &mockDaySummaryUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/calendar/2024/3", nil)
	testutil.SetURLParam(c, "year", "2024")
	testutil.SetURLParam(c, "month", "3")
	testutil.SetQueryParams(c, map[string]string{"kind": "preventive"})

	handler.GetMonth(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecases.GetCalendarMonthQuery{Year: 2024, Month: 3, Kind: "preventive"}, mockUC.got)

	c, w = testutil.NewTestContext(http.MethodGet, "/calendar/2024/march", nil)
	testutil.SetURLParam(c, "year", "2024")
	testutil.SetURLParam(c, "month", "march")

	handler.GetMonth(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarHandler_GetDaySummary(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		summary := &ticketdto.DaySummaryDTO{Date: "2024-03-01", Kind: "preventive"}
		handler := NewCalendarHandler(&mockCalendarMonthUC{}, &mockDaySummaryUC{result: summary}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/calendar/days/2024-03-01", nil)
		testutil.SetURLParam(c, "date", "2024-03-01")

		handler.GetDaySummary(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("html", func(t *testing.T) {
		summary := &ticketdto.DaySummaryDTO{HTML: "<h1>PM Summary: 2024-03-01</h1>"}
		handler := NewCalendarHandler(&mockCalendarMonthUC{}, &mockDaySummaryUC{result: summary}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/calendar/days/2024-03-01?format=html", nil)
		testutil.SetURLParam(c, "date", "2024-03-01")

		handler.GetDaySummary(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, summary.HTML, w.Body.String())
	})
}
