package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	machinedto "github.com/upkeep-inc/upkeep/internal/application/machine/dto"
	userdto "github.com/upkeep-inc/upkeep/internal/application/user/dto"
	userusecases "github.com/upkeep-inc/upkeep/internal/application/user/usecases"
	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/services"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/handlers/testutil"
	"github.com/upkeep-inc/upkeep/internal/shared/constants"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockAuthenticateUC struct {
	result *userdto.LoginResponse
	err    error
}

func (m *mockAuthenticateUC) Execute(_ context.Context, _ userusecases.AuthenticateCommand) (*userdto.LoginResponse, error) {
	return m.result, m.err
}

type mockCreateMachineUC struct {
	result *machinedto.MachineResponse
	err    error
}

func (m *mockCreateMachineUC) Execute(_ context.Context, _ machinedto.CreateMachineRequest) (*machinedto.MachineResponse, error) {
	return m.result, m.err
}

type mockUpdateMachineUC struct {
	result *machinedto.MachineResponse
	err    error
	gotID  string
}

func (m *mockUpdateMachineUC) Execute(_ context.Context, machineID string, _ machinedto.UpdateMachineRequest) (*machinedto.MachineResponse, error) {
	m.gotID = machineID
	return m.result, m.err
}

type mockDeleteMachineUC struct {
	err error
}

func (m *mockDeleteMachineUC) Execute(_ context.Context, _ string) error {
	return m.err
}

type mockGetMachineUC struct {
	byID    *machinedto.MachineResponse
	list    *machinedto.ListMachinesResponse
	areas   []string
	err     error
	gotList machinedto.ListMachinesRequest
}

func (m *mockGetMachineUC) ExecuteByID(_ context.Context, _ string) (*machinedto.MachineResponse, error) {
	return m.byID, m.err
}

func (m *mockGetMachineUC) ExecuteList(_ context.Context, request machinedto.ListMachinesRequest) (*machinedto.ListMachinesResponse, error) {
	m.gotList = request
	return m.list, m.err
}

func (m *mockGetMachineUC) ExecuteAreas(_ context.Context) ([]string, error) {
	return m.areas, m.err
}

// =====================================================================
// Auth
// =====================================================================

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		uc         *mockAuthenticateUC
		wantStatus int
		wantType   string
	}{
		{
			name:       "success",
			body:       userdto.LoginRequest{Username: "admin", Password: "password123"},
			uc:         &mockAuthenticateUC{result: &userdto.LoginResponse{Username: "admin", Role: "Admin", AccessToken: "tok", TokenType: "Bearer"}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       userdto.LoginRequest{Username: "admin", Password: "nope"},
			uc:         &mockAuthenticateUC{err: errors.NewInvalidCredentialsError()},
			wantStatus: http.StatusUnauthorized,
			wantType:   string(errors.ErrorTypeInvalidCredentials),
		},
		{
			name:       "missing password",
			body:       map[string]string{"username": "admin"},
			uc:         &mockAuthenticateUC{},
			wantStatus: http.StatusBadRequest,
			wantType:   string(errors.ErrorTypeValidation),
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			uc:         &mockAuthenticateUC{},
			wantStatus: http.StatusBadRequest,
			wantType:   string(errors.ErrorTypeValidation),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.uc, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", tt.body)

			handler.Login(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			if tt.wantType != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantType, resp.Error.Type)
				return
			}
			var login userdto.LoginResponse
			_, err := testutil.DecodeData(w, &login)
			require.NoError(t, err)
			assert.Equal(t, "tok", login.AccessToken)
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler := NewAuthHandler(&mockAuthenticateUC{}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/auth/me", nil)
	testutil.SetAuthContext(c, "user2", "User")

	handler.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var me map[string]string
	_, err := testutil.DecodeData(w, &me)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"username": "user2", "role": "User"}, me)
}

// =====================================================================
// Machines
// =====================================================================

func newTestMachineHandler(create *mockCreateMachineUC, update *mockUpdateMachineUC, del *mockDeleteMachineUC, get *mockGetMachineUC) *MachineHandler {
	return NewMachineHandler(create, update, del, get, testutil.NewMockLogger())
}

func TestMachineHandler_CreateMachine(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		create := &mockCreateMachineUC{result: &machinedto.MachineResponse{ID: "mch_abc", AssetNumber: "M-010"}}
		handler := newTestMachineHandler(create, nil, nil, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/machines", machinedto.CreateMachineRequest{
			AssetNumber: "M-010",
			MachineName: "Lathe",
			Area:        "Workshop",
		})

		handler.CreateMachine(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		handler := newTestMachineHandler(&mockCreateMachineUC{}, nil, nil, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/machines", map[string]string{"asset_number": "M-010"})

		handler.CreateMachine(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Contains(t, resp.Error.Details, "machine_name is required")
		assert.Contains(t, resp.Error.Details, "area is required")
	})

	t.Run("duplicate", func(t *testing.T) {
		create := &mockCreateMachineUC{err: errors.NewConflictError("machine already exists")}
		handler := newTestMachineHandler(create, nil, nil, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/machines", machinedto.CreateMachineRequest{
			AssetNumber: "M-001",
			MachineName: "Lathe",
			Area:        "Workshop",
		})

		handler.CreateMachine(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestMachineHandler_UpdateAndDelete(t *testing.T) {
	update := &mockUpdateMachineUC{result: &machinedto.MachineResponse{ID: "m1"}}
	del := &mockDeleteMachineUC{err: errors.NewNotFoundError("machine not found")}
	handler := newTestMachineHandler(nil, update, del, nil)

	c, w := testutil.NewTestContext(http.MethodPut, "/machines/m1", machinedto.UpdateMachineRequest{
		AssetNumber: "M-001",
		MachineName: "Machine A",
		Area:        "Production Floor",
		Status:      "Inactive",
	})
	testutil.SetURLParam(c, "id", "m1")
	handler.UpdateMachine(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "m1", update.gotID)

	c, w = testutil.NewTestContext(http.MethodDelete, "/machines/m9", nil)
	testutil.SetURLParam(c, "id", "m9")
	handler.DeleteMachine(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	del.err = nil
	c, w = testutil.NewTestContext(http.MethodDelete, "/machines/m1", nil)
	testutil.SetURLParam(c, "id", "m1")
	handler.DeleteMachine(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMachineHandler_ListMachines(t *testing.T) {
	get := &mockGetMachineUC{list: &machinedto.ListMachinesResponse{
		Machines: []*machinedto.MachineResponse{{ID: "m1"}, {ID: "m2"}},
		Total:    2,
		Page:     1,
		PageSize: 20,
	}}
	handler := newTestMachineHandler(nil, nil, nil, get)

	c, w := testutil.NewTestContext(http.MethodGet, "/machines", nil)
	testutil.SetQueryParams(c, map[string]string{"area": "Production Floor", "page_size": "5"})

	handler.ListMachines(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Production Floor", get.gotList.Area)
	assert.Equal(t, 5, get.gotList.PageSize)
}

func TestMachineHandler_PublicLookups(t *testing.T) {
	get := &mockGetMachineUC{
		areas: []string{"Packaging Area", "Production Floor"},
		list:  &machinedto.ListMachinesResponse{Machines: []*machinedto.MachineResponse{{ID: "m3"}, {ID: "m4"}}},
	}
	handler := newTestMachineHandler(nil, nil, nil, get)

	c, w := testutil.NewTestContext(http.MethodGet, "/public/areas", nil)
	handler.ListAreas(c)
	assert.Equal(t, http.StatusOK, w.Code)
	var areas []string
	_, err := testutil.DecodeData(w, &areas)
	require.NoError(t, err)
	assert.Equal(t, get.areas, areas)

	c, w = testutil.NewTestContext(http.MethodGet, "/public/machines", nil)
	testutil.SetQueryParams(c, map[string]string{"area": "Packaging Area"})
	handler.ListMachinesInArea(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.MaxPageSize, get.gotList.PageSize)
	var machines []machinedto.MachineResponse
	_, err = testutil.DecodeData(w, &machines)
	require.NoError(t, err)
	assert.Len(t, machines, 2)

	c, w = testutil.NewTestContext(http.MethodGet, "/public/machines", nil)
	handler.ListMachinesInArea(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// Health
// =====================================================================

func TestHealthHandler(t *testing.T) {
	up := PingerFunc(func(context.Context) error { return nil })
	down := PingerFunc(func(context.Context) error { return stderrors.New("connection refused") })

	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(map[string]Pinger{"database": up, "redis": nil}, testutil.NewMockLogger()).Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
	assert.NotContains(t, w.Body.String(), "redis")

	c, w = testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(map[string]Pinger{"database": up, "redis": down}, testutil.NewMockLogger()).Health(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

// =====================================================================
// Events
// =====================================================================

type testEvent struct {
	events.BaseEvent
}

func TestEventsHandler_Stream(t *testing.T) {
	hub := services.NewEventHub(testutil.NewMockLogger(), &services.EventHubConfig{MaxConnsPerUser: 1})
	handler := NewEventsHandler(hub, []string{"*"}, testutil.NewMockLogger())

	engine := gin.New()
	engine.GET("/ws/events", func(c *gin.Context) {
		testutil.SetAuthContext(c, "user2", "User")
	}, handler.Stream)
	server := httptest.NewServer(engine)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ConnCount() == 1 }, time.Second, 10*time.Millisecond)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err, "second connection for the same user exceeds the limit")
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	require.NoError(t, hub.Handle(testEvent{events.NewBaseEvent("pm_abc", "ticket.closed", time.Now())}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), `"type":"ticket.closed"`)
	assert.Contains(t, string(msg), `"ticketId":"pm_abc"`)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ConnCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
