package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
)

func newMachine(t *testing.T, id, asset, name, area string) *machine.Machine {
	t.Helper()
	m, err := machine.NewMachine(id, machine.Details{AssetNumber: asset, MachineName: name, Area: area}, day(2024, 1, 1))
	require.NoError(t, err)
	return m
}

func machineRepoWith(machines ...*machine.Machine) *mockMachineRepository {
	byID := make(map[string]*machine.Machine, len(machines))
	for _, m := range machines {
		byID[m.ID()] = m
	}
	return &mockMachineRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*machine.Machine, error) {
			if m, ok := byID[id]; ok {
				return m, nil
			}
			return nil, machine.ErrMachineNotFound
		},
		GetByIDsFunc: func(ctx context.Context, ids []string) ([]*machine.Machine, error) {
			var out []*machine.Machine
			for _, id := range ids {
				if m, ok := byID[id]; ok {
					out = append(out, m)
				}
			}
			return out, nil
		},
		ListFunc: func(ctx context.Context, filter machine.ListFilter) ([]*machine.Machine, int64, error) {
			var out []*machine.Machine
			for _, m := range machines {
				if filter.Area == "" || m.Area() == filter.Area {
					out = append(out, m)
				}
			}
			return out, int64(len(out)), nil
		},
	}
}

func TestCreateBreakdownTicketUseCase_Execute_Anonymous(t *testing.T) {
	lathe := newMachine(t, "mch_1", "M-001", "Main Production Line", "Assembly Floor")
	var created *ticket.Breakdown
	repo := &mockBreakdownRepository{
		CreateFunc: func(ctx context.Context, b *ticket.Breakdown) error {
			created = b
			return nil
		},
	}
	publisher := &mockPublisher{}
	metrics := newMockMetrics()

	from := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	uc := NewCreateBreakdownTicketUseCase(repo, machineRepoWith(lathe), publisher, metrics, &mockLogger{})
	result, err := uc.Execute(context.Background(), CreateBreakdownTicketCommand{
		MachineID:       "mch_1",
		Shift:           "First",
		DowntimeFrom:    &from,
		ProblemObserved: "Belt slipping",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Breakdown: Main Production Line", result.Title)
	assert.Equal(t, "Anonymous", result.AttendedBy)
	assert.Equal(t, "Assembly Floor", result.Location)
	assert.Equal(t, vo.StatusOpen.String(), result.Status)
	assert.Equal(t, "0 hours 0 minutes", result.TotalDowntime)
	assert.NotNil(t, result.DateOfWork)
	assert.Equal(t, []string{ticket.EventBreakdownReported}, publisher.types())
	assert.Equal(t, 1, metrics.count("created:breakdown"))
}

func TestCreateBreakdownTicketUseCase_Execute_Validation(t *testing.T) {
	lathe := newMachine(t, "mch_1", "M-001", "Main Production Line", "Assembly Floor")
	from := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cmd  CreateBreakdownTicketCommand
	}{
		{"missing shift", CreateBreakdownTicketCommand{MachineID: "mch_1", DowntimeFrom: &from, ProblemObserved: "x"}},
		{"missing downtime", CreateBreakdownTicketCommand{MachineID: "mch_1", Shift: "Night", ProblemObserved: "x"}},
		{"missing machine", CreateBreakdownTicketCommand{Shift: "Night", DowntimeFrom: &from, ProblemObserved: "x"}},
		{"unknown machine", CreateBreakdownTicketCommand{MachineID: "mch_9", Shift: "Night", DowntimeFrom: &from, ProblemObserved: "x"}},
		{"missing problem", CreateBreakdownTicketCommand{MachineID: "mch_1", Shift: "Night", DowntimeFrom: &from}},
		{"bad work type", CreateBreakdownTicketCommand{WorkType: "Painting", MachineID: "mch_1", Shift: "Night", DowntimeFrom: &from, ProblemObserved: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBreakdownRepository{CreateFunc: func(ctx context.Context, b *ticket.Breakdown) error {
				t.Fatal("invalid report must not be stored")
				return nil
			}}
			uc := NewCreateBreakdownTicketUseCase(repo, machineRepoWith(lathe), &mockPublisher{}, newMockMetrics(), &mockLogger{})
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "unexpected error: %v", err)
		})
	}
}

func TestCloseBreakdownTicketUseCase_Execute(t *testing.T) {
	lathe1 := newMachine(t, "mch_1", "M-001", "Lathe 1", "Floor A")
	lathe2 := newMachine(t, "mch_2", "M-002", "Lathe 2", "Floor B")
	from := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	to := from.Add(2*time.Hour + 30*time.Minute)

	open, err := ticket.NewBreakdown(ticket.BreakdownReport{
		ID:              "bd_1",
		MachineID:       "mch_1",
		MachineName:     "Lathe 1",
		Location:        "Floor A",
		Shift:           vo.ShiftFirst,
		DowntimeFrom:    from,
		ProblemObserved: "Spindle noise",
		AttendedBy:      "Anonymous",
	}, from)
	require.NoError(t, err)

	var stored *ticket.Breakdown
	repo := &mockBreakdownRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*ticket.Breakdown, error) {
			return open, nil
		},
		CloseFunc: func(ctx context.Context, closed *ticket.Breakdown) error {
			stored = closed
			return nil
		},
	}
	publisher := &mockPublisher{}
	locker := &mockLocker{}

	uc := NewCloseBreakdownTicketUseCase(repo, machineRepoWith(lathe1, lathe2), locker, publisher, newMockMetrics(), &mockLogger{})

	cmd := CloseBreakdownTicketCommand{
		TicketID:         "bd_1",
		MachineID:        "mch_2",
		Shift:            "Second",
		DowntimeFrom:     &from,
		DowntimeTo:       &to,
		ProblemObserved:  "Spindle noise",
		CorrectiveAction: "Replaced bearing",
		ClosedBy:         "user2",
		Now:              to,
	}

	t.Run("missing corrective action", func(t *testing.T) {
		bad := cmd
		bad.CorrectiveAction = ""
		_, err := uc.Execute(context.Background(), bad)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Nil(t, stored)
	})

	t.Run("missing downtime to", func(t *testing.T) {
		bad := cmd
		bad.DowntimeTo = nil
		_, err := uc.Execute(context.Background(), bad)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("success", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), cmd)
		require.NoError(t, err)
		require.NotNil(t, stored)

		assert.Equal(t, vo.StatusClosed.String(), result.Status)
		assert.Equal(t, "Breakdown: Lathe 2", result.Title)
		assert.Equal(t, "Floor B", result.Location)
		assert.Equal(t, "user2", result.AttendedBy)
		assert.Equal(t, "2 hours 30 minutes", result.TotalDowntime)
		assert.Equal(t, "Replaced bearing", result.CorrectiveAction)
		assert.Equal(t, to, *result.ClosedDate)
		assert.Contains(t, publisher.types(), ticket.EventBreakdownClosed)
		assert.Contains(t, locker.keys, "ticket:breakdown:bd_1")
	})

	t.Run("already closed", func(t *testing.T) {
		closedRepo := &mockBreakdownRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*ticket.Breakdown, error) {
				return stored, nil
			},
		}
		uc := NewCloseBreakdownTicketUseCase(closedRepo, machineRepoWith(lathe1, lathe2), &mockLocker{}, &mockPublisher{}, newMockMetrics(), &mockLogger{})
		_, err := uc.Execute(context.Background(), cmd)
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})
}
