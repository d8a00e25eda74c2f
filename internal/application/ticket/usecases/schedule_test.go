package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func TestSchedulePMTicketsUseCase_Execute(t *testing.T) {
	m1 := newMachine(t, "mch_1", "M-001", "Main Production Line", "Assembly Floor")
	m2 := newMachine(t, "mch_2", "M-002", "Packaging Unit", "Packing Section")
	m4 := newMachine(t, "mch_4", "M-004", "Mixing Tank", "Assembly Floor")
	machines := machineRepoWith(m1, m2, m4)

	var created []*ticket.Preventive
	repo := &mockPreventiveRepository{CreateBatchFunc: func(ctx context.Context, ts []*ticket.Preventive) error {
		created = append(created, ts...)
		return nil
	}}
	publisher := &mockPublisher{}
	metrics := newMockMetrics()
	uc := NewSchedulePMTicketsUseCase(repo, machines, publisher, metrics, &mockLogger{})

	t.Run("selected machines", func(t *testing.T) {
		created = nil
		result, err := uc.Execute(context.Background(), SchedulePMTicketsCommand{
			Location:   "Assembly Floor",
			MachineIDs: []string{"mch_1", "mch_4", "mch_1"},
			StartDate:  datePtr(2024, 3, 1),
			EndDate:    datePtr(2024, 12, 31),
			Frequency:  "Monthly",
		})
		require.NoError(t, err)
		require.Len(t, result, 2)
		for _, p := range created {
			assert.Equal(t, day(2024, 3, 1), p.ScheduledDate())
			assert.Equal(t, vo.FrequencyMonthly, p.Frequency())
			assert.Equal(t, "Assembly Floor", p.Area())
			assert.True(t, p.IsOpen())
		}
		assert.Equal(t, 2, metrics.count("created:preventive"))
		assert.Equal(t, []string{ticket.EventTicketsScheduled}, publisher.types())
	})

	t.Run("select all", func(t *testing.T) {
		created = nil
		result, err := uc.Execute(context.Background(), SchedulePMTicketsCommand{
			Location:  "Packing Section",
			SelectAll: true,
			StartDate: datePtr(2024, 3, 1),
			EndDate:   datePtr(2024, 3, 1),
			Frequency: "weekly",
		})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Preventive Maintenance: M-002", result[0].Title)
	})

	invalid := []struct {
		name string
		cmd  SchedulePMTicketsCommand
	}{
		{"missing location", SchedulePMTicketsCommand{MachineIDs: []string{"mch_1"}, StartDate: datePtr(2024, 3, 1), EndDate: datePtr(2024, 3, 2), Frequency: "monthly"}},
		{"no machines", SchedulePMTicketsCommand{Location: "Assembly Floor", StartDate: datePtr(2024, 3, 1), EndDate: datePtr(2024, 3, 2), Frequency: "monthly"}},
		{"blank machine ids", SchedulePMTicketsCommand{Location: "Assembly Floor", MachineIDs: []string{" "}, StartDate: datePtr(2024, 3, 1), EndDate: datePtr(2024, 3, 2), Frequency: "monthly"}},
		{"missing start", SchedulePMTicketsCommand{Location: "Assembly Floor", MachineIDs: []string{"mch_1"}, EndDate: datePtr(2024, 3, 2), Frequency: "monthly"}},
		{"missing end", SchedulePMTicketsCommand{Location: "Assembly Floor", MachineIDs: []string{"mch_1"}, StartDate: datePtr(2024, 3, 1), Frequency: "monthly"}},
		{"end before start", SchedulePMTicketsCommand{Location: "Assembly Floor", MachineIDs: []string{"mch_1"}, StartDate: datePtr(2024, 3, 2), EndDate: datePtr(2024, 3, 1), Frequency: "monthly"}},
		{"quarterly not allowed", SchedulePMTicketsCommand{Location: "Assembly Floor", MachineIDs: []string{"mch_1"}, StartDate: datePtr(2024, 3, 1), EndDate: datePtr(2024, 3, 2), Frequency: "quarterly"}},
		{"unknown frequency", SchedulePMTicketsCommand{Location: "Assembly Floor", MachineIDs: []string{"mch_1"}, StartDate: datePtr(2024, 3, 1), EndDate: datePtr(2024, 3, 2), Frequency: "daily"}},
		{"unknown machine", SchedulePMTicketsCommand{Location: "Assembly Floor", MachineIDs: []string{"mch_9"}, StartDate: datePtr(2024, 3, 1), EndDate: datePtr(2024, 3, 2), Frequency: "monthly"}},
		{"machine in other location", SchedulePMTicketsCommand{Location: "Assembly Floor", MachineIDs: []string{"mch_2"}, StartDate: datePtr(2024, 3, 1), EndDate: datePtr(2024, 3, 2), Frequency: "monthly"}},
		{"empty location with select all", SchedulePMTicketsCommand{Location: "Roof", SelectAll: true, StartDate: datePtr(2024, 3, 1), EndDate: datePtr(2024, 3, 2), Frequency: "monthly"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			created = nil
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "unexpected error: %v", err)
			assert.Empty(t, created)
		})
	}
}

func TestScheduleCalibrationTicketsUseCase_Execute(t *testing.T) {
	gauge, err := instrument.NewInstrument("ins_1", instrument.Details{
		InstrumentNumber: "I-101", InstrumentName: "Pressure Gauge", Area: "Assembly Floor",
	}, day(2024, 1, 1))
	require.NoError(t, err)

	instruments := &mockInstrumentRepository{
		GetByIDsFunc: func(ctx context.Context, ids []string) ([]*instrument.Instrument, error) {
			if len(ids) == 1 && ids[0] == "ins_1" {
				return []*instrument.Instrument{gauge}, nil
			}
			return nil, nil
		},
	}
	var created []*ticket.Calibration
	repo := &mockCalibrationRepository{CreateBatchFunc: func(ctx context.Context, ts []*ticket.Calibration) error {
		created = ts
		return nil
	}}
	uc := NewScheduleCalibrationTicketsUseCase(repo, instruments, &mockPublisher{}, newMockMetrics(), &mockLogger{})

	result, err := uc.Execute(context.Background(), ScheduleCalibrationTicketsCommand{
		Area:          "Assembly Floor",
		InstrumentIDs: []string{"ins_1"},
		StartDate:     datePtr(2024, 1, 10),
		Frequency:     "Quarterly",
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Calibration: I-101 - Pressure Gauge", result[0].Title)
	assert.Equal(t, vo.FrequencyQuarterly, created[0].Frequency())

	_, err = uc.Execute(context.Background(), ScheduleCalibrationTicketsCommand{
		Area:          "Assembly Floor",
		InstrumentIDs: []string{"ins_1"},
		StartDate:     datePtr(2024, 1, 10),
		Frequency:     "weekly",
	})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ScheduleCalibrationTicketsCommand{
		Area:          "Packing Section",
		InstrumentIDs: []string{"ins_1"},
		StartDate:     datePtr(2024, 1, 10),
		Frequency:     "monthly",
	})
	assert.True(t, errors.IsValidationError(err))
}
