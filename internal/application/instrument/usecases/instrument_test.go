package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeep-inc/upkeep/internal/application/instrument/dto"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/session"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
)

func newUseCases() (*CreateInstrumentUseCase, *UpdateInstrumentUseCase, *DeleteInstrumentUseCase, *GetInstrumentUseCase) {
	repo := session.NewStore().Instruments()
	log := &mockLogger{}
	return NewCreateInstrumentUseCase(repo, log),
		NewUpdateInstrumentUseCase(repo, log),
		NewDeleteInstrumentUseCase(repo, log),
		NewGetInstrumentUseCase(repo, log)
}

func pressureGauge() dto.CreateInstrumentRequest {
	return dto.CreateInstrumentRequest{
		InstrumentNumber: "I-101",
		InstrumentName:   "Pressure Gauge",
		Area:             "Assembly Floor",
		Description:      "Measures pressure in tank",
	}
}

func TestCreateInstrumentUseCase_Execute(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		create, _, _, _ := newUseCases()

		got, err := create.Execute(context.Background(), pressureGauge())

		require.NoError(t, err)
		assert.Equal(t, "Active", got.Status)
		assert.Equal(t, "monthly", got.Frequency)
		assert.Equal(t, "Monthly", got.FrequencyLabel)
		assert.Nil(t, got.NextDueDate)
	})

	t.Run("next due date follows frequency", func(t *testing.T) {
		create, _, _, _ := newUseCases()
		last := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
		req := pressureGauge()
		req.LastCalibrationDone = &last
		req.Frequency = "Quarterly"

		got, err := create.Execute(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, got.NextDueDate)
		assert.Equal(t, "quarterly", got.Frequency)
		assert.Equal(t, 2024, got.NextDueDate.Year())
		assert.Equal(t, time.April, got.NextDueDate.Month())
		assert.Equal(t, 10, got.NextDueDate.Day())
	})

	tests := []struct {
		name   string
		mutate func(*dto.CreateInstrumentRequest)
	}{
		{"weekly is not a calibration frequency", func(r *dto.CreateInstrumentRequest) { r.Frequency = "weekly" }},
		{"unknown frequency", func(r *dto.CreateInstrumentRequest) { r.Frequency = "daily" }},
		{"missing number", func(r *dto.CreateInstrumentRequest) { r.InstrumentNumber = "" }},
		{"missing area", func(r *dto.CreateInstrumentRequest) { r.Area = "  " }},
		{"bad status", func(r *dto.CreateInstrumentRequest) { r.Status = "Retired" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create, _, _, _ := newUseCases()
			req := pressureGauge()
			tt.mutate(&req)

			_, err := create.Execute(context.Background(), req)

			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestUpdateInstrumentUseCase_Execute(t *testing.T) {
	create, update, _, get := newUseCases()
	ctx := context.Background()
	req := pressureGauge()
	req.Frequency = "yearly"
	created, err := create.Execute(ctx, req)
	require.NoError(t, err)

	req.Frequency = ""
	req.Area = "Packing Section"
	req.Status = "Inactive"
	updated, err := update.Execute(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "yearly", updated.Frequency)
	assert.Equal(t, "Inactive", updated.Status)

	got, err := get.ExecuteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Packing Section", got.Area)

	_, err = update.Execute(ctx, "in_missing", req)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetInstrumentUseCase(t *testing.T) {
	create, _, del, get := newUseCases()
	ctx := context.Background()

	first, err := create.Execute(ctx, pressureGauge())
	require.NoError(t, err)
	_, err = create.Execute(ctx, dto.CreateInstrumentRequest{
		InstrumentNumber: "I-102",
		InstrumentName:   "Temperature Sensor",
		Area:             "Packing Section",
	})
	require.NoError(t, err)

	list, err := get.ExecuteList(ctx, dto.ListInstrumentsRequest{Area: "Packing Section"})
	require.NoError(t, err)
	require.Len(t, list.Instruments, 1)
	assert.Equal(t, "I-102", list.Instruments[0].InstrumentNumber)

	areas, err := get.ExecuteAreas(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Assembly Floor", "Packing Section"}, areas)

	require.NoError(t, del.Execute(ctx, first.ID))
	assert.True(t, errors.IsNotFoundError(del.Execute(ctx, first.ID)))

	_, err = get.ExecuteByID(ctx, first.ID)
	assert.True(t, errors.IsNotFoundError(err))
}
