package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type mockMachineRepository struct {
	CreateFunc    func(ctx context.Context, m *machine.Machine) error
	UpdateFunc    func(ctx context.Context, m *machine.Machine) error
	DeleteFunc    func(ctx context.Context, id string) error
	GetByIDFunc   func(ctx context.Context, id string) (*machine.Machine, error)
	ListFunc      func(ctx context.Context, filter machine.ListFilter) ([]*machine.Machine, int64, error)
	ListAreasFunc func(ctx context.Context) ([]string, error)
}

func (m *mockMachineRepository) Create(ctx context.Context, mc *machine.Machine) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, mc)
	}
	return nil
}

func (m *mockMachineRepository) Update(ctx context.Context, mc *machine.Machine) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, mc)
	}
	return nil
}

func (m *mockMachineRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockMachineRepository) GetByID(ctx context.Context, id string) (*machine.Machine, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, machine.ErrMachineNotFound
}

func (m *mockMachineRepository) GetByIDs(ctx context.Context, ids []string) ([]*machine.Machine, error) {
	return nil, nil
}

func (m *mockMachineRepository) List(ctx context.Context, filter machine.ListFilter) ([]*machine.Machine, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockMachineRepository) ListAreas(ctx context.Context) ([]string, error) {
	if m.ListAreasFunc != nil {
		return m.ListAreasFunc(ctx)
	}
	return nil, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}
