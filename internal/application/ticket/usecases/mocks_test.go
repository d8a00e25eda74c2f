package usecases

import (
	"context"
	"sync"

	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type mockMachineRepository struct {
	machine.Repository
	GetByIDFunc  func(ctx context.Context, id string) (*machine.Machine, error)
	GetByIDsFunc func(ctx context.Context, ids []string) ([]*machine.Machine, error)
	ListFunc     func(ctx context.Context, filter machine.ListFilter) ([]*machine.Machine, int64, error)
}

func (m *mockMachineRepository) GetByID(ctx context.Context, id string) (*machine.Machine, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, machine.ErrMachineNotFound
}

func (m *mockMachineRepository) GetByIDs(ctx context.Context, ids []string) ([]*machine.Machine, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockMachineRepository) List(ctx context.Context, filter machine.ListFilter) ([]*machine.Machine, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockInstrumentRepository struct {
	instrument.Repository
	GetByIDsFunc func(ctx context.Context, ids []string) ([]*instrument.Instrument, error)
	ListFunc     func(ctx context.Context, filter instrument.ListFilter) ([]*instrument.Instrument, int64, error)
}

func (m *mockInstrumentRepository) GetByIDs(ctx context.Context, ids []string) ([]*instrument.Instrument, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockInstrumentRepository) List(ctx context.Context, filter instrument.ListFilter) ([]*instrument.Instrument, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockBreakdownRepository struct {
	CreateFunc  func(ctx context.Context, t *ticket.Breakdown) error
	GetByIDFunc func(ctx context.Context, id string) (*ticket.Breakdown, error)
	ListFunc    func(ctx context.Context, filter ticket.Filter) ([]*ticket.Breakdown, int64, error)
	CloseFunc   func(ctx context.Context, closed *ticket.Breakdown) error
}

func (m *mockBreakdownRepository) Create(ctx context.Context, t *ticket.Breakdown) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockBreakdownRepository) GetByID(ctx context.Context, id string) (*ticket.Breakdown, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockBreakdownRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Breakdown, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockBreakdownRepository) Close(ctx context.Context, closed *ticket.Breakdown) error {
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx, closed)
	}
	return nil
}

type mockPreventiveRepository struct {
	CreateBatchFunc    func(ctx context.Context, tickets []*ticket.Preventive) error
	GetByIDFunc        func(ctx context.Context, id string) (*ticket.Preventive, error)
	ListFunc           func(ctx context.Context, filter ticket.Filter) ([]*ticket.Preventive, int64, error)
	CloseAndAppendFunc func(ctx context.Context, closed, successor *ticket.Preventive) error
	CountOpenFunc      func(ctx context.Context) (int64, error)
}

func (m *mockPreventiveRepository) CreateBatch(ctx context.Context, tickets []*ticket.Preventive) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tickets)
	}
	return nil
}

func (m *mockPreventiveRepository) GetByID(ctx context.Context, id string) (*ticket.Preventive, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockPreventiveRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Preventive, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockPreventiveRepository) CloseAndAppend(ctx context.Context, closed, successor *ticket.Preventive) error {
	if m.CloseAndAppendFunc != nil {
		return m.CloseAndAppendFunc(ctx, closed, successor)
	}
	return nil
}

func (m *mockPreventiveRepository) CountOpen(ctx context.Context) (int64, error) {
	if m.CountOpenFunc != nil {
		return m.CountOpenFunc(ctx)
	}
	return 0, nil
}

type mockCalibrationRepository struct {
	CreateBatchFunc    func(ctx context.Context, tickets []*ticket.Calibration) error
	GetByIDFunc        func(ctx context.Context, id string) (*ticket.Calibration, error)
	ListFunc           func(ctx context.Context, filter ticket.Filter) ([]*ticket.Calibration, int64, error)
	CloseAndAppendFunc func(ctx context.Context, closed, successor *ticket.Calibration) error
	CountOpenFunc      func(ctx context.Context) (int64, error)
}

func (m *mockCalibrationRepository) CreateBatch(ctx context.Context, tickets []*ticket.Calibration) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tickets)
	}
	return nil
}

func (m *mockCalibrationRepository) GetByID(ctx context.Context, id string) (*ticket.Calibration, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockCalibrationRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Calibration, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockCalibrationRepository) CloseAndAppend(ctx context.Context, closed, successor *ticket.Calibration) error {
	if m.CloseAndAppendFunc != nil {
		return m.CloseAndAppendFunc(ctx, closed, successor)
	}
	return nil
}

func (m *mockCalibrationRepository) CountOpen(ctx context.Context) (int64, error) {
	if m.CountOpenFunc != nil {
		return m.CountOpenFunc(ctx)
	}
	return 0, nil
}

type mockLocker struct {
	LockFunc func(ctx context.Context, key string) (func(), error)
	keys     []string
}

func (m *mockLocker) Lock(ctx context.Context, key string) (func(), error) {
	m.keys = append(m.keys, key)
	if m.LockFunc != nil {
		return m.LockFunc(ctx, key)
	}
	return func() {}, nil
}

type mockPublisher struct {
	mu        sync.Mutex
	published []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	return m.PublishAll([]events.DomainEvent{event})
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, evts...)
	return nil
}

func (m *mockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.published))
	for _, e := range m.published {
		out = append(out, e.GetEventType())
	}
	return out
}

// mockMetrics records calls keyed by "method:kind[:reason]".
type mockMetrics struct {
	mu    sync.Mutex
	calls map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{calls: make(map[string]int)}
}

func (m *mockMetrics) add(key string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[key] += n
}

func (m *mockMetrics) count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[key]
}

func (m *mockMetrics) TicketsCreated(kind string, n int)    { m.add("created:"+kind, n) }
func (m *mockMetrics) TicketClosed(kind string)             { m.add("closed:"+kind, 1) }
func (m *mockMetrics) CloseRejected(kind, reason string)    { m.add("rejected:"+kind+":"+reason, 1) }
func (m *mockMetrics) SetOpenTickets(kind string, n int64)  { m.add("open:"+kind, int(n)) }
func (m *mockMetrics) SetOverdueTickets(kind string, n int) { m.add("overdue:"+kind, n) }

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
