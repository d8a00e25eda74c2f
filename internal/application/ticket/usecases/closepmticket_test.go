package usecases

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/lock"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/session"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newPM(t *testing.T, id string, scheduled time.Time) *ticket.Preventive {
	t.Helper()
	p, err := ticket.NewPreventive(id, "mch_10", "M-010", "Floor B", scheduled, vo.FrequencyMonthly, scheduled.AddDate(0, 0, -7))
	require.NoError(t, err)
	return p
}

func TestClosePMTicketUseCase_Execute_Success(t *testing.T) {
	open := newPM(t, "pm_1", day(2024, 3, 1))

	var stored []*ticket.Preventive
	repo := &mockPreventiveRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*ticket.Preventive, error) {
			return open, nil
		},
		CloseAndAppendFunc: func(ctx context.Context, closed, successor *ticket.Preventive) error {
			stored = append(stored, closed, successor)
			return nil
		},
	}
	locker := &mockLocker{}
	publisher := &mockPublisher{}
	metrics := newMockMetrics()

	uc := NewClosePMTicketUseCase(repo, locker, publisher, metrics, &mockLogger{})
	result, err := uc.Execute(context.Background(), CloseRecurringTicketCommand{
		TicketID: "pm_1",
		Now:      day(2024, 3, 1),
	})

	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, vo.StatusClosed.String(), result.Closed.Status)
	assert.Equal(t, "pm_1", result.Closed.ID)
	assert.Equal(t, vo.StatusOpen.String(), result.Successor.Status)
	assert.Equal(t, day(2024, 4, 1), *result.Successor.ScheduledDate)
	assert.Equal(t, "Preventive Maintenance: M-010", result.Successor.Title)
	assert.Equal(t, "Floor B", result.Successor.Area)
	assert.NotEqual(t, result.Closed.ID, result.Successor.ID)

	assert.Equal(t, []string{"ticket:preventive:pm_1"}, locker.keys)
	assert.Equal(t, []string{ticket.EventTicketRescheduled}, publisher.types())
	assert.Equal(t, 1, metrics.count("closed:preventive"))
	assert.Equal(t, 1, metrics.count("created:preventive"))

	// the stored ticket is untouched by the close
	assert.True(t, open.IsOpen())
}

func TestClosePMTicketUseCase_Execute_FutureClose(t *testing.T) {
	repo := &mockPreventiveRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*ticket.Preventive, error) {
			return newPM(t, id, day(2024, 3, 10)), nil
		},
		CloseAndAppendFunc: func(ctx context.Context, closed, successor *ticket.Preventive) error {
			t.Fatal("nothing may be stored for a future close")
			return nil
		},
	}
	metrics := newMockMetrics()

	uc := NewClosePMTicketUseCase(repo, &mockLocker{}, &mockPublisher{}, metrics, &mockLogger{})
	_, err := uc.Execute(context.Background(), CloseRecurringTicketCommand{TicketID: "pm_1", Now: day(2024, 3, 1)})

	require.Error(t, err)
	assert.True(t, errors.IsFutureCloseError(err))
	assert.Equal(t, "You cannot close a ticket scheduled for a future date.", errors.GetAppError(err).Message)
	assert.Equal(t, 1, metrics.count("rejected:preventive:future_close"))
}

func TestClosePMTicketUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name      string
		getErr    error
		appendErr error
		lockErr   error
		check     func(error) bool
	}{
		{name: "not found", getErr: ticket.ErrTicketNotFound, check: errors.IsNotFoundError},
		{name: "closed concurrently", appendErr: ticket.ErrTicketClosed, check: errors.IsConflictError},
		{name: "lock unavailable", lockErr: context.DeadlineExceeded, check: errors.IsConflictError},
		{name: "store failure", appendErr: stderrors.New("disk full"), check: func(err error) bool {
			return errors.GetAppError(err).Type == errors.ErrorTypeInternal
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockPreventiveRepository{
				GetByIDFunc: func(ctx context.Context, id string) (*ticket.Preventive, error) {
					if tt.getErr != nil {
						return nil, tt.getErr
					}
					return newPM(t, id, day(2024, 3, 1)), nil
				},
				CloseAndAppendFunc: func(ctx context.Context, closed, successor *ticket.Preventive) error {
					return tt.appendErr
				},
			}
			locker := &mockLocker{LockFunc: func(ctx context.Context, key string) (func(), error) {
				if tt.lockErr != nil {
					return nil, tt.lockErr
				}
				return func() {}, nil
			}}

			uc := NewClosePMTicketUseCase(repo, locker, &mockPublisher{}, newMockMetrics(), &mockLogger{})
			_, err := uc.Execute(context.Background(), CloseRecurringTicketCommand{TicketID: "pm_1", Now: day(2024, 3, 2)})

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestClosePMTicketUseCase_Execute_ConcurrentClosesYieldOneSuccessor(t *testing.T) {
	store := session.NewStore()
	repo := store.Preventives()
	require.NoError(t, repo.CreateBatch(context.Background(), []*ticket.Preventive{newPM(t, "pm_1", day(2024, 3, 1))}))

	uc := NewClosePMTicketUseCase(repo, lock.NewKeyedMutex(), &mockPublisher{}, newMockMetrics(), &mockLogger{})

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), CloseRecurringTicketCommand{TicketID: "pm_1", Now: day(2024, 3, 1)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.IsConflictError(err):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	all, total, err := repo.List(context.Background(), ticket.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, vo.StatusClosed, all[0].Status())
	assert.Equal(t, vo.StatusOpen, all[1].Status())
	assert.Equal(t, day(2024, 4, 1), all[1].ScheduledDate())
}

func TestCloseCalibrationTicketUseCase_Execute_Quarterly(t *testing.T) {
	open, err := ticket.NewCalibration("cal_1", "ins_1", "I-101", "Pressure Gauge", "Assembly Floor",
		day(2024, 1, 10), vo.FrequencyQuarterly, day(2024, 1, 1))
	require.NoError(t, err)

	repo := &mockCalibrationRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*ticket.Calibration, error) {
			return open, nil
		},
	}
	locker := &mockLocker{}

	uc := NewCloseCalibrationTicketUseCase(repo, locker, &mockPublisher{}, newMockMetrics(), &mockLogger{})
	result, err := uc.Execute(context.Background(), CloseRecurringTicketCommand{TicketID: "cal_1", Now: day(2024, 1, 10)})

	require.NoError(t, err)
	assert.Equal(t, day(2024, 4, 10), *result.Successor.ScheduledDate)
	assert.Equal(t, "Calibration: I-101 - Pressure Gauge", result.Successor.Title)
	assert.Equal(t, "quarterly", result.Successor.Frequency)
	assert.Equal(t, "Quarterly", result.Successor.FrequencyLabel)
	assert.Equal(t, []string{"ticket:calibration:cal_1"}, locker.keys)
}
