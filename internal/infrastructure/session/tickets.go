package session

import (
	"context"
	"time"

	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
)

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func keep(filter ticket.Filter, status, area string, at time.Time) bool {
	if filter.Status != nil && filter.Status.String() != status {
		return false
	}
	return matches(filter.Area, area) && inRange(at, filter.ScheduledFrom, filter.ScheduledTo)
}

type BreakdownRepository struct{ s *Store }

func (s *Store) Breakdowns() ticket.BreakdownRepository { return &BreakdownRepository{s: s} }

func (r *BreakdownRepository) Create(_ context.Context, t *ticket.Breakdown) error {
	return r.s.breakdowns.insert(t)
}

func (r *BreakdownRepository) GetByID(_ context.Context, id string) (*ticket.Breakdown, error) {
	t, ok := r.s.breakdowns.get(id)
	if !ok {
		return nil, ticket.ErrTicketNotFound
	}
	return t, nil
}

func (r *BreakdownRepository) List(_ context.Context, filter ticket.Filter) ([]*ticket.Breakdown, int64, error) {
	ts := r.s.breakdowns.find(func(t *ticket.Breakdown) bool {
		return keep(filter, t.Status().String(), t.Location(), t.DateOfWork())
	})
	items, total := page(ts, func(a, b *ticket.Breakdown) bool {
		return a.CreatedAt().After(b.CreatedAt())
	}, filter.Page, filter.PageSize)
	return items, total, nil
}

func (r *BreakdownRepository) Close(_ context.Context, closed *ticket.Breakdown) error {
	return r.s.breakdowns.replace(closed.ID(), ticket.ErrTicketNotFound, func(current *ticket.Breakdown) (*ticket.Breakdown, error) {
		if !current.Status().IsOpen() {
			return nil, ticket.ErrTicketClosed
		}
		return closed, nil
	})
}

type PreventiveRepository struct{ s *Store }

func (s *Store) Preventives() ticket.PreventiveRepository { return &PreventiveRepository{s: s} }

func (r *PreventiveRepository) CreateBatch(_ context.Context, tickets []*ticket.Preventive) error {
	return r.s.preventives.insert(tickets...)
}

func (r *PreventiveRepository) GetByID(_ context.Context, id string) (*ticket.Preventive, error) {
	t, ok := r.s.preventives.get(id)
	if !ok {
		return nil, ticket.ErrTicketNotFound
	}
	return t, nil
}

func (r *PreventiveRepository) List(_ context.Context, filter ticket.Filter) ([]*ticket.Preventive, int64, error) {
	ts := r.s.preventives.find(func(t *ticket.Preventive) bool {
		return keep(filter, t.Status().String(), t.Area(), t.ScheduledDate())
	})
	items, total := page(ts, func(a, b *ticket.Preventive) bool {
		if !a.ScheduledDate().Equal(b.ScheduledDate()) {
			return a.ScheduledDate().Before(b.ScheduledDate())
		}
		return a.ID() < b.ID()
	}, filter.Page, filter.PageSize)
	return items, total, nil
}

// CloseAndAppend runs inside a store transaction so the close is undone
// when the successor cannot be appended.
func (r *PreventiveRepository) CloseAndAppend(ctx context.Context, closed, successor *ticket.Preventive) error {
	return r.s.RunInTransaction(ctx, func(context.Context) error {
		err := r.s.preventives.replace(closed.ID(), ticket.ErrTicketNotFound, func(current *ticket.Preventive) (*ticket.Preventive, error) {
			if !current.Status().IsOpen() {
				return nil, ticket.ErrTicketClosed
			}
			return closed, nil
		})
		if err != nil {
			return err
		}
		return r.s.preventives.insert(successor)
	})
}

func (r *PreventiveRepository) CountOpen(_ context.Context) (int64, error) {
	open := r.s.preventives.find(func(t *ticket.Preventive) bool { return t.Status().IsOpen() })
	return int64(len(open)), nil
}

type CalibrationRepository struct{ s *Store }

func (s *Store) Calibrations() ticket.CalibrationRepository { return &CalibrationRepository{s: s} }

func (r *CalibrationRepository) CreateBatch(_ context.Context, tickets []*ticket.Calibration) error {
	return r.s.calibrations.insert(tickets...)
}

func (r *CalibrationRepository) GetByID(_ context.Context, id string) (*ticket.Calibration, error) {
	t, ok := r.s.calibrations.get(id)
	if !ok {
		return nil, ticket.ErrTicketNotFound
	}
	return t, nil
}

func (r *CalibrationRepository) List(_ context.Context, filter ticket.Filter) ([]*ticket.Calibration, int64, error) {
	ts := r.s.calibrations.find(func(t *ticket.Calibration) bool {
		return keep(filter, t.Status().String(), t.Area(), t.ScheduledDate())
	})
	items, total := page(ts, func(a, b *ticket.Calibration) bool {
		if !a.ScheduledDate().Equal(b.ScheduledDate()) {
			return a.ScheduledDate().Before(b.ScheduledDate())
		}
		return a.ID() < b.ID()
	}, filter.Page, filter.PageSize)
	return items, total, nil
}

func (r *CalibrationRepository) CloseAndAppend(ctx context.Context, closed, successor *ticket.Calibration) error {
	return r.s.RunInTransaction(ctx, func(context.Context) error {
		err := r.s.calibrations.replace(closed.ID(), ticket.ErrTicketNotFound, func(current *ticket.Calibration) (*ticket.Calibration, error) {
			if !current.Status().IsOpen() {
				return nil, ticket.ErrTicketClosed
			}
			return closed, nil
		})
		if err != nil {
			return err
		}
		return r.s.calibrations.insert(successor)
	})
}

func (r *CalibrationRepository) CountOpen(_ context.Context) (int64, error) {
	open := r.s.calibrations.find(func(t *ticket.Calibration) bool { return t.Status().IsOpen() })
	return int64(len(open)), nil
}
