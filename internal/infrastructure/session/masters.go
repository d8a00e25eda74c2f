package session

import (
	"context"
	"sort"
	"strings"

	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
)

type MachineRepository struct{ s *Store }

func (s *Store) Machines() machine.Repository { return &MachineRepository{s: s} }

func (r *MachineRepository) Create(_ context.Context, m *machine.Machine) error {
	return r.s.machines.insert(m)
}

func (r *MachineRepository) Update(_ context.Context, m *machine.Machine) error {
	return r.s.machines.replace(m.ID(), machine.ErrMachineNotFound, func(*machine.Machine) (*machine.Machine, error) {
		return m, nil
	})
}

func (r *MachineRepository) Delete(_ context.Context, id string) error {
	if !r.s.machines.remove(id) {
		return machine.ErrMachineNotFound
	}
	return nil
}

func (r *MachineRepository) GetByID(_ context.Context, id string) (*machine.Machine, error) {
	m, ok := r.s.machines.get(id)
	if !ok {
		return nil, machine.ErrMachineNotFound
	}
	return m, nil
}

func (r *MachineRepository) GetByIDs(_ context.Context, ids []string) ([]*machine.Machine, error) {
	want := toSet(ids)
	ms := r.s.machines.find(func(m *machine.Machine) bool {
		_, ok := want[m.ID()]
		return ok
	})
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].AssetNumber() < ms[j].AssetNumber() })
	if ms == nil {
		ms = []*machine.Machine{}
	}
	return ms, nil
}

func (r *MachineRepository) List(_ context.Context, filter machine.ListFilter) ([]*machine.Machine, int64, error) {
	ms := r.s.machines.find(func(m *machine.Machine) bool {
		return matches(filter.Area, m.Area()) && matches(filter.Status, m.Status().String())
	})
	items, total := page(ms, func(a, b *machine.Machine) bool {
		if a.Area() != b.Area() {
			return a.Area() < b.Area()
		}
		return a.AssetNumber() < b.AssetNumber()
	}, filter.Page, filter.PageSize)
	return items, total, nil
}

func (r *MachineRepository) ListAreas(_ context.Context) ([]string, error) {
	var areas []string
	for _, m := range r.s.machines.snapshot() {
		areas = append(areas, m.Area())
	}
	return distinctSorted(areas), nil
}

type InstrumentRepository struct{ s *Store }

func (s *Store) Instruments() instrument.Repository { return &InstrumentRepository{s: s} }

func (r *InstrumentRepository) Create(_ context.Context, i *instrument.Instrument) error {
	return r.s.instruments.insert(i)
}

func (r *InstrumentRepository) Update(_ context.Context, i *instrument.Instrument) error {
	return r.s.instruments.replace(i.ID(), instrument.ErrInstrumentNotFound, func(*instrument.Instrument) (*instrument.Instrument, error) {
		return i, nil
	})
}

func (r *InstrumentRepository) Delete(_ context.Context, id string) error {
	if !r.s.instruments.remove(id) {
		return instrument.ErrInstrumentNotFound
	}
	return nil
}

func (r *InstrumentRepository) GetByID(_ context.Context, id string) (*instrument.Instrument, error) {
	i, ok := r.s.instruments.get(id)
	if !ok {
		return nil, instrument.ErrInstrumentNotFound
	}
	return i, nil
}

func (r *InstrumentRepository) GetByIDs(_ context.Context, ids []string) ([]*instrument.Instrument, error) {
	want := toSet(ids)
	is := r.s.instruments.find(func(i *instrument.Instrument) bool {
		_, ok := want[i.ID()]
		return ok
	})
	sort.SliceStable(is, func(a, b int) bool { return is[a].InstrumentNumber() < is[b].InstrumentNumber() })
	if is == nil {
		is = []*instrument.Instrument{}
	}
	return is, nil
}

func (r *InstrumentRepository) List(_ context.Context, filter instrument.ListFilter) ([]*instrument.Instrument, int64, error) {
	is := r.s.instruments.find(func(i *instrument.Instrument) bool {
		return matches(filter.Area, i.Area()) && matches(filter.Status, i.Status().String())
	})
	items, total := page(is, func(a, b *instrument.Instrument) bool {
		if a.Area() != b.Area() {
			return a.Area() < b.Area()
		}
		return a.InstrumentNumber() < b.InstrumentNumber()
	}, filter.Page, filter.PageSize)
	return items, total, nil
}

func (r *InstrumentRepository) ListAreas(_ context.Context) ([]string, error) {
	var areas []string
	for _, i := range r.s.instruments.snapshot() {
		areas = append(areas, i.Area())
	}
	return distinctSorted(areas), nil
}

type UserRepository struct{ s *Store }

func (s *Store) Users() user.Repository { return &UserRepository{s: s} }

// Create enforces unique usernames the way the SQL unique index does.
func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	if _, ok := r.byUsername(u.Username()); ok {
		return ErrDuplicate
	}
	return r.s.users.insert(u)
}

func (r *UserRepository) Update(_ context.Context, u *user.User) error {
	if other, ok := r.byUsername(u.Username()); ok && other.ID() != u.ID() {
		return ErrDuplicate
	}
	return r.s.users.replace(u.ID(), user.ErrUserNotFound, func(*user.User) (*user.User, error) {
		return u, nil
	})
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	if !r.s.users.remove(id) {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := r.s.users.get(id)
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := r.byUsername(username)
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) byUsername(username string) (*user.User, bool) {
	us := r.s.users.find(func(u *user.User) bool { return u.Username() == username })
	if len(us) == 0 {
		return nil, false
	}
	return us[0], true
}

func (r *UserRepository) List(_ context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	us := r.s.users.find(func(u *user.User) bool {
		return matches(filter.Role, u.Role().String()) && matches(filter.Status, u.Status().String())
	})
	items, total := page(us, func(a, b *user.User) bool {
		return a.Username() < b.Username()
	}, filter.Page, filter.PageSize)
	return items, total, nil
}

func matches(want, got string) bool {
	return want == "" || want == got
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
