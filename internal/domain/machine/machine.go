// Package machine is the machine master: equipment that PM and breakdown
// tickets refer to.
package machine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
)

var ErrMachineNotFound = errors.New("machine not found")

type Machine struct {
	id          string
	assetNumber string
	machineName string
	area        string
	status      shared.ActiveStatus
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// Details are the editable fields of a machine.
type Details struct {
	AssetNumber string
	MachineName string
	Area        string
	Status      shared.ActiveStatus
	Description string
}

func (d Details) validate() error {
	if strings.TrimSpace(d.AssetNumber) == "" {
		return fmt.Errorf("asset number is required")
	}
	if strings.TrimSpace(d.MachineName) == "" {
		return fmt.Errorf("machine name is required")
	}
	if strings.TrimSpace(d.Area) == "" {
		return fmt.Errorf("area is required")
	}
	if !d.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", d.Status)
	}
	return nil
}

func NewMachine(id string, d Details, now time.Time) (*Machine, error) {
	if id == "" {
		return nil, fmt.Errorf("machine ID is required")
	}
	if d.Status == "" {
		d.Status = shared.StatusActive
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	m := &Machine{id: id, createdAt: now}
	m.apply(d, now)
	return m, nil
}

func ReconstructMachine(id string, d Details, createdAt, updatedAt time.Time) *Machine {
	m := &Machine{id: id, createdAt: createdAt}
	m.apply(d, updatedAt)
	return m
}

func (m *Machine) apply(d Details, now time.Time) {
	m.assetNumber = strings.TrimSpace(d.AssetNumber)
	m.machineName = strings.TrimSpace(d.MachineName)
	m.area = strings.TrimSpace(d.Area)
	m.status = d.Status
	m.description = d.Description
	m.updatedAt = now
}

// Update replaces the editable fields after the same checks as NewMachine.
func (m *Machine) Update(d Details, now time.Time) error {
	if d.Status == "" {
		d.Status = m.status
	}
	if err := d.validate(); err != nil {
		return err
	}
	m.apply(d, now)
	return nil
}

func (m *Machine) ID() string                  { return m.id }
func (m *Machine) AssetNumber() string         { return m.assetNumber }
func (m *Machine) MachineName() string         { return m.machineName }
func (m *Machine) Area() string                { return m.area }
func (m *Machine) Status() shared.ActiveStatus { return m.status }
func (m *Machine) Description() string         { return m.description }
func (m *Machine) CreatedAt() time.Time        { return m.createdAt }
func (m *Machine) UpdatedAt() time.Time        { return m.updatedAt }

// InArea reports whether the machine belongs to area.
func (m *Machine) InArea(area string) bool {
	return m.area == strings.TrimSpace(area)
}
