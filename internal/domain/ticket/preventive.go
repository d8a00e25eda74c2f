package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
)

// Preventive is a recurring maintenance task on a machine.
type Preventive struct {
	header
	schedule
	machineID   string
	assetNumber string
	area        string
}

func PreventiveTitle(assetNumber string) string {
	return "Preventive Maintenance: " + assetNumber
}

func NewPreventive(
	id string,
	machineID string,
	assetNumber string,
	area string,
	scheduledDate time.Time,
	frequency vo.Frequency,
	now time.Time,
) (*Preventive, error) {
	if id == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if strings.TrimSpace(machineID) == "" {
		return nil, fmt.Errorf("machine is required")
	}
	if strings.TrimSpace(assetNumber) == "" {
		return nil, fmt.Errorf("asset number is required")
	}
	if scheduledDate.IsZero() {
		return nil, fmt.Errorf("scheduled date is required")
	}
	if !frequency.IsAllowedFor(vo.KindPreventive) {
		return nil, fmt.Errorf("frequency %q is not allowed for preventive maintenance", frequency)
	}

	return &Preventive{
		header:      openHeader(id, PreventiveTitle(assetNumber), now),
		schedule:    schedule{scheduledDate: scheduledDate, frequency: frequency},
		machineID:   machineID,
		assetNumber: assetNumber,
		area:        area,
	}, nil
}

func ReconstructPreventive(
	id string,
	machineID string,
	assetNumber string,
	area string,
	status vo.TicketStatus,
	scheduledDate time.Time,
	frequency vo.Frequency,
	closedDate *time.Time,
	createdAt, updatedAt time.Time,
) (*Preventive, error) {
	if id == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !frequency.IsValid() {
		return nil, fmt.Errorf("invalid frequency: %s", frequency)
	}

	return &Preventive{
		header: header{
			id:         id,
			title:      PreventiveTitle(assetNumber),
			status:     status,
			closedDate: closedDate,
			createdAt:  createdAt,
			updatedAt:  updatedAt,
		},
		schedule:    schedule{scheduledDate: scheduledDate, frequency: frequency},
		machineID:   machineID,
		assetNumber: assetNumber,
		area:        area,
	}, nil
}

func (p *Preventive) Kind() vo.Kind       { return vo.KindPreventive }
func (p *Preventive) MachineID() string   { return p.machineID }
func (p *Preventive) AssetNumber() string { return p.assetNumber }
func (p *Preventive) Area() string        { return p.area }

// CloseAndReschedule returns p closed at closedAt together with its Open
// successor. p itself is left untouched, as is everything else when an
// error is returned.
func (p *Preventive) CloseAndReschedule(closedAt time.Time, successorID string) (closed, successor *Preventive, err error) {
	nextSchedule, err := p.schedule.next(p.status, closedAt)
	if err != nil {
		return nil, nil, err
	}
	if successorID == "" {
		return nil, nil, fmt.Errorf("successor ID is required")
	}

	c := *p
	c.header = p.header.closed(closedAt)

	s := &Preventive{
		header:      openHeader(successorID, PreventiveTitle(p.assetNumber), closedAt),
		schedule:    nextSchedule,
		machineID:   p.machineID,
		assetNumber: p.assetNumber,
		area:        p.area,
	}
	return &c, s, nil
}
