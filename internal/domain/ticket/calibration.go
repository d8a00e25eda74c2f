package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
)

// Calibration is a recurring calibration task on an instrument. The
// instrument's number, name and area are denormalized onto the ticket.
type Calibration struct {
	header
	schedule
	instrumentID     string
	instrumentNumber string
	instrumentName   string
	area             string
}

func CalibrationTitle(number, name string) string {
	return fmt.Sprintf("Calibration: %s - %s", number, name)
}

func NewCalibration(
	id string,
	instrumentID string,
	instrumentNumber string,
	instrumentName string,
	area string,
	scheduledDate time.Time,
	frequency vo.Frequency,
	now time.Time,
) (*Calibration, error) {
	if id == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if strings.TrimSpace(instrumentID) == "" {
		return nil, fmt.Errorf("instrument is required")
	}
	if strings.TrimSpace(instrumentNumber) == "" {
		return nil, fmt.Errorf("instrument number is required")
	}
	if scheduledDate.IsZero() {
		return nil, fmt.Errorf("scheduled date is required")
	}
	if !frequency.IsAllowedFor(vo.KindCalibration) {
		return nil, fmt.Errorf("frequency %q is not allowed for calibration", frequency)
	}

	return &Calibration{
		header:           openHeader(id, CalibrationTitle(instrumentNumber, instrumentName), now),
		schedule:         schedule{scheduledDate: scheduledDate, frequency: frequency},
		instrumentID:     instrumentID,
		instrumentNumber: instrumentNumber,
		instrumentName:   instrumentName,
		area:             area,
	}, nil
}

func ReconstructCalibration(
	id string,
	instrumentID string,
	instrumentNumber string,
	instrumentName string,
	area string,
	status vo.TicketStatus,
	scheduledDate time.Time,
	frequency vo.Frequency,
	closedDate *time.Time,
	createdAt, updatedAt time.Time,
) (*Calibration, error) {
	if id == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !frequency.IsValid() {
		return nil, fmt.Errorf("invalid frequency: %s", frequency)
	}

	return &Calibration{
		header: header{
			id:         id,
			title:      CalibrationTitle(instrumentNumber, instrumentName),
			status:     status,
			closedDate: closedDate,
			createdAt:  createdAt,
			updatedAt:  updatedAt,
		},
		schedule:         schedule{scheduledDate: scheduledDate, frequency: frequency},
		instrumentID:     instrumentID,
		instrumentNumber: instrumentNumber,
		instrumentName:   instrumentName,
		area:             area,
	}, nil
}

func (c *Calibration) Kind() vo.Kind            { return vo.KindCalibration }
func (c *Calibration) InstrumentID() string     { return c.instrumentID }
func (c *Calibration) InstrumentNumber() string { return c.instrumentNumber }
func (c *Calibration) InstrumentName() string   { return c.instrumentName }
func (c *Calibration) Area() string             { return c.area }

// CloseAndReschedule returns c closed at closedAt together with its Open
// successor, carrying the same instrument fields.
func (c *Calibration) CloseAndReschedule(closedAt time.Time, successorID string) (closed, successor *Calibration, err error) {
	nextSchedule, err := c.schedule.next(c.status, closedAt)
	if err != nil {
		return nil, nil, err
	}
	if successorID == "" {
		return nil, nil, fmt.Errorf("successor ID is required")
	}

	cc := *c
	cc.header = c.header.closed(closedAt)

	s := &Calibration{
		header:           openHeader(successorID, CalibrationTitle(c.instrumentNumber, c.instrumentName), closedAt),
		schedule:         nextSchedule,
		instrumentID:     c.instrumentID,
		instrumentNumber: c.instrumentNumber,
		instrumentName:   c.instrumentName,
		area:             c.area,
	}
	return &cc, s, nil
}
