// Package instrument is the instrument master: gauges and sensors that
// calibration tickets refer to.
package instrument

import (
	"errors"
	"fmt"
	"strings"
	"time"

	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
)

var ErrInstrumentNotFound = errors.New("instrument not found")

type Instrument struct {
	id                  string
	instrumentNumber    string
	instrumentName      string
	area                string
	status              shared.ActiveStatus
	description         string
	lastCalibrationDone *time.Time
	frequency           vo.Frequency
	createdAt           time.Time
	updatedAt           time.Time
}

// Details are the editable fields of an instrument.
type Details struct {
	InstrumentNumber    string
	InstrumentName      string
	Area                string
	Status              shared.ActiveStatus
	Description         string
	LastCalibrationDone *time.Time
	Frequency           vo.Frequency
}

func (d *Details) normalize(defaultStatus shared.ActiveStatus) error {
	if strings.TrimSpace(d.InstrumentNumber) == "" {
		return fmt.Errorf("instrument number is required")
	}
	if strings.TrimSpace(d.InstrumentName) == "" {
		return fmt.Errorf("instrument name is required")
	}
	if strings.TrimSpace(d.Area) == "" {
		return fmt.Errorf("area is required")
	}
	if d.Status == "" {
		d.Status = defaultStatus
	}
	if !d.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", d.Status)
	}
	if d.Frequency == "" {
		d.Frequency = vo.FrequencyMonthly
	}
	if !d.Frequency.IsAllowedFor(vo.KindCalibration) {
		return fmt.Errorf("frequency %q is not allowed for calibration", d.Frequency)
	}
	return nil
}

func NewInstrument(id string, d Details, now time.Time) (*Instrument, error) {
	if id == "" {
		return nil, fmt.Errorf("instrument ID is required")
	}
	if err := d.normalize(shared.StatusActive); err != nil {
		return nil, err
	}
	i := &Instrument{id: id, createdAt: now}
	i.apply(d, now)
	return i, nil
}

func ReconstructInstrument(id string, d Details, createdAt, updatedAt time.Time) *Instrument {
	i := &Instrument{id: id, createdAt: createdAt}
	i.apply(d, updatedAt)
	return i
}

func (i *Instrument) apply(d Details, now time.Time) {
	i.instrumentNumber = strings.TrimSpace(d.InstrumentNumber)
	i.instrumentName = strings.TrimSpace(d.InstrumentName)
	i.area = strings.TrimSpace(d.Area)
	i.status = d.Status
	i.description = d.Description
	i.lastCalibrationDone = d.LastCalibrationDone
	i.frequency = d.Frequency
	i.updatedAt = now
}

func (i *Instrument) Update(d Details, now time.Time) error {
	if err := d.normalize(i.status); err != nil {
		return err
	}
	i.apply(d, now)
	return nil
}

func (i *Instrument) ID() string                  { return i.id }
func (i *Instrument) InstrumentNumber() string    { return i.instrumentNumber }
func (i *Instrument) InstrumentName() string      { return i.instrumentName }
func (i *Instrument) Area() string                { return i.area }
func (i *Instrument) Status() shared.ActiveStatus { return i.status }
func (i *Instrument) Description() string         { return i.description }
func (i *Instrument) Frequency() vo.Frequency     { return i.frequency }
func (i *Instrument) CreatedAt() time.Time        { return i.createdAt }
func (i *Instrument) UpdatedAt() time.Time        { return i.updatedAt }

func (i *Instrument) LastCalibrationDone() *time.Time {
	if i.lastCalibrationDone == nil {
		return nil
	}
	t := *i.lastCalibrationDone
	return &t
}

// NextDueDate is the last calibration advanced by the frequency, or nil
// when the instrument has never been calibrated.
func (i *Instrument) NextDueDate() *time.Time {
	if i.lastCalibrationDone == nil {
		return nil
	}
	next, err := i.frequency.NextDate(*i.lastCalibrationDone)
	if err != nil {
		return nil
	}
	return &next
}

func (i *Instrument) InArea(area string) bool {
	return i.area == strings.TrimSpace(area)
}
