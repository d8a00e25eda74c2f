// Package seeds loads master data from a YAML file into the repositories.
package seeds

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
	uservo "github.com/upkeep-inc/upkeep/internal/domain/user/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/db"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

// File is the layout of a seed file.
type File struct {
	Machines    []MachineSeed    `yaml:"machines" validate:"dive"`
	Instruments []InstrumentSeed `yaml:"instruments" validate:"dive"`
	Users       []UserSeed       `yaml:"users" validate:"dive"`
}

type MachineSeed struct {
	ID          string `yaml:"id" validate:"required"`
	AssetNumber string `yaml:"asset_number" validate:"required"`
	MachineName string `yaml:"machine_name" validate:"required"`
	Area        string `yaml:"area" validate:"required"`
	Status      string `yaml:"status" validate:"omitempty,oneof=Active Inactive"`
	Description string `yaml:"description"`
}

type InstrumentSeed struct {
	ID                  string `yaml:"id" validate:"required"`
	InstrumentNumber    string `yaml:"instrument_number" validate:"required"`
	InstrumentName      string `yaml:"instrument_name" validate:"required"`
	Area                string `yaml:"area" validate:"required"`
	Status              string `yaml:"status" validate:"omitempty,oneof=Active Inactive"`
	Description         string `yaml:"description"`
	LastCalibrationDone string `yaml:"last_calibration_done" validate:"omitempty,datetime=2006-01-02"`
	Frequency           string `yaml:"frequency"`
}

type UserSeed struct {
	ID       string `yaml:"id" validate:"required"`
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password" validate:"required"`
	Email    string `yaml:"email" validate:"required,email"`
	Phone    string `yaml:"phone" validate:"required"`
	Role     string `yaml:"role" validate:"omitempty,oneof=Admin Viewer User"`
	Status   string `yaml:"status" validate:"omitempty,oneof=Active Inactive"`
}

// Result counts the records inserted by one run.
type Result struct {
	Machines    int
	Instruments int
	Users       int
}

func (r Result) Total() int { return r.Machines + r.Instruments + r.Users }

// LoadFile reads and validates a seed file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := utils.ValidateStruct(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

type Seeder struct {
	machines    machine.Repository
	instruments instrument.Repository
	users       user.Repository
	hasher      user.PasswordHasher
	tx          db.Transactor
	logger      logger.Interface
}

func NewSeeder(
	machines machine.Repository,
	instruments instrument.Repository,
	users user.Repository,
	hasher user.PasswordHasher,
	tx db.Transactor,
	logger logger.Interface,
) *Seeder {
	return &Seeder{
		machines:    machines,
		instruments: instruments,
		users:       users,
		hasher:      hasher,
		tx:          tx,
		logger:      logger,
	}
}

// Apply inserts every record whose ID (or username, for users) is not
// stored yet. Existing records are left as they are, so Apply can run on
// every start. Nothing is kept when any record fails.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result
	err := s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.apply(txCtx, f)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Infow("seed data applied",
		"machines", res.Machines,
		"instruments", res.Instruments,
		"users", res.Users,
	)
	return res, nil
}

func (s *Seeder) apply(ctx context.Context, f *File) (Result, error) {
	var res Result
	now := biztime.NowUTC()

	for _, ms := range f.Machines {
		inserted, err := s.seedMachine(ctx, ms, now)
		if err != nil {
			return res, fmt.Errorf("machine %s: %w", ms.ID, err)
		}
		if inserted {
			res.Machines++
		}
	}
	for _, is := range f.Instruments {
		inserted, err := s.seedInstrument(ctx, is, now)
		if err != nil {
			return res, fmt.Errorf("instrument %s: %w", is.ID, err)
		}
		if inserted {
			res.Instruments++
		}
	}
	for _, us := range f.Users {
		inserted, err := s.seedUser(ctx, us, now)
		if err != nil {
			return res, fmt.Errorf("user %s: %w", us.Username, err)
		}
		if inserted {
			res.Users++
		}
	}
	return res, nil
}

func (s *Seeder) seedMachine(ctx context.Context, ms MachineSeed, now time.Time) (bool, error) {
	if _, err := s.machines.GetByID(ctx, ms.ID); err == nil {
		return false, nil
	} else if !stderrors.Is(err, machine.ErrMachineNotFound) {
		return false, err
	}

	m, err := machine.NewMachine(ms.ID, machine.Details{
		AssetNumber: ms.AssetNumber,
		MachineName: ms.MachineName,
		Area:        ms.Area,
		Status:      shared.ActiveStatus(ms.Status),
		Description: ms.Description,
	}, now)
	if err != nil {
		return false, err
	}
	return true, s.machines.Create(ctx, m)
}

func (s *Seeder) seedInstrument(ctx context.Context, is InstrumentSeed, now time.Time) (bool, error) {
	if _, err := s.instruments.GetByID(ctx, is.ID); err == nil {
		return false, nil
	} else if !stderrors.Is(err, instrument.ErrInstrumentNotFound) {
		return false, err
	}

	d := instrument.Details{
		InstrumentNumber: is.InstrumentNumber,
		InstrumentName:   is.InstrumentName,
		Area:             is.Area,
		Status:           shared.ActiveStatus(is.Status),
		Description:      is.Description,
	}
	if is.Frequency != "" {
		f, err := vo.ParseFrequencyFor(vo.KindCalibration, is.Frequency)
		if err != nil {
			return false, err
		}
		d.Frequency = f
	}
	if is.LastCalibrationDone != "" {
		last, err := biztime.ParseDate(is.LastCalibrationDone)
		if err != nil {
			return false, err
		}
		d.LastCalibrationDone = &last
	}

	i, err := instrument.NewInstrument(is.ID, d, now)
	if err != nil {
		return false, err
	}
	return true, s.instruments.Create(ctx, i)
}

func (s *Seeder) seedUser(ctx context.Context, us UserSeed, now time.Time) (bool, error) {
	if _, err := s.users.GetByUsername(ctx, us.Username); err == nil {
		return false, nil
	} else if !stderrors.Is(err, user.ErrUserNotFound) {
		return false, err
	}

	u, err := user.NewUser(us.ID, user.Profile{
		Username: us.Username,
		Password: us.Password,
		Email:    us.Email,
		Phone:    us.Phone,
		Role:     uservo.Role(us.Role),
		Status:   shared.ActiveStatus(us.Status),
	}, s.hasher, now)
	if err != nil {
		return false, err
	}
	return true, s.users.Create(ctx, u)
}
