package valueobjects

import "fmt"

// Shift is the production shift during which a breakdown happened.
type Shift string

const (
	ShiftFirst  Shift = "First"
	ShiftSecond Shift = "Second"
	ShiftNight  Shift = "Night"
)

func (s Shift) String() string { return string(s) }

func (s Shift) IsValid() bool {
	return s == ShiftFirst || s == ShiftSecond || s == ShiftNight
}

func NewShift(s string) (Shift, error) {
	shift := Shift(s)
	if !shift.IsValid() {
		return "", fmt.Errorf("invalid shift: %s", s)
	}
	return shift, nil
}

// WorkType classifies a breakdown ticket.
type WorkType string

const (
	WorkTypeBreakdown WorkType = "Breakdown"
	WorkTypeOther     WorkType = "Other Work"
)

func (w WorkType) String() string { return string(w) }

func (w WorkType) IsValid() bool {
	return w == WorkTypeBreakdown || w == WorkTypeOther
}

// NewWorkType defaults an empty value to Breakdown.
func NewWorkType(s string) (WorkType, error) {
	if s == "" {
		return WorkTypeBreakdown, nil
	}
	w := WorkType(s)
	if !w.IsValid() {
		return "", fmt.Errorf("invalid work type: %s", s)
	}
	return w, nil
}
