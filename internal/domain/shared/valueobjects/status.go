// Package valueobjects holds value objects shared by the entity masters.
package valueobjects

import "fmt"

// ActiveStatus marks whether a master record is in service.
type ActiveStatus string

const (
	StatusActive   ActiveStatus = "Active"
	StatusInactive ActiveStatus = "Inactive"
)

func (s ActiveStatus) String() string { return string(s) }

func (s ActiveStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// NewActiveStatus defaults an empty value to Active.
func NewActiveStatus(s string) (ActiveStatus, error) {
	if s == "" {
		return StatusActive, nil
	}
	status := ActiveStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return status, nil
}
