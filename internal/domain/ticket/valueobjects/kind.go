package valueobjects

import "fmt"

// Kind discriminates the three ticket variants.
type Kind string

const (
	KindBreakdown   Kind = "breakdown"
	KindPreventive  Kind = "preventive"
	KindCalibration Kind = "calibration"
)

func (k Kind) String() string { return string(k) }

func (k Kind) IsValid() bool {
	switch k {
	case KindBreakdown, KindPreventive, KindCalibration:
		return true
	}
	return false
}

// IsRecurring reports whether closing a ticket of this kind schedules a successor.
func (k Kind) IsRecurring() bool {
	return k == KindPreventive || k == KindCalibration
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if s == "pm" {
		k = KindPreventive
	}
	if !k.IsValid() {
		return "", fmt.Errorf("invalid ticket kind: %s", s)
	}
	return k, nil
}
