package ticket

import (
	"fmt"
	"time"
)

// InvalidDowntime is shown when the downtime window ends before it starts.
const InvalidDowntime = "Invalid time"

// Downtime is the length of a breakdown window in whole minutes.
type Downtime struct {
	minutes int64
	invalid bool
}

// ComputeDowntime measures to - from, truncated to whole minutes. A missing
// end (or start) counts as zero; an end before the start is invalid.
func ComputeDowntime(from, to *time.Time) Downtime {
	if from == nil || to == nil || from.IsZero() || to.IsZero() {
		return Downtime{}
	}
	d := to.Sub(*from)
	if d < 0 {
		return Downtime{invalid: true}
	}
	return Downtime{minutes: int64(d / time.Minute)}
}

func (d Downtime) IsValid() bool  { return !d.invalid }
func (d Downtime) Minutes() int64 { return d.minutes }

// String renders "H hours M minutes", or InvalidDowntime.
func (d Downtime) String() string {
	if d.invalid {
		return InvalidDowntime
	}
	return fmt.Sprintf("%d hours %d minutes", d.minutes/60, d.minutes%60)
}
