package ticket

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTicketClosed is returned when closing a ticket that is already Closed.
	ErrTicketClosed = errors.New("ticket is already closed")
	// ErrTicketNotFound is returned by repositories for unknown ids.
	ErrTicketNotFound = errors.New("ticket not found")
)

// FutureCloseError rejects closing a recurring ticket before its scheduled date.
type FutureCloseError struct {
	ScheduledDate time.Time
	ClosedAt      time.Time
}

func (e *FutureCloseError) Error() string {
	return fmt.Sprintf("ticket is scheduled for %s and cannot be closed at %s",
		e.ScheduledDate.Format(time.RFC3339), e.ClosedAt.Format(time.RFC3339))
}

// IsFutureClose reports whether err is a FutureCloseError.
func IsFutureClose(err error) bool {
	var fc *FutureCloseError
	return errors.As(err, &fc)
}
