package overtime

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRequestNotFound         = errors.New("overtime request not found")
	ErrRequestAlreadyProcessed = errors.New("overtime request has already been approved or rejected")
	ErrDuplicateRequest        = errors.New("an overtime request already exists for this employee and date")
)

// NegativeDurationError reports a computed duration that is not
// positive even after overnight wraparound. It indicates malformed
// input and is surfaced, never clamped.
type NegativeDurationError struct {
	Start time.Time
	End   time.Time
}

func (e *NegativeDurationError) Error() string {
	return fmt.Sprintf("overtime duration is not positive (start %s, end %s)",
		e.Start.Format("15:04"), e.End.Format("15:04"))
}

// IsNegativeDuration reports whether err wraps a NegativeDurationError.
func IsNegativeDuration(err error) bool {
	var target *NegativeDurationError
	return errors.As(err, &target)
}
