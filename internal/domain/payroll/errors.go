package payroll

import (
	"errors"
	"fmt"
	"time"
)

// Payroll domain errors
var (
	ErrSettingsNotFound     = errors.New("payroll settings not found")
	ErrRateEntryNotFound    = errors.New("rate entry not found")
	ErrComponentNotFound    = errors.New("fixed component not found")
	ErrBatchNotFound        = errors.New("payroll batch not found")
	ErrLineNotFound         = errors.New("payroll line not found")
	ErrBatchExists          = errors.New("a batch already exists for this period")
	ErrBatchNotMutable      = errors.New("batch lines are frozen in this state")
	ErrBatchNotDeletable    = errors.New("only draft batches may be deleted")
	ErrBatchHasErrorLines   = errors.New("batch cannot be submitted while lines are in error")
	ErrInvalidComponent     = errors.New("invalid component category or kind")
	ErrCorrectionNotAllowed = errors.New("corrections are only allowed while the batch is draft or submitted")
)

// InvalidStateTransitionError reports a batch transition outside the
// allowed graph.
type InvalidStateTransitionError struct {
	From BatchStatus
	To   BatchStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid payroll batch transition from %s to %s", e.From, e.To)
}

// IsInvalidTransition reports whether err wraps an
// InvalidStateTransitionError.
func IsInvalidTransition(err error) bool {
	var target *InvalidStateTransitionError
	return errors.As(err, &target)
}

// AmbiguousRateError reports a rate lookup that found no entry, or
// several equally specific entries with overlapping validity. The
// engine never silently picks one or defaults to zero.
type AmbiguousRateError struct {
	PositionID    string
	WorkUnitID    *string
	SeniorityTier string
	AsOf          time.Time
	Candidates    int
}

func (e *AmbiguousRateError) Error() string {
	unit := "-"
	if e.WorkUnitID != nil {
		unit = *e.WorkUnitID
	}
	if e.Candidates == 0 {
		return fmt.Sprintf("no rate entry matches position %s, work unit %s, tier %s as of %s",
			e.PositionID, unit, e.SeniorityTier, e.AsOf.Format("2006-01-02"))
	}
	return fmt.Sprintf("%d equally specific rate entries overlap for position %s, work unit %s, tier %s as of %s",
		e.Candidates, e.PositionID, unit, e.SeniorityTier, e.AsOf.Format("2006-01-02"))
}

// IsAmbiguousRate reports whether err wraps an AmbiguousRateError.
func IsAmbiguousRate(err error) bool {
	var target *AmbiguousRateError
	return errors.As(err, &target)
}
