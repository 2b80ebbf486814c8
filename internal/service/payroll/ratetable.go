package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/employee"
	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
)

// RateTable resolves the hourly wage rule for an employee on a date.
// Resolution is deterministic: a candidate bound to the employee's work
// unit beats a position-wide one; among equals the latest valid_from
// wins. Anything still ambiguous, or nothing at all, is an error the
// caller must surface, never a silent default.
type RateTable struct {
	rateRepo payroll.RateRepository
}

func NewRateTable(rateRepo payroll.RateRepository) *RateTable {
	return &RateTable{rateRepo: rateRepo}
}

// Resolve picks the rate entry governing emp's wage as of the date.
func (t *RateTable) Resolve(ctx context.Context, emp employee.Employee, asOf time.Time) (payroll.RateEntry, error) {
	candidates, err := t.rateRepo.GetCandidates(ctx, emp.PositionID, emp.SeniorityTier, asOf)
	if err != nil {
		return payroll.RateEntry{}, fmt.Errorf("failed to load rate candidates: %w", err)
	}

	matched := make([]payroll.RateEntry, 0, len(candidates))
	for _, c := range candidates {
		if !c.ContainsDate(asOf) {
			continue
		}
		// A work-unit-bound entry only applies to employees in that unit.
		if c.WorkUnitID != nil {
			if emp.WorkUnitID == nil || *c.WorkUnitID != *emp.WorkUnitID {
				continue
			}
		}
		matched = append(matched, c)
	}

	if len(matched) == 0 {
		return payroll.RateEntry{}, &payroll.AmbiguousRateError{
			PositionID:    emp.PositionID,
			WorkUnitID:    emp.WorkUnitID,
			SeniorityTier: emp.SeniorityTier,
			AsOf:          asOf,
		}
	}

	best := matched[0]
	tied := 1
	for _, c := range matched[1:] {
		switch {
		case c.Specificity() > best.Specificity():
			best, tied = c, 1
		case c.Specificity() < best.Specificity():
		case c.ValidFrom.After(best.ValidFrom):
			best, tied = c, 1
		case c.ValidFrom.Equal(best.ValidFrom):
			tied++
		}
	}

	if tied > 1 {
		return payroll.RateEntry{}, &payroll.AmbiguousRateError{
			PositionID:    emp.PositionID,
			WorkUnitID:    emp.WorkUnitID,
			SeniorityTier: emp.SeniorityTier,
			AsOf:          asOf,
			Candidates:    tied,
		}
	}

	return best, nil
}
