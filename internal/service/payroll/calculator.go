package payroll

import (
	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Calculator turns a resolved attendance summary and a wage rule into
// a payroll line. It is pure arithmetic: all inputs are loaded by the
// batch generator, so the same inputs always produce the same line.
type Calculator struct{}

// ComputeLine builds the pay breakdown for one employee.
//
// Base pay covers the scheduled hours of paid days only; lateness is
// penalized per completed block of configured minutes, not per minute;
// percentage components apply to base pay, never to gross.
func (Calculator) ComputeLine(
	summary attendance.Summary,
	rate payroll.RateEntry,
	settings payroll.Settings,
	components []payroll.FixedComponent,
) payroll.Line {
	base := summary.PaidScheduledHours.Mul(rate.HourlyRate).Round(2)
	overtime := summary.TotalOvertimeHours.Mul(settings.OvertimeHourlyRate).Round(2)

	allowances := decimal.Zero
	deductions := decimal.Zero
	for _, c := range components {
		amount := c.Amount
		if c.Kind == payroll.KindPercentOfBase {
			amount = base.Mul(c.Amount).Div(oneHundred)
		}
		amount = amount.Round(2)
		switch c.Category {
		case payroll.CategoryAllowance:
			allowances = allowances.Add(amount)
		case payroll.CategoryDeduction:
			deductions = deductions.Add(amount)
		}
	}

	lateness := decimal.Zero
	if settings.LatePenaltyBlockMinutes > 0 && summary.TotalLatenessMinutes > 0 {
		blocks := int64(summary.TotalLatenessMinutes / settings.LatePenaltyBlockMinutes)
		lateness = settings.LatePenaltyAmount.Mul(decimal.NewFromInt(blocks)).Round(2)
	}

	line := payroll.Line{
		EmployeeID:        summary.EmployeeID,
		BasePay:           base,
		Allowances:        allowances.Round(2),
		Deductions:        deductions.Round(2),
		OvertimePay:       overtime,
		LatenessDeduction: lateness,
		Correction:        decimal.Zero,
		Status:            payroll.LineStatusComputed,
	}
	line.Total = line.ComputeTotal()
	return line
}
