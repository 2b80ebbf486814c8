package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds the engine-wide payroll configuration: the overtime
// rate, the lateness penalty rule, and the default annual leave grant
// used by the yearly quota job.
type Settings struct {
	ID                      string
	OvertimeHourlyRate      decimal.Decimal
	LatePenaltyAmount       decimal.Decimal
	LatePenaltyBlockMinutes int
	DefaultAnnualLeaveDays  int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// RateEntry is one base-wage rule. Multiple entries may exist for the
// same position; the RateTable picks the winner by specificity and
// latest valid_from (see ratetable).
type RateEntry struct {
	ID            string
	PositionID    string
	WorkUnitID    *string
	SeniorityTier string
	HourlyRate    decimal.Decimal
	ValidFrom     time.Time
	ValidTo       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContainsDate reports whether the entry's validity window [from, to)
// contains the date.
func (r RateEntry) ContainsDate(date time.Time) bool {
	if date.Before(r.ValidFrom) {
		return false
	}
	return r.ValidTo == nil || date.Before(*r.ValidTo)
}

// Specificity ranks how narrowly the entry is keyed. A work-unit bound
// entry beats a position+seniority-only one.
func (r RateEntry) Specificity() int {
	if r.WorkUnitID != nil {
		return 2
	}
	return 1
}

// ComponentCategory enum
type ComponentCategory string

const (
	CategoryAllowance ComponentCategory = "allowance"
	CategoryDeduction ComponentCategory = "deduction"
)

// ComponentKind enum
type ComponentKind string

const (
	KindFlat          ComponentKind = "flat"
	KindPercentOfBase ComponentKind = "percent_of_base"
)

// FixedComponent is a recurring allowance or deduction. Percentage
// components are computed off base pay, never off gross.
type FixedComponent struct {
	ID        string
	Name      string
	Category  ComponentCategory
	Kind      ComponentKind
	Amount    decimal.Decimal
	ValidFrom time.Time
	ValidTo   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContainsDate reports whether the component is valid on the date,
// using the same [from, to) window rule as RateEntry.
func (c FixedComponent) ContainsDate(date time.Time) bool {
	if date.Before(c.ValidFrom) {
		return false
	}
	return c.ValidTo == nil || date.Before(*c.ValidTo)
}

// LineStatus enum
type LineStatus string

const (
	LineStatusComputed LineStatus = "computed"
	LineStatusError    LineStatus = "error"
)

// Line is one employee's computed pay within a batch. Correction is the
// only mutable field after generation, and only while the batch is
// Draft or Submitted.
type Line struct {
	ID         string
	BatchID    string
	EmployeeID string

	BasePay           decimal.Decimal
	Allowances        decimal.Decimal
	Deductions        decimal.Decimal
	OvertimePay       decimal.Decimal
	LatenessDeduction decimal.Decimal
	Correction        decimal.Decimal
	CorrectionReason  *string
	Total             decimal.Decimal

	Status    LineStatus
	ErrorKind *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// ComputeTotal derives the line total from its parts.
func (l Line) ComputeTotal() decimal.Decimal {
	return l.BasePay.
		Add(l.Allowances).
		Add(l.OvertimePay).
		Sub(l.Deductions).
		Sub(l.LatenessDeduction).
		Add(l.Correction).
		Round(2)
}

// Batch is a payroll run for one period, governed by the approval
// state machine in batch.go.
type Batch struct {
	ID          string
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodType  string

	Status         BatchStatus
	TotalAmount    decimal.Decimal
	TotalEmployees int

	SubmittedAt *time.Time
	SubmittedBy *string
	ApprovedAt  *time.Time
	ApprovedBy  *string
	RejectedAt  *time.Time
	RejectedBy  *string
	PaidAt      *time.Time
	PaidBy      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Event records one batch lifecycle transition for downstream
// consumers (finance, notification).
type Event struct {
	ID        string
	BatchID   string
	From      BatchStatus
	To        BatchStatus
	ActorID   string
	CreatedAt time.Time
}
