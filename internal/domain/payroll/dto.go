package payroll

import (
	"time"

	"github.com/gajihub/attendance-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRateEntryRequest struct {
	PositionID    string          `json:"position_id"`
	WorkUnitID    *string         `json:"work_unit_id,omitempty"`
	SeniorityTier string          `json:"seniority_tier"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	ValidFrom     string          `json:"valid_from"`
	ValidTo       *string         `json:"valid_to,omitempty"`
}

func (r CreateRateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PositionID) {
		errs = append(errs, validator.ValidationError{Field: "position_id", Message: "position_id is required"})
	}
	if validator.IsEmpty(r.SeniorityTier) {
		errs = append(errs, validator.ValidationError{Field: "seniority_tier", Message: "seniority_tier is required"})
	}
	if r.HourlyRate.IsNegative() || r.HourlyRate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be positive"})
	}
	from, okFrom := validator.IsValidDate(r.ValidFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "valid_from", Message: "must be a YYYY-MM-DD date"})
	}
	if r.ValidTo != nil {
		to, okTo := validator.IsValidDate(*r.ValidTo)
		if !okTo {
			errs = append(errs, validator.ValidationError{Field: "valid_to", Message: "must be a YYYY-MM-DD date"})
		} else if okFrom && !to.After(from) {
			errs = append(errs, validator.ValidationError{Field: "valid_to", Message: "must be after valid_from"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window returns the parsed validity window. Validate must have passed.
func (r CreateRateEntryRequest) Window() (time.Time, *time.Time) {
	from, _ := validator.IsValidDate(r.ValidFrom)
	if r.ValidTo == nil {
		return from, nil
	}
	to, _ := validator.IsValidDate(*r.ValidTo)
	return from, &to
}

type CreateComponentRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	ValidFrom string          `json:"valid_from"`
	ValidTo   *string         `json:"valid_to,omitempty"`
}

func (r CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if c := ComponentCategory(r.Category); c != CategoryAllowance && c != CategoryDeduction {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be allowance or deduction"})
	}
	if k := ComponentKind(r.Kind); k != KindFlat && k != KindPercentOfBase {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be flat or percent_of_base"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must not be negative"})
	}
	if _, ok := validator.IsValidDate(r.ValidFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "valid_from", Message: "must be a YYYY-MM-DD date"})
	}
	if r.ValidTo != nil {
		if _, ok := validator.IsValidDate(*r.ValidTo); !ok {
			errs = append(errs, validator.ValidationError{Field: "valid_to", Message: "must be a YYYY-MM-DD date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window returns the parsed validity window. Validate must have passed.
func (r CreateComponentRequest) Window() (time.Time, *time.Time) {
	from, _ := validator.IsValidDate(r.ValidFrom)
	if r.ValidTo == nil {
		return from, nil
	}
	to, _ := validator.IsValidDate(*r.ValidTo)
	return from, &to
}

type UpdateSettingsRequest struct {
	OvertimeHourlyRate      decimal.Decimal `json:"overtime_hourly_rate"`
	LatePenaltyAmount       decimal.Decimal `json:"late_penalty_amount"`
	LatePenaltyBlockMinutes int             `json:"late_penalty_block_minutes"`
	DefaultAnnualLeaveDays  int             `json:"default_annual_leave_days"`
}

func (r UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OvertimeHourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hourly_rate", Message: "must not be negative"})
	}
	if r.LatePenaltyAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "late_penalty_amount", Message: "must not be negative"})
	}
	if r.LatePenaltyBlockMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_penalty_block_minutes", Message: "must not be negative"})
	}
	if r.DefaultAnnualLeaveDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "default_annual_leave_days", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	OvertimeHourlyRate      decimal.Decimal `json:"overtime_hourly_rate"`
	LatePenaltyAmount       decimal.Decimal `json:"late_penalty_amount"`
	LatePenaltyBlockMinutes int             `json:"late_penalty_block_minutes"`
	DefaultAnnualLeaveDays  int             `json:"default_annual_leave_days"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

func ToSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		OvertimeHourlyRate:      s.OvertimeHourlyRate,
		LatePenaltyAmount:       s.LatePenaltyAmount,
		LatePenaltyBlockMinutes: s.LatePenaltyBlockMinutes,
		DefaultAnnualLeaveDays:  s.DefaultAnnualLeaveDays,
		UpdatedAt:               s.UpdatedAt,
	}
}

type RateEntryResponse struct {
	ID            string          `json:"id"`
	PositionID    string          `json:"position_id"`
	WorkUnitID    *string         `json:"work_unit_id,omitempty"`
	SeniorityTier string          `json:"seniority_tier"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	ValidFrom     string          `json:"valid_from"`
	ValidTo       *string         `json:"valid_to,omitempty"`
}

func ToRateEntryResponse(e RateEntry) RateEntryResponse {
	resp := RateEntryResponse{
		ID:            e.ID,
		PositionID:    e.PositionID,
		WorkUnitID:    e.WorkUnitID,
		SeniorityTier: e.SeniorityTier,
		HourlyRate:    e.HourlyRate,
		ValidFrom:     e.ValidFrom.Format("2006-01-02"),
	}
	if e.ValidTo != nil {
		to := e.ValidTo.Format("2006-01-02")
		resp.ValidTo = &to
	}
	return resp
}

type ComponentResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	ValidFrom string          `json:"valid_from"`
	ValidTo   *string         `json:"valid_to,omitempty"`
}

func ToComponentResponse(c FixedComponent) ComponentResponse {
	resp := ComponentResponse{
		ID:        c.ID,
		Name:      c.Name,
		Category:  string(c.Category),
		Kind:      string(c.Kind),
		Amount:    c.Amount,
		ValidFrom: c.ValidFrom.Format("2006-01-02"),
	}
	if c.ValidTo != nil {
		to := c.ValidTo.Format("2006-01-02")
		resp.ValidTo = &to
	}
	return resp
}

type GenerateBatchRequest struct {
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	PeriodType  string   `json:"period_type"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r GenerateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a YYYY-MM-DD date"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a YYYY-MM-DD date"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}
	if r.PeriodType != "monthly" && r.PeriodType != "weekly" && r.PeriodType != "custom" {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "must be monthly, weekly, or custom"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the parsed range. Validate must have passed.
func (r GenerateBatchRequest) Period() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.PeriodStart)
	end, _ := validator.IsValidDate(r.PeriodEnd)
	return start, end
}

type CorrectionRequest struct {
	LineID string          `json:"line_id"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

func (r CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.LineID) {
		errs = append(errs, validator.ValidationError{Field: "line_id", Message: "line_id is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "a correction reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LineResponse struct {
	ID                string          `json:"id"`
	BatchID           string          `json:"batch_id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      *string         `json:"employee_name,omitempty"`
	BasePay           decimal.Decimal `json:"base_pay"`
	Allowances        decimal.Decimal `json:"allowances"`
	Deductions        decimal.Decimal `json:"deductions"`
	OvertimePay       decimal.Decimal `json:"overtime_pay"`
	LatenessDeduction decimal.Decimal `json:"lateness_deduction"`
	Correction        decimal.Decimal `json:"correction"`
	CorrectionReason  *string         `json:"correction_reason,omitempty"`
	Total             decimal.Decimal `json:"total"`
	Status            string          `json:"status"`
	ErrorKind         *string         `json:"error_kind,omitempty"`
}

type BatchResponse struct {
	ID             string          `json:"id"`
	PeriodStart    string          `json:"period_start"`
	PeriodEnd      string          `json:"period_end"`
	PeriodType     string          `json:"period_type"`
	Status         string          `json:"status"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalEmployees int             `json:"total_employees"`
	SubmittedAt    *string         `json:"submitted_at,omitempty"`
	ApprovedAt     *string         `json:"approved_at,omitempty"`
	PaidAt         *string         `json:"paid_at,omitempty"`
	Lines          []LineResponse  `json:"lines,omitempty"`
}

type EventResponse struct {
	ID        string `json:"id"`
	BatchID   string `json:"batch_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	ActorID   string `json:"actor_id"`
	CreatedAt string `json:"created_at"`
}

func ToLineResponse(l Line) LineResponse {
	return LineResponse{
		ID:                l.ID,
		BatchID:           l.BatchID,
		EmployeeID:        l.EmployeeID,
		EmployeeName:      l.EmployeeName,
		BasePay:           l.BasePay,
		Allowances:        l.Allowances,
		Deductions:        l.Deductions,
		OvertimePay:       l.OvertimePay,
		LatenessDeduction: l.LatenessDeduction,
		Correction:        l.Correction,
		CorrectionReason:  l.CorrectionReason,
		Total:             l.Total,
		Status:            string(l.Status),
		ErrorKind:         l.ErrorKind,
	}
}

func ToBatchResponse(b Batch, lines []Line) BatchResponse {
	resp := BatchResponse{
		ID:             b.ID,
		PeriodStart:    b.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      b.PeriodEnd.Format("2006-01-02"),
		PeriodType:     b.PeriodType,
		Status:         string(b.Status),
		TotalAmount:    b.TotalAmount,
		TotalEmployees: b.TotalEmployees,
		SubmittedAt:    timePtrToString(b.SubmittedAt),
		ApprovedAt:     timePtrToString(b.ApprovedAt),
		PaidAt:         timePtrToString(b.PaidAt),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, ToLineResponse(l))
	}
	return resp
}

func ToEventResponse(e Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		BatchID:   e.BatchID,
		From:      string(e.From),
		To:        string(e.To),
		ActorID:   e.ActorID,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
