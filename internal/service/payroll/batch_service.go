package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/domain/employee"
	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
	"github.com/gajihub/attendance-engine-go/internal/domain/schedule"
	"github.com/gajihub/attendance-engine-go/internal/pkg/clock"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/gajihub/attendance-engine-go/internal/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Error kinds stamped on lines that could not be computed.
const (
	errorKindMissingSchedule = "missing_schedule"
	errorKindAmbiguousRate   = "ambiguous_rate"
	errorKindSummaryFailed   = "summary_failed"
)

// SummaryBuilder recomputes one employee's attendance summary for a
// period. Satisfied by the attendance service.
type SummaryBuilder interface {
	BuildSummary(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error)
}

// BatchService runs payroll: it generates batches of per-employee pay
// lines from attendance summaries and drives the batch approval state
// machine. A failing employee becomes an error line, never a failed
// batch; error lines block submission until resolved by regeneration.
type BatchService struct {
	runTx         func(ctx context.Context, fn func(tx pgx.Tx) error) error
	batchRepo     payroll.BatchRepository
	lineRepo      payroll.LineRepository
	settingsRepo  payroll.SettingsRepository
	componentRepo payroll.ComponentRepository
	employeeRepo  employee.EmployeeRepository
	rateTable     *RateTable
	summaries     SummaryBuilder
	calculator    Calculator
	clock         clock.Clock
	workers       int
	logger        *slog.Logger
}

func NewBatchService(
	db *database.DB,
	batchRepo payroll.BatchRepository,
	lineRepo payroll.LineRepository,
	settingsRepo payroll.SettingsRepository,
	componentRepo payroll.ComponentRepository,
	employeeRepo employee.EmployeeRepository,
	rateTable *RateTable,
	summaries SummaryBuilder,
	workers int,
	logger *slog.Logger,
) *BatchService {
	if workers < 1 {
		workers = 1
	}
	return &BatchService{
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return database.WithTransaction(ctx, db, fn)
		},
		batchRepo:     batchRepo,
		lineRepo:      lineRepo,
		settingsRepo:  settingsRepo,
		componentRepo: componentRepo,
		employeeRepo:  employeeRepo,
		rateTable:     rateTable,
		summaries:     summaries,
		clock:         clock.System(),
		workers:       workers,
		logger:        logger,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *BatchService) WithClock(clk clock.Clock) *BatchService {
	s.clock = clk
	return s
}

// Generate creates a draft batch for the period and computes its lines.
func (s *BatchService) Generate(ctx context.Context, req payroll.GenerateBatchRequest) (payroll.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResponse{}, err
	}
	start, end := req.Period()

	batch, err := s.batchRepo.Create(ctx, payroll.Batch{
		PeriodStart: start,
		PeriodEnd:   end,
		PeriodType:  req.PeriodType,
		Status:      payroll.BatchStatusDraft,
		TotalAmount: decimal.Zero,
	})
	if err != nil {
		return payroll.BatchResponse{}, fmt.Errorf("failed to create batch: %w", err)
	}

	lines, err := s.computeLines(ctx, batch, req.EmployeeIDs)
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	if err := s.storeLines(ctx, &batch, lines); err != nil {
		return payroll.BatchResponse{}, err
	}

	return payroll.ToBatchResponse(batch, lines), nil
}

// Regenerate recomputes every line of a draft batch from current
// source records. Frozen batches are refused.
func (s *BatchService) Regenerate(ctx context.Context, batchID string) (payroll.BatchResponse, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if batch.Status != payroll.BatchStatusDraft {
		return payroll.BatchResponse{}, payroll.ErrBatchNotMutable
	}

	lines, err := s.computeLines(ctx, batch, nil)
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	if err := s.storeLines(ctx, &batch, lines); err != nil {
		return payroll.BatchResponse{}, err
	}

	return payroll.ToBatchResponse(batch, lines), nil
}

// computeLines builds one line per employee, fanning out across a
// bounded worker pool. Per-employee failures become error lines.
func (s *BatchService) computeLines(ctx context.Context, batch payroll.Batch, employeeIDs []string) ([]payroll.Line, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll settings: %w", err)
	}
	components, err := s.componentRepo.GetValidOn(ctx, batch.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixed components: %w", err)
	}

	var employees []employee.Employee
	if len(employeeIDs) > 0 {
		employees, err = s.employeeRepo.GetByIDs(ctx, employeeIDs)
	} else {
		employees, err = s.employeeRepo.GetActive(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	lines := make([]payroll.Line, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			lines[i] = s.computeLine(gctx, batch, emp, settings, components)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].EmployeeID < lines[j].EmployeeID })
	return lines, nil
}

func (s *BatchService) computeLine(
	ctx context.Context,
	batch payroll.Batch,
	emp employee.Employee,
	settings payroll.Settings,
	components []payroll.FixedComponent,
) payroll.Line {
	errorLine := func(kind string, err error) payroll.Line {
		s.logger.WarnContext(ctx, "payroll line failed",
			slog.String("batch_id", batch.ID),
			slog.String("employee_id", emp.ID),
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		metrics.PayrollLinesGenerated.WithLabelValues("error").Inc()
		return payroll.Line{
			BatchID:    batch.ID,
			EmployeeID: emp.ID,
			Status:     payroll.LineStatusError,
			ErrorKind:  &kind,
			Total:      decimal.Zero,
		}
	}

	summary, err := s.summaries.BuildSummary(ctx, emp.ID, batch.PeriodStart, batch.PeriodEnd)
	if err != nil {
		if schedule.IsMissingSchedule(err) {
			return errorLine(errorKindMissingSchedule, err)
		}
		return errorLine(errorKindSummaryFailed, err)
	}

	rate, err := s.rateTable.Resolve(ctx, emp, batch.PeriodEnd)
	if err != nil {
		if payroll.IsAmbiguousRate(err) {
			return errorLine(errorKindAmbiguousRate, err)
		}
		return errorLine(errorKindSummaryFailed, err)
	}

	line := s.calculator.ComputeLine(summary, rate, settings, components)
	line.BatchID = batch.ID
	metrics.PayrollLinesGenerated.WithLabelValues("computed").Inc()
	return line
}

// storeLines replaces the batch's lines and its totals atomically.
// Totals count computed lines only; error lines carry no amount.
func (s *BatchService) storeLines(ctx context.Context, batch *payroll.Batch, lines []payroll.Line) error {
	total := decimal.Zero
	for _, l := range lines {
		if l.Status == payroll.LineStatusComputed {
			total = total.Add(l.Total)
		}
	}
	batch.TotalAmount = total.Round(2)
	batch.TotalEmployees = len(lines)

	return s.runTx(ctx, func(tx pgx.Tx) error {
		if err := s.lineRepo.ReplaceForBatch(ctx, tx, batch.ID, lines); err != nil {
			return fmt.Errorf("failed to replace batch lines: %w", err)
		}
		if err := s.batchRepo.UpdateTotals(ctx, tx, batch.ID, *batch); err != nil {
			return fmt.Errorf("failed to update batch totals: %w", err)
		}
		return nil
	})
}

// Submit moves a draft batch into review. Refused while any line is
// still in error; those periods must be regenerated first.
func (s *BatchService) Submit(ctx context.Context, batchID, actorID string) (payroll.BatchResponse, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if err := batch.Status.Transition(payroll.BatchStatusSubmitted); err != nil {
		return payroll.BatchResponse{}, err
	}

	errored, err := s.lineRepo.CountErrorLines(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, fmt.Errorf("failed to count error lines: %w", err)
	}
	if errored > 0 {
		return payroll.BatchResponse{}, payroll.ErrBatchHasErrorLines
	}

	now := s.clock.Now()
	batch.SubmittedAt = &now
	batch.SubmittedBy = &actorID
	return s.transition(ctx, batch, payroll.BatchStatusSubmitted, actorID)
}

// Approve moves a submitted batch to approved.
func (s *BatchService) Approve(ctx context.Context, batchID, actorID string) (payroll.BatchResponse, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if err := batch.Status.Transition(payroll.BatchStatusApproved); err != nil {
		return payroll.BatchResponse{}, err
	}

	now := s.clock.Now()
	batch.ApprovedAt = &now
	batch.ApprovedBy = &actorID
	return s.transition(ctx, batch, payroll.BatchStatusApproved, actorID)
}

// Reject sends a submitted batch back. It must be reopened to draft
// before its lines can change.
func (s *BatchService) Reject(ctx context.Context, batchID, actorID string) (payroll.BatchResponse, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if err := batch.Status.Transition(payroll.BatchStatusRejected); err != nil {
		return payroll.BatchResponse{}, err
	}

	now := s.clock.Now()
	batch.RejectedAt = &now
	batch.RejectedBy = &actorID
	return s.transition(ctx, batch, payroll.BatchStatusRejected, actorID)
}

// Reopen returns a rejected batch to draft for rework.
func (s *BatchService) Reopen(ctx context.Context, batchID, actorID string) (payroll.BatchResponse, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if err := batch.Status.Transition(payroll.BatchStatusDraft); err != nil {
		return payroll.BatchResponse{}, err
	}
	return s.transition(ctx, batch, payroll.BatchStatusDraft, actorID)
}

// MarkPaid finalizes an approved batch. Paid is terminal.
func (s *BatchService) MarkPaid(ctx context.Context, batchID, actorID string) (payroll.BatchResponse, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if err := batch.Status.Transition(payroll.BatchStatusPaid); err != nil {
		return payroll.BatchResponse{}, err
	}

	now := s.clock.Now()
	batch.PaidAt = &now
	batch.PaidBy = &actorID
	return s.transition(ctx, batch, payroll.BatchStatusPaid, actorID)
}

func (s *BatchService) transition(ctx context.Context, batch payroll.Batch, to payroll.BatchStatus, actorID string) (payroll.BatchResponse, error) {
	event := payroll.Event{
		BatchID:   batch.ID,
		From:      batch.Status,
		To:        to,
		ActorID:   actorID,
		CreatedAt: s.clock.Now(),
	}
	batch.Status = to

	err := s.runTx(ctx, func(tx pgx.Tx) error {
		return s.batchRepo.UpdateStatus(ctx, tx, batch, event)
	})
	if err != nil {
		return payroll.BatchResponse{}, fmt.Errorf("failed to transition batch: %w", err)
	}

	metrics.BatchTransitions.WithLabelValues(string(to)).Inc()
	s.logger.InfoContext(ctx, "payroll batch transitioned",
		slog.String("batch_id", batch.ID),
		slog.String("from", string(event.From)),
		slog.String("to", string(to)),
		slog.String("actor_id", actorID),
	)

	lines, err := s.lineRepo.ListByBatch(ctx, batch.ID)
	if err != nil {
		return payroll.BatchResponse{}, fmt.Errorf("failed to list batch lines: %w", err)
	}
	return payroll.ToBatchResponse(batch, lines), nil
}

// Correct applies a manual adjustment to one line and recomputes the
// line and batch totals. Allowed while the batch is draft or submitted.
func (s *BatchService) Correct(ctx context.Context, req payroll.CorrectionRequest) (payroll.LineResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.LineResponse{}, err
	}

	line, err := s.lineRepo.GetByID(ctx, req.LineID)
	if err != nil {
		return payroll.LineResponse{}, err
	}

	batch, err := s.batchRepo.GetByID(ctx, line.BatchID)
	if err != nil {
		return payroll.LineResponse{}, err
	}
	if !batch.Status.Mutable() {
		return payroll.LineResponse{}, payroll.ErrCorrectionNotAllowed
	}

	previous := line.Total
	line.Correction = req.Amount
	line.CorrectionReason = &req.Reason
	line.Total = line.ComputeTotal()

	batch.TotalAmount = batch.TotalAmount.Sub(previous).Add(line.Total).Round(2)

	err = s.runTx(ctx, func(tx pgx.Tx) error {
		if err := s.lineRepo.UpdateCorrection(ctx, tx, line); err != nil {
			return fmt.Errorf("failed to update correction: %w", err)
		}
		if err := s.batchRepo.UpdateTotals(ctx, tx, batch.ID, batch); err != nil {
			return fmt.Errorf("failed to update batch totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.LineResponse{}, err
	}

	return payroll.ToLineResponse(line), nil
}

// Delete removes a draft batch and its lines.
func (s *BatchService) Delete(ctx context.Context, batchID string) error {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return err
	}
	if !batch.Status.Deletable() {
		return payroll.ErrBatchNotDeletable
	}
	if err := s.batchRepo.Delete(ctx, batchID); err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	return nil
}

// Get returns one batch with its lines.
func (s *BatchService) Get(ctx context.Context, batchID string) (payroll.BatchResponse, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	lines, err := s.lineRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, fmt.Errorf("failed to list batch lines: %w", err)
	}
	return payroll.ToBatchResponse(batch, lines), nil
}

// List returns batches, optionally filtered by status.
func (s *BatchService) List(ctx context.Context, status *payroll.BatchStatus) ([]payroll.BatchResponse, error) {
	batches, err := s.batchRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	out := make([]payroll.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, payroll.ToBatchResponse(b, nil))
	}
	return out, nil
}

// ListEvents returns the lifecycle trail of one batch.
func (s *BatchService) ListEvents(ctx context.Context, batchID string) ([]payroll.EventResponse, error) {
	if _, err := s.batchRepo.GetByID(ctx, batchID); err != nil {
		return nil, err
	}
	events, err := s.batchRepo.ListEvents(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch events: %w", err)
	}
	out := make([]payroll.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, payroll.ToEventResponse(e))
	}
	return out, nil
}
