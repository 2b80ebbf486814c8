package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/attendance"
	"github.com/gajihub/attendance-engine-go/internal/domain/employee"
	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
	"github.com/gajihub/attendance-engine-go/internal/domain/schedule"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	settings payroll.Settings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (payroll.Settings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, settings payroll.Settings) (payroll.Settings, error) {
	f.settings = settings
	return settings, nil
}

type fakeComponentRepo struct {
	components []payroll.FixedComponent
}

func (f *fakeComponentRepo) Create(_ context.Context, c payroll.FixedComponent) (payroll.FixedComponent, error) {
	c.ID = uuid.NewString()
	f.components = append(f.components, c)
	return c, nil
}

func (f *fakeComponentRepo) List(_ context.Context) ([]payroll.FixedComponent, error) {
	return f.components, nil
}

func (f *fakeComponentRepo) GetValidOn(_ context.Context, date time.Time) ([]payroll.FixedComponent, error) {
	var out []payroll.FixedComponent
	for _, c := range f.components {
		if c.ContainsDate(date) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComponentRepo) Delete(_ context.Context, id string) error {
	for i := range f.components {
		if f.components[i].ID == id {
			f.components = append(f.components[:i], f.components[i+1:]...)
			return nil
		}
	}
	return payroll.ErrComponentNotFound
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []employee.Employee
	for _, e := range f.employees {
		if want[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeBatchRepo struct {
	batches []payroll.Batch
	events  []payroll.Event
}

func (f *fakeBatchRepo) Create(_ context.Context, b payroll.Batch) (payroll.Batch, error) {
	b.ID = uuid.NewString()
	f.batches = append(f.batches, b)
	return b, nil
}

func (f *fakeBatchRepo) GetByID(_ context.Context, id string) (payroll.Batch, error) {
	for _, b := range f.batches {
		if b.ID == id {
			return b, nil
		}
	}
	return payroll.Batch{}, payroll.ErrBatchNotFound
}

func (f *fakeBatchRepo) List(_ context.Context, status *payroll.BatchStatus) ([]payroll.Batch, error) {
	var out []payroll.Batch
	for _, b := range f.batches {
		if status == nil || b.Status == *status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBatchRepo) UpdateStatus(_ context.Context, _ pgx.Tx, batch payroll.Batch, event payroll.Event) error {
	for i := range f.batches {
		if f.batches[i].ID == batch.ID {
			f.batches[i] = batch
			f.events = append(f.events, event)
			return nil
		}
	}
	return payroll.ErrBatchNotFound
}

func (f *fakeBatchRepo) UpdateTotals(_ context.Context, _ pgx.Tx, batchID string, total payroll.Batch) error {
	for i := range f.batches {
		if f.batches[i].ID == batchID {
			f.batches[i].TotalAmount = total.TotalAmount
			f.batches[i].TotalEmployees = total.TotalEmployees
			return nil
		}
	}
	return payroll.ErrBatchNotFound
}

func (f *fakeBatchRepo) Delete(_ context.Context, id string) error {
	for i := range f.batches {
		if f.batches[i].ID == id {
			f.batches = append(f.batches[:i], f.batches[i+1:]...)
			return nil
		}
	}
	return payroll.ErrBatchNotFound
}

func (f *fakeBatchRepo) ListEvents(_ context.Context, batchID string) ([]payroll.Event, error) {
	var out []payroll.Event
	for _, e := range f.events {
		if e.BatchID == batchID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeLineRepo struct {
	lines []payroll.Line
}

func (f *fakeLineRepo) GetByID(_ context.Context, id string) (payroll.Line, error) {
	for _, l := range f.lines {
		if l.ID == id {
			return l, nil
		}
	}
	return payroll.Line{}, payroll.ErrLineNotFound
}

func (f *fakeLineRepo) ListByBatch(_ context.Context, batchID string) ([]payroll.Line, error) {
	var out []payroll.Line
	for _, l := range f.lines {
		if l.BatchID == batchID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLineRepo) ReplaceForBatch(_ context.Context, _ pgx.Tx, batchID string, lines []payroll.Line) error {
	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.BatchID != batchID {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	for _, l := range lines {
		l.ID = uuid.NewString()
		f.lines = append(f.lines, l)
	}
	return nil
}

func (f *fakeLineRepo) UpdateCorrection(_ context.Context, _ pgx.Tx, line payroll.Line) error {
	for i := range f.lines {
		if f.lines[i].ID == line.ID {
			f.lines[i] = line
			return nil
		}
	}
	return payroll.ErrLineNotFound
}

func (f *fakeLineRepo) CountErrorLines(_ context.Context, batchID string) (int, error) {
	n := 0
	for _, l := range f.lines {
		if l.BatchID == batchID && l.Status == payroll.LineStatusError {
			n++
		}
	}
	return n, nil
}

// fakeSummaries returns canned summaries and per-employee failures.
type fakeSummaries struct {
	summaries map[string]attendance.Summary
	failures  map[string]error
}

func (f *fakeSummaries) BuildSummary(_ context.Context, employeeID string, start, end time.Time) (attendance.Summary, error) {
	if err, ok := f.failures[employeeID]; ok {
		return attendance.Summary{}, err
	}
	s, ok := f.summaries[employeeID]
	if !ok {
		s = attendance.Summary{EmployeeID: employeeID}
	}
	s.EmployeeID = employeeID
	s.StartDate = start
	s.EndDate = end
	return s, nil
}

type batchFixture struct {
	svc       *BatchService
	batchRepo *fakeBatchRepo
	lineRepo  *fakeLineRepo
	summaries *fakeSummaries
	employees *fakeEmployeeRepo
	rates     *fakeRateRepo
}

func newBatchFixture() *batchFixture {
	batchRepo := &fakeBatchRepo{}
	lineRepo := &fakeLineRepo{}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-001", PositionID: "pos-cashier", SeniorityTier: "senior", Active: true},
		{ID: "emp-002", PositionID: "pos-cashier", SeniorityTier: "senior", Active: true},
	}}
	rates := &fakeRateRepo{entries: []payroll.RateEntry{{
		ID:            uuid.NewString(),
		PositionID:    "pos-cashier",
		SeniorityTier: "senior",
		HourlyRate:    decimal.NewFromInt(50000),
		ValidFrom:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}}}
	summaries := &fakeSummaries{
		summaries: map[string]attendance.Summary{},
		failures:  map[string]error{},
	}

	svc := NewBatchService(
		nil,
		batchRepo,
		lineRepo,
		&fakeSettingsRepo{settings: payroll.Settings{
			OvertimeHourlyRate:      decimal.NewFromInt(75000),
			LatePenaltyAmount:       decimal.NewFromInt(25000),
			LatePenaltyBlockMinutes: 30,
		}},
		&fakeComponentRepo{},
		employees,
		NewRateTable(rates),
		summaries,
		4,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	// The fakes ignore the transaction handle, so run the body directly.
	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}

	return &batchFixture{
		svc:       svc,
		batchRepo: batchRepo,
		lineRepo:  lineRepo,
		summaries: summaries,
		employees: employees,
		rates:     rates,
	}
}

func testPeriod() (time.Time, time.Time) {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
}

func TestComputeLinesAllEmployees(t *testing.T) {
	fx := newBatchFixture()
	start, end := testPeriod()

	fx.summaries.summaries["emp-001"] = attendance.Summary{PaidScheduledHours: decimal.NewFromInt(20)}
	fx.summaries.summaries["emp-002"] = attendance.Summary{PaidScheduledHours: decimal.NewFromInt(30)}

	lines, err := fx.svc.computeLines(context.Background(), payroll.Batch{
		ID: "batch-1", PeriodStart: start, PeriodEnd: end,
	}, nil)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// Sorted by employee id regardless of worker completion order.
	require.Equal(t, "emp-001", lines[0].EmployeeID)
	require.Equal(t, "emp-002", lines[1].EmployeeID)
	require.True(t, lines[0].Total.Equal(decimal.NewFromInt(1000000)), "emp-001 total = %s", lines[0].Total)
	require.True(t, lines[1].Total.Equal(decimal.NewFromInt(1500000)), "emp-002 total = %s", lines[1].Total)
	require.Equal(t, payroll.LineStatusComputed, lines[0].Status)
}

func TestComputeLinesMissingScheduleBecomesErrorLine(t *testing.T) {
	fx := newBatchFixture()
	start, end := testPeriod()

	fx.summaries.summaries["emp-001"] = attendance.Summary{PaidScheduledHours: decimal.NewFromInt(20)}
	fx.summaries.failures["emp-002"] = &schedule.MissingScheduleError{
		EmployeeID: "emp-002",
		Date:       start.AddDate(0, 0, 3),
	}

	lines, err := fx.svc.computeLines(context.Background(), payroll.Batch{
		ID: "batch-1", PeriodStart: start, PeriodEnd: end,
	}, nil)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.Equal(t, payroll.LineStatusComputed, lines[0].Status)
	require.Equal(t, payroll.LineStatusError, lines[1].Status)
	require.NotNil(t, lines[1].ErrorKind)
	require.Equal(t, "missing_schedule", *lines[1].ErrorKind)
	require.True(t, lines[1].Total.IsZero())
}

func TestComputeLinesAmbiguousRateBecomesErrorLine(t *testing.T) {
	fx := newBatchFixture()
	start, end := testPeriod()

	fx.rates.entries = nil
	fx.summaries.summaries["emp-001"] = attendance.Summary{PaidScheduledHours: decimal.NewFromInt(20)}

	lines, err := fx.svc.computeLines(context.Background(), payroll.Batch{
		ID: "batch-1", PeriodStart: start, PeriodEnd: end,
	}, []string{"emp-001"})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, payroll.LineStatusError, lines[0].Status)
	require.Equal(t, "ambiguous_rate", *lines[0].ErrorKind)
}

func TestGenerateBatchTotalIsSumOfComputedLines(t *testing.T) {
	fx := newBatchFixture()
	ctx := context.Background()

	fx.summaries.summaries["emp-001"] = attendance.Summary{PaidScheduledHours: decimal.NewFromInt(20)}
	fx.summaries.summaries["emp-002"] = attendance.Summary{PaidScheduledHours: decimal.NewFromInt(30)}

	resp, err := fx.svc.Generate(ctx, payroll.GenerateBatchRequest{
		PeriodStart: "2025-06-01",
		PeriodEnd:   "2025-06-30",
		PeriodType:  "monthly",
	})
	require.NoError(t, err)
	require.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(2500000)), "batch total = %s", resp.TotalAmount)
	require.Equal(t, 2, resp.TotalEmployees)

	stored, err := fx.batchRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(2500000)), "stored total = %s", stored.TotalAmount)
}

func TestGenerateErrorLinesCarryNoAmount(t *testing.T) {
	fx := newBatchFixture()
	ctx := context.Background()

	fx.summaries.summaries["emp-001"] = attendance.Summary{PaidScheduledHours: decimal.NewFromInt(20)}
	fx.summaries.failures["emp-002"] = &schedule.MissingScheduleError{
		EmployeeID: "emp-002",
		Date:       time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
	}

	resp, err := fx.svc.Generate(ctx, payroll.GenerateBatchRequest{
		PeriodStart: "2025-06-01",
		PeriodEnd:   "2025-06-30",
		PeriodType:  "monthly",
	})
	require.NoError(t, err)
	require.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(1000000)), "batch total = %s", resp.TotalAmount)
	require.Equal(t, 2, resp.TotalEmployees)
}

func TestCorrectAdjustsLineAndBatchTotals(t *testing.T) {
	fx := newBatchFixture()
	ctx := context.Background()

	fx.summaries.summaries["emp-001"] = attendance.Summary{PaidScheduledHours: decimal.NewFromInt(20)}
	fx.summaries.summaries["emp-002"] = attendance.Summary{PaidScheduledHours: decimal.NewFromInt(30)}

	generated, err := fx.svc.Generate(ctx, payroll.GenerateBatchRequest{
		PeriodStart: "2025-06-01",
		PeriodEnd:   "2025-06-30",
		PeriodType:  "monthly",
	})
	require.NoError(t, err)

	lines, err := fx.lineRepo.ListByBatch(ctx, generated.ID)
	require.NoError(t, err)
	var target payroll.Line
	for _, l := range lines {
		if l.EmployeeID == "emp-001" {
			target = l
		}
	}
	require.NotEmpty(t, target.ID)

	corrected, err := fx.svc.Correct(ctx, payroll.CorrectionRequest{
		LineID: target.ID,
		Amount: decimal.NewFromInt(-200000),
		Reason: "unpaid advance",
	})
	require.NoError(t, err)
	require.True(t, corrected.Total.Equal(decimal.NewFromInt(800000)), "line total = %s", corrected.Total)

	batch, err := fx.batchRepo.GetByID(ctx, generated.ID)
	require.NoError(t, err)
	require.True(t, batch.TotalAmount.Equal(decimal.NewFromInt(2300000)), "batch total = %s", batch.TotalAmount)
}

func TestSubmitBlockedByErrorLines(t *testing.T) {
	fx := newBatchFixture()
	ctx := context.Background()

	batch, err := fx.batchRepo.Create(ctx, payroll.Batch{Status: payroll.BatchStatusDraft})
	require.NoError(t, err)

	kind := "missing_schedule"
	fx.lineRepo.lines = append(fx.lineRepo.lines, payroll.Line{
		ID: "line-1", BatchID: batch.ID, EmployeeID: "emp-002",
		Status: payroll.LineStatusError, ErrorKind: &kind,
	})

	_, err = fx.svc.Submit(ctx, batch.ID, "admin-001")
	require.ErrorIs(t, err, payroll.ErrBatchHasErrorLines)
}

func TestApproveRequiresSubmittedState(t *testing.T) {
	fx := newBatchFixture()
	ctx := context.Background()

	batch, err := fx.batchRepo.Create(ctx, payroll.Batch{Status: payroll.BatchStatusDraft})
	require.NoError(t, err)

	_, err = fx.svc.Approve(ctx, batch.ID, "admin-001")
	require.Error(t, err)
	require.True(t, payroll.IsInvalidTransition(err))
}

func TestCorrectFrozenBatchRefused(t *testing.T) {
	fx := newBatchFixture()
	ctx := context.Background()

	batch, err := fx.batchRepo.Create(ctx, payroll.Batch{Status: payroll.BatchStatusPaid})
	require.NoError(t, err)
	fx.lineRepo.lines = append(fx.lineRepo.lines, payroll.Line{
		ID: "line-1", BatchID: batch.ID, EmployeeID: "emp-001",
		Status: payroll.LineStatusComputed,
	})

	_, err = fx.svc.Correct(ctx, payroll.CorrectionRequest{
		LineID: "line-1",
		Amount: decimal.NewFromInt(-200000),
		Reason: "unpaid advance",
	})
	require.ErrorIs(t, err, payroll.ErrCorrectionNotAllowed)
}

func TestDeleteNonDraftRefused(t *testing.T) {
	fx := newBatchFixture()
	ctx := context.Background()

	batch, err := fx.batchRepo.Create(ctx, payroll.Batch{Status: payroll.BatchStatusSubmitted})
	require.NoError(t, err)

	err = fx.svc.Delete(ctx, batch.ID)
	require.ErrorIs(t, err, payroll.ErrBatchNotDeletable)

	draft, err := fx.batchRepo.Create(ctx, payroll.Batch{Status: payroll.BatchStatusDraft})
	require.NoError(t, err)
	require.NoError(t, fx.svc.Delete(ctx, draft.ID))
}
