package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
	payrollsvc "github.com/gajihub/attendance-engine-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// stubBatchRepo serves a fixed set of batches for handler tests.
type stubBatchRepo struct {
	batches map[string]payroll.Batch
}

func (s *stubBatchRepo) Create(_ context.Context, b payroll.Batch) (payroll.Batch, error) {
	return b, nil
}

func (s *stubBatchRepo) GetByID(_ context.Context, id string) (payroll.Batch, error) {
	if b, ok := s.batches[id]; ok {
		return b, nil
	}
	return payroll.Batch{}, payroll.ErrBatchNotFound
}

func (s *stubBatchRepo) List(_ context.Context, _ *payroll.BatchStatus) ([]payroll.Batch, error) {
	return nil, nil
}

func (s *stubBatchRepo) UpdateStatus(_ context.Context, _ pgx.Tx, _ payroll.Batch, _ payroll.Event) error {
	return nil
}

func (s *stubBatchRepo) UpdateTotals(_ context.Context, _ pgx.Tx, _ string, _ payroll.Batch) error {
	return nil
}

func (s *stubBatchRepo) Delete(_ context.Context, _ string) error { return nil }

func (s *stubBatchRepo) ListEvents(_ context.Context, _ string) ([]payroll.Event, error) {
	return nil, nil
}

type stubLineRepo struct {
	lines []payroll.Line
}

func (s *stubLineRepo) GetByID(_ context.Context, _ string) (payroll.Line, error) {
	return payroll.Line{}, payroll.ErrLineNotFound
}

func (s *stubLineRepo) ListByBatch(_ context.Context, _ string) ([]payroll.Line, error) {
	return s.lines, nil
}

func (s *stubLineRepo) ReplaceForBatch(_ context.Context, _ pgx.Tx, _ string, _ []payroll.Line) error {
	return nil
}

func (s *stubLineRepo) UpdateCorrection(_ context.Context, _ pgx.Tx, _ payroll.Line) error {
	return nil
}

func (s *stubLineRepo) CountErrorLines(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func newExportTestRouter(batchRepo *stubBatchRepo, lineRepo *stubLineRepo) *chi.Mux {
	svc := payrollsvc.NewBatchService(
		nil,
		batchRepo,
		lineRepo,
		nil, nil, nil, nil, nil,
		1,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	handler := NewPayrollHandler(svc, nil)

	r := chi.NewRouter()
	r.Get("/payroll/batches/{id}/export", handler.Export)
	return r
}

func TestExportUnknownBatchReturnsJSONError(t *testing.T) {
	router := newExportTestRouter(&stubBatchRepo{}, &stubLineRepo{})

	req := httptest.NewRequest(http.MethodGet, "/payroll/batches/nope/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestExportStreamsWorkbookWithAttachmentHeaders(t *testing.T) {
	batchRepo := &stubBatchRepo{batches: map[string]payroll.Batch{
		"b-1": {
			ID:          "b-1",
			PeriodStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			Status:      payroll.BatchStatusApproved,
			TotalAmount: decimal.NewFromInt(1000000),
		},
	}}
	lineRepo := &stubLineRepo{lines: []payroll.Line{{
		ID: "line-1", BatchID: "b-1", EmployeeID: "emp-001",
		BasePay: decimal.NewFromInt(1000000),
		Total:   decimal.NewFromInt(1000000),
		Status:  payroll.LineStatusComputed,
	}}}
	router := newExportTestRouter(batchRepo, lineRepo)

	req := httptest.NewRequest(http.MethodGet, "/payroll/batches/b-1/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), `payroll-batch-b-1.xlsx`)
	require.NotZero(t, rec.Body.Len())
}
