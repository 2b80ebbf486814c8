package leave

import (
	"context"
	"fmt"

	"github.com/gajihub/attendance-engine-go/internal/domain/leave"
	"github.com/gajihub/attendance-engine-go/internal/pkg/clock"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/gajihub/attendance-engine-go/internal/pkg/metrics"
	"github.com/jackc/pgx/v5"
)

// singleDayTypes are request kinds bound to one calendar date.
var singleDayTypes = map[leave.RequestType]bool{
	leave.TypeIzinTerlambat:  true,
	leave.TypeIzinPulangAwal: true,
	leave.TypeIzinTidakMasuk: true,
}

// Service owns the leave request lifecycle and the annual quota ledger.
// Quota mutations run inside a transaction with the quota row locked,
// so concurrent approvals for one employee serialize instead of
// double-spending the balance.
type Service struct {
	runTx       func(ctx context.Context, onRetry func(), fn func(tx pgx.Tx) error) error
	requestRepo leave.RequestRepository
	quotaRepo   leave.QuotaRepository
	clock       clock.Clock
}

func NewService(
	db *database.DB,
	requestRepo leave.RequestRepository,
	quotaRepo leave.QuotaRepository,
	clk clock.Clock,
	retryAttempts int,
) *Service {
	return &Service{
		runTx: func(ctx context.Context, onRetry func(), fn func(tx pgx.Tx) error) error {
			return database.WithRetry(ctx, db, retryAttempts, onRetry, fn)
		},
		requestRepo: requestRepo,
		quotaRepo:   quotaRepo,
		clock:       clk,
	}
}

// Submit records a pending request. Overlap with an already approved
// request is refused so a date never carries two absence reasons.
func (s *Service) Submit(ctx context.Context, req leave.SubmitRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	start, end := req.DateRange()
	reqType := leave.RequestType(req.Type)
	if singleDayTypes[reqType] && !start.Equal(end) {
		return leave.RequestResponse{}, leave.ErrSingleDayTypeSpansRange
	}

	overlapping, err := s.requestRepo.GetApprovedOverlapping(ctx, req.EmployeeID, start, end)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if len(overlapping) > 0 {
		return leave.RequestResponse{}, leave.ErrOverlappingRequest
	}

	request := leave.Request{
		EmployeeID:  req.EmployeeID,
		Type:        reqType,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		Status:      leave.StatusPending,
		SubmittedAt: s.clock.Now(),
	}
	request.DayCount = request.Days()

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToRequestResponse(created), nil
}

// Approve moves a pending request to approved. Cuti approval debits the
// employee's quota for the request year in the same transaction; the
// request is not approved when the balance cannot cover it.
func (s *Service) Approve(ctx context.Context, requestID, approverID string) (leave.RequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !request.Status.CanTransition(leave.StatusApproved) {
		return leave.RequestResponse{}, leave.ErrRequestAlreadyProcessed
	}

	now := s.clock.Now()
	request.Status = leave.StatusApproved
	request.ApproverID = &approverID
	request.DecidedAt = &now

	if !request.Type.DeductsQuota() {
		if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
			return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
		}
		return leave.ToRequestResponse(request), nil
	}

	year := request.StartDate.Year()
	err = s.runTx(ctx, func() {
		metrics.QuotaRetries.Inc()
	}, func(tx pgx.Tx) error {
		quota, err := s.quotaRepo.GetByEmployeeYearForUpdate(ctx, tx, request.EmployeeID, year)
		if err != nil {
			return err
		}
		if err := quota.Debit(request.DayCount); err != nil {
			return err
		}
		if err := s.quotaRepo.UpdateBalances(ctx, tx, quota); err != nil {
			return fmt.Errorf("failed to update quota balances: %w", err)
		}
		txCtx := database.ContextWithTx(ctx, tx)
		if err := s.requestRepo.UpdateStatus(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.ToRequestResponse(request), nil
}

// Reject moves a pending request to rejected. The quota is untouched.
func (s *Service) Reject(ctx context.Context, req leave.DecideRequestRequest, approverID string) (leave.RequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !request.Status.CanTransition(leave.StatusRejected) {
		return leave.RequestResponse{}, leave.ErrRequestAlreadyProcessed
	}

	now := s.clock.Now()
	request.Status = leave.StatusRejected
	request.ApproverID = &approverID
	request.DecidedAt = &now
	if req.RejectionReason != nil {
		request.Reason = *req.RejectionReason
	}

	if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return leave.ToRequestResponse(request), nil
}

// Cancel withdraws a request. Cancelling an approved cuti credits the
// consumed days back to the ledger in the same transaction.
func (s *Service) Cancel(ctx context.Context, requestID, actorID string) (leave.RequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !request.Status.CanTransition(leave.StatusCancelled) {
		return leave.RequestResponse{}, leave.ErrInvalidStatusTransition
	}

	wasApproved := request.Status == leave.StatusApproved
	now := s.clock.Now()
	request.Status = leave.StatusCancelled
	request.CancelledBy = &actorID
	request.CancelledAt = &now

	if !wasApproved || !request.Type.DeductsQuota() {
		if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
			return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
		}
		return leave.ToRequestResponse(request), nil
	}

	year := request.StartDate.Year()
	err = s.runTx(ctx, func() {
		metrics.QuotaRetries.Inc()
	}, func(tx pgx.Tx) error {
		quota, err := s.quotaRepo.GetByEmployeeYearForUpdate(ctx, tx, request.EmployeeID, year)
		if err != nil {
			return err
		}
		quota.Credit(request.DayCount)
		if err := s.quotaRepo.UpdateBalances(ctx, tx, quota); err != nil {
			return fmt.Errorf("failed to update quota balances: %w", err)
		}
		txCtx := database.ContextWithTx(ctx, tx)
		if err := s.requestRepo.UpdateStatus(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.ToRequestResponse(request), nil
}

// GetQuota returns one employee's ledger row for a year.
func (s *Service) GetQuota(ctx context.Context, employeeID string, year int) (leave.QuotaResponse, error) {
	quota, err := s.quotaRepo.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return leave.QuotaResponse{}, err
	}
	return leave.ToQuotaResponse(quota), nil
}

// ListRequests returns one employee's requests for a year.
func (s *Service) ListRequests(ctx context.Context, employeeID string, year int) ([]leave.RequestResponse, error) {
	requests, err := s.requestRepo.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	out := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, leave.ToRequestResponse(r))
	}
	return out, nil
}

// GrantYearly creates quota rows for active employees that have none
// for the year. Existing rows are never touched, so reruns are safe.
func (s *Service) GrantYearly(ctx context.Context, year, days int) (int, error) {
	employeeIDs, err := s.quotaRepo.ListEmployeesWithoutQuota(ctx, year)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees without quota: %w", err)
	}

	granted := 0
	for _, id := range employeeIDs {
		_, err := s.quotaRepo.Create(ctx, leave.Quota{
			EmployeeID: id,
			Year:       year,
			Granted:    days,
			Used:       0,
			Remaining:  days,
		})
		if err != nil {
			return granted, fmt.Errorf("failed to grant quota for employee %s: %w", id, err)
		}
		granted++
	}
	return granted, nil
}
