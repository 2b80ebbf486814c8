package payroll

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, settings Settings) (Settings, error)
}

type RateRepository interface {
	CreateEntry(ctx context.Context, entry RateEntry) (RateEntry, error)
	ListEntries(ctx context.Context) ([]RateEntry, error)

	// GetCandidates returns entries for the position whose seniority
	// tier matches and whose validity window contains asOf. Specificity
	// resolution happens in the RateTable, not in SQL.
	GetCandidates(ctx context.Context, positionID, seniorityTier string, asOf time.Time) ([]RateEntry, error)

	DeleteEntry(ctx context.Context, id string) error
}

type ComponentRepository interface {
	Create(ctx context.Context, component FixedComponent) (FixedComponent, error)
	List(ctx context.Context) ([]FixedComponent, error)

	// GetValidOn returns components whose window contains the date.
	GetValidOn(ctx context.Context, date time.Time) ([]FixedComponent, error)

	Delete(ctx context.Context, id string) error
}

type BatchRepository interface {
	Create(ctx context.Context, batch Batch) (Batch, error)
	GetByID(ctx context.Context, id string) (Batch, error)
	List(ctx context.Context, status *BatchStatus) ([]Batch, error)

	// UpdateStatus persists a transitioned batch (status, actor
	// timestamps) inside tx, together with its lifecycle event.
	UpdateStatus(ctx context.Context, tx pgx.Tx, batch Batch, event Event) error

	// UpdateTotals rewrites total_amount / total_employees inside tx.
	UpdateTotals(ctx context.Context, tx pgx.Tx, batchID string, total Batch) error

	Delete(ctx context.Context, id string) error

	ListEvents(ctx context.Context, batchID string) ([]Event, error)
}

type LineRepository interface {
	GetByID(ctx context.Context, id string) (Line, error)
	ListByBatch(ctx context.Context, batchID string) ([]Line, error)

	// ReplaceForBatch deletes the batch's lines and inserts the new
	// set inside tx, so regeneration is atomic with the batch totals.
	ReplaceForBatch(ctx context.Context, tx pgx.Tx, batchID string, lines []Line) error

	// UpdateCorrection writes the correction amount/reason and the
	// recomputed total inside tx.
	UpdateCorrection(ctx context.Context, tx pgx.Tx, line Line) error

	CountErrorLines(ctx context.Context, batchID string) (int, error)
}
