package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollSettingsRepository struct {
	db *database.DB
}

func NewPayrollSettingsRepository(db *database.DB) payroll.SettingsRepository {
	return &payrollSettingsRepository{db: db}
}

// Get implements payroll.SettingsRepository. The engine keeps a single
// settings row.
func (r *payrollSettingsRepository) Get(ctx context.Context) (payroll.Settings, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, overtime_hourly_rate, late_penalty_amount,
			   late_penalty_block_minutes, default_annual_leave_days,
			   created_at, updated_at
		FROM payroll_settings
		ORDER BY created_at
		LIMIT 1
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.OvertimeHourlyRate, &s.LatePenaltyAmount,
		&s.LatePenaltyBlockMinutes, &s.DefaultAnnualLeaveDays,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Settings{}, payroll.ErrSettingsNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	return s, nil
}

// Upsert implements payroll.SettingsRepository.
func (r *payrollSettingsRepository) Upsert(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	q := database.GetQuerier(ctx, r.db)

	if settings.ID == "" {
		query := `
			INSERT INTO payroll_settings (
				overtime_hourly_rate, late_penalty_amount,
				late_penalty_block_minutes, default_annual_leave_days
			) VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`
		err := q.QueryRow(ctx, query,
			settings.OvertimeHourlyRate, settings.LatePenaltyAmount,
			settings.LatePenaltyBlockMinutes, settings.DefaultAnnualLeaveDays,
		).Scan(&settings.ID, &settings.CreatedAt, &settings.UpdatedAt)
		if err != nil {
			return payroll.Settings{}, fmt.Errorf("failed to create payroll settings: %w", err)
		}
		return settings, nil
	}

	query := `
		UPDATE payroll_settings
		SET overtime_hourly_rate = $2, late_penalty_amount = $3,
			late_penalty_block_minutes = $4, default_annual_leave_days = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query,
		settings.ID, settings.OvertimeHourlyRate, settings.LatePenaltyAmount,
		settings.LatePenaltyBlockMinutes, settings.DefaultAnnualLeaveDays,
	).Scan(&settings.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Settings{}, payroll.ErrSettingsNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to update payroll settings: %w", err)
	}
	return settings, nil
}

type payrollRateRepository struct {
	db *database.DB
}

func NewPayrollRateRepository(db *database.DB) payroll.RateRepository {
	return &payrollRateRepository{db: db}
}

const rateEntryColumns = `
	id, position_id, work_unit_id, seniority_tier, hourly_rate,
	valid_from, valid_to, created_at, updated_at
`

func scanRateEntry(row pgx.Row) (payroll.RateEntry, error) {
	var e payroll.RateEntry
	err := row.Scan(
		&e.ID, &e.PositionID, &e.WorkUnitID, &e.SeniorityTier, &e.HourlyRate,
		&e.ValidFrom, &e.ValidTo, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// CreateEntry implements payroll.RateRepository.
func (r *payrollRateRepository) CreateEntry(ctx context.Context, entry payroll.RateEntry) (payroll.RateEntry, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_rate_entries (
			position_id, work_unit_id, seniority_tier, hourly_rate, valid_from, valid_to
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.PositionID, entry.WorkUnitID, entry.SeniorityTier,
		entry.HourlyRate, entry.ValidFrom, entry.ValidTo,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return payroll.RateEntry{}, fmt.Errorf("failed to create rate entry: %w", err)
	}
	return entry, nil
}

// ListEntries implements payroll.RateRepository.
func (r *payrollRateRepository) ListEntries(ctx context.Context) ([]payroll.RateEntry, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + rateEntryColumns + ` FROM payroll_rate_entries ORDER BY position_id, valid_from DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate entries: %w", err)
	}
	defer rows.Close()

	entries := make([]payroll.RateEntry, 0)
	for rows.Next() {
		e, err := scanRateEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetCandidates implements payroll.RateRepository.
func (r *payrollRateRepository) GetCandidates(ctx context.Context, positionID, seniorityTier string, asOf time.Time) ([]payroll.RateEntry, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + rateEntryColumns + `
		FROM payroll_rate_entries
		WHERE position_id = $1 AND seniority_tier = $2
		  AND valid_from <= $3 AND (valid_to IS NULL OR valid_to > $3)
		ORDER BY valid_from DESC
	`

	rows, err := q.Query(ctx, query, positionID, seniorityTier, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate candidates: %w", err)
	}
	defer rows.Close()

	entries := make([]payroll.RateEntry, 0)
	for rows.Next() {
		e, err := scanRateEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteEntry implements payroll.RateRepository.
func (r *payrollRateRepository) DeleteEntry(ctx context.Context, id string) error {
	q := database.GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_rate_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rate entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRateEntryNotFound
	}
	return nil
}

type payrollComponentRepository struct {
	db *database.DB
}

func NewPayrollComponentRepository(db *database.DB) payroll.ComponentRepository {
	return &payrollComponentRepository{db: db}
}

const componentColumns = `
	id, name, category, kind, amount, valid_from, valid_to, created_at, updated_at
`

func scanComponent(row pgx.Row) (payroll.FixedComponent, error) {
	var c payroll.FixedComponent
	err := row.Scan(
		&c.ID, &c.Name, &c.Category, &c.Kind, &c.Amount,
		&c.ValidFrom, &c.ValidTo, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements payroll.ComponentRepository.
func (r *payrollComponentRepository) Create(ctx context.Context, component payroll.FixedComponent) (payroll.FixedComponent, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_components (name, category, kind, amount, valid_from, valid_to)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		component.Name, component.Category, component.Kind,
		component.Amount, component.ValidFrom, component.ValidTo,
	).Scan(&component.ID, &component.CreatedAt, &component.UpdatedAt)
	if err != nil {
		return payroll.FixedComponent{}, fmt.Errorf("failed to create component: %w", err)
	}
	return component, nil
}

// List implements payroll.ComponentRepository.
func (r *payrollComponentRepository) List(ctx context.Context) ([]payroll.FixedComponent, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + componentColumns + ` FROM payroll_components ORDER BY name`

	return r.queryComponents(ctx, q, query)
}

// GetValidOn implements payroll.ComponentRepository.
func (r *payrollComponentRepository) GetValidOn(ctx context.Context, date time.Time) ([]payroll.FixedComponent, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM payroll_components
		WHERE valid_from <= $1 AND (valid_to IS NULL OR valid_to > $1)
		ORDER BY name
	`

	return r.queryComponents(ctx, q, query, date)
}

// Delete implements payroll.ComponentRepository.
func (r *payrollComponentRepository) Delete(ctx context.Context, id string) error {
	q := database.GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrComponentNotFound
	}
	return nil
}

func (r *payrollComponentRepository) queryComponents(ctx context.Context, q database.Querier, query string, args ...any) ([]payroll.FixedComponent, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	defer rows.Close()

	components := make([]payroll.FixedComponent, 0)
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}
