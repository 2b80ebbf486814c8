package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/domain/employee"
	"github.com/gajihub/attendance-engine-go/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeRateRepo struct {
	entries []payroll.RateEntry
}

func (f *fakeRateRepo) CreateEntry(_ context.Context, entry payroll.RateEntry) (payroll.RateEntry, error) {
	entry.ID = uuid.NewString()
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeRateRepo) ListEntries(_ context.Context) ([]payroll.RateEntry, error) {
	return f.entries, nil
}

func (f *fakeRateRepo) GetCandidates(_ context.Context, positionID, seniorityTier string, asOf time.Time) ([]payroll.RateEntry, error) {
	var out []payroll.RateEntry
	for _, e := range f.entries {
		if e.PositionID == positionID && e.SeniorityTier == seniorityTier && e.ContainsDate(asOf) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRateRepo) DeleteEntry(_ context.Context, id string) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return payroll.ErrRateEntryNotFound
}

func strPtr(s string) *string { return &s }

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:            "emp-001",
		PositionID:    "pos-cashier",
		WorkUnitID:    strPtr("unit-jakarta"),
		SeniorityTier: "senior",
	}
}

func rateEntry(rate int64, validFrom time.Time, workUnitID *string) payroll.RateEntry {
	return payroll.RateEntry{
		ID:            uuid.NewString(),
		PositionID:    "pos-cashier",
		WorkUnitID:    workUnitID,
		SeniorityTier: "senior",
		HourlyRate:    decimal.NewFromInt(rate),
		ValidFrom:     validFrom,
	}
}

func TestResolveWorkUnitBeatsPositionWide(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	repo := &fakeRateRepo{entries: []payroll.RateEntry{
		rateEntry(50000, jan, nil),
		rateEntry(60000, jan, strPtr("unit-jakarta")),
	}}
	table := NewRateTable(repo)

	entry, err := table.Resolve(context.Background(), testEmployee(), asOf)
	require.NoError(t, err)
	require.True(t, entry.HourlyRate.Equal(decimal.NewFromInt(60000)))
}

func TestResolveLatestValidFromWins(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	repo := &fakeRateRepo{entries: []payroll.RateEntry{
		rateEntry(50000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil),
		rateEntry(55000, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), nil),
	}}
	table := NewRateTable(repo)

	entry, err := table.Resolve(context.Background(), testEmployee(), asOf)
	require.NoError(t, err)
	require.True(t, entry.HourlyRate.Equal(decimal.NewFromInt(55000)))
}

func TestResolveOtherWorkUnitExcluded(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	repo := &fakeRateRepo{entries: []payroll.RateEntry{
		rateEntry(50000, jan, nil),
		rateEntry(70000, jan, strPtr("unit-surabaya")),
	}}
	table := NewRateTable(repo)

	entry, err := table.Resolve(context.Background(), testEmployee(), asOf)
	require.NoError(t, err)
	require.True(t, entry.HourlyRate.Equal(decimal.NewFromInt(50000)))
}

func TestResolveNoMatchIsError(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	table := NewRateTable(&fakeRateRepo{})

	_, err := table.Resolve(context.Background(), testEmployee(), asOf)
	require.Error(t, err)
	require.True(t, payroll.IsAmbiguousRate(err))
}

func TestResolveEqualTieIsError(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	repo := &fakeRateRepo{entries: []payroll.RateEntry{
		rateEntry(50000, jan, strPtr("unit-jakarta")),
		rateEntry(60000, jan, strPtr("unit-jakarta")),
	}}
	table := NewRateTable(repo)

	_, err := table.Resolve(context.Background(), testEmployee(), asOf)
	require.Error(t, err)

	var ambiguous *payroll.AmbiguousRateError
	require.ErrorAs(t, err, &ambiguous)
	require.Equal(t, 2, ambiguous.Candidates)
}

func TestResolveExpiredWindowExcluded(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	expired := rateEntry(90000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	expired.ValidTo = &expiry
	current := rateEntry(50000, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), nil)

	table := NewRateTable(&fakeRateRepo{entries: []payroll.RateEntry{expired, current}})

	entry, err := table.Resolve(context.Background(), testEmployee(), asOf)
	require.NoError(t, err)
	require.True(t, entry.HourlyRate.Equal(decimal.NewFromInt(50000)))
}
