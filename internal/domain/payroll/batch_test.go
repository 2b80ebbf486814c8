package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m int, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestBatchStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BatchStatus
		to      BatchStatus
		allowed bool
	}{
		{BatchStatusDraft, BatchStatusSubmitted, true},
		{BatchStatusSubmitted, BatchStatusApproved, true},
		{BatchStatusSubmitted, BatchStatusRejected, true},
		{BatchStatusRejected, BatchStatusDraft, true},
		{BatchStatusApproved, BatchStatusPaid, true},

		{BatchStatusDraft, BatchStatusApproved, false},
		{BatchStatusDraft, BatchStatusPaid, false},
		{BatchStatusSubmitted, BatchStatusDraft, false},
		{BatchStatusApproved, BatchStatusDraft, false},
		{BatchStatusApproved, BatchStatusRejected, false},
		{BatchStatusPaid, BatchStatusDraft, false},
		{BatchStatusPaid, BatchStatusSubmitted, false},
		{BatchStatusPaid, BatchStatusApproved, false},
		{BatchStatusRejected, BatchStatusApproved, false},
		{BatchStatusRejected, BatchStatusPaid, false},
	}

	for _, c := range cases {
		err := c.from.Transition(c.to)
		if c.allowed {
			assert.NoError(t, err, "%s -> %s should be allowed", c.from, c.to)
		} else {
			assert.Error(t, err, "%s -> %s should be rejected", c.from, c.to)
			assert.True(t, IsInvalidTransition(err))
		}
	}
}

func TestBatchStatusGuards(t *testing.T) {
	assert.True(t, BatchStatusDraft.Mutable())
	assert.True(t, BatchStatusSubmitted.Mutable())
	assert.False(t, BatchStatusApproved.Mutable())
	assert.False(t, BatchStatusPaid.Mutable())
	assert.False(t, BatchStatusRejected.Mutable())

	assert.True(t, BatchStatusDraft.Deletable())
	assert.False(t, BatchStatusSubmitted.Deletable())
	assert.False(t, BatchStatusPaid.Deletable())
}

func TestLineComputeTotal(t *testing.T) {
	line := Line{
		BasePay:           decimal.NewFromInt(2_000_000),
		Allowances:        decimal.NewFromInt(300_000),
		OvertimePay:       decimal.NewFromInt(150_000),
		Deductions:        decimal.NewFromInt(100_000),
		LatenessDeduction: decimal.NewFromInt(25_000),
		Correction:        decimal.NewFromInt(-50_000),
	}

	want := decimal.NewFromInt(2_275_000)
	assert.True(t, line.ComputeTotal().Equal(want), "got %s", line.ComputeTotal())
}

func TestRateEntryWindow(t *testing.T) {
	entry := RateEntry{
		ValidFrom: date(2025, 1, 1),
	}
	assert.True(t, entry.ContainsDate(date(2025, 6, 1)), "open-ended window")
	assert.False(t, entry.ContainsDate(date(2024, 12, 31)))

	to := date(2025, 7, 1)
	entry.ValidTo = &to
	assert.True(t, entry.ContainsDate(date(2025, 6, 30)))
	assert.False(t, entry.ContainsDate(date(2025, 7, 1)), "valid_to is exclusive")
}
