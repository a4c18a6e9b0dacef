package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CashbookMetrics records business-level metrics for the cashbook: how many
// entries are booked and reversed, and the amounts moving through the ledger.
type CashbookMetrics struct {
	entriesRecorded *Counter
	entriesReversed *Counter
	entryAmount     *Histogram
}

// NewCashbookMetrics creates cashbook metrics on the given provider.
func NewCashbookMetrics(mp *MeterProvider) (*CashbookMetrics, error) {
	meter := mp.Meter("coldstore.cashbook")

	entriesRecorded, err := NewCounter(meter,
		"cashbook_entries_recorded_total",
		"Total number of cashbook entries recorded",
		"{entry}")
	if err != nil {
		return nil, fmt.Errorf("failed to create entries recorded counter: %w", err)
	}

	entriesReversed, err := NewCounter(meter,
		"cashbook_entries_reversed_total",
		"Total number of cashbook entries reversed",
		"{entry}")
	if err != nil {
		return nil, fmt.Errorf("failed to create entries reversed counter: %w", err)
	}

	entryAmount, err := NewHistogram(meter, HistogramOpts{
		Name:        "cashbook_entry_amount",
		Description: "Distribution of cashbook entry amounts",
		Unit:        "INR",
		Boundaries:  AmountBuckets,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create entry amount histogram: %w", err)
	}

	return &CashbookMetrics{
		entriesRecorded: entriesRecorded,
		entriesReversed: entriesReversed,
		entryAmount:     entryAmount,
	}, nil
}

// RecordEntry records a newly booked entry.
func (m *CashbookMetrics) RecordEntry(ctx context.Context, tenantID uuid.UUID, kind string, amount float64) {
	m.entriesRecorded.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrEntryKind.String(kind))
	m.entryAmount.Record(ctx, amount,
		AttrEntryKind.String(kind))
}

// RecordReversal records a reversal.
func (m *CashbookMetrics) RecordReversal(ctx context.Context, tenantID uuid.UUID, kind string) {
	m.entriesReversed.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrEntryKind.String(kind))
}
