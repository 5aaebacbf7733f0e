package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionSummary is derived, never stored: recomputing from the
// same transaction always yields the same totals.
type TransactionSummary struct {
	TotalBags      int
	TotalWeight    decimal.Decimal
	TotalAmount    decimal.Decimal
	BatchSummaries []BatchSummary
}

// BatchSummary is one batch's slice of the totals.
type BatchSummary struct {
	BatchID   uuid.UUID
	RiceType  string
	UnitPrice decimal.Decimal
	Bags      int
	Weight    decimal.Decimal
	Amount    decimal.Decimal
}

// Summarize derives the totals for a transaction. Pure function.
//
// Two pricing paths:
//   - Batch path (RiceBatches non-empty): each batch sums the weights
//     that reference it; batch amount = batch weight × batch unit
//     price; total amount = Σ batch amounts. Batches with zero weights
//     still emit a summary entry so the UI can show empty lots.
//   - Legacy path: total amount = total weight × the transaction's
//     top-level unit price.
//
// A weight whose RiceBatchID references no existing batch counts toward
// TotalBags/TotalWeight but toward no batch sum. Legacy rows in the
// wild depend on that, so it is kept, not fixed.
func Summarize(t *Transaction) TransactionSummary {
	totalWeight := decimal.Zero
	for _, w := range t.Weights {
		totalWeight = totalWeight.Add(w.Weight)
	}
	sum := TransactionSummary{
		TotalBags:   len(t.Weights),
		TotalWeight: totalWeight,
	}

	if !t.HasBatches() {
		sum.TotalAmount = totalWeight.Mul(t.UnitPrice)
		return sum
	}

	sum.TotalAmount = decimal.Zero
	sum.BatchSummaries = make([]BatchSummary, 0, len(t.RiceBatches))
	for _, b := range t.RiceBatches {
		bags := 0
		weight := decimal.Zero
		for _, w := range t.Weights {
			if w.RiceBatchID != nil && *w.RiceBatchID == b.ID {
				bags++
				weight = weight.Add(w.Weight)
			}
		}
		amount := weight.Mul(b.UnitPrice)
		sum.TotalAmount = sum.TotalAmount.Add(amount)
		sum.BatchSummaries = append(sum.BatchSummaries, BatchSummary{
			BatchID:   b.ID,
			RiceType:  b.RiceType,
			UnitPrice: b.UnitPrice,
			Bags:      bags,
			Weight:    weight,
			Amount:    amount,
		})
	}
	return sum
}

// RiceTypeLabel is the dashboard display string for a transaction's
// rice types: batch labels joined, or the legacy single type.
func (t *Transaction) RiceTypeLabel() string {
	if !t.HasBatches() {
		return t.RiceType
	}
	label := ""
	for i, b := range t.RiceBatches {
		if i > 0 {
			label += ", "
		}
		label += b.RiceType
	}
	return label
}
