package model_test

import (
	"testing"

	"riceweigh/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func weightFor(batchID uuid.UUID, w string, idx int) model.WeighingDetail {
	return model.WeighingDetail{
		ID:          uuid.New(),
		RiceBatchID: &batchID,
		Weight:      d(w),
		OrderIndex:  idx,
	}
}

func TestSummarizeBatchPricing(t *testing.T) {
	batchA := model.RiceBatch{ID: uuid.New(), RiceType: "Gạo ST25", UnitPrice: d("12000"), BatchOrder: 0}
	batchB := model.RiceBatch{ID: uuid.New(), RiceType: "Gạo nếp", UnitPrice: d("14000"), BatchOrder: 1}

	tx := &model.Transaction{
		RiceBatches: []model.RiceBatch{batchA, batchB},
		Weights: []model.WeighingDetail{
			weightFor(batchA.ID, "40", 0),
			weightFor(batchA.ID, "30", 1),
			weightFor(batchB.ID, "30", 2),
		},
	}

	sum := model.Summarize(tx)

	assert.Equal(t, 3, sum.TotalBags)
	assert.True(t, sum.TotalWeight.Equal(d("100")))
	// 70×12000 + 30×14000
	assert.True(t, sum.TotalAmount.Equal(d("1260000")))

	assert.Len(t, sum.BatchSummaries, 2)
	assert.Equal(t, 2, sum.BatchSummaries[0].Bags)
	assert.True(t, sum.BatchSummaries[0].Weight.Equal(d("70")))
	assert.True(t, sum.BatchSummaries[0].Amount.Equal(d("840000")))
	assert.Equal(t, 1, sum.BatchSummaries[1].Bags)
	assert.True(t, sum.BatchSummaries[1].Amount.Equal(d("420000")))
}

func TestSummarizeLegacyPricing(t *testing.T) {
	tx := &model.Transaction{
		RiceType:  "Gạo tẻ",
		UnitPrice: d("6000"),
		Weights: []model.WeighingDetail{
			{ID: uuid.New(), Weight: d("50"), OrderIndex: 0},
			{ID: uuid.New(), Weight: d("25"), OrderIndex: 1},
		},
	}

	sum := model.Summarize(tx)

	assert.Equal(t, 2, sum.TotalBags)
	assert.True(t, sum.TotalWeight.Equal(d("75")))
	assert.True(t, sum.TotalAmount.Equal(d("450000")))
	assert.Empty(t, sum.BatchSummaries)
}

func TestSummarizeEmptyTransaction(t *testing.T) {
	sum := model.Summarize(&model.Transaction{UnitPrice: d("6000")})

	assert.Equal(t, 0, sum.TotalBags)
	assert.True(t, sum.TotalWeight.IsZero())
	assert.True(t, sum.TotalAmount.IsZero())
}

// A batch with no weights still gets a summary row so the UI can show
// the empty lot.
func TestSummarizeZeroWeightBatch(t *testing.T) {
	batchA := model.RiceBatch{ID: uuid.New(), RiceType: "Gạo thơm", UnitPrice: d("12000"), BatchOrder: 0}
	batchB := model.RiceBatch{ID: uuid.New(), RiceType: "Khác", UnitPrice: d("6000"), BatchOrder: 1}

	tx := &model.Transaction{
		RiceBatches: []model.RiceBatch{batchA, batchB},
		Weights:     []model.WeighingDetail{weightFor(batchA.ID, "20", 0)},
	}

	sum := model.Summarize(tx)

	assert.Len(t, sum.BatchSummaries, 2)
	assert.Equal(t, 0, sum.BatchSummaries[1].Bags)
	assert.True(t, sum.BatchSummaries[1].Weight.IsZero())
	assert.True(t, sum.BatchSummaries[1].Amount.IsZero())
	assert.True(t, sum.TotalAmount.Equal(d("240000")))
}

// A weight referencing a batch that no longer exists counts toward the
// grand totals but toward no batch sum.
func TestSummarizeOrphanBatchReference(t *testing.T) {
	batchA := model.RiceBatch{ID: uuid.New(), RiceType: "Gạo ST25", UnitPrice: d("18000"), BatchOrder: 0}
	ghost := uuid.New()

	tx := &model.Transaction{
		RiceBatches: []model.RiceBatch{batchA},
		Weights: []model.WeighingDetail{
			weightFor(batchA.ID, "10", 0),
			weightFor(ghost, "5", 1),
		},
	}

	sum := model.Summarize(tx)

	assert.Equal(t, 2, sum.TotalBags)
	assert.True(t, sum.TotalWeight.Equal(d("15")))
	// Only the attached bag prices in.
	assert.True(t, sum.TotalAmount.Equal(d("180000")))
	assert.True(t, sum.BatchSummaries[0].Weight.Equal(d("10")))
}

// Recomputing from the same transaction is stable.
func TestSummarizeDeterministic(t *testing.T) {
	batch := model.RiceBatch{ID: uuid.New(), RiceType: "Gạo Jasmine", UnitPrice: d("14000"), BatchOrder: 0}
	tx := &model.Transaction{
		RiceBatches: []model.RiceBatch{batch},
		Weights:     []model.WeighingDetail{weightFor(batch.ID, "33.5", 0)},
	}

	first := model.Summarize(tx)
	second := model.Summarize(tx)

	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	assert.True(t, first.TotalWeight.Equal(second.TotalWeight))
	assert.Equal(t, first.TotalBags, second.TotalBags)
}

func TestRiceTypeLabel(t *testing.T) {
	legacy := &model.Transaction{RiceType: "Gạo tẻ"}
	assert.Equal(t, "Gạo tẻ", legacy.RiceTypeLabel())

	batched := &model.Transaction{
		RiceBatches: []model.RiceBatch{
			{RiceType: "Gạo ST25"},
			{RiceType: "Gạo nếp"},
		},
	}
	assert.Equal(t, "Gạo ST25, Gạo nếp", batched.RiceTypeLabel())
}
