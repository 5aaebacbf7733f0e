package service_test

import (
	"context"
	"testing"
	"time"

	"riceweigh/internal/dto"
	"riceweigh/internal/model"
	"riceweigh/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCompletedOn(t *testing.T, repo *stubTransactionRepo, day time.Time, weight, price string) {
	t.Helper()
	batch := model.RiceBatch{ID: uuid.New(), RiceType: "Gạo tẻ", UnitPrice: d(price), BatchOrder: 0}
	tx := &model.Transaction{
		CustomerName:  "Cô Ba",
		LicensePlate:  "65C-11111",
		Status:        model.StatusCompleted,
		PaymentStatus: model.PaymentUnpaid,
		RiceBatches:   []model.RiceBatch{batch},
		Weights: []model.WeighingDetail{
			{ID: uuid.New(), RiceBatchID: &batch.ID, Weight: d(weight), OrderIndex: 0},
		},
		CreatedAt: day,
	}
	require.NoError(t, repo.Create(context.Background(), nil, tx))
}

func TestDailyStatsZeroFillsRange(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := service.NewStatsService(repo, nil)

	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)
	day3 := time.Date(2026, 8, 12, 15, 0, 0, 0, time.Local)
	seedCompletedOn(t, repo, day1, "100", "9000")
	seedCompletedOn(t, repo, day1, "50", "9000")
	seedCompletedOn(t, repo, day3, "80", "12000")

	resp, err := svc.Daily(context.Background(), dto.StatsFilter{From: "2026-08-10", To: "2026-08-13"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 4)

	assert.Equal(t, "2026-08-10", resp.Data[0].Date)
	assert.Equal(t, 2, resp.Data[0].Trucks)
	assert.Equal(t, 2, resp.Data[0].Bags)
	assert.True(t, resp.Data[0].Weight.Equal(d("150")))
	assert.True(t, resp.Data[0].Revenue.Equal(d("1350000")))

	// 2026-08-11 had no trucks but still gets a row.
	assert.Equal(t, "2026-08-11", resp.Data[1].Date)
	assert.Equal(t, 0, resp.Data[1].Trucks)
	assert.True(t, resp.Data[1].Revenue.IsZero())

	assert.Equal(t, 1, resp.Data[2].Trucks)
	assert.True(t, resp.Data[2].Revenue.Equal(d("960000")))

	assert.Equal(t, 0, resp.Data[3].Trucks)
}

func TestDailyStatsIgnoresPending(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := service.NewStatsService(repo, nil)

	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)
	pending := &model.Transaction{
		CustomerName: "Cô Ba", LicensePlate: "65C-11111",
		Status: model.StatusPending, PaymentStatus: model.PaymentUnpaid,
		CreatedAt: day,
	}
	require.NoError(t, repo.Create(context.Background(), nil, pending))

	resp, err := svc.Daily(context.Background(), dto.StatsFilter{From: "2026-08-10", To: "2026-08-10"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 0, resp.Data[0].Trucks)
}

func TestDailyStatsRangeValidation(t *testing.T) {
	svc := service.NewStatsService(newStubTransactionRepo(), nil)

	var ve *service.ValidationError
	_, err := svc.Daily(context.Background(), dto.StatsFilter{From: "10/08/2026"})
	require.ErrorAs(t, err, &ve)

	_, err = svc.Daily(context.Background(), dto.StatsFilter{From: "2026-08-13", To: "2026-08-10"})
	require.ErrorAs(t, err, &ve)
}

func TestExportXLSX(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := service.NewStatsService(repo, nil)

	seedCompletedOn(t, repo, time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local), "100", "9000")

	raw, err := svc.ExportXLSX(context.Background(), dto.StatsFilter{From: "2026-08-10", To: "2026-08-10"})
	require.NoError(t, err)
	// xlsx is a zip archive.
	require.True(t, len(raw) > 4)
	assert.Equal(t, "PK", string(raw[:2]))
}
