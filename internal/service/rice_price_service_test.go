package service_test

import (
	"context"
	"testing"

	"riceweigh/internal/dto"
	"riceweigh/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRicePriceUpsertAndList(t *testing.T) {
	svc := service.NewRicePriceService(newStubRicePriceRepo(), nil)

	_, err := svc.Upsert(context.Background(), "Gạo ST25", dto.UpsertRicePriceRequest{DefaultPrice: d("18000")})
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), "Gạo tẻ", dto.UpsertRicePriceRequest{DefaultPrice: d("9000")})
	require.NoError(t, err)

	// Upsert overwrites, never duplicates.
	_, err = svc.Upsert(context.Background(), "Gạo tẻ", dto.UpsertRicePriceRequest{DefaultPrice: d("9500")})
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Data, 2)

	price, err := svc.PriceFor(context.Background(), "Gạo tẻ")
	require.NoError(t, err)
	assert.True(t, price.Equal(d("9500")))
}

func TestRicePriceUpsertValidation(t *testing.T) {
	svc := service.NewRicePriceService(newStubRicePriceRepo(), nil)

	var ve *service.ValidationError
	_, err := svc.Upsert(context.Background(), "   ", dto.UpsertRicePriceRequest{DefaultPrice: d("9000")})
	require.ErrorAs(t, err, &ve)

	_, err = svc.Upsert(context.Background(), "Gạo tẻ", dto.UpsertRicePriceRequest{DefaultPrice: decimal.Zero})
	require.ErrorAs(t, err, &ve)
}

func TestPriceForUnknownTypeFallsBack(t *testing.T) {
	svc := service.NewRicePriceService(newStubRicePriceRepo(), nil)

	price, err := svc.PriceFor(context.Background(), "Gạo lạ")
	require.NoError(t, err)
	assert.True(t, price.Equal(service.FallbackDefaultPrice))
}
