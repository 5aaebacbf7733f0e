package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"riceweigh/internal/dto"
	"riceweigh/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// FallbackDefaultPrice is used when a rice type has no configured
// default — 6000 VND/kg, the going rate for plain rice.
var FallbackDefaultPrice = decimal.NewFromInt(6000)

const (
	priceCacheKey = "riceweigh:prices"
	priceCacheTTL = time.Hour
)

type RicePriceService interface {
	// List returns the type→default-price table, redis-cached: the form
	// reads it on every batch row the user adds.
	List(ctx context.Context) (*dto.RicePriceListResponse, error)
	// PriceFor pre-fills a batch's unit price when the type is chosen.
	PriceFor(ctx context.Context, riceType string) (decimal.Decimal, error)
	Upsert(ctx context.Context, riceType string, req dto.UpsertRicePriceRequest) (*dto.RicePriceResponse, error)
	// WarmCache refreshes the redis price map; run at startup and by cron.
	WarmCache(ctx context.Context)
}

type ricePriceService struct {
	repo repository.RicePriceRepository
	rdb  *redis.Client
}

func NewRicePriceService(repo repository.RicePriceRepository, rdb *redis.Client) RicePriceService {
	return &ricePriceService{repo: repo, rdb: rdb}
}

func (s *ricePriceService) List(ctx context.Context) (*dto.RicePriceListResponse, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	ps, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrapPersistence("tải bảng giá", err)
	}
	resp := &dto.RicePriceListResponse{Data: make([]dto.RicePriceResponse, 0, len(ps))}
	for _, p := range ps {
		resp.Data = append(resp.Data, dto.RicePriceResponse{
			RiceType:     p.RiceType,
			DefaultPrice: p.DefaultPrice,
		})
	}
	s.toCache(ctx, resp)
	return resp, nil
}

func (s *ricePriceService) PriceFor(ctx context.Context, riceType string) (decimal.Decimal, error) {
	list, err := s.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	for _, p := range list.Data {
		if strings.EqualFold(p.RiceType, riceType) {
			return p.DefaultPrice, nil
		}
	}
	return FallbackDefaultPrice, nil
}

func (s *ricePriceService) Upsert(ctx context.Context, riceType string, req dto.UpsertRicePriceRequest) (*dto.RicePriceResponse, error) {
	riceType = strings.TrimSpace(riceType)
	if riceType == "" {
		return nil, NewValidationError("rice_type", "Vui lòng chọn loại gạo")
	}
	if !req.DefaultPrice.IsPositive() {
		return nil, NewValidationError("default_price", "Đơn giá phải lớn hơn 0")
	}
	if err := s.repo.Upsert(ctx, riceType, req.DefaultPrice); err != nil {
		return nil, wrapPersistence("lưu giá gạo", err)
	}
	s.invalidate(ctx)
	return &dto.RicePriceResponse{RiceType: riceType, DefaultPrice: req.DefaultPrice}, nil
}

func (s *ricePriceService) WarmCache(ctx context.Context) {
	s.invalidate(ctx)
	if _, err := s.List(ctx); err != nil {
		log.Warn().Err(err).Msg("rice price cache warm failed")
	}
}

// ── Cache helpers (no-ops when redis is absent) ──────────────────────────────

func (s *ricePriceService) fromCache(ctx context.Context) *dto.RicePriceListResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, priceCacheKey).Result()
	if err != nil {
		return nil
	}
	var resp dto.RicePriceListResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *ricePriceService) toCache(ctx context.Context, resp *dto.RicePriceListResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, priceCacheKey, raw, priceCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("rice price cache write failed")
	}
}

func (s *ricePriceService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, priceCacheKey).Err()
}
