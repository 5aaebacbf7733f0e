package service

import (
	"context"
	"encoding/json"
	"time"

	"riceweigh/internal/dto"
	"riceweigh/internal/infra"
	"riceweigh/internal/model"
	"riceweigh/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	statsCachePrefix = "riceweigh:stats:daily:"
	statsCacheTTL    = 48 * time.Hour
	dateLayout       = "2006-01-02"
)

type StatsService interface {
	Daily(ctx context.Context, filter dto.StatsFilter) (*dto.DailyStatsResponse, error)
	ExportXLSX(ctx context.Context, filter dto.StatsFilter) ([]byte, error)
	// SnapshotYesterday precomputes the finished day into redis; wired
	// to the nightly cron so the dashboard chart loads from cache.
	SnapshotYesterday(ctx context.Context)
}

type statsService struct {
	txRepo repository.TransactionRepository
	rdb    *redis.Client
}

func NewStatsService(txRepo repository.TransactionRepository, rdb *redis.Client) StatsService {
	return &statsService{txRepo: txRepo, rdb: rdb}
}

// Daily aggregates completed transactions per day. Amounts reuse the
// dual-path summary derivation, so a day mixing legacy and batch-priced
// trucks still adds up to what the invoices say.
func (s *statsService) Daily(ctx context.Context, filter dto.StatsFilter) (*dto.DailyStatsResponse, error) {
	from, to, err := statsRange(filter)
	if err != nil {
		return nil, err
	}

	ts, dbErr := s.txRepo.FindCompletedBetween(ctx, from, to.AddDate(0, 0, 1))
	if dbErr != nil {
		return nil, wrapPersistence("tải thống kê", dbErr)
	}

	byDate := map[string]*dto.DailyStat{}
	for i := range ts {
		date := ts[i].CreatedAt.Format(dateLayout)
		st, ok := byDate[date]
		if !ok {
			st = &dto.DailyStat{Date: date, Weight: decimal.Zero, Revenue: decimal.Zero}
			byDate[date] = st
		}
		sum := model.Summarize(&ts[i])
		st.Trucks++
		st.Bags += sum.TotalBags
		st.Weight = st.Weight.Add(sum.TotalWeight)
		st.Revenue = st.Revenue.Add(sum.TotalAmount)
	}

	// Emit every day in range, zero rows included, so charts have a
	// continuous axis.
	resp := &dto.DailyStatsResponse{Data: []dto.DailyStat{}}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		if st, ok := byDate[date]; ok {
			resp.Data = append(resp.Data, *st)
		} else {
			resp.Data = append(resp.Data, dto.DailyStat{
				Date: date, Weight: decimal.Zero, Revenue: decimal.Zero,
			})
		}
	}
	return resp, nil
}

func (s *statsService) ExportXLSX(ctx context.Context, filter dto.StatsFilter) ([]byte, error) {
	daily, err := s.Daily(ctx, filter)
	if err != nil {
		return nil, err
	}
	raw, renderErr := infra.RenderStatsXLSX(daily.Data)
	if renderErr != nil {
		return nil, wrapPersistence("xuất thống kê", renderErr)
	}
	return raw, nil
}

func (s *statsService) SnapshotYesterday(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	daily, err := s.Daily(ctx, dto.StatsFilter{From: yesterday, To: yesterday})
	if err != nil || len(daily.Data) == 0 {
		log.Warn().Err(err).Msg("stats snapshot failed")
		return
	}
	raw, err := json.Marshal(daily.Data[0])
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, statsCachePrefix+yesterday, raw, statsCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("stats snapshot cache write failed")
		return
	}
	log.Info().Str("date", yesterday).Msg("daily stats snapshot cached")
}

func statsRange(filter dto.StatsFilter) (time.Time, time.Time, error) {
	now := time.Now()
	to := now
	from := now.AddDate(0, 0, -30)

	if filter.To != "" {
		t, err := time.ParseInLocation(dateLayout, filter.To, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, NewValidationError("to", "Ngày không hợp lệ")
		}
		to = t
	}
	if filter.From != "" {
		f, err := time.ParseInLocation(dateLayout, filter.From, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, NewValidationError("from", "Ngày không hợp lệ")
		}
		from = f
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.Local)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.Local)
	if to.Before(from) {
		return time.Time{}, time.Time{}, NewValidationError("from", "Khoảng ngày không hợp lệ")
	}
	return from, to, nil
}
