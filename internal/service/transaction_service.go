package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"riceweigh/internal/dto"
	"riceweigh/internal/model"
	"riceweigh/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type TransactionService interface {
	Create(ctx context.Context, sessionID string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.TransactionResponse, error)
	// GetCurrent resolves the session's in-progress transaction: redis
	// pointer first, newest pending row as the authoritative fallback.
	GetCurrent(ctx context.Context, sessionID string) (*dto.CurrentTransactionResponse, error)
	List(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error)
	AddWeight(ctx context.Context, transactionID uuid.UUID, req dto.AddWeightRequest) (*dto.TransactionResponse, error)
	UpdateWeight(ctx context.Context, weightID uuid.UUID, req dto.UpdateWeightRequest) (*dto.TransactionResponse, error)
	DeleteWeight(ctx context.Context, weightID uuid.UUID) (*dto.TransactionResponse, error)
	Complete(ctx context.Context, sessionID string, id uuid.UUID) (*dto.TransactionResponse, error)
	// Delete cancels a pending transaction outright; for completed ones
	// the caller must have passed the two-step confirmation (confirmed).
	// Hard delete either way — batches and weights cascade.
	Delete(ctx context.Context, sessionID string, id uuid.UUID, confirmed bool) error
}

type transactionService struct {
	repo    repository.TransactionRepository
	weights repository.WeighingRepository
	rdb     *redis.Client
}

func NewTransactionService(
	repo repository.TransactionRepository,
	weights repository.WeighingRepository,
	rdb *redis.Client,
) TransactionService {
	return &transactionService{repo: repo, weights: weights, rdb: rdb}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Session pointer ──────────────────────────────────────────────────────────
// One truck on the scale per session. The pointer is a cache keyed by
// the client session; the pending row in the DB stays authoritative.

const currentKeyPrefix = "riceweigh:current:"

func (s *transactionService) setCurrent(ctx context.Context, sessionID string, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, currentKeyPrefix+sessionID, id.String(), 0).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to cache current transaction pointer")
	}
}

func (s *transactionService) clearCurrent(ctx context.Context, sessionID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, currentKeyPrefix+sessionID).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to clear current transaction pointer")
	}
}

func (s *transactionService) currentID(ctx context.Context, sessionID string) (uuid.UUID, bool) {
	if s.rdb == nil {
		return uuid.Nil, false
	}
	val, err := s.rdb.Get(ctx, currentKeyPrefix+sessionID).Result()
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ── Create ───────────────────────────────────────────────────────────────────
// Transaction row and its batches are written in ONE DB transaction, so
// a failed batch insert can never leave an orphaned transaction behind.
// The session pointer is only set after the commit.

func (s *transactionService) Create(ctx context.Context, sessionID string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	fields := make(map[string]string)
	customerName := strings.TrimSpace(req.CustomerName)
	licensePlate := strings.ToUpper(strings.TrimSpace(req.LicensePlate))
	if customerName == "" {
		fields["customer_name"] = "Vui lòng nhập tên khách hàng"
	}
	if licensePlate == "" {
		fields["license_plate"] = "Vui lòng nhập biển số xe"
	}
	if len(req.Batches) == 0 {
		fields["batches"] = "Vui lòng thêm ít nhất một lô gạo"
	}
	for _, b := range req.Batches {
		if strings.TrimSpace(b.RiceType) == "" {
			fields["batches"] = "Vui lòng chọn loại gạo"
		}
		if !b.UnitPrice.IsPositive() {
			fields["batches"] = "Đơn giá phải lớn hơn 0"
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	t := model.Transaction{
		CustomerName:  customerName,
		LicensePlate:  licensePlate,
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentUnpaid,
	}
	if req.CustomerID != nil {
		if cid, err := uuid.Parse(*req.CustomerID); err == nil {
			t.CustomerID = &cid
		}
	}
	for i, b := range req.Batches {
		t.RiceBatches = append(t.RiceBatches, model.RiceBatch{
			RiceType:   strings.TrimSpace(b.RiceType),
			UnitPrice:  b.UnitPrice,
			BatchOrder: i,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &t)
	})
	if txErr != nil {
		return nil, wrapPersistence("tạo chuyến xe", txErr)
	}

	s.setCurrent(ctx, sessionID, t.ID)
	return transactionToResponse(&t, true), nil
}

// ── Weights ──────────────────────────────────────────────────────────────────

func (s *transactionService) AddWeight(ctx context.Context, transactionID uuid.UUID, req dto.AddWeightRequest) (*dto.TransactionResponse, error) {
	if !req.Weight.IsPositive() {
		return nil, NewValidationError("weight", "Khối lượng phải lớn hơn 0")
	}
	t, err := s.repo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, wrapPersistence("tải chuyến xe", err)
	}
	if t.Status != model.StatusPending {
		return nil, &InvalidStateError{Msg: "Chuyến xe đã hoàn thành, không thể thêm bao"}
	}

	// Count from the DB rather than the preload so concurrent sessions
	// weighing the same truck still get contiguous indices.
	n, err := s.weights.CountByTransaction(ctx, transactionID)
	if err != nil {
		return nil, wrapPersistence("đếm bao cân", err)
	}

	w := model.WeighingDetail{
		TransactionID: transactionID,
		Weight:        req.Weight,
		OrderIndex:    int(n),
	}
	if req.BatchID != nil {
		if bid, err := uuid.Parse(*req.BatchID); err == nil {
			w.RiceBatchID = &bid
		}
	}
	if err := s.weights.Create(ctx, &w); err != nil {
		return nil, wrapPersistence("lưu khối lượng", err)
	}

	t.Weights = append(t.Weights, w)
	return transactionToResponse(t, true), nil
}

func (s *transactionService) UpdateWeight(ctx context.Context, weightID uuid.UUID, req dto.UpdateWeightRequest) (*dto.TransactionResponse, error) {
	if !req.Weight.IsPositive() {
		return nil, NewValidationError("weight", "Khối lượng phải lớn hơn 0")
	}
	w, err := s.weights.FindByID(ctx, weightID)
	if err != nil {
		return nil, wrapPersistence("tải bao cân", err)
	}
	t, err := s.repo.FindByID(ctx, w.TransactionID)
	if err != nil {
		return nil, wrapPersistence("tải chuyến xe", err)
	}
	if t.Status != model.StatusPending {
		return nil, &InvalidStateError{Msg: "Chuyến xe đã hoàn thành, không thể sửa bao"}
	}
	if err := s.weights.UpdateValue(ctx, weightID, req.Weight); err != nil {
		return nil, wrapPersistence("cập nhật khối lượng", err)
	}
	return s.GetByID(ctx, w.TransactionID)
}

func (s *transactionService) DeleteWeight(ctx context.Context, weightID uuid.UUID) (*dto.TransactionResponse, error) {
	w, err := s.weights.FindByID(ctx, weightID)
	if err != nil {
		return nil, wrapPersistence("tải bao cân", err)
	}
	t, err := s.repo.FindByID(ctx, w.TransactionID)
	if err != nil {
		return nil, wrapPersistence("tải chuyến xe", err)
	}
	if t.Status != model.StatusPending {
		return nil, &InvalidStateError{Msg: "Chuyến xe đã hoàn thành, không thể xóa bao"}
	}
	txErr := runTx(ctx, s.weights.DB(), func(tx *gorm.DB) error {
		return s.weights.DeleteAndRenumber(ctx, tx, weightID)
	})
	if txErr != nil {
		return nil, wrapPersistence("xóa bao cân", txErr)
	}
	return s.GetByID(ctx, w.TransactionID)
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func (s *transactionService) Complete(ctx context.Context, sessionID string, id uuid.UUID) (*dto.TransactionResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapPersistence("tải chuyến xe", err)
	}
	if t.Status != model.StatusPending {
		return nil, &InvalidStateError{Msg: "Chuyến xe đã hoàn thành"}
	}
	if len(t.Weights) == 0 {
		return nil, &InvalidStateError{Msg: "Chưa cân bao nào, không thể hoàn thành chuyến xe"}
	}

	if err := s.repo.UpdateStatus(ctx, id, model.StatusCompleted); err != nil {
		return nil, wrapPersistence("hoàn thành chuyến xe", err)
	}
	t.Status = model.StatusCompleted
	s.clearCurrent(ctx, sessionID)

	log.Info().
		Str("transaction_id", id.String()).
		Str("customer", t.CustomerName).
		Int("bags", len(t.Weights)).
		Msg("transaction completed")
	return transactionToResponse(t, true), nil
}

func (s *transactionService) Delete(ctx context.Context, sessionID string, id uuid.UUID, confirmed bool) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return wrapPersistence("tải chuyến xe", err)
	}
	if t.Status == model.StatusCompleted && !confirmed {
		return &InvalidStateError{Msg: "Xóa chuyến xe đã hoàn thành cần mã xác nhận"}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if txErr != nil {
		return wrapPersistence("xóa chuyến xe", txErr)
	}

	if cur, ok := s.currentID(ctx, sessionID); ok && cur == id {
		s.clearCurrent(ctx, sessionID)
	}
	log.Info().
		Str("transaction_id", id.String()).
		Str("status", t.Status).
		Msg("transaction deleted")
	return nil
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *transactionService) GetByID(ctx context.Context, id uuid.UUID) (*dto.TransactionResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapPersistence("tải chuyến xe", err)
	}
	return transactionToResponse(t, true), nil
}

func (s *transactionService) GetCurrent(ctx context.Context, sessionID string) (*dto.CurrentTransactionResponse, error) {
	if id, ok := s.currentID(ctx, sessionID); ok {
		t, err := s.repo.FindByID(ctx, id)
		if err == nil && t.Status == model.StatusPending {
			return &dto.CurrentTransactionResponse{Transaction: transactionToResponse(t, true)}, nil
		}
		// Stale pointer — completed elsewhere or row gone.
		s.clearCurrent(ctx, sessionID)
	}

	t, err := s.repo.FindLatestPending(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.CurrentTransactionResponse{}, nil
		}
		return nil, wrapPersistence("tải chuyến xe hiện tại", err)
	}
	s.setCurrent(ctx, sessionID, t.ID)
	return &dto.CurrentTransactionResponse{Transaction: transactionToResponse(t, true)}, nil
}

func (s *transactionService) List(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Status == "" {
		filter.Status = model.StatusCompleted
	}
	ts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, wrapPersistence("tải danh sách chuyến xe", err)
	}
	items := make([]dto.TransactionResponse, 0, len(ts))
	for i := range ts {
		items = append(items, *transactionToResponse(&ts[i], true))
	}
	return &dto.TransactionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func transactionToResponse(t *model.Transaction, withSummary bool) *dto.TransactionResponse {
	batches := make([]dto.BatchResponse, 0, len(t.RiceBatches))
	for _, b := range t.RiceBatches {
		batches = append(batches, dto.BatchResponse{
			ID:         b.ID.String(),
			RiceType:   b.RiceType,
			UnitPrice:  b.UnitPrice,
			BatchOrder: b.BatchOrder,
		})
	}
	weights := make([]dto.WeightResponse, 0, len(t.Weights))
	for _, w := range t.Weights {
		wr := dto.WeightResponse{
			ID:         w.ID.String(),
			Weight:     w.Weight,
			OrderIndex: w.OrderIndex,
		}
		if w.RiceBatchID != nil {
			bid := w.RiceBatchID.String()
			wr.BatchID = &bid
		}
		weights = append(weights, wr)
	}

	resp := &dto.TransactionResponse{
		ID:            t.ID.String(),
		CustomerName:  t.CustomerName,
		LicensePlate:  t.LicensePlate,
		Status:        t.Status,
		PaymentStatus: t.PaymentStatus,
		RiceType:      t.RiceType,
		UnitPrice:     t.UnitPrice,
		Batches:       batches,
		Weights:       weights,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
	if t.PaymentDate != nil {
		d := t.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &d
	}
	if withSummary {
		sum := summaryToResponse(model.Summarize(t))
		resp.Summary = &sum
	}
	return resp
}
