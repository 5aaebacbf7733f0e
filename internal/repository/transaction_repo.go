package repository

import (
	"context"
	"time"

	"riceweigh/internal/dto"
	"riceweigh/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Transaction, error)
	// FindLatestPending returns the newest pending transaction — the
	// authoritative fallback when the session pointer cache is cold.
	FindLatestPending(ctx context.Context) (*model.Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	MarkPaid(ctx context.Context, ids []uuid.UUID, paidAt time.Time) (int64, error)
	// Delete removes the transaction row; batches and weights go with it
	// via ON DELETE CASCADE.
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, filter dto.TransactionFilter) ([]model.Transaction, int64, error)
	FindUnpaidByCustomer(ctx context.Context, customerName string) ([]model.Transaction, error)
	FindCompletedBetween(ctx context.Context, from, to time.Time) ([]model.Transaction, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository { return &transactionRepo{db: db} }

func (r *transactionRepo) DB() *gorm.DB { return r.db }

func (r *transactionRepo) Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).
		Preload("RiceBatches", func(db *gorm.DB) *gorm.DB { return db.Order("batch_order ASC") }).
		Preload("Weights", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		First(&t, id).Error
	return &t, err
}

func (r *transactionRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Transaction, error) {
	var ts []model.Transaction
	err := r.db.WithContext(ctx).
		Preload("RiceBatches", func(db *gorm.DB) *gorm.DB { return db.Order("batch_order ASC") }).
		Preload("Weights", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&ts).Error
	return ts, err
}

func (r *transactionRepo) FindLatestPending(ctx context.Context) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).
		Preload("RiceBatches", func(db *gorm.DB) *gorm.DB { return db.Order("batch_order ASC") }).
		Preload("Weights", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Where("status = ?", model.StatusPending).
		Order("created_at DESC").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *transactionRepo) MarkPaid(ctx context.Context, ids []uuid.UUID, paidAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id IN ? AND status = ? AND payment_status = ?",
			ids, model.StatusCompleted, model.PaymentUnpaid).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentPaid,
			"payment_date":   paidAt,
		})
	return res.RowsAffected, res.Error
}

func (r *transactionRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.Transaction{}, id).Error
}

func (r *transactionRepo) List(ctx context.Context, filter dto.TransactionFilter) ([]model.Transaction, int64, error) {
	var ts []model.Transaction
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Transaction{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		q = q.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.Customer != "" {
		q = q.Where("customer_name = ?", filter.Customer)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("RiceBatches", func(db *gorm.DB) *gorm.DB { return db.Order("batch_order ASC") }).
		Preload("Weights", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ts).Error

	return ts, total, err
}

func (r *transactionRepo) FindUnpaidByCustomer(ctx context.Context, customerName string) ([]model.Transaction, error) {
	var ts []model.Transaction
	q := r.db.WithContext(ctx).
		Preload("RiceBatches", func(db *gorm.DB) *gorm.DB { return db.Order("batch_order ASC") }).
		Preload("Weights", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Where("status = ? AND payment_status = ?", model.StatusCompleted, model.PaymentUnpaid)
	if customerName != "" {
		q = q.Where("customer_name = ?", customerName)
	}
	err := q.Order("created_at DESC").Find(&ts).Error
	return ts, err
}

func (r *transactionRepo) FindCompletedBetween(ctx context.Context, from, to time.Time) ([]model.Transaction, error) {
	var ts []model.Transaction
	err := r.db.WithContext(ctx).
		Preload("RiceBatches", func(db *gorm.DB) *gorm.DB { return db.Order("batch_order ASC") }).
		Preload("Weights", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Where("status = ? AND created_at >= ? AND created_at < ?", model.StatusCompleted, from, to).
		Order("created_at ASC").
		Find(&ts).Error
	return ts, err
}
