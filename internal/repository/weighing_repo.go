package repository

import (
	"context"

	"riceweigh/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WeighingRepository interface {
	Create(ctx context.Context, w *model.WeighingDetail) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.WeighingDetail, error)
	UpdateValue(ctx context.Context, id uuid.UUID, weight decimal.Decimal) error
	CountByTransaction(ctx context.Context, transactionID uuid.UUID) (int64, error)
	// DeleteAndRenumber removes the entry and rewrites order_index on the
	// remaining rows so indices stay contiguous 0..n-1 in insertion
	// order, all inside one DB transaction.
	DeleteAndRenumber(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type weighingRepo struct{ db *gorm.DB }

func NewWeighingRepository(db *gorm.DB) WeighingRepository { return &weighingRepo{db: db} }

func (r *weighingRepo) DB() *gorm.DB { return r.db }

func (r *weighingRepo) Create(ctx context.Context, w *model.WeighingDetail) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *weighingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.WeighingDetail, error) {
	var w model.WeighingDetail
	err := r.db.WithContext(ctx).First(&w, id).Error
	return &w, err
}

func (r *weighingRepo) UpdateValue(ctx context.Context, id uuid.UUID, weight decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.WeighingDetail{}).
		Where("id = ?", id).Update("weight", weight).Error
}

func (r *weighingRepo) CountByTransaction(ctx context.Context, transactionID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.WeighingDetail{}).
		Where("transaction_id = ?", transactionID).Count(&n).Error
	return n, err
}

func (r *weighingRepo) DeleteAndRenumber(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	var victim model.WeighingDetail
	if err := tx.WithContext(ctx).First(&victim, id).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Delete(&model.WeighingDetail{}, id).Error; err != nil {
		return err
	}

	var rest []model.WeighingDetail
	if err := tx.WithContext(ctx).
		Where("transaction_id = ?", victim.TransactionID).
		Order("order_index ASC").
		Find(&rest).Error; err != nil {
		return err
	}
	for i := range rest {
		if rest[i].OrderIndex == i {
			continue
		}
		if err := tx.WithContext(ctx).Model(&model.WeighingDetail{}).
			Where("id = ?", rest[i].ID).Update("order_index", i).Error; err != nil {
			return err
		}
	}
	return nil
}
