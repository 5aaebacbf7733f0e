package repository

import (
	"context"

	"riceweigh/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RicePriceRepository interface {
	List(ctx context.Context) ([]model.RicePrice, error)
	Upsert(ctx context.Context, riceType string, price decimal.Decimal) error
}

type ricePriceRepo struct{ db *gorm.DB }

func NewRicePriceRepository(db *gorm.DB) RicePriceRepository { return &ricePriceRepo{db: db} }

func (r *ricePriceRepo) List(ctx context.Context) ([]model.RicePrice, error) {
	var ps []model.RicePrice
	err := r.db.WithContext(ctx).Order("rice_type ASC").Find(&ps).Error
	return ps, err
}

func (r *ricePriceRepo) Upsert(ctx context.Context, riceType string, price decimal.Decimal) error {
	p := model.RicePrice{RiceType: riceType, DefaultPrice: price}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rice_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"default_price", "updated_at"}),
	}).Create(&p).Error
}
