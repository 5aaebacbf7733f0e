package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RicePrice maps a rice-type label to its default unit price. Used only
// to pre-fill a batch's price when the type is first chosen; the batch
// keeps its own copy from then on.
type RicePrice struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RiceType     string          `gorm:"uniqueIndex;not null"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
