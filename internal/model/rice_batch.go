package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RiceBatch is one priced lot of rice inside a transaction. BatchOrder
// fixes the display sequence (array position at creation time).
type RiceBatch struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RiceType      string          `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BatchOrder    int             `gorm:"not null;default:0"`
	CreatedAt     time.Time
}
