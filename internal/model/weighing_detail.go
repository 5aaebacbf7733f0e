package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WeighingDetail is a single bag on the scale. OrderIndex is the
// zero-based insertion sequence and is renumbered contiguously after
// any deletion. RiceBatchID is nil on legacy single-price transactions.
type WeighingDetail struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RiceBatchID   *uuid.UUID      `gorm:"type:uuid;index"`
	Weight        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OrderIndex    int             `gorm:"not null"`
	CreatedAt     time.Time
}
