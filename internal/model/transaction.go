package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction lifecycle status.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Payment sub-state, orthogonal to Status. Only completed transactions
// move to paid; there is no reverse transition.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Transaction is one truck visit: the customer, the plate, the rice
// batches loaded and every bag weighed.
//
// RiceType/UnitPrice are the pre-batch single-price representation.
// Rows written before the rice_batches migration carry their pricing
// here and have no batch rows; both shapes must keep computing the
// same totals, so they stay on the model.
type Transaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerName  string    `gorm:"index;not null"`
	LicensePlate  string    `gorm:"not null"`
	Status        string    `gorm:"not null;default:'pending';index"`
	PaymentStatus string    `gorm:"not null;default:'unpaid';index"`
	PaymentDate   *time.Time
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`

	// Deprecated: legacy single-price fields, see note above.
	RiceType  string          `gorm:"default:''"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	RiceBatches []RiceBatch      `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	Weights     []WeighingDetail `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
}

// HasBatches reports whether the transaction uses per-batch pricing.
// False means the legacy top-level RiceType/UnitPrice apply.
func (t *Transaction) HasBatches() bool { return len(t.RiceBatches) > 0 }
