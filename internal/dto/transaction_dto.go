package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// TransactionFilter is bound from query string of GET /v1/transactions.
type TransactionFilter struct {
	Date          string `form:"date"`                            // YYYY-MM-DD; empty = all
	Status        string `form:"status,default=completed"`        // pending | completed | all
	PaymentStatus string `form:"payment_status"`                  // unpaid | paid | empty = all
	Customer      string `form:"customer"`                        // exact customer name
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type TransactionListResponse struct {
	Data  []TransactionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type BatchRequest struct {
	RiceType  string          `json:"rice_type"  validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

type CreateTransactionRequest struct {
	CustomerName string         `json:"customer_name" validate:"required"`
	LicensePlate string         `json:"license_plate" validate:"required"`
	Batches      []BatchRequest `json:"batches"       validate:"required,min=1,dive"`
	// CustomerID links the transaction to a directory entry when the name
	// was picked from the autocomplete; free-text names leave it unset.
	CustomerID *string `json:"customer_id" validate:"omitempty,uuid"`
}

type AddWeightRequest struct {
	Weight decimal.Decimal `json:"weight" validate:"required"`
	// BatchID selects which rice batch the bag belongs to. Omitted on
	// legacy single-price transactions.
	BatchID *string `json:"batch_id" validate:"omitempty,uuid"`
}

type UpdateWeightRequest struct {
	Weight decimal.Decimal `json:"weight" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BatchResponse struct {
	ID         string          `json:"id"`
	RiceType   string          `json:"rice_type"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	BatchOrder int             `json:"batch_order"`
}

type WeightResponse struct {
	ID         string          `json:"id"`
	Weight     decimal.Decimal `json:"weight"`
	OrderIndex int             `json:"order_index"`
	BatchID    *string         `json:"batch_id,omitempty"`
}

type BatchSummaryResponse struct {
	BatchID   string          `json:"batch_id"`
	RiceType  string          `json:"rice_type"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Bags      int             `json:"bags"`
	Weight    decimal.Decimal `json:"weight"`
	Amount    decimal.Decimal `json:"amount"`
}

type SummaryResponse struct {
	TotalBags      int                    `json:"total_bags"`
	TotalWeight    decimal.Decimal        `json:"total_weight"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	BatchSummaries []BatchSummaryResponse `json:"batch_summaries,omitempty"`
}

type TransactionResponse struct {
	ID            string           `json:"id"`
	CustomerName  string           `json:"customer_name"`
	LicensePlate  string           `json:"license_plate"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`
	PaymentDate   *string          `json:"payment_date,omitempty"`
	RiceType      string           `json:"rice_type,omitempty"`  // legacy
	UnitPrice     decimal.Decimal  `json:"unit_price"`           // legacy
	Batches       []BatchResponse  `json:"batches"`
	Weights       []WeightResponse `json:"weights"`
	Summary       *SummaryResponse `json:"summary,omitempty"`
	CreatedAt     string           `json:"created_at"`
}

// CurrentTransactionResponse is returned by GET /v1/transactions/current.
// Transaction is null when the session has no truck on the scale.
type CurrentTransactionResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
}
