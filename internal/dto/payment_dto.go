package dto

import "github.com/shopspring/decimal"

type MarkPaidRequest struct {
	TransactionIDs []string `json:"transaction_ids" validate:"required,min=1,dive,uuid"`
}

type MarkPaidResponse struct {
	Updated int `json:"updated"`
}

// OutstandingFilter is bound from query string of GET /v1/payments/outstanding.
type OutstandingFilter struct {
	Customer string `form:"customer"` // empty = all customers
}

// OutstandingEntry is one customer's unpaid balance across completed trucks.
type OutstandingEntry struct {
	CustomerName string                `json:"customer_name"`
	Total        decimal.Decimal       `json:"total"`
	Transactions []TransactionResponse `json:"transactions"`
}

type OutstandingResponse struct {
	Data []OutstandingEntry `json:"data"`
}

type InvoiceRequest struct {
	CustomerName   string   `json:"customer_name"   validate:"required"`
	TransactionIDs []string `json:"transaction_ids" validate:"required,min=1,dive,uuid"`
}

// ShareInvoiceRequest enqueues an async mail-out of the invoice PDF.
// Email overrides the customer's directory email when present.
type ShareInvoiceRequest struct {
	CustomerName   string   `json:"customer_name"   validate:"required"`
	TransactionIDs []string `json:"transaction_ids" validate:"required,min=1,dive,uuid"`
	Email          *string  `json:"email" validate:"omitempty,email"`
}
