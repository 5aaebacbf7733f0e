package dto

import "github.com/shopspring/decimal"

type UpsertRicePriceRequest struct {
	DefaultPrice decimal.Decimal `json:"default_price" validate:"required"`
}

type RicePriceResponse struct {
	RiceType     string          `json:"rice_type"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

type RicePriceListResponse struct {
	Data []RicePriceResponse `json:"data"`
}
