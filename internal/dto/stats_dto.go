package dto

import "github.com/shopspring/decimal"

// StatsFilter is bound from query string of GET /v1/stats/daily.
type StatsFilter struct {
	From string `form:"from"` // YYYY-MM-DD inclusive; empty = 30 days back
	To   string `form:"to"`   // YYYY-MM-DD inclusive; empty = today
}

// DailyStat is one day's aggregate over completed transactions.
type DailyStat struct {
	Date    string          `json:"date"`
	Trucks  int             `json:"trucks"`
	Bags    int             `json:"bags"`
	Weight  decimal.Decimal `json:"weight"`
	Revenue decimal.Decimal `json:"revenue"`
}

type DailyStatsResponse struct {
	Data []DailyStat `json:"data"`
}
