package service

import (
	"riceweigh/internal/dto"
	"riceweigh/internal/model"
)

// summaryToResponse maps the derived totals onto the wire shape.
func summaryToResponse(sum model.TransactionSummary) dto.SummaryResponse {
	resp := dto.SummaryResponse{
		TotalBags:   sum.TotalBags,
		TotalWeight: sum.TotalWeight,
		TotalAmount: sum.TotalAmount,
	}
	if sum.BatchSummaries != nil {
		resp.BatchSummaries = make([]dto.BatchSummaryResponse, 0, len(sum.BatchSummaries))
		for _, b := range sum.BatchSummaries {
			resp.BatchSummaries = append(resp.BatchSummaries, dto.BatchSummaryResponse{
				BatchID:   b.BatchID.String(),
				RiceType:  b.RiceType,
				UnitPrice: b.UnitPrice,
				Bags:      b.Bags,
				Weight:    b.Weight,
				Amount:    b.Amount,
			})
		}
	}
	return resp
}
