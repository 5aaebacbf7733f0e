package infra

// excel.go — statistics export using xuri/excelize.
// One sheet, one row per day: trucks, bags, weight, revenue.

import (
	"bytes"
	"fmt"

	"riceweigh/internal/dto"

	"github.com/xuri/excelize/v2"
)

const statsSheet = "Thống kê"

// RenderStatsXLSX renders daily statistics into an .xlsx workbook and
// returns the raw bytes for HTTP download.
func RenderStatsXLSX(stats []dto.DailyStat) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(statsSheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Ngày", "Số chuyến", "Số bao", "Khối lượng (kg)", "Doanh thu (đ)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(statsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: header: %w", err)
		}
	}

	for row, s := range stats {
		weight, _ := s.Weight.Float64()
		revenue, _ := s.Revenue.Float64()
		values := []interface{}{s.Date, s.Trucks, s.Bags, weight, revenue}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(statsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: row %d: %w", row+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
