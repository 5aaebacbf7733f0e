package infra

// pdf.go — Payment invoice generation using go-pdf/fpdf.
// Renders an A5 invoice for a set of a customer's completed trucks:
//   - Business name header
//   - Customer and issue date
//   - One row per truck (date, plate, rice types, bags, weight, amount)
//   - Bold grand total
//
// fpdf's core fonts carry no Vietnamese glyphs, so fixed labels are
// written unaccented (standard practice on thermal/receipt printers);
// free-text values go through the cp1252 translator.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// InvoiceLine is one truck on the invoice.
type InvoiceLine struct {
	Date      string
	Plate     string
	RiceTypes string
	Bags      int
	Weight    decimal.Decimal
	Amount    decimal.Decimal
}

// InvoiceData is everything the renderer needs; amounts are computed by
// the caller so the invoice always matches the weighing summary.
type InvoiceData struct {
	BusinessName string
	CustomerName string
	IssuedAt     string
	Lines        []InvoiceLine
	Total        decimal.Decimal
}

// FormatVND renders an amount the way the weighing app shows money:
// grouped thousands, no decimals, trailing đ.
func FormatVND(amount decimal.Decimal) string {
	s := amount.Round(0).String()
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out) + " d"
	}
	return string(out) + " d"
}

// RenderInvoicePDF renders the invoice and returns the raw PDF bytes.
func RenderInvoicePDF(data InvoiceData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr(data.BusinessName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "HOA DON THANH TOAN", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, tr("Khach hang: "+data.CustomerName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, "Ngay lap: "+data.IssuedAt, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.18 // date
	col2 := contentW * 0.28 // plate + rice
	col3 := contentW * 0.10 // bags
	col4 := contentW * 0.16 // weight
	col5 := contentW * 0.28 // amount

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Ngay", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Xe / Loai gao", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "Bao", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 5, "KL (kg)", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 5, "Thanh tien", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, line := range data.Lines {
		desc := line.Plate
		if line.RiceTypes != "" {
			desc += " - " + line.RiceTypes
		}
		if r := []rune(desc); len(r) > 26 {
			desc = string(r[:25]) + "…"
		}
		pdf.CellFormat(col1, 5, line.Date, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, tr(desc), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, fmt.Sprintf("%d", line.Bags), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 5, line.Weight.StringFixed(1), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 5, FormatVND(line.Amount), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 7, "TONG CONG:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4+col5, 7, FormatVND(data.Total), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "Cam on quy khach!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateInvoicePDF renders the invoice and writes it under storagePath.
// Returns the absolute path to the generated file.
func GenerateInvoicePDF(data InvoiceData, storagePath string) (string, error) {
	raw, err := RenderInvoicePDF(data)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	fileName := fmt.Sprintf("invoice_%s_%s.pdf", sanitizeFileName(data.CustomerName), data.IssuedAt)
	filePath := filepath.Join(storagePath, fileName)
	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func sanitizeFileName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "khach"
	}
	return string(out)
}
