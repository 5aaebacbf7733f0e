package infra_test

import (
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riceweigh/internal/infra"
)

func TestRenderInvoicePDFTruncatesLongVietnameseDescription(t *testing.T) {
	// Long enough to hit the 26-rune cap, every rune multi-byte.
	riceTypes := "Gạo thơm Jasmine đặc biệt thượng hạng xuất khẩu"
	require.Greater(t, utf8.RuneCountInString("65C-12345 - "+riceTypes), 26)

	raw, err := infra.RenderInvoicePDF(infra.InvoiceData{
		BusinessName: "Vựa gạo Minh Tâm",
		CustomerName: "Nguyễn Văn A",
		IssuedAt:     "2026-08-10 09:00",
		Lines: []infra.InvoiceLine{
			{
				Date:      "2026-08-10",
				Plate:     "65C-12345",
				RiceTypes: riceTypes,
				Bags:      3,
				Weight:    decimal.RequireFromString("150"),
				Amount:    decimal.RequireFromString("1800000"),
			},
		},
		Total: decimal.RequireFromString("1800000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestFormatVND(t *testing.T) {
	cases := map[string]string{
		"0":        "0 d",
		"6000":     "6.000 d",
		"1260000":  "1.260.000 d",
		"-450000":  "-450.000 d",
		"18000.49": "18.000 d",
	}
	for in, want := range cases {
		assert.Equal(t, want, infra.FormatVND(decimal.RequireFromString(in)))
	}
}
