package worker

// invoice_worker.go
// Processes invoice jobs from QueueInvoice: loads the selected
// transactions, renders the payment invoice PDF, and — when a
// recipient address is present — chains an email job. Fire and forget:
// a failure is logged, never retried, and never blocks the request
// that enqueued it.

import (
	"context"
	"encoding/json"
	"time"

	"riceweigh/internal/infra"
	"riceweigh/internal/model"
	"riceweigh/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// InvoiceJobPayload is the job envelope sent to QueueInvoice.
type InvoiceJobPayload struct {
	CustomerName   string   `json:"customer_name"`
	TransactionIDs []string `json:"transaction_ids"`
	ToEmail        *string  `json:"to_email,omitempty"`
}

type InvoiceWorker struct {
	txRepo         repository.TransactionRepository
	dispatcher     *Dispatcher
	businessName   string
	pdfStoragePath string
}

func NewInvoiceWorker(
	txRepo repository.TransactionRepository,
	dispatcher *Dispatcher,
	businessName, pdfStoragePath string,
) *InvoiceWorker {
	return &InvoiceWorker{
		txRepo:         txRepo,
		dispatcher:     dispatcher,
		businessName:   businessName,
		pdfStoragePath: pdfStoragePath,
	}
}

func (w *InvoiceWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload InvoiceJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("invoice_worker: invalid payload")
		return
	}

	ids := make([]uuid.UUID, 0, len(payload.TransactionIDs))
	for _, s := range payload.TransactionIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			log.Warn().Str("id", s).Msg("invoice_worker: skipping bad transaction id")
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return
	}

	ts, err := w.txRepo.FindByIDs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("invoice_worker: fetch transactions failed")
		return
	}

	data := BuildInvoiceData(w.businessName, payload.CustomerName, ts)
	path, err := infra.GenerateInvoicePDF(data, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Msg("invoice_worker: PDF generation failed")
		return
	}
	log.Info().
		Str("customer", payload.CustomerName).
		Int("transactions", len(ts)).
		Str("pdf", path).
		Msg("invoice generated")

	if payload.ToEmail != nil && *payload.ToEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ToEmail,
			Subject: "Hóa đơn thanh toán - " + w.businessName,
			Body:    "Kính gửi " + payload.CustomerName + ",\n\nHóa đơn thanh toán đính kèm.\n\n" + w.businessName,
			PDFPath: path,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Error().Err(err).Msg("invoice_worker: enqueue email failed")
		}
	}
}

// BuildInvoiceData flattens a set of completed transactions into the
// renderer's shape. Amounts come from the same summary derivation the
// weighing screen uses.
func BuildInvoiceData(businessName, customerName string, ts []model.Transaction) infra.InvoiceData {
	data := infra.InvoiceData{
		BusinessName: businessName,
		CustomerName: customerName,
		IssuedAt:     time.Now().Format("2006-01-02"),
		Total:        decimal.Zero,
	}
	for i := range ts {
		sum := model.Summarize(&ts[i])
		data.Lines = append(data.Lines, infra.InvoiceLine{
			Date:      ts[i].CreatedAt.Format("02/01"),
			Plate:     ts[i].LicensePlate,
			RiceTypes: ts[i].RiceTypeLabel(),
			Bags:      sum.TotalBags,
			Weight:    sum.TotalWeight,
			Amount:    sum.TotalAmount,
		})
		data.Total = data.Total.Add(sum.TotalAmount)
	}
	return data
}
