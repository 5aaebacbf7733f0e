package service

import (
	"context"
	"time"

	"riceweigh/internal/dto"
	"riceweigh/internal/infra"
	"riceweigh/internal/model"
	"riceweigh/internal/repository"
	"riceweigh/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type PaymentService interface {
	// MarkPaid flips unpaid→paid on completed transactions. Rows already
	// paid or still pending are skipped, not errored: the screen may
	// race a second device.
	MarkPaid(ctx context.Context, req dto.MarkPaidRequest) (*dto.MarkPaidResponse, error)
	Outstanding(ctx context.Context, filter dto.OutstandingFilter) (*dto.OutstandingResponse, error)
	// RenderInvoice renders the invoice PDF synchronously for download.
	RenderInvoice(ctx context.Context, req dto.InvoiceRequest) ([]byte, error)
	// ShareInvoice enqueues an async render + mail-out.
	ShareInvoice(ctx context.Context, req dto.ShareInvoiceRequest) error
}

type paymentService struct {
	txRepo       repository.TransactionRepository
	customerRepo repository.CustomerRepository
	dispatcher   *worker.Dispatcher
	businessName string
}

func NewPaymentService(
	txRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	dispatcher *worker.Dispatcher,
	businessName string,
) PaymentService {
	return &paymentService{
		txRepo:       txRepo,
		customerRepo: customerRepo,
		dispatcher:   dispatcher,
		businessName: businessName,
	}
}

func (s *paymentService) MarkPaid(ctx context.Context, req dto.MarkPaidRequest) (*dto.MarkPaidResponse, error) {
	ids, err := parseUUIDs(req.TransactionIDs)
	if err != nil {
		return nil, err
	}
	updated, dbErr := s.txRepo.MarkPaid(ctx, ids, time.Now())
	if dbErr != nil {
		return nil, wrapPersistence("đánh dấu đã thanh toán", dbErr)
	}
	log.Info().Int64("updated", updated).Msg("transactions marked paid")
	return &dto.MarkPaidResponse{Updated: int(updated)}, nil
}

func (s *paymentService) Outstanding(ctx context.Context, filter dto.OutstandingFilter) (*dto.OutstandingResponse, error) {
	ts, err := s.txRepo.FindUnpaidByCustomer(ctx, filter.Customer)
	if err != nil {
		return nil, wrapPersistence("tải công nợ", err)
	}

	// Group by customer name, preserving newest-first transaction order.
	order := []string{}
	grouped := map[string]*dto.OutstandingEntry{}
	for i := range ts {
		name := ts[i].CustomerName
		entry, ok := grouped[name]
		if !ok {
			entry = &dto.OutstandingEntry{CustomerName: name, Total: decimal.Zero}
			grouped[name] = entry
			order = append(order, name)
		}
		entry.Total = entry.Total.Add(model.Summarize(&ts[i]).TotalAmount)
		entry.Transactions = append(entry.Transactions, *transactionToResponse(&ts[i], true))
	}

	resp := &dto.OutstandingResponse{Data: make([]dto.OutstandingEntry, 0, len(order))}
	for _, name := range order {
		resp.Data = append(resp.Data, *grouped[name])
	}
	return resp, nil
}

func (s *paymentService) RenderInvoice(ctx context.Context, req dto.InvoiceRequest) ([]byte, error) {
	ids, err := parseUUIDs(req.TransactionIDs)
	if err != nil {
		return nil, err
	}
	ts, dbErr := s.txRepo.FindByIDs(ctx, ids)
	if dbErr != nil {
		return nil, wrapPersistence("tải chuyến xe", dbErr)
	}
	if len(ts) == 0 {
		return nil, NewValidationError("transaction_ids", "Không tìm thấy chuyến xe nào")
	}

	data := worker.BuildInvoiceData(s.businessName, req.CustomerName, ts)
	raw, renderErr := infra.RenderInvoicePDF(data)
	if renderErr != nil {
		return nil, wrapPersistence("tạo hóa đơn", renderErr)
	}
	return raw, nil
}

func (s *paymentService) ShareInvoice(ctx context.Context, req dto.ShareInvoiceRequest) error {
	toEmail := req.Email
	if toEmail == nil {
		// Fall back to the directory entry's email.
		if c, err := s.customerRepo.FindByName(ctx, req.CustomerName); err == nil && c.Email != nil {
			toEmail = c.Email
		}
	}
	if toEmail == nil || *toEmail == "" {
		return NewValidationError("email", "Khách hàng chưa có email để gửi hóa đơn")
	}
	if s.dispatcher == nil {
		return &InvalidStateError{Msg: "Chức năng gửi hóa đơn chưa được bật"}
	}

	payload := worker.InvoiceJobPayload{
		CustomerName:   req.CustomerName,
		TransactionIDs: req.TransactionIDs,
		ToEmail:        toEmail,
	}
	if err := s.dispatcher.EnqueueInvoice(ctx, payload); err != nil {
		return wrapPersistence("gửi hóa đơn", err)
	}
	return nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, NewValidationError("transaction_ids", "ID không hợp lệ: "+s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
