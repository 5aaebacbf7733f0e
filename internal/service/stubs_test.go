package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"riceweigh/internal/dto"
	"riceweigh/internal/model"
	"riceweigh/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubTransactionRepo is an in-memory TransactionRepository.
type stubTransactionRepo struct {
	items map[uuid.UUID]*model.Transaction
	seq   int // creation order for FindLatestPending
	order map[uuid.UUID]int
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{
		items: make(map[uuid.UUID]*model.Transaction),
		order: make(map[uuid.UUID]int),
	}
}

func (r *stubTransactionRepo) Create(_ context.Context, _ *gorm.DB, t *model.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	for i := range t.RiceBatches {
		if t.RiceBatches[i].ID == uuid.Nil {
			t.RiceBatches[i].ID = uuid.New()
		}
		t.RiceBatches[i].TransactionID = t.ID
	}
	r.seq++
	r.order[t.ID] = r.seq
	r.items[t.ID] = t
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTransactionRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Transaction, error) {
	out := []model.Transaction{}
	for _, id := range ids {
		if t, ok := r.items[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTransactionRepo) FindLatestPending(_ context.Context) (*model.Transaction, error) {
	var latest *model.Transaction
	for _, t := range r.items {
		if t.Status != model.StatusPending {
			continue
		}
		if latest == nil || r.order[t.ID] > r.order[latest.ID] {
			latest = t
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *stubTransactionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	t, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	return nil
}

func (r *stubTransactionRepo) MarkPaid(_ context.Context, ids []uuid.UUID, paidAt time.Time) (int64, error) {
	var n int64
	for _, id := range ids {
		t, ok := r.items[id]
		if !ok || t.Status != model.StatusCompleted || t.PaymentStatus != model.PaymentUnpaid {
			continue
		}
		t.PaymentStatus = model.PaymentPaid
		at := paidAt
		t.PaymentDate = &at
		n++
	}
	return n, nil
}

func (r *stubTransactionRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubTransactionRepo) List(_ context.Context, filter dto.TransactionFilter) ([]model.Transaction, int64, error) {
	out := []model.Transaction{}
	for _, t := range r.items {
		if filter.Status != "" && filter.Status != "all" && t.Status != filter.Status {
			continue
		}
		if filter.PaymentStatus != "" && t.PaymentStatus != filter.PaymentStatus {
			continue
		}
		if filter.Customer != "" && t.CustomerName != filter.Customer {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] > r.order[out[j].ID] })
	return out, int64(len(out)), nil
}

func (r *stubTransactionRepo) FindUnpaidByCustomer(_ context.Context, customerName string) ([]model.Transaction, error) {
	out := []model.Transaction{}
	for _, t := range r.items {
		if t.Status != model.StatusCompleted || t.PaymentStatus != model.PaymentUnpaid {
			continue
		}
		if customerName != "" && t.CustomerName != customerName {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] > r.order[out[j].ID] })
	return out, nil
}

func (r *stubTransactionRepo) FindCompletedBetween(_ context.Context, from, to time.Time) ([]model.Transaction, error) {
	out := []model.Transaction{}
	for _, t := range r.items {
		if t.Status != model.StatusCompleted {
			continue
		}
		if t.CreatedAt.Before(from) || !t.CreatedAt.Before(to) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTransactionRepo) DB() *gorm.DB { return nil }

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

// stubWeighingRepo mutates the owning stub transaction's Weights slice
// directly, the way the real repo's rows show up through Preload.
type stubWeighingRepo struct {
	txs *stubTransactionRepo
}

func (r *stubWeighingRepo) Create(_ context.Context, w *model.WeighingDetail) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if _, ok := r.txs.items[w.TransactionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *stubWeighingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.WeighingDetail, error) {
	for _, t := range r.txs.items {
		for i := range t.Weights {
			if t.Weights[i].ID == id {
				return &t.Weights[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubWeighingRepo) UpdateValue(_ context.Context, id uuid.UUID, weight decimal.Decimal) error {
	for _, t := range r.txs.items {
		for i := range t.Weights {
			if t.Weights[i].ID == id {
				t.Weights[i].Weight = weight
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubWeighingRepo) CountByTransaction(_ context.Context, transactionID uuid.UUID) (int64, error) {
	t, ok := r.txs.items[transactionID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return int64(len(t.Weights)), nil
}

func (r *stubWeighingRepo) DeleteAndRenumber(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	for _, t := range r.txs.items {
		for i := range t.Weights {
			if t.Weights[i].ID != id {
				continue
			}
			t.Weights = append(t.Weights[:i], t.Weights[i+1:]...)
			for j := range t.Weights {
				t.Weights[j].OrderIndex = j
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubWeighingRepo) DB() *gorm.DB { return nil }

var _ repository.WeighingRepository = (*stubWeighingRepo)(nil)

// stubCustomerRepo is an in-memory CustomerRepository.
type stubCustomerRepo struct {
	items map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{items: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.items[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) FindByName(_ context.Context, name string) (*model.Customer, error) {
	for _, c := range r.items {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) List(_ context.Context, filter dto.CustomerFilter) ([]model.Customer, error) {
	out := []model.Customer{}
	for _, c := range r.items {
		switch filter.Active {
		case "", "true":
			if !c.IsActive {
				continue
			}
		case "false":
			if c.IsActive {
				continue
			}
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	if _, ok := r.items[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	c, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.IsActive = active
	return nil
}

func (r *stubCustomerRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// stubRicePriceRepo is an in-memory RicePriceRepository.
type stubRicePriceRepo struct {
	prices map[string]decimal.Decimal
}

func newStubRicePriceRepo() *stubRicePriceRepo {
	return &stubRicePriceRepo{prices: make(map[string]decimal.Decimal)}
}

func (r *stubRicePriceRepo) List(_ context.Context) ([]model.RicePrice, error) {
	types := make([]string, 0, len(r.prices))
	for t := range r.prices {
		types = append(types, t)
	}
	sort.Strings(types)
	out := make([]model.RicePrice, 0, len(types))
	for _, t := range types {
		out = append(out, model.RicePrice{ID: uuid.New(), RiceType: t, DefaultPrice: r.prices[t]})
	}
	return out, nil
}

func (r *stubRicePriceRepo) Upsert(_ context.Context, riceType string, price decimal.Decimal) error {
	r.prices[riceType] = price
	return nil
}

var _ repository.RicePriceRepository = (*stubRicePriceRepo)(nil)
