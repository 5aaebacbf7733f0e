package service

import (
	"context"
	"strings"
	"time"

	"riceweigh/internal/dto"
	"riceweigh/internal/model"
	"riceweigh/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	List(ctx context.Context, filter dto.CustomerFilter) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	// Deactivate is the soft-delete path; the row stays for history.
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	// HardDelete removes the row permanently. Callers must have passed
	// the two-step confirmation first.
	HardDelete(ctx context.Context, id uuid.UUID, confirmed bool) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("name", "Vui lòng nhập tên khách hàng")
	}
	ctype := req.Type
	if ctype == "" {
		ctype = model.CustomerTypeCustomer
	}

	c := model.Customer{
		Name:     name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		Notes:    req.Notes,
		Type:     ctype,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, wrapPersistence("tạo khách hàng", err)
	}
	return customerToResponse(&c), nil
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) ([]dto.CustomerResponse, error) {
	cs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, wrapPersistence("tải danh sách khách hàng", err)
	}
	out := make([]dto.CustomerResponse, 0, len(cs))
	for i := range cs {
		out = append(out, *customerToResponse(&cs[i]))
	}
	return out, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("name", "Vui lòng nhập tên khách hàng")
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapPersistence("tải khách hàng", err)
	}

	c.Name = name
	c.Phone = req.Phone
	c.Email = req.Email
	c.Address = req.Address
	c.Notes = req.Notes
	if req.Type != "" {
		c.Type = req.Type
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, wrapPersistence("cập nhật khách hàng", err)
	}
	return customerToResponse(c), nil
}

func (s *customerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return wrapPersistence("ẩn khách hàng", s.repo.SetActive(ctx, id, false))
}

func (s *customerService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return wrapPersistence("khôi phục khách hàng", s.repo.SetActive(ctx, id, true))
}

func (s *customerService) HardDelete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return &InvalidStateError{Msg: "Xóa vĩnh viễn khách hàng cần mã xác nhận"}
	}
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return wrapPersistence("xóa khách hàng", err)
	}
	log.Info().Str("customer_id", id.String()).Msg("customer hard-deleted")
	return nil
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		Type:      c.Type,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
