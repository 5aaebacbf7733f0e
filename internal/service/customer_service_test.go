package service_test

import (
	"context"
	"testing"

	"riceweigh/internal/dto"
	"riceweigh/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestCreateCustomer(t *testing.T) {
	svc := service.NewCustomerService(newStubCustomerRepo())

	resp, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "  Anh Tư  ",
		Phone: strp("0909123456"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Anh Tư", resp.Name)
	assert.Equal(t, "customer", resp.Type)
	assert.True(t, resp.IsActive)

	_, err = svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "   "})
	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCustomerListFiltersInactive(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := service.NewCustomerService(repo)

	a, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Cô Ba"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Anh Tư"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), uuid.MustParse(a.ID)))

	// Default listing is the autocomplete source: active only.
	active, err := svc.List(context.Background(), dto.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Anh Tư", active[0].Name)

	all, err := svc.List(context.Background(), dto.CustomerFilter{Active: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Reactivate(context.Background(), uuid.MustParse(a.ID)))
	active, err = svc.List(context.Background(), dto.CustomerFilter{})
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestUpdateCustomer(t *testing.T) {
	svc := service.NewCustomerService(newStubCustomerRepo())

	created, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Cô Ba"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), uuid.MustParse(created.ID), dto.UpdateCustomerRequest{
		Name: "Cô Ba Gạo",
		Type: "partner",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cô Ba Gạo", updated.Name)
	assert.Equal(t, "partner", updated.Type)
}

func TestHardDeleteCustomerNeedsConfirmation(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := service.NewCustomerService(repo)

	created, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Cô Ba"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	err = svc.HardDelete(context.Background(), id, false)
	var ise *service.InvalidStateError
	require.ErrorAs(t, err, &ise)
	assert.Len(t, repo.items, 1)

	require.NoError(t, svc.HardDelete(context.Background(), id, true))
	assert.Empty(t, repo.items)
}
