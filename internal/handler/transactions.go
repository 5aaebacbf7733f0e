package handler

import (
	"net/http"

	"riceweigh/internal/apierror"
	"riceweigh/internal/dto"
	"riceweigh/internal/middleware"
	"riceweigh/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransactionsHandler struct {
	svc     service.TransactionService
	confirm service.ConfirmService
}

func NewTransactionsHandler(svc service.TransactionService, confirm service.ConfirmService) *TransactionsHandler {
	return &TransactionsHandler{svc: svc, confirm: confirm}
}

// Create opens a new truck visit and makes it the session's current one.
func (h *TransactionsHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TransactionsHandler) List(c *gin.Context) {
	var filter dto.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Tham số phân trang không hợp lệ"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCurrent must be routed before GET /:id — "current" is not a UUID.
func (h *TransactionsHandler) GetCurrent(c *gin.Context) {
	resp, err := h.svc.GetCurrent(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID không hợp lệ"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionsHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID không hợp lệ"))
		return
	}
	resp, err := h.svc.Complete(c.Request.Context(), middleware.GetSessionID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a transaction. Pending ones go without ceremony;
// completed ones require a confirmation token from POST /v1/confirmations,
// presented in the X-Confirm-Token header.
func (h *TransactionsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID không hợp lệ"))
		return
	}
	confirmed := h.confirm.Consume(c.Request.Context(), c.GetHeader("X-Confirm-Token"))
	if err := h.svc.Delete(c.Request.Context(), middleware.GetSessionID(c), id, confirmed); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
