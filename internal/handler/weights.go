package handler

import (
	"net/http"

	"riceweigh/internal/apierror"
	"riceweigh/internal/dto"
	"riceweigh/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WeightsHandler manages the per-bag weighing details of a transaction.
// Responses always carry the full refreshed transaction so the scale UI
// can redraw list and running totals from one payload.
type WeightsHandler struct{ svc service.TransactionService }

func NewWeightsHandler(svc service.TransactionService) *WeightsHandler {
	return &WeightsHandler{svc: svc}
}

func (h *WeightsHandler) Add(c *gin.Context) {
	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID không hợp lệ"))
		return
	}
	var req dto.AddWeightRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddWeight(c.Request.Context(), txID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WeightsHandler) Update(c *gin.Context) {
	weightID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID không hợp lệ"))
		return
	}
	var req dto.UpdateWeightRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateWeight(c.Request.Context(), weightID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WeightsHandler) Delete(c *gin.Context) {
	weightID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID không hợp lệ"))
		return
	}
	resp, err := h.svc.DeleteWeight(c.Request.Context(), weightID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
