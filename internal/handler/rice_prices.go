package handler

import (
	"net/http"
	"strings"

	"riceweigh/internal/apierror"
	"riceweigh/internal/dto"
	"riceweigh/internal/service"

	"github.com/gin-gonic/gin"
)

type RicePricesHandler struct{ svc service.RicePriceService }

func NewRicePricesHandler(svc service.RicePriceService) *RicePricesHandler {
	return &RicePricesHandler{svc: svc}
}

func (h *RicePricesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns the default price for one rice type, falling back to the
// plain-rice rate when the type has no configured row. The form calls
// this to pre-fill a batch's unit price when a type is chosen.
func (h *RicePricesHandler) Get(c *gin.Context) {
	riceType := strings.TrimSpace(c.Param("rice_type"))
	if riceType == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Loại gạo không hợp lệ"))
		return
	}
	price, err := h.svc.PriceFor(c.Request.Context(), riceType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RicePriceResponse{RiceType: riceType, DefaultPrice: price})
}

// Upsert sets the default price for a rice type, creating the row when
// the type is new. The type comes from the path so it can carry accents
// ("Gạo nếp") without JSON-key escaping headaches.
func (h *RicePricesHandler) Upsert(c *gin.Context) {
	riceType := strings.TrimSpace(c.Param("rice_type"))
	if riceType == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Loại gạo không hợp lệ"))
		return
	}
	var req dto.UpsertRicePriceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), riceType, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
