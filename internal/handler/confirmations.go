package handler

import (
	"net/http"

	"riceweigh/internal/dto"
	"riceweigh/internal/service"

	"github.com/gin-gonic/gin"
)

// ConfirmationsHandler exchanges the destructive-action passcode for a
// one-time token. Rate limited at the router so the short code cannot
// be brute forced from the network.
type ConfirmationsHandler struct{ svc service.ConfirmService }

func NewConfirmationsHandler(svc service.ConfirmService) *ConfirmationsHandler {
	return &ConfirmationsHandler{svc: svc}
}

func (h *ConfirmationsHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmRequest
	if !bindAndValidate(c, &req) {
		return
	}
	token, err := h.svc.Confirm(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ConfirmResponse{Token: token})
}
