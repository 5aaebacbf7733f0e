package handler

import (
	"fmt"
	"net/http"
	"time"

	"riceweigh/internal/apierror"
	"riceweigh/internal/dto"
	"riceweigh/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentsHandler struct{ svc service.PaymentService }

func NewPaymentsHandler(svc service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

// MarkPaid settles a set of completed transactions in one go. Rows that
// are not completed-and-unpaid are skipped; the response reports how
// many actually flipped.
func (h *PaymentsHandler) MarkPaid(c *gin.Context) {
	var req dto.MarkPaidRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.MarkPaid(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentsHandler) Outstanding(c *gin.Context) {
	var filter dto.OutstandingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Outstanding(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Invoice renders the PDF synchronously and streams it for download.
func (h *PaymentsHandler) Invoice(c *gin.Context) {
	var req dto.InvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pdf, err := h.svc.RenderInvoice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("hoadon_%s.pdf", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ShareInvoice queues the render-and-email job; the worker pool picks
// it up, so the scale UI never blocks on SMTP.
func (h *PaymentsHandler) ShareInvoice(c *gin.Context) {
	var req dto.ShareInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ShareInvoice(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}
