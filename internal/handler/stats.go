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

type StatsHandler struct{ svc service.StatsService }

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) Daily(c *gin.Context) {
	var filter dto.StatsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Daily(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export streams the same daily aggregates as an xlsx workbook.
func (h *StatsHandler) Export(c *gin.Context) {
	var filter dto.StatsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	data, err := h.svc.ExportXLSX(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("thongke_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
