package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
)

type ExportHandler struct {
	service *service.ExportService
}

func NewExportHandler(service *service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

type exportFunc func(ctx context.Context, params domain.FilterParams) (*service.Export, error)

func (h *ExportHandler) serve(c *gin.Context, render exportFunc) {
	exp, err := render(c.Request.Context(), bindFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.FileName))
	c.Data(http.StatusOK, exp.ContentType, exp.Data)
}

func (h *ExportHandler) ExportPDF(c *gin.Context) {
	h.serve(c, h.service.OrderDetailsPDF)
}

func (h *ExportHandler) ExportProductByDayPDF(c *gin.Context) {
	h.serve(c, h.service.ProductByDayPDF)
}

func (h *ExportHandler) ExportCSV(c *gin.Context) {
	h.serve(c, h.service.CSV)
}

func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	h.serve(c, h.service.XLSX)
}

func (h *ExportHandler) History(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	runs, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "runs": runs, "count": len(runs)})
}
