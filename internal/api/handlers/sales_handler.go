package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
)

type SalesHandler struct {
	service *service.SalesService
}

func NewSalesHandler(service *service.SalesService) *SalesHandler {
	return &SalesHandler{service: service}
}

func (h *SalesHandler) Health(c *gin.Context) {
	resp := gin.H{"status": "ok", "message": "sales API is working"}
	if loadedAt, ok := h.service.Status(); ok {
		resp["snapshot_loaded_at"] = loadedAt
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) GetData(c *gin.Context) {
	ds, err := h.service.Records(c.Request.Context(), bindFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	records := recordsView(ds)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

func (h *SalesHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), bindFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryView(summary))
}

func (h *SalesHandler) GetProducts(c *gin.Context) {
	products, err := h.service.Products(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if products == nil {
		products = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *SalesHandler) GetDateRange(c *gin.Context) {
	r, err := h.service.DateRange(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date_range": dateRangeView(r)})
}

func (h *SalesHandler) GetPickupDates(c *gin.Context) {
	days, err := h.service.PickupDates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pickup_dates": daysView(days)})
}

// Reload forces a fresh upstream load.
func (h *SalesHandler) Reload(c *gin.Context) {
	res, err := h.service.Reload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	snap := res.Value
	body := gin.H{
		"success":   true,
		"stale":     res.Stale,
		"orders":    len(snap.Orders.Records),
		"items":     len(snap.Items.Records),
		"records":   len(snap.Dataset.Records),
		"loaded_at": snap.LoadedAt,
	}
	if res.Stale {
		body["error"] = res.StaleErr.Error()
		if errors.Is(res.StaleErr, domain.ErrRateLimited) {
			body["error"] = domain.RateLimitMessage
			body["rate_limited"] = true
		}
	}
	c.JSON(http.StatusOK, body)
}
