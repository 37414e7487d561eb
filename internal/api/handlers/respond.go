package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// bindFilter reads the filter query parameters.
func bindFilter(c *gin.Context) domain.FilterParams {
	var params domain.FilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		log.Debug().Err(err).Msg("filter binding failed, using empty filter")
	}
	return params
}

// respondError maps service errors onto status codes and the
// {"success": false, "error": ...} envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success":      false,
			"error":        domain.RateLimitMessage,
			"rate_limited": true,
		})
	case errors.Is(err, domain.ErrNothingToExport):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data to export"})
	case errors.Is(err, domain.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
