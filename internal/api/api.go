// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/api/handlers"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/api/middleware"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
)

type Services struct {
	Sales   *service.SalesService
	Exports *service.ExportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api")

	if services != nil && services.Sales != nil {
		salesHandler := handlers.NewSalesHandler(services.Sales)
		apiGroup.GET("/health", salesHandler.Health)
		apiGroup.GET("/data", salesHandler.GetData)
		apiGroup.GET("/summary", salesHandler.GetSummary)
		apiGroup.GET("/products", salesHandler.GetProducts)
		apiGroup.GET("/date-range", salesHandler.GetDateRange)
		apiGroup.GET("/pickup-dates", salesHandler.GetPickupDates)
		apiGroup.POST("/reload", salesHandler.Reload)
	}

	if services != nil && services.Exports != nil {
		exportHandler := handlers.NewExportHandler(services.Exports)
		exportGroup := apiGroup.Group("/export")
		{
			exportGroup.GET("/pdf", exportHandler.ExportPDF)
			exportGroup.GET("/product-by-day/pdf", exportHandler.ExportProductByDayPDF)
			exportGroup.GET("/csv", exportHandler.ExportCSV)
			exportGroup.GET("/xlsx", exportHandler.ExportXLSX)
		}
		apiGroup.GET("/reports/history", exportHandler.History)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
