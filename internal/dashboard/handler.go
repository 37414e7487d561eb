package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
)

// Series is one named line or bar set of a chart.
type Series struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// Chart is the payload every chart endpoint returns.
type Chart struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

type Handler struct {
	sales     *service.SalesService
	publicDir string
}

func NewHandler(sales *service.SalesService, publicDir string) *Handler {
	return &Handler{sales: sales, publicDir: publicDir}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.Use(logRequests)

	charts := router.PathPrefix("/api/charts").Subrouter()
	charts.HandleFunc("/daily", h.DailyChart).Methods("GET")
	charts.HandleFunc("/category", h.CategoryChart).Methods("GET")
	charts.HandleFunc("/products", h.ProductChart).Methods("GET")
	charts.HandleFunc("/order-types", h.OrderTypeChart).Methods("GET")
	router.HandleFunc("/api/filters", h.FilterOptions).Methods("GET")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	router.PathPrefix("/").Handler(h.static())
}

func filterFromQuery(r *http.Request) domain.FilterParams {
	q := r.URL.Query()
	return domain.FilterParams{
		DateStart:   q.Get("date_start"),
		DateEnd:     q.Get("date_end"),
		Product:     q.Get("product"),
		PickupDates: q.Get("pickup_dates"),
		OrderType:   q.Get("order_type"),
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) (*domain.SalesSummary, bool) {
	s, err := h.sales.Summary(r.Context(), filterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) DailyChart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.summary(w, r)
	if !ok {
		return
	}
	chart := Chart{Title: "Daily Sales", Labels: []string{}}
	revenue := Series{Name: "Revenue", Data: []float64{}}
	orders := Series{Name: "Orders", Data: []float64{}}
	for _, d := range s.DailySales {
		chart.Labels = append(chart.Labels, d.Date.Format("2006-01-02"))
		revenue.Data = append(revenue.Data, amount(d.Revenue))
		orders.Data = append(orders.Data, float64(d.Orders))
	}
	chart.Series = []Series{revenue, orders}
	writeJSON(w, http.StatusOK, chart)
}

func (h *Handler) CategoryChart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.summary(w, r)
	if !ok {
		return
	}
	chart := Chart{Title: "Sales by Category", Labels: []string{}}
	revenue := Series{Name: "Revenue", Data: []float64{}}
	for _, c := range s.CategorySales {
		chart.Labels = append(chart.Labels, c.Category)
		revenue.Data = append(revenue.Data, amount(c.Revenue))
	}
	chart.Series = []Series{revenue}
	writeJSON(w, http.StatusOK, chart)
}

func (h *Handler) ProductChart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.summary(w, r)
	if !ok {
		return
	}
	chart := Chart{Title: "Top 10 Products", Labels: []string{}}
	revenue := Series{Name: "Revenue", Data: []float64{}}
	for _, p := range s.ProductSales {
		chart.Labels = append(chart.Labels, p.Product)
		revenue.Data = append(revenue.Data, amount(p.Revenue))
	}
	chart.Series = []Series{revenue}
	writeJSON(w, http.StatusOK, chart)
}

func (h *Handler) OrderTypeChart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.summary(w, r)
	if !ok {
		return
	}
	chart := Chart{Title: "Sales by Order Type", Labels: []string{}}
	total := Series{Name: "Total", Data: []float64{}}
	for _, o := range s.OrderTypeSales {
		chart.Labels = append(chart.Labels, o.OrderType)
		total.Data = append(total.Data, amount(o.Total))
	}
	chart.Series = []Series{total}
	writeJSON(w, http.StatusOK, chart)
}

// FilterOptions feeds the dashboard's dropdowns.
func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	products, err := h.sales.Products(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	days, err := h.sales.PickupDates(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	dr, err := h.sales.DateRange(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	pickup := make([]string, 0, len(days))
	for _, d := range days {
		pickup = append(pickup, d.Format("2006-01-02"))
	}
	resp := map[string]interface{}{
		"products":     append([]string{}, products...),
		"pickup_dates": pickup,
	}
	if t, ok := dr.Min.Get(); ok {
		resp["order_date_min"] = t.Format("2006-01-02")
	}
	if t, ok := dr.Max.Get(); ok {
		resp["order_date_max"] = t.Format("2006-01-02")
	}
	writeJSON(w, http.StatusOK, resp)
}

// static serves the built frontend, falling back to index.html for client
// routes.
func (h *Handler) static() http.Handler {
	files := http.FileServer(http.Dir(h.publicDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := filepath.Clean("/" + r.URL.Path)
		if strings.HasPrefix(clean, "/api/") {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(h.publicDir, filepath.FromSlash(clean))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		index := filepath.Join(h.publicDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			http.Error(w, "frontend not built", http.StatusNotFound)
			return
		}
		http.ServeFile(w, r, index)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := ""
		if cur := mux.CurrentRoute(r); cur != nil {
			route, _ = cur.GetPathTemplate()
		}
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", route).
			Int("status", rec.status).
			Dur("latency", time.Since(start)).
			Msg("dashboard request")
	})
}

func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("dashboard: encode response failed")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := map[string]interface{}{"error": err.Error()}
	switch {
	case errors.Is(err, domain.ErrInvalidFilter):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
		body["error"] = domain.RateLimitMessage
		body["rate_limited"] = true
	default:
		log.Error().Err(err).Msg("dashboard: request failed")
	}
	writeJSON(w, status, body)
}
