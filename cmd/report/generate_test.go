package main

import (
	"testing"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

func TestReportWindow(t *testing.T) {
	now := time.Date(2025, 11, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end string
		days       int
		wantStart  string
		wantEnd    string
		wantErr    bool
	}{
		{name: "default week", days: 7, wantStart: "2025-11-09", wantEnd: "2025-11-15"},
		{name: "single day", days: 1, wantStart: "2025-11-15", wantEnd: "2025-11-15"},
		{name: "explicit end", end: "2025-11-03", days: 3, wantStart: "2025-11-01", wantEnd: "2025-11-03"},
		{name: "explicit start wins over days", start: "2025-10-01", end: "2025-10-31", days: 2, wantStart: "2025-10-01", wantEnd: "2025-10-31"},
		{name: "bad start", start: "10/01/2025", wantErr: true},
		{name: "bad end", end: "yesterday", days: 1, wantErr: true},
		{name: "zero days", days: 0, wantErr: true},
		{name: "reversed", start: "2025-11-20", end: "2025-11-10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := reportWindow(tt.start, tt.end, tt.days, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got window %v..%v", w.Start, w.End)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := w.Start.Format(dayLayout); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := w.End.Format(dayLayout); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

func TestHasOrders(t *testing.T) {
	tests := []struct {
		name string
		rep  domain.SalesReport
		want bool
	}{
		{name: "joined but empty window", rep: domain.SalesReport{Matched: true}, want: false},
		{name: "orders without join column", rep: domain.SalesReport{TotalCustomerOrders: 3}, want: true},
		{name: "joined window with orders", rep: domain.SalesReport{Matched: true, TotalCustomerOrders: 1, MatchedOrders: 1}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasOrders(tt.rep); got != tt.want {
				t.Errorf("hasOrders() = %v, want %v", got, tt.want)
			}
		})
	}
}
