package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/storage"
)

var (
	orderHeader = []string{"OrderID", "Order Date", "Due Pickup Date", "Due Pickup Time",
		"Customer First Name", "Customer Last Name", "Order Type ", "Total"}
	itemHeader = []string{"OrderID", "Product Description", "Category", "Unit Price",
		"Subtotal (Calculated)", "CakeQty"}
)

func sampleTables() domain.SourceTables {
	return domain.SourceTables{
		Orders: domain.NewTable(domain.DefaultOrdersSheet, orderHeader, [][]string{
			{"A1", "11-01-2025", "11-05-2025", "10:00", "Ann", "Lee", "Pickup", "20"},
			{"B2", "11-02-2025", "11-06-2025", "", "Bob", "Ray", "Delivery", "15"},
		}),
		Items: domain.NewTable(domain.DefaultItemsSheet, itemHeader, [][]string{
			{"a1", "Cake", "Cakes", "20", "20", "1"},
			{"B2", "Bread", "Bread", "15", "15", "1"},
		}),
	}
}

type fakeSource struct {
	mu       sync.Mutex
	tables   domain.SourceTables
	err      error
	revision string
	calls    atomic.Int32
	revCalls atomic.Int32
}

func (f *fakeSource) FetchTables(ctx context.Context) (domain.SourceTables, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tables, f.err
}

func (f *fakeSource) Revision(ctx context.Context) (string, error) {
	f.revCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revision, nil
}

func (f *fakeSource) set(tables domain.SourceTables, err error) {
	f.mu.Lock()
	f.tables, f.err = tables, err
	f.mu.Unlock()
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (m *memoryStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.ObjectInfo
	for k, v := range m.objects {
		out = append(out, storage.ObjectInfo{Key: k, Size: int64(len(v))})
	}
	return out, nil
}

func (m *memoryStorage) DownloadObject(ctx context.Context, key, destPath string) error {
	return errors.New("not implemented")
}

func (m *memoryStorage) UploadObject(ctx context.Context, key, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = data
	return nil
}

type memoryRuns struct {
	mu   sync.Mutex
	runs []domain.ReportRun
	err  error
}

func (m *memoryRuns) SaveRun(ctx context.Context, run *domain.ReportRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.runs = append(m.runs, *run)
	return nil
}

func (m *memoryRuns) ListRuns(ctx context.Context, limit int) ([]domain.ReportRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ReportRun(nil), m.runs...), nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
