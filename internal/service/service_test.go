package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/reorder"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository/memory"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/storage"
)

var errCacheDown = errors.New("cache down")

type fakeCache struct {
	mu          sync.Mutex
	version     int64
	entries     map[string][]reorder.ReportEntry
	gets        int
	sets        int
	invalidated int
	err         error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]reorder.ReportEntry)}
}

func cacheKey(version int64, sim reorder.Simulation) string {
	return fmt.Sprintf("%d|%t|%s|%g", version, sim.Active, sim.ProductID, sim.Multiplier)
}

func (c *fakeCache) Version(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	return c.version, nil
}

func (c *fakeCache) Get(ctx context.Context, version int64, sim reorder.Simulation) ([]reorder.ReportEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	entries, ok := c.entries[cacheKey(version, sim)]
	return entries, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, version int64, sim reorder.Simulation, entries []reorder.ReportEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.err != nil {
		return c.err
	}
	c.entries[cacheKey(version, sim)] = entries
	return nil
}

func (c *fakeCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	if c.err != nil {
		return c.err
	}
	c.version++
	c.entries = make(map[string][]reorder.ReportEntry)
	return nil
}

type fakeStorage struct {
	uploads map[string][]byte
	err     error
}

func (s *fakeStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (s *fakeStorage) DownloadObject(ctx context.Context, key string, destPath string) error {
	return nil
}

func (s *fakeStorage) UploadObject(ctx context.Context, key string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	if s.uploads == nil {
		s.uploads = make(map[string][]byte)
	}
	s.uploads[key] = data
	return nil
}

func seededRepo() repository.ProductRepository {
	repo := memory.NewProductRepository()
	_ = repo.SaveAll(context.Background(), []domain.Product{
		{ID: "a", Name: "Alpha", CurrentStock: 10, AverageDailySales: 2, SupplierLeadTime: 3, MinimumReorderQuantity: 5, CostPerUnit: 1.5, Criticality: domain.CriticalityHigh},
		{ID: "b", Name: "Bravo", CurrentStock: 500, AverageDailySales: 1, SupplierLeadTime: 2, Criticality: domain.CriticalityMedium},
		{ID: "c", Name: "Charlie", CurrentStock: 3, AverageDailySales: 0, SupplierLeadTime: 10, CostPerUnit: 9, Criticality: domain.CriticalityLow},
		{ID: "p1", Name: "Spiky", CurrentStock: 20, AverageDailySales: 2, SupplierLeadTime: 2, CostPerUnit: 0.25, Criticality: domain.CriticalityMedium},
		{ID: "d", Name: "Delta", CurrentStock: 1, AverageDailySales: 1, SupplierLeadTime: 1, CostPerUnit: 2.335, Criticality: domain.CriticalityEssential},
	})
	return repo
}

func entryIDs(entries []reorder.ReportEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	return ids
}
