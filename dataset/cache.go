package dataset

import (
	"context"
	"fmt"
	"sync"
)

// Cache stores parsed datasets by key. A miss is reported with found set to false and a nil error
type Cache interface {
	Get(ctx context.Context, key string) (*Dataset, bool, error)
	Set(ctx context.Context, key string, dataset *Dataset) error
}

// CacheKey returns the key of a dataset source: both paths plus the hash of the content,
// so editing a file invalidates the entry
func CacheKey(source Source) string {
	return fmt.Sprintf("%s|%s|%s", source.HourPath, source.DayPath, source.Hash)
}

// MemoryCache Cache kept in the process memory
type MemoryCache struct {
	mutex    sync.RWMutex
	datasets map[string]*Dataset
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		datasets: make(map[string]*Dataset),
	}
}

func (mc *MemoryCache) Get(_ context.Context, key string) (*Dataset, bool, error) {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()

	cached, ok := mc.datasets[key]
	return cached, ok, nil
}

func (mc *MemoryCache) Set(_ context.Context, key string, dataset *Dataset) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	mc.datasets[key] = dataset
	return nil
}

// Len returns the amount of cached datasets
func (mc *MemoryCache) Len() int {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()
	return len(mc.datasets)
}
