package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
)

// fakeRedis implements the Get and Set commands of redis.Cmdable over a map
type fakeRedis struct {
	redis.Cmdable
	values   map[string]string
	ttls     map[string]time.Duration
	failWith error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.failWith != nil {
		cmd.SetErr(f.failWith)
		return cmd
	}

	value, ok := f.values[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(value)
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	if f.failWith != nil {
		cmd.SetErr(f.failWith)
		return cmd
	}

	f.values[key] = string(value.([]byte))
	f.ttls[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func testDataset() *Dataset {
	hourly := []rental.Record{
		{Date: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), WeatherSituation: 1, Casual: 1, Registered: 2, Total: 3},
		{Date: time.Date(2011, 1, 2, 0, 0, 0, 0, time.UTC), WorkingDay: true, WeatherSituation: 2, Temperature: 0.5, Total: 7},
	}
	return NewDataset(Source{HourPath: "hour.csv", DayPath: "day.csv", Hash: "abc"}, hourly, nil)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "hour.csv|day.csv|abc", CacheKey(testDataset().Source))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	_, found, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	stored := testDataset()
	require.NoError(t, cache.Set(ctx, "key", stored))

	cached, found, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Same(t, stored, cached)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	stored := testDataset()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := CacheKey(Source{Hash: string(rune('a' + i%5))})
			_ = cache.Set(ctx, key, stored)
			_, _, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, cache.Len())
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	cache := NewRedisCacheWithClient(client, time.Hour)

	_, found, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, found)

	stored := testDataset()
	require.NoError(t, cache.Set(ctx, "key", stored))
	assert.Contains(t, client.values, "bike-rental:dataset:key")
	assert.Equal(t, time.Hour, client.ttls["bike-rental:dataset:key"])

	cached, found, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, stored.Source, cached.Source)
	require.Len(t, cached.Hourly, 2)
	assert.True(t, stored.Hourly[1].Date.Equal(cached.Hourly[1].Date))
	assert.Equal(t, stored.Hourly[1].Temperature, cached.Hourly[1].Temperature)
	assert.True(t, cached.Hourly[1].WorkingDay)
}

func TestRedisCacheErrors(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	client.failWith = errors.New("connection refused")
	cache := NewRedisCacheWithClient(client, time.Minute)

	_, found, err := cache.Get(ctx, "key")
	assert.False(t, found)
	assert.ErrorContains(t, err, "connection refused")

	assert.ErrorContains(t, cache.Set(ctx, "key", testDataset()), "connection refused")
}

func TestRedisCacheCorruptedEntry(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	client.values["bike-rental:dataset:key"] = "{not json"

	_, found, err := NewRedisCacheWithClient(client, time.Minute).Get(ctx, "key")
	assert.False(t, found)
	assert.ErrorContains(t, err, "failed to unmarshal cached dataset")
}

func TestLoaderWithRedisCache(t *testing.T) {
	client := newFakeRedis()
	loader := NewLoader(NewRedisCacheWithClient(client, time.Minute))

	first, err := loader.Load(context.Background(), testHourPath, testDayPath)
	require.NoError(t, err)
	assert.Len(t, client.values, 1)

	second, err := loader.Load(context.Background(), testHourPath, testDayPath)
	require.NoError(t, err)
	assert.Equal(t, first.Source, second.Source)
	assert.Len(t, second.Hourly, len(first.Hourly))
}
