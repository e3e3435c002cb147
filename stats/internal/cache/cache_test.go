package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/pinjam-rt/stats/internal/cache"
	"github.com/Astemirdum/pinjam-rt/stats/internal/model"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	goredis.Cmdable
	data map[string][]byte
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		data: map[string][]byte{},
		ttl:  map[string]time.Duration{},
	}
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	val, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(string(val), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	f.data[key] = value.([]byte)
	f.ttl[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func TestRedis_SetGetInvalidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rdb := newFakeRedis()
	c := cache.NewRedis(rdb, 30*time.Second)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	sum := model.Summary{
		Items:     []model.ItemStats{{ItemType: "Tenda", Submitted: 3, Approved: 1, Rejected: 1, Quantity: 6}},
		Cleared:   2,
		UpdatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.Set(ctx, sum))
	require.Equal(t, 30*time.Second, rdb.ttl["loan-stats:summary"])

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sum, got)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedis_GetErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	down := newFakeRedis()
	down.err = errors.New("connection refused")
	_, ok, err := cache.NewRedis(down, time.Second).Get(ctx)
	require.EqualError(t, err, "connection refused")
	require.False(t, ok)

	corrupt := newFakeRedis()
	corrupt.data["loan-stats:summary"] = []byte("{")
	_, ok, err = cache.NewRedis(corrupt, time.Second).Get(ctx)
	require.Error(t, err)
	require.False(t, ok)
}
