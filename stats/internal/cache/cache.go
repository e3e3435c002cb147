package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Astemirdum/pinjam-rt/stats/internal/model"
	goredis "github.com/redis/go-redis/v9"
)

const summaryKey = "loan-stats:summary"

type Cache interface {
	Get(ctx context.Context) (model.Summary, bool, error)
	Set(ctx context.Context, sum model.Summary) error
	Invalidate(ctx context.Context) error
}

type Redis struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewRedis(client goredis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

func (r *Redis) Get(ctx context.Context) (model.Summary, bool, error) {
	val, err := r.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return model.Summary{}, false, nil
		}
		return model.Summary{}, false, err
	}
	var sum model.Summary
	if err := json.Unmarshal(val, &sum); err != nil {
		return model.Summary{}, false, err
	}
	return sum, true, nil
}

func (r *Redis) Set(ctx context.Context, sum model.Summary) error {
	data, err := json.Marshal(sum)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, summaryKey, data, r.ttl).Err()
}

func (r *Redis) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, summaryKey).Err()
}

// Noop is used when no redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context) (model.Summary, bool, error) { return model.Summary{}, false, nil }

func (Noop) Set(context.Context, model.Summary) error { return nil }

func (Noop) Invalidate(context.Context) error { return nil }
