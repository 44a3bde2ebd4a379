package aiusage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Counter keeps per-day running totals in a Redis hash.
type Counter struct {
	rdb *redis.Client
}

func NewCounter(rdb *redis.Client) *Counter {
	return &Counter{rdb: rdb}
}

// DailyKey is the hash holding totals for the UTC day rec was generated.
func DailyKey(rec Record) string {
	return "travel:usage:" + rec.GeneratedAt.UTC().Format("2006-01-02")
}

// Add folds rec into its day's totals in one pipeline.
func (c *Counter) Add(ctx context.Context, rec Record) error {
	key := DailyKey(rec)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, "requests", 1)
		pipe.HIncrBy(ctx, key, "input_tokens", int64(rec.InputTokens))
		pipe.HIncrBy(ctx, key, "output_tokens", int64(rec.OutputTokens))
		pipe.HIncrByFloat(ctx, key, "cost_usd", rec.CostUSD)
		pipe.Expire(ctx, key, DailyKeyTTL)
		return nil
	})
	return err
}
