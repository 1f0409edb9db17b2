package redis

import (
	"context"
	"fmt"

	"voucher-donation-gateway/config"
	"voucher-donation-gateway/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient connects the Redis instance shared by the redeemed-voucher
// cache, the rate limiter and the live feed channel. Startup fails if it
// does not answer a PING.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:       cfg.Addr(),
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: logger.ServiceName,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", cfg.Addr(), err)
	}

	log.Info().
		Str("redis_addr", cfg.Addr()).
		Int("redis_db", cfg.DB).
		Str("voucher_key_prefix", voucherKeyPrefix).
		Msg("voucher cache and rate limit store ready")

	return client, nil
}
