package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// voucherKeyPrefix namespaces redeemed-voucher markers.
const voucherKeyPrefix = "voucher:redeemed:"

// VoucherCache implements ports.RedeemedVoucherCache using Redis.
type VoucherCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewVoucherCache creates a new Redis-backed redeemed-voucher cache.
func NewVoucherCache(client goredis.UniversalClient) *VoucherCache {
	return &VoucherCache{
		client: client,
		prefix: voucherKeyPrefix,
	}
}

// Seen reports whether the hash was marked and has not expired.
func (c *VoucherCache) Seen(ctx context.Context, voucherHash string) (bool, error) {
	n, err := c.client.Exists(ctx, c.prefix+voucherHash).Result()
	if err != nil {
		return false, fmt.Errorf("redis voucher exists: %w", err)
	}
	return n > 0, nil
}

// Mark records the hash as redeemed for ttl.
func (c *VoucherCache) Mark(ctx context.Context, voucherHash string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+voucherHash, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis voucher mark: %w", err)
	}
	return nil
}
