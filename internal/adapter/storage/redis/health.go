package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck reports whether the redeemed-voucher cache can be reached.
// A failing cache degrades claims to ledger-only duplicate checks, so /health
// surfaces it without failing claims.
type HealthCheck struct {
	client goredis.UniversalClient
}

func NewHealthCheck(client goredis.UniversalClient) *HealthCheck {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := h.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("voucher cache: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "redis"
}
