package postgres

import (
	"context"
	"fmt"
)

// ledgerCheckSQL touches the donations table without reading rows, so a
// reachable server with a missing schema still reports unhealthy.
const ledgerCheckSQL = `SELECT 1 FROM donations LIMIT 0`

// HealthCheck reports whether the donation ledger is reachable and migrated.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := h.pool.Ping(ctx); err != nil {
		return fmt.Errorf("donation ledger: %w", err)
	}
	if _, err := h.pool.Exec(ctx, ledgerCheckSQL); err != nil {
		return fmt.Errorf("donation ledger schema: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
