package postgres

import (
	"context"
	"fmt"

	"voucher-donation-gateway/config"
	"voucher-donation-gateway/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPool opens the donation ledger pool. Connections identify themselves
// with the service name so ledger writes can be traced in pg_stat_activity.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("invalid ledger database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = cfg.MinConns
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if _, ok := poolCfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = logger.ServiceName
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("opening ledger pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("donation ledger unreachable: %w", err)
	}

	log.Info().
		Str("ledger_host", poolCfg.ConnConfig.Host).
		Str("ledger_db", poolCfg.ConnConfig.Database).
		Int32("ledger_max_conns", poolCfg.MaxConns).
		Msg("donation ledger pool ready")

	return pool, nil
}
