package postgres

import (
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	migrate "github.com/rubenv/sql-migrate"
)

const migrationsTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationSource returns the embedded schema migrations.
func MigrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// Migrate applies all pending up migrations through a database/sql view of pool.
func Migrate(pool *pgxpool.Pool, log zerolog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	set := &migrate.MigrationSet{TableName: migrationsTableName}
	n, err := set.Exec(db, "postgres", MigrationSource(), migrate.Up)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	log.Info().Int("applied", n).Msg("database migrations applied")
	return nil
}
