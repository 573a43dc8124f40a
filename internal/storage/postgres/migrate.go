package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationStatus describes one migration known to the database or the binary.
type MigrationStatus struct {
	Version int64
	Path    string
	State   string
}

var newMigrationProvider = func(cfg *pgx.ConnConfig) (migrationProvider, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, stdlib.OpenDB(*cfg), sub)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

type migrationProvider interface {
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
	Status(ctx context.Context) ([]*goose.MigrationStatus, error)
	Close() error
}

// Migrate applies all pending migrations to the database at dsn.
func Migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}
	return migrateUp(ctx, cfg, logger)
}

// Status lists migrations and whether they are applied.
func Status(ctx context.Context, dsn string) ([]MigrationStatus, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	provider, err := newMigrationProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	defer provider.Close()

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status: %w", err)
	}

	result := make([]MigrationStatus, 0, len(statuses))
	for _, st := range statuses {
		result = append(result, MigrationStatus{
			Version: st.Source.Version,
			Path:    st.Source.Path,
			State:   string(st.State),
		})
	}
	return result, nil
}

func migrateUp(ctx context.Context, cfg *pgx.ConnConfig, logger *slog.Logger) error {
	provider, err := newMigrationProvider(cfg)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer provider.Close()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, res := range results {
		logger.Info("migration applied",
			slog.Int64("version", res.Source.Version),
			slog.String("path", res.Source.Path),
			slog.Duration("duration", res.Duration),
		)
	}
	return nil
}
