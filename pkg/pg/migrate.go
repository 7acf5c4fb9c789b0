package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies database schema migrations using goose.
// When migrations is non-nil, MigrationsPath is resolved inside it (typically an embed.FS);
// otherwise it is read from disk.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log logger, migrations fs.FS) error {
	if cfg.MigrationsPath == "" {
		return errors.Join(ErrFailedToApplyMigrations, ErrMigrationPathNotProvided)
	}

	if migrations == nil {
		if _, err := os.Stat(cfg.MigrationsPath); err != nil {
			if os.IsNotExist(err) {
				return errors.Join(ErrMigrationsDirNotFound, err)
			}
			return errors.Join(ErrFailedToApplyMigrations, err)
		}
	}

	// goose works on database/sql; this wrapper shares the pool's connections.
	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close database connection", "error", err)
		}
	}(db)

	goose.SetLogger(newSlogAdapter(log))
	goose.SetTableName(cfg.MigrationsTable)
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if err := goose.UpContext(ctx, db, cfg.MigrationsPath); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	return nil
}

// migrateSlogAdapter bridges goose's Printf-style logging to structured logging.
type migrateSlogAdapter struct {
	log logger
}

func newSlogAdapter(log logger) goose.Logger {
	return &migrateSlogAdapter{
		log: log,
	}
}

func (a *migrateSlogAdapter) Fatalf(format string, v ...any) {
	a.log.ErrorContext(context.Background(), fmt.Sprintf(format, v...))
}

func (a *migrateSlogAdapter) Printf(format string, v ...any) {
	a.log.InfoContext(context.Background(), fmt.Sprintf(format, v...))
}
