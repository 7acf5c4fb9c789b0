// Package pg provides utilities for interacting with PostgreSQL using the
// pgx/v5 driver: a retrying connection pool constructor, goose migrations
// and a health check.
//
//   - Config is populated from environment variables via
//     github.com/caarlos0/env. An empty DATABASE_URL means Postgres is not in use.
//
//   - Connect opens a *pgxpool.Pool, retrying with linear back-off until the
//     database becomes available or the context is done.
//
//   - Migrate runs goose migrations against the same pool, from disk or from
//     an embedded filesystem.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default(), migrations.FS); err != nil {
//	    return err
//	}
//
//	health := pg.Healthcheck(pool)
//
// # Error Handling
//
// [pg.IsNotFoundError] and [pg.IsDuplicateKeyError] classify errors returned by
// pgx so callers can map them to their own sentinel errors.
package pg
