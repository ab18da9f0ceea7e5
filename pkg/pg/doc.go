// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool
// configured from the environment, goose schema migrations, a health check
// closure, and helpers for classifying common pg errors.
//
// Typical startup:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
package pg
