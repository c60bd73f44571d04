package repository

import (
	"context"
	"fmt"

	"github.com/octobees/outreach-campaigns/api/internal/database"
)

// Open connects to the backend selected by dsn and returns its repositories
// together with a function releasing the connection. When migrate is set the
// schema is brought up to date first.
func Open(ctx context.Context, dsn string, migrate bool) (Repositories, func(), error) {
	switch database.Driver(dsn) {
	case database.DriverSQLite:
		db, err := database.OpenSQLite(dsn)
		if err != nil {
			return Repositories{}, nil, err
		}
		if migrate {
			if err := database.MigrateSQLite(ctx, db); err != nil {
				_ = db.Close()
				return Repositories{}, nil, fmt.Errorf("migrate sqlite: %w", err)
			}
		}
		return NewSQLiteRepositories(db), func() { _ = db.Close() }, nil
	default:
		pool, err := database.Connect(ctx, dsn)
		if err != nil {
			return Repositories{}, nil, err
		}
		if migrate {
			if err := database.MigratePostgres(ctx, pool); err != nil {
				pool.Close()
				return Repositories{}, nil, fmt.Errorf("migrate postgres: %w", err)
			}
		}
		return NewPGXRepositories(pool), pool.Close, nil
	}
}
