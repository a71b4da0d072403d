package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// The SQLite implementation owns its own migration files, so the storage
// backend can be replaced without touching the services.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
