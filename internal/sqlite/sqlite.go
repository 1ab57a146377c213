// Package sqlite implements the user store contract on an embedded SQLite
// database. The adapter holds a single connection and carries no internal
// concurrency guarantee; wrap it with store.NewSerialized before sharing it
// across goroutines.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the database file (created if absent) and pins the pool to one
// connection so the serialized decorator guards a single logical connection.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connected", "backend", "sqlite", "path", path)
	return db, nil
}
