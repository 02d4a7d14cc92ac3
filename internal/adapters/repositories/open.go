package repositories

import (
	"context"
	"fmt"
	"smart-route-optimizer/internal/platform/db"
	"smart-route-optimizer/internal/ports"
)

// OpenHistory selects the history backend from configuration.
// A postgres URL wins over a sqlite path; with neither, history is disabled
// and a nil repository is returned. The close func is always safe to call.
func OpenHistory(ctx context.Context, dbPath, databaseURL string) (ports.HistoryRepository, func() error, error) {
	noop := func() error { return nil }

	switch {
	case databaseURL != "":
		conn, err := db.OpenPostgres(ctx, databaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open history: %w", err)
		}
		if err := InitPostgresSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, noop, fmt.Errorf("open history: %w", err)
		}
		return NewSQLHistoryRepository(conn), conn.Close, nil

	case dbPath != "":
		conn, err := db.OpenSqlite(ctx, dbPath)
		if err != nil {
			return nil, noop, fmt.Errorf("open history: %w", err)
		}
		if err := InitSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, noop, fmt.Errorf("open history: %w", err)
		}
		return NewSqliteHistoryRepository(conn), conn.Close, nil
	}

	return nil, noop, nil
}
