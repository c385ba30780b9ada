package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"eventrely-api/core/constants"
	"eventrely-api/core/logger"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func sqliteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" {
		// Every in-memory open gets its own named database so callers never share state.
		return "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)&_time_format=sqlite"
	}
	return filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_time_format=sqlite"
}

func openSQLite(ctx context.Context, config DatabaseConfig) (Database, error) {
	sqlxDB, err := sqlx.ConnectContext(ctx, constants.DatabaseDriverSQLite, sqliteDSN(config.Path))
	if err != nil {
		logger.Error("Failed to open sqlite database", "error", err, "path", config.Path)
		return Database{}, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite serialises writers; one connection avoids SQLITE_BUSY under load.
	sqlxDB.SetMaxOpenConns(1)

	logger.Info("Database initialized successfully",
		"driver", constants.DatabaseDriverSQLite,
		"path", config.Path,
	)

	return Database{db: sqlxDB.DB, sqlx: sqlxDB}, nil
}
