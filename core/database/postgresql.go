package database

import (
	"context"
	"fmt"

	"eventrely-api/core/constants"
	"eventrely-api/core/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func postgresDSN(config DatabaseConfig) string {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = constants.DatabaseSSLMode
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, sslMode)
}

func openPostgres(ctx context.Context, config DatabaseConfig) (Database, error) {
	sqlxDB, err := sqlx.ConnectContext(ctx, constants.DatabaseDriverPostgres, postgresDSN(config))
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return Database{}, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB := sqlxDB.DB
	applyPool(sqlDB, config)

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlxDB.Close()
		logger.Error("Failed to ping database", "error", err)
		return Database{}, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database initialized successfully",
		"driver", constants.DatabaseDriverPostgres,
		"host", config.Host,
		"port", config.Port,
		"database", config.DBName,
		"user", config.User,
	)

	return Database{db: sqlDB, sqlx: sqlxDB}, nil
}
