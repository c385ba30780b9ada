package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventrely-api/core/constants"
	"eventrely-api/core/logger"

	"github.com/jmoiron/sqlx"
)

type IDatabase interface {
	ExecContext(ctx context.Context, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	Rebind(query string) string
	PingContext(ctx context.Context) error
	DriverName() string
	SQLx() *sqlx.DB
	Close() error
}

type Database struct {
	db   *sql.DB
	sqlx *sqlx.DB
}

var _ IDatabase = (*Database)(nil)

type DatabaseConfig struct {
	Driver          string // postgres | sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string // disable, require, verify-ca, verify-full
	Path            string // sqlite only
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	AutoMigrate     bool
}

func init() {
	// sqlx only knows "sqlite3"; the modernc driver registers as "sqlite".
	sqlx.BindDriver(constants.DatabaseDriverSQLite, sqlx.QUESTION)
}

// InitDB opens the configured driver, applies pool settings and, when
// requested, the embedded migrations.
func InitDB(ctx context.Context, config DatabaseConfig) (Database, error) {
	logger.Info("Initializing database...", "driver", config.Driver)

	var (
		db  Database
		err error
	)
	switch config.Driver {
	case constants.DatabaseDriverPostgres, "":
		db, err = openPostgres(ctx, config)
	case constants.DatabaseDriverSQLite:
		db, err = openSQLite(ctx, config)
	default:
		return Database{}, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
	if err != nil {
		return Database{}, err
	}

	if config.AutoMigrate {
		if err := Migrate(ctx, &db); err != nil {
			_ = db.Close()
			logger.Error("Failed to migrate database", "error", err)
			return Database{}, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return db, nil
}

// New wraps an existing sqlx handle, mostly for tests.
func New(sqlxDB *sqlx.DB) Database {
	return Database{db: sqlxDB.DB, sqlx: sqlxDB}
}

func applyPool(sqlDB *sql.DB, config DatabaseConfig) {
	maxOpen := config.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = constants.DatabaseMaxOpenConns
	}
	maxIdle := config.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = constants.DatabaseMaxIdleConns
	}
	lifetime := config.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = constants.DatabaseConnMaxLifetime
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Duration(lifetime) * time.Minute)
}

func (d *Database) ExecContext(ctx context.Context, query string, args ...any) error {
	_, err := d.sqlx.ExecContext(ctx, query, args...)
	return err
}

func (d *Database) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.GetContext(ctx, dest, query, args...)
}

func (d *Database) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.SelectContext(ctx, dest, query, args...)
}

func (d *Database) NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error) {
	return d.sqlx.NamedExecContext(ctx, query, arg)
}

// Rebind converts '?' placeholders to the driver's bindvar style.
func (d *Database) Rebind(query string) string {
	return d.sqlx.Rebind(query)
}

func (d *Database) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *Database) DriverName() string {
	return d.sqlx.DriverName()
}

func (d *Database) SQLx() *sqlx.DB {
	return d.sqlx
}

func (d *Database) Close() error {
	if d.sqlx == nil {
		return nil
	}
	return d.sqlx.Close()
}
