package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"eventrely-api/core/database/migrations"
	"eventrely-api/core/logger"
)

const migrationTable = "schema_migrations"

// Migrate runs the embedded migrations for the database's driver in filename
// order, recording each applied file in schema_migrations.
func Migrate(ctx context.Context, db IDatabase) error {
	migrationFS, err := migrations.For(db.DriverName())
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	name TEXT PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL
)`, migrationTable)
	if err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure %s: %w", migrationTable, err)
	}

	for _, name := range names {
		var applied int
		err := db.GetContext(ctx, &applied,
			db.Rebind(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE name = ?`, migrationTable)), name)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		stmt := strings.TrimSpace(string(content))
		if stmt == "" {
			continue
		}

		tx, err := db.SQLx().BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			tx.Rebind(fmt.Sprintf(`INSERT INTO %s (name, applied_at) VALUES (?, ?)`, migrationTable)),
			name, time.Now().UTC()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}

		logger.Info("Database:Migrate:Applied", "migration", name)
	}

	return nil
}
