package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tareas/internal/common"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Folders, task groups and tasks",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS folders (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL UNIQUE COLLATE NOCASE,
					color TEXT NOT NULL,
					sort_order INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_folders_order ON folders(sort_order)`,

				`CREATE TABLE IF NOT EXISTS task_groups (
					id TEXT PRIMARY KEY,
					folder_id TEXT NOT NULL REFERENCES folders(id) ON DELETE CASCADE,
					name TEXT NOT NULL,
					sort_order INTEGER NOT NULL DEFAULT 0,
					collapsed INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_task_groups_folder ON task_groups(folder_id, sort_order)`,

				`CREATE TABLE IF NOT EXISTS tasks (
					id TEXT PRIMARY KEY,
					folder_id TEXT NOT NULL REFERENCES folders(id) ON DELETE CASCADE,
					task_group_id TEXT REFERENCES task_groups(id) ON DELETE SET NULL,
					text TEXT NOT NULL,
					raw_text TEXT NOT NULL,
					priority TEXT NOT NULL DEFAULT '',
					task_type TEXT NOT NULL DEFAULT 'other',
					due_date TEXT,
					entities TEXT NOT NULL DEFAULT '[]',
					category_path TEXT NOT NULL DEFAULT '[]',
					completed INTEGER NOT NULL DEFAULT 0,
					archived INTEGER NOT NULL DEFAULT 0,
					sort_order INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_tasks_folder_group ON tasks(folder_id, task_group_id)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Pending classification queue",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS pending_classifications (
					id TEXT PRIMARY KEY,
					task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
					raw_text TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_pending_created ON pending_classifications(created_at, id)`,
			)
		},
	},
	{
		Version:     3,
		Description: "Classifier prompt context and classification source",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`ALTER TABLE folders ADD COLUMN context_hint TEXT NOT NULL DEFAULT ''`,
				`ALTER TABLE folders ADD COLUMN keywords TEXT NOT NULL DEFAULT '[]'`,
				`ALTER TABLE tasks ADD COLUMN source TEXT NOT NULL DEFAULT ''`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Migrate runs all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("%w: schema version %d, expected %d", common.ErrDatabaseCorrupted, finalVersion, ExpectedSchemaVersion)
	}

	return nil
}
