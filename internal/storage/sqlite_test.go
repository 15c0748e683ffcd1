package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/model"
)

// createTestStorage opens a migrated in-memory database.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// createTestStorageWithFolders also creates one folder per name, in order.
func createTestStorageWithFolders(t *testing.T, names ...string) (*SQLiteStorage, []model.Folder) {
	t.Helper()

	store := createTestStorage(t)
	folders := make([]model.Folder, 0, len(names))
	for _, name := range names {
		folder, err := store.CreateCategory(context.Background(), name, "", nil)
		require.NoError(t, err)
		folders = append(folders, *folder)
	}
	return store, folders
}

func TestNewSQLiteStorage_File(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "tareas.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Migrate(context.Background()))
	assert.Equal(t, dbPath, store.Path())

	// Migrating again is a no-op.
	require.NoError(t, store.Migrate(context.Background()))
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage(" ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_SchemaVersion(t *testing.T) {
	store := createTestStorage(t)

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)

	for _, table := range []string{"folders", "task_groups", "tasks", "pending_classifications"} {
		var name string
		err := store.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrate_NewerSchemaIsCorrupted(t *testing.T) {
	store := createTestStorage(t)
	_, err := store.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", ExpectedSchemaVersion+1))
	require.NoError(t, err)

	err = store.Migrate(context.Background())
	assert.ErrorIs(t, err, common.ErrDatabaseCorrupted)
}

func TestMigrate_NilContext(t *testing.T) {
	store := createTestStorage(t)
	//nolint:staticcheck // testing nil context handling
	assert.ErrorIs(t, store.Migrate(nil), ErrNilContext)
}
