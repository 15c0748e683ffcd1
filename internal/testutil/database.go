// Package testutil provides test helpers for packages that need a seeded
// database.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/storage"
)

// TestDB is a migrated in-memory database and the folders seeded into it.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
	Folders []model.Folder
}

// FolderSpec describes a folder to seed.
type FolderSpec struct {
	Name        string
	ContextHint string
	Keywords    []string
}

// SetupTestDB creates an in-memory database with one folder per name, in
// display order. Each folder gets the context "contexto de <name>" and its
// own name as the only keyword. The database is closed when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t, "Trabajo", "Casa")
//	casa := db.MustGetFolder("casa")
func SetupTestDB(t *testing.T, names ...string) *TestDB {
	t.Helper()

	specs := make([]FolderSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, FolderSpec{
			Name:        name,
			ContextHint: "contexto de " + name,
			Keywords:    []string{name},
		})
	}
	return SetupTestDBWithOptions(t, TestDBOptions{Folders: specs})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup func(context.Context, *storage.SQLiteStorage) error
	Folders     []FolderSpec
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	folders := make([]model.Folder, 0, len(opts.Folders))
	for _, spec := range opts.Folders {
		folder, err := store.CreateCategory(ctx, spec.Name, spec.ContextHint, spec.Keywords)
		if err != nil {
			t.Fatalf("failed to seed folder %q: %v", spec.Name, err)
		}
		folders = append(folders, *folder)
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		Folders: folders,
		t:       t,
	}
}

// MustGetFolder returns the seeded folder named name, ignoring case, or
// fails the test.
func (db *TestDB) MustGetFolder(name string) model.Folder {
	db.t.Helper()
	for _, f := range db.Folders {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	db.t.Fatalf("folder %q was not seeded", name)
	return model.Folder{}
}
