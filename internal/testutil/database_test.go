package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tareas/internal/storage"
)

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t, "Trabajo", "Casa")

	require.Len(t, db.Folders, 2)
	assert.Equal(t, 0, db.Folders[0].Order)
	assert.Equal(t, 1, db.Folders[1].Order)

	casa := db.MustGetFolder("casa")
	assert.Equal(t, "Casa", casa.Name)
	assert.Equal(t, "contexto de Casa", casa.ContextHint)
	assert.Equal(t, []string{"Casa"}, casa.Keywords)

	stored, err := db.Storage.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, db.Folders[0].ID, stored[0].ID)
	assert.Equal(t, db.Folders[1].ID, stored[1].ID)
}

func TestSetupTestDBWithOptions(t *testing.T) {
	var ran bool
	db := SetupTestDBWithOptions(t, TestDBOptions{
		Folders: []FolderSpec{{Name: "Personal"}},
		CustomSetup: func(ctx context.Context, store *storage.SQLiteStorage) error {
			ran = true
			_, err := store.CreateCategory(ctx, "Casa", "", nil)
			return err
		},
	})

	assert.True(t, ran)
	assert.Equal(t, []string{}, db.MustGetFolder("Personal").Keywords)
	assert.Len(t, db.Folders, 1, "folders created by CustomSetup are not tracked")
}
